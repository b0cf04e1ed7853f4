package ide

import (
	"log"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/antchfx/xmlquery"

	"github.com/gurisko/jbp/internal/paths"
)

const (
	// homePlaceholder is how JetBrains IDEs write the user's home in state files.
	homePlaceholder = "$USER_HOME$"

	openTimestampXPath = ".//option[@name='projectOpenTimestamp']"
	moduleSuffix       = ".iml"
)

// Scanner reads recent projects from IDE state on disk. It keeps nothing
// between calls; every call re-reads the files.
type Scanner struct {
	ConfigRoot string
	Home       string
}

// NewScanner returns a scanner for the current user and platform.
func NewScanner() *Scanner {
	home, _ := os.UserHomeDir()
	return &Scanner{
		ConfigRoot: paths.JetBrainsConfigRoot(),
		Home:       home,
	}
}

// ConfigDir returns the newest config directory for v. Prefixes are tried
// in order and the first one with any match wins.
func (s *Scanner) ConfigDir(v *Variant) (string, bool) {
	for _, prefix := range v.prefixes {
		dirs := s.matchingDirs(prefix)
		if len(dirs) == 0 {
			continue
		}
		sort.Strings(dirs)
		return dirs[len(dirs)-1], true
	}
	return "", false
}

func (s *Scanner) matchingDirs(prefix string) []string {
	parent := filepath.Join(s.ConfigRoot, filepath.Dir(prefix))
	base := filepath.Base(prefix)

	entries, err := os.ReadDir(parent)
	if err != nil {
		return nil
	}

	var dirs []string
	for _, e := range entries {
		if !strings.HasPrefix(e.Name(), base) {
			continue
		}
		dir := filepath.Join(parent, e.Name())
		// Stat instead of e.IsDir so symlinked config dirs count.
		if fi, err := os.Stat(dir); err == nil && fi.IsDir() {
			dirs = append(dirs, dir)
		}
	}
	return dirs
}

// Projects returns the recent projects of v. Missing or malformed state
// yields an empty list.
func (s *Scanner) Projects(v *Variant) []Project {
	dir, ok := s.ConfigDir(v)
	if !ok {
		log.Printf("[DEBUG] Projects: no config directory for %s", v.name)
		return nil
	}

	entries, err := v.source.Entries(dir)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("[DEBUG] Projects: %s has no %s", v.name, v.source.File(dir))
		} else {
			log.Printf("[WARN] Projects: skipping %s: %v", v.name, err)
		}
		return nil
	}

	projects := s.parseEntries(v, entries)
	log.Printf("[DEBUG] Projects: %s: %d entries, %d projects from %s", v.name, len(entries), len(projects), dir)
	return projects
}

func (s *Scanner) parseEntries(v *Variant, entries []*xmlquery.Node) []Project {
	var projects []Project
	for _, entry := range entries {
		path := strings.ReplaceAll(entry.SelectAttr("key"), homePlaceholder, s.Home)
		if path == "" {
			continue
		}
		lastOpened, ok := openTimestamp(entry)
		if !ok {
			log.Printf("[DEBUG] parseEntries: %s has no open timestamp, dropped", path)
			continue
		}

		name := filepath.Base(path)
		projects = append(projects, Project{Name: name, Path: path, LastOpened: lastOpened, IDE: v})

		// Extra modules in one checkout show up as separate entries.
		for _, module := range moduleNames(path) {
			if module == name {
				continue
			}
			projects = append(projects, Project{Name: module, Path: path, LastOpened: lastOpened, IDE: v})
		}
	}
	return projects
}

// moduleNames lists the .iml module files under path/.idea. The path is
// taken literally, so checkouts named like "app[1]" work.
func moduleNames(path string) []string {
	entries, err := os.ReadDir(filepath.Join(path, ".idea"))
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), moduleSuffix) {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), moduleSuffix))
	}
	return names
}

func openTimestamp(entry *xmlquery.Node) (int64, bool) {
	opt := xmlquery.FindOne(entry, openTimestampXPath)
	if opt == nil {
		return 0, false
	}
	raw := opt.SelectAttr("value")
	if raw == "" {
		return 0, false
	}
	ts, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		log.Printf("[WARN] openTimestamp: invalid value %q", raw)
		return 0, false
	}
	return ts, true
}
