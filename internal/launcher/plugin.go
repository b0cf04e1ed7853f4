// Package launcher turns recent JetBrains projects into launcher results.
package launcher

import (
	"errors"
	"os"
	"strings"
	"sync"

	"github.com/gurisko/jbp/internal/config"
	"github.com/gurisko/jbp/internal/ide"
	"github.com/gurisko/jbp/internal/match"
)

// DefaultTrigger is the query prefix that routes a launcher query here.
const DefaultTrigger = "jb "

// ErrItemNotFound indicates no current result has the requested ID
var ErrItemNotFound = errors.New("item not found")

// Widget describes one settings control for the host UI.
type Widget struct {
	Type     string `json:"type"`
	Property string `json:"property"`
	Label    string `json:"label"`
}

// Plugin answers launcher queries. Every query re-reads IDE state from disk.
type Plugin struct {
	variants []*ide.Variant
	scanner  *ide.Scanner
	store    *config.Store
	spawner  Spawner
	exists   func(path string) bool

	mu    sync.RWMutex
	fuzzy bool
}

// New creates a plugin over already resolved variants. The fuzzy toggle
// starts from the stored setting.
func New(variants []*ide.Variant, scanner *ide.Scanner, store *config.Store, spawner Spawner) *Plugin {
	if spawner == nil {
		spawner = DetachedSpawner{}
	}
	return &Plugin{
		variants: variants,
		scanner:  scanner,
		store:    store,
		spawner:  spawner,
		exists:   pathExists,
		fuzzy:    store.Fuzzy(),
	}
}

func (p *Plugin) DefaultTrigger() string      { return DefaultTrigger }
func (p *Plugin) SupportsFuzzyMatching() bool { return true }
func (p *Plugin) Variants() []*ide.Variant    { return p.variants }

func (p *Plugin) SetFuzzyMatching(enabled bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.fuzzy = enabled
}

func (p *Plugin) FuzzyMatching() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.fuzzy
}

func (p *Plugin) MatchPath() bool { return p.store.MatchPath() }

// SetMatchPath changes whether paths are matched and persists it.
func (p *Plugin) SetMatchPath(value bool) error { return p.store.SetMatchPath(value) }

func (p *Plugin) ConfigWidget() []Widget {
	return []Widget{
		{Type: "checkbox", Property: config.KeyMatchPath, Label: "Match path"},
	}
}

// Projects collects the recent projects of every variant whose path still
// exists. Entries with the same executable, path and name collapse into
// the most recently opened one.
func (p *Plugin) Projects() []ide.Project {
	type key struct{ exe, path, name string }

	seen := make(map[key]int)
	var projects []ide.Project
	for _, v := range p.variants {
		for _, proj := range p.scanner.Projects(v) {
			if !p.exists(proj.Path) {
				continue
			}
			k := key{v.Executable(), proj.Path, proj.Name}
			if i, ok := seen[k]; ok {
				if proj.LastOpened > projects[i].LastOpened {
					projects[i] = proj
				}
				continue
			}
			seen[k] = len(projects)
			projects = append(projects, proj)
		}
	}
	return projects
}

// Items returns the results for query, most recently opened first.
func (p *Plugin) Items(query string) []Item {
	matches := match.Rank(p.Projects(), query, match.Options{
		Fuzzy:     p.FuzzyMatching(),
		MatchPath: p.MatchPath(),
	})

	items := make([]Item, 0, len(matches))
	for _, proj := range matches {
		items = append(items, NewItem(proj, p.spawner))
	}
	return items
}

// Find re-runs query and returns the item with the given ID.
func (p *Plugin) Find(query, id string) (Item, error) {
	for _, it := range p.Items(query) {
		if it.ID == id {
			return it, nil
		}
	}
	return Item{}, ErrItemNotFound
}

// StripTrigger removes a leading trigger from a raw launcher query.
func StripTrigger(query string) string {
	if strings.HasPrefix(query, DefaultTrigger) {
		return strings.TrimPrefix(query, DefaultTrigger)
	}
	return query
}

func pathExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
