package ide

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/antchfx/xmlquery"
)

// RecentSource locates the recent-project entries inside one IDE config
// directory (e.g. ~/.config/JetBrains/GoLand2024.3).
type RecentSource interface {
	// File is the state file read, for diagnostics.
	File(configDir string) string
	// Entries returns every <entry key="..."> element under the
	// recent-projects manager component.
	Entries(configDir string) ([]*xmlquery.Node, error)
}

var (
	// RecentProjects is the layout used by every IDE except Rider.
	RecentProjects RecentSource = recentFile{name: "recentProjects.xml", component: "RecentProjectsManager"}

	// RecentSolutions is Rider's layout: solutions instead of projects.
	RecentSolutions RecentSource = recentFile{name: "recentSolutions.xml", component: "RiderRecentProjectsManager"}
)

type recentFile struct {
	name      string
	component string
}

func (r recentFile) File(configDir string) string {
	return filepath.Join(configDir, "options", r.name)
}

func (r recentFile) Entries(configDir string) ([]*xmlquery.Node, error) {
	f, err := os.Open(r.File(configDir))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	doc, err := xmlquery.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", r.name, err)
	}
	return xmlquery.QueryAll(doc, fmt.Sprintf("//component[@name='%s']//entry[@key]", r.component))
}
