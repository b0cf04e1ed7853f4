package ide

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type recentEntry struct {
	key       string
	timestamp string // empty: no projectOpenTimestamp option
	noValue   bool   // option present without a value attribute
}

func recentXML(component string, entries ...recentEntry) string {
	var b strings.Builder
	b.WriteString(`<application>` + "\n")
	fmt.Fprintf(&b, `  <component name="%s">`+"\n", component)
	b.WriteString(`    <option name="additionalInfo">` + "\n      <map>\n")
	for _, e := range entries {
		fmt.Fprintf(&b, `        <entry key="%s">`+"\n", e.key)
		b.WriteString("          <value>\n            <RecentProjectMetaInfo frameTitle=\"x\">\n")
		b.WriteString(`              <option name="activationTimestamp" value="1" />` + "\n")
		switch {
		case e.noValue:
			b.WriteString(`              <option name="projectOpenTimestamp" />` + "\n")
		case e.timestamp != "":
			fmt.Fprintf(&b, `              <option name="projectOpenTimestamp" value="%s" />`+"\n", e.timestamp)
		}
		b.WriteString("            </RecentProjectMetaInfo>\n          </value>\n        </entry>\n")
	}
	b.WriteString("      </map>\n    </option>\n  </component>\n</application>\n")
	return b.String()
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func newTestScanner(t *testing.T) *Scanner {
	t.Helper()
	root := t.TempDir()
	return &Scanner{
		ConfigRoot: filepath.Join(root, "config"),
		Home:       filepath.Join(root, "home"),
	}
}

func goland() *Variant {
	return NewVariant("GoLand", "goland.svg", []string{"JetBrains/GoLand"}, "goland", RecentProjects)
}

func TestScanner_RoundTrip(t *testing.T) {
	s := newTestScanner(t)
	writeFile(t, filepath.Join(s.ConfigRoot, "JetBrains", "GoLand2024.3", "options", "recentProjects.xml"),
		recentXML("RecentProjectsManager", recentEntry{key: "$USER_HOME$/work/app", timestamp: "1700000000"}))

	projects := s.Projects(goland())

	if len(projects) != 1 {
		t.Fatalf("Expected 1 project, got %d", len(projects))
	}
	p := projects[0]
	if want := s.Home + "/work/app"; p.Path != want {
		t.Errorf("Expected path %q, got %q", want, p.Path)
	}
	if p.Name != "app" {
		t.Errorf("Expected name 'app', got %q", p.Name)
	}
	if p.LastOpened != 1700000000 {
		t.Errorf("Expected last_opened 1700000000, got %d", p.LastOpened)
	}
	if p.IDE == nil || p.IDE.Name() != "GoLand" {
		t.Errorf("Expected owning IDE GoLand, got %v", p.IDE)
	}
}

func TestScanner_PicksLexicographicallyLastDir(t *testing.T) {
	s := newTestScanner(t)
	base := filepath.Join(s.ConfigRoot, "JetBrains")
	writeFile(t, filepath.Join(base, "GoLand2023.1", "options", "recentProjects.xml"),
		recentXML("RecentProjectsManager", recentEntry{key: "/old", timestamp: "1"}))
	writeFile(t, filepath.Join(base, "GoLand2024.3", "options", "recentProjects.xml"),
		recentXML("RecentProjectsManager", recentEntry{key: "/new", timestamp: "2"}))
	writeFile(t, filepath.Join(base, "GoLand2024.2", "options", "recentProjects.xml"),
		recentXML("RecentProjectsManager", recentEntry{key: "/middle", timestamp: "3"}))

	dir, ok := s.ConfigDir(goland())
	if !ok {
		t.Fatal("Expected a config dir")
	}
	if filepath.Base(dir) != "GoLand2024.3" {
		t.Errorf("Expected GoLand2024.3, got %s", filepath.Base(dir))
	}

	projects := s.Projects(goland())
	if len(projects) != 1 || projects[0].Path != "/new" {
		t.Errorf("Expected only /new from the newest dir, got %+v", projects)
	}
}

func TestScanner_FirstMatchingPrefixWins(t *testing.T) {
	s := newTestScanner(t)
	base := filepath.Join(s.ConfigRoot, "JetBrains")
	writeFile(t, filepath.Join(base, "IntelliJIdea2022.1", "options", "recentProjects.xml"),
		recentXML("RecentProjectsManager", recentEntry{key: "/ultimate", timestamp: "1"}))
	writeFile(t, filepath.Join(base, "IdeaIC2024.1", "options", "recentProjects.xml"),
		recentXML("RecentProjectsManager", recentEntry{key: "/community", timestamp: "2"}))

	idea := NewVariant("IntelliJ IDEA", "", []string{"JetBrains/IntelliJIdea", "JetBrains/Idea"}, "idea", nil)
	projects := s.Projects(idea)

	if len(projects) != 1 || projects[0].Path != "/ultimate" {
		t.Errorf("Expected only /ultimate, got %+v", projects)
	}

	// Only the second prefix matches.
	if err := os.RemoveAll(filepath.Join(base, "IntelliJIdea2022.1")); err != nil {
		t.Fatal(err)
	}
	projects = s.Projects(idea)
	if len(projects) != 1 || projects[0].Path != "/community" {
		t.Errorf("Expected /community from second prefix, got %+v", projects)
	}
}

func TestScanner_IgnoresFilesMatchingPrefix(t *testing.T) {
	s := newTestScanner(t)
	writeFile(t, filepath.Join(s.ConfigRoot, "JetBrains", "GoLand2099.txt"), "not a dir")

	if _, ok := s.ConfigDir(goland()); ok {
		t.Error("Expected plain files to be ignored")
	}
}

func TestScanner_NoConfigDir(t *testing.T) {
	s := newTestScanner(t)
	if projects := s.Projects(goland()); len(projects) != 0 {
		t.Errorf("Expected no projects, got %d", len(projects))
	}
}

func TestScanner_ModuleFiles(t *testing.T) {
	s := newTestScanner(t)
	project := filepath.Join(s.Home, "work", "app")
	writeFile(t, filepath.Join(project, ".idea", "foo.iml"), "<module/>")
	writeFile(t, filepath.Join(project, ".idea", "app.iml"), "<module/>")
	writeFile(t, filepath.Join(project, ".idea", "workspace.xml"), "<project/>")
	writeFile(t, filepath.Join(s.ConfigRoot, "JetBrains", "GoLand2024.3", "options", "recentProjects.xml"),
		recentXML("RecentProjectsManager", recentEntry{key: "$USER_HOME$/work/app", timestamp: "42"}))

	projects := s.Projects(goland())

	if len(projects) != 2 {
		t.Fatalf("Expected 2 projects (dir + foo module), got %d: %+v", len(projects), projects)
	}
	if projects[0].Name != "app" {
		t.Errorf("Expected first project 'app', got %q", projects[0].Name)
	}
	foo := projects[1]
	if foo.Name != "foo" || foo.Path != project || foo.LastOpened != 42 {
		t.Errorf("Expected foo module at %s/42, got %+v", project, foo)
	}
}

func TestScanner_ModuleFilesLiteralPath(t *testing.T) {
	for _, dir := range []string{"plain", "app[1]", "app[x", "star*", "q?"} {
		t.Run(dir, func(t *testing.T) {
			s := newTestScanner(t)
			writeFile(t, filepath.Join(s.Home, "work", dir, ".idea", "foo.iml"), "<module/>")
			if err := os.MkdirAll(filepath.Join(s.Home, "work", dir, ".idea", "dir.iml"), 0o755); err != nil {
				t.Fatal(err)
			}
			writeFile(t, filepath.Join(s.ConfigRoot, "JetBrains", "GoLand2024.3", "options", "recentProjects.xml"),
				recentXML("RecentProjectsManager", recentEntry{key: "$USER_HOME$/work/" + dir, timestamp: "1700000000"}))

			projects := s.Projects(goland())

			var names []string
			for _, p := range projects {
				names = append(names, p.Name)
			}
			if len(names) != 2 || names[0] != dir || names[1] != "foo" {
				t.Errorf("Expected [%s foo], got %v", dir, names)
			}
		})
	}
}

func TestScanner_MissingTimestamp(t *testing.T) {
	tests := []struct {
		name  string
		entry recentEntry
	}{
		{name: "no option", entry: recentEntry{key: "$USER_HOME$/work/app"}},
		{name: "option without value", entry: recentEntry{key: "$USER_HOME$/work/app", noValue: true}},
		{name: "non-numeric value", entry: recentEntry{key: "$USER_HOME$/work/app", timestamp: "yesterday"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestScanner(t)
			writeFile(t, filepath.Join(s.Home, "work", "app", ".idea", "foo.iml"), "<module/>")
			writeFile(t, filepath.Join(s.ConfigRoot, "JetBrains", "GoLand2024.3", "options", "recentProjects.xml"),
				recentXML("RecentProjectsManager", tt.entry))

			if projects := s.Projects(goland()); len(projects) != 0 {
				t.Errorf("Expected entry and its modules to be dropped, got %+v", projects)
			}
		})
	}
}

func TestScanner_MalformedOrMissingXML(t *testing.T) {
	tests := []struct {
		name  string
		write bool
		body  string
	}{
		{name: "missing file", write: false},
		{name: "truncated xml", write: true, body: `<application><component name="RecentProjectsManager"><entry key="/x">`},
		{name: "garbage", write: true, body: `<<<not xml`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestScanner(t)
			options := filepath.Join(s.ConfigRoot, "JetBrains", "GoLand2024.3", "options")
			if err := os.MkdirAll(options, 0o755); err != nil {
				t.Fatal(err)
			}
			if tt.write {
				writeFile(t, filepath.Join(options, "recentProjects.xml"), tt.body)
			}

			if projects := s.Projects(goland()); len(projects) != 0 {
				t.Errorf("Expected no projects, got %+v", projects)
			}
		})
	}
}

func TestScanner_OtherComponentIgnored(t *testing.T) {
	s := newTestScanner(t)
	writeFile(t, filepath.Join(s.ConfigRoot, "JetBrains", "GoLand2024.3", "options", "recentProjects.xml"),
		recentXML("SomethingElse", recentEntry{key: "/x", timestamp: "1"}))

	if projects := s.Projects(goland()); len(projects) != 0 {
		t.Errorf("Expected entries outside RecentProjectsManager to be ignored, got %+v", projects)
	}
}

func TestScanner_RiderSolutions(t *testing.T) {
	s := newTestScanner(t)
	options := filepath.Join(s.ConfigRoot, "JetBrains", "Rider2024.3", "options")
	writeFile(t, filepath.Join(options, "recentSolutions.xml"),
		recentXML("RiderRecentProjectsManager", recentEntry{key: "/src/Game.sln", timestamp: "7"}))
	// A recentProjects.xml in the same dir must not be read for Rider.
	writeFile(t, filepath.Join(options, "recentProjects.xml"),
		recentXML("RecentProjectsManager", recentEntry{key: "/src/wrong", timestamp: "8"}))

	rider := NewVariant("Rider", "", []string{"JetBrains/Rider"}, "rider", RecentSolutions)
	projects := s.Projects(rider)

	if len(projects) != 1 {
		t.Fatalf("Expected 1 project, got %d", len(projects))
	}
	if projects[0].Name != "Game.sln" || projects[0].LastOpened != 7 {
		t.Errorf("Expected Game.sln/7, got %+v", projects[0])
	}
}
