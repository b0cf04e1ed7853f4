package ide

import (
	"errors"
	"path/filepath"
	"testing"
)

func fakeLookPath(installed ...string) LookPathFunc {
	set := make(map[string]bool, len(installed))
	for _, name := range installed {
		set[name] = true
	}
	return func(file string) (string, error) {
		if set[file] {
			return "/usr/bin/" + file, nil
		}
		return "", errors.New("not found")
	}
}

func TestResolve_DropsMissingExecutables(t *testing.T) {
	variants := Resolve(Known, "/icons", fakeLookPath("goland-eap", "rider"))

	if len(variants) != 2 {
		t.Fatalf("Expected 2 variants, got %d", len(variants))
	}
	if variants[0].Name() != "GoLand" || variants[0].Executable() != "goland-eap" {
		t.Errorf("Expected GoLand/goland-eap, got %s/%s", variants[0].Name(), variants[0].Executable())
	}
	if variants[1].Name() != "Rider" {
		t.Errorf("Expected Rider, got %s", variants[1].Name())
	}
	if variants[1].source != RecentSolutions {
		t.Error("Expected Rider to read recentSolutions.xml")
	}
	if variants[0].source != RecentProjects {
		t.Error("Expected GoLand to read recentProjects.xml")
	}
	if got, want := variants[0].Icon(), filepath.Join("/icons", "goland.svg"); got != want {
		t.Errorf("Expected icon %q, got %q", want, got)
	}
}

func TestResolve_RegistrySize(t *testing.T) {
	var all []string
	for _, def := range Known {
		all = append(all, def.Executables[len(def.Executables)-1])
	}

	tests := []struct {
		name      string
		installed []string
		want      int
	}{
		{name: "nothing installed", installed: nil, want: 0},
		{name: "one installed", installed: []string{"pycharm"}, want: 1},
		{name: "everything installed", installed: all, want: len(Known)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(Known, "", fakeLookPath(tt.installed...))
			if len(got) != tt.want {
				t.Errorf("Expected %d variants, got %d", tt.want, len(got))
			}
			for _, v := range got {
				if v.Executable() == "" {
					t.Errorf("%s has no executable", v.Name())
				}
			}
		})
	}
}

func TestResolve_FirstCandidateWins(t *testing.T) {
	variants := Resolve(Known, "", fakeLookPath("intellij-idea-ce", "idea.sh"))

	if len(variants) != 1 {
		t.Fatalf("Expected 1 variant, got %d", len(variants))
	}
	if variants[0].Executable() != "idea.sh" {
		t.Errorf("Expected idea.sh (earlier in candidate order), got %s", variants[0].Executable())
	}
}

func TestNewVariant_CopiesPrefixes(t *testing.T) {
	prefixes := []string{"JetBrains/GoLand"}
	v := NewVariant("GoLand", "", prefixes, "goland", nil)
	prefixes[0] = "mutated"

	if got := v.ConfigDirPrefixes()[0]; got != "JetBrains/GoLand" {
		t.Errorf("Expected variant to keep its own prefixes, got %q", got)
	}
	if v.source != RecentProjects {
		t.Error("Expected nil source to default to RecentProjects")
	}
}
