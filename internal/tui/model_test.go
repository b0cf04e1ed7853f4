package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/gurisko/jbp/internal/ide"
	"github.com/gurisko/jbp/internal/launcher"
)

type stubSpawner struct {
	started []string
	err     error
}

func (s *stubSpawner) Start(name string, args ...string) error {
	s.started = append(s.started, name+" "+strings.Join(args, " "))
	return s.err
}

type stubSource struct {
	spawner *stubSpawner
	queries []string
}

func (s *stubSource) Items(query string) []launcher.Item {
	s.queries = append(s.queries, query)
	goland := ide.NewVariant("GoLand", "", nil, "goland", nil)
	all := []ide.Project{
		{Name: "api", Path: "/src/api", LastOpened: 3, IDE: goland},
		{Name: "app", Path: "/src/app", LastOpened: 2, IDE: goland},
		{Name: "web", Path: "/src/web", LastOpened: 1, IDE: goland},
	}
	var items []launcher.Item
	for _, p := range all {
		if strings.Contains(p.Name, query) {
			items = append(items, launcher.NewItem(p, s.spawner))
		}
	}
	return items
}

func press(m Model, msg tea.KeyMsg) Model {
	next, _ := m.Update(msg)
	return next.(Model)
}

func typeText(m Model, s string) Model {
	for _, r := range s {
		m = press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func TestModel_InitialQuery(t *testing.T) {
	src := &stubSource{spawner: &stubSpawner{}}
	m := New(src, "jb ap")

	if len(m.Items()) != 2 {
		t.Fatalf("Expected 2 items for 'ap', got %d", len(m.Items()))
	}
	if src.queries[0] != "ap" {
		t.Errorf("Expected trigger to be stripped, got %q", src.queries[0])
	}
}

func TestModel_TypingRequeries(t *testing.T) {
	src := &stubSource{spawner: &stubSpawner{}}
	m := New(src, "")
	if len(m.Items()) != 3 {
		t.Fatalf("Expected all 3 items, got %d", len(m.Items()))
	}

	m = typeText(m, "we")
	if len(m.Items()) != 1 || m.Items()[0].Text != "web" {
		t.Errorf("Expected only web, got %d items", len(m.Items()))
	}
	if !strings.Contains(m.View(), "/src/web") {
		t.Error("Expected view to show the project path")
	}
}

func TestModel_NavigateAndOpen(t *testing.T) {
	spawner := &stubSpawner{}
	m := New(&stubSource{spawner: spawner}, "")

	m = press(m, tea.KeyMsg{Type: tea.KeyDown})
	m = press(m, tea.KeyMsg{Type: tea.KeyDown})
	m = press(m, tea.KeyMsg{Type: tea.KeyDown})
	if m.Cursor() != 2 {
		t.Errorf("Expected cursor clamped at 2, got %d", m.Cursor())
	}
	m = press(m, tea.KeyMsg{Type: tea.KeyUp})

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(Model)
	if cmd == nil {
		t.Error("Expected quit command after opening")
	}
	if m.Opened == nil || m.Opened.Text != "app" {
		t.Fatalf("Expected app to be opened, got %+v", m.Opened)
	}
	if len(spawner.started) != 1 || spawner.started[0] != "goland /src/app" {
		t.Errorf("unexpected spawn %v", spawner.started)
	}
}

func TestModel_OpenFailureShown(t *testing.T) {
	spawner := &stubSpawner{err: errors.New("exec failed")}
	m := New(&stubSource{spawner: spawner}, "")

	m = press(m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.Opened != nil {
		t.Error("Expected nothing opened")
	}
	if m.Err == nil || !strings.Contains(m.View(), "exec failed") {
		t.Errorf("Expected error in view, got err=%v", m.Err)
	}
}

func TestModel_EmptyResults(t *testing.T) {
	m := New(&stubSource{spawner: &stubSpawner{}}, "zzz")
	if !strings.Contains(m.View(), "no matching projects") {
		t.Error("Expected empty state message")
	}
	m = press(m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.Opened != nil {
		t.Error("Expected enter to do nothing without results")
	}
}
