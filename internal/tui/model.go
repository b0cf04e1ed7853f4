// Package tui is an interactive picker over launcher results.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/gurisko/jbp/internal/launcher"
)

// Source produces the results for a query.
type Source interface {
	Items(query string) []launcher.Item
}

type Model struct {
	source Source
	input  textinput.Model
	help   help.Model
	keys   KeyMap

	items  []launcher.Item
	cursor int
	height int

	// Opened is the item whose action ran, if any.
	Opened *launcher.Item
	Err    error
}

func New(source Source, query string) Model {
	ti := textinput.New()
	ti.Prompt = "jb › "
	ti.PromptStyle = PromptStyle
	ti.Placeholder = "project name"
	ti.SetValue(query)
	ti.Focus()

	m := Model{
		source: source,
		input:  ti,
		help:   help.New(),
		keys:   DefaultKeyMap(),
		height: 10,
	}
	m.refresh()
	return m
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		// prompt, blank line, help
		m.height = max(1, (msg.Height-3)/2)
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.items)-1 {
				m.cursor++
			}
			return m, nil
		case key.Matches(msg, m.keys.Open):
			if len(m.items) == 0 {
				return m, nil
			}
			it := m.items[m.cursor]
			if err := it.Open(); err != nil {
				m.Err = err
				return m, nil
			}
			m.Opened = &it
			return m, tea.Quit
		}
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before {
		m.refresh()
	}
	return m, cmd
}

func (m *Model) refresh() {
	m.items = m.source.Items(launcher.StripTrigger(m.input.Value()))
	m.cursor = 0
	m.Err = nil
}

// Items returns the results currently shown.
func (m Model) Items() []launcher.Item { return m.items }

func (m Model) Cursor() int { return m.cursor }

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	if len(m.items) == 0 {
		b.WriteString(EmptyStyle.Render("no matching projects"))
		b.WriteString("\n")
	}

	start := 0
	if m.cursor >= m.height {
		start = m.cursor - m.height + 1
	}
	end := min(len(m.items), start+m.height)
	for i := start; i < end; i++ {
		it := m.items[i]
		title := it.Text
		if it.Project.IDE != nil {
			title = fmt.Sprintf("%s  %s", it.Text, IDEStyle.Render(it.Project.IDE.Name()))
		}
		line := title + "\n" + SubtextStyle.Render(it.Subtext)
		if i == m.cursor {
			b.WriteString(SelectedItemStyle.Render(line))
		} else {
			b.WriteString(ItemStyle.Render(line))
		}
		b.WriteString("\n")
	}

	if m.Err != nil {
		b.WriteString(ErrorStyle.Render(m.Err.Error()))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return AppStyle.Render(b.String())
}

// Run shows the picker and returns the item that was opened, if any.
func Run(source Source, query string) (*launcher.Item, error) {
	final, err := tea.NewProgram(New(source, query), tea.WithAltScreen()).Run()
	if err != nil {
		return nil, err
	}
	m := final.(Model)
	return m.Opened, m.Err
}
