package tui

import "github.com/charmbracelet/lipgloss"

var (
	Primary  = lipgloss.Color("#7C3AED") // Purple
	Muted    = lipgloss.Color("#6B7280") // Gray
	Error    = lipgloss.Color("#EF4444") // Red
	Selected = lipgloss.Color("#4F46E5") // Indigo
)

var (
	AppStyle = lipgloss.NewStyle().
			Padding(0, 1)

	PromptStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Primary)

	ItemStyle = lipgloss.NewStyle().
			PaddingLeft(2)

	SelectedItemStyle = lipgloss.NewStyle().
				PaddingLeft(1).
				Border(lipgloss.NormalBorder(), false, false, false, true).
				BorderForeground(Selected).
				Bold(true)

	SubtextStyle = lipgloss.NewStyle().
			Foreground(Muted)

	IDEStyle = lipgloss.NewStyle().
			Foreground(Primary).
			Italic(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(Error)

	EmptyStyle = lipgloss.NewStyle().
			Foreground(Muted).
			Italic(true).
			PaddingLeft(2)
)
