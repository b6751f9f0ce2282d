package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/twiced-technology-gmbh/studytrack/internal/task"
)

var (
	columnHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("252")).
				Background(lipgloss.Color("236")).
				Padding(0, 1)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	activeRowStyle = lipgloss.NewStyle().Bold(true).Background(lipgloss.Color("237"))

	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("230"))
	statusBarStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	dimStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	earnedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#059669")).Bold(true)
	barStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#6366f1"))
)

// statusBadge renders a fixed-width status marker in the status color.
func statusBadge(s task.Status) string {
	label := "[ ]"
	switch s {
	case task.StatusInProgress:
		label = "[~]"
	case task.StatusCompleted:
		label = "[x]"
	}
	meta, ok := s.Meta()
	if !ok {
		return label
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(meta.Color)).Render(label)
}

func priorityBadge(p task.Priority) string {
	meta, ok := p.Meta()
	if !ok {
		return string(p)
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(meta.Color)).Render(string(p))
}
