package output

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/twiced-technology-gmbh/studytrack/internal/task"
)

const timeLayout = "2006-01-02 15:04"

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("244"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	titleStyle  = lipgloss.NewStyle().Bold(true)
	tagStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("110"))
	earnedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#059669")).Bold(true)
)

func resetStyles() {
	headerStyle = lipgloss.NewStyle()
	dimStyle = lipgloss.NewStyle()
	titleStyle = lipgloss.NewStyle()
	tagStyle = lipgloss.NewStyle()
	earnedStyle = lipgloss.NewStyle()
}

// colored renders s in a hex color unless color is disabled.
func colored(s, hex string) string {
	if !colorEnabled || hex == "" {
		return s
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(hex)).Render(s)
}

// StatusLabel renders a status in its palette color. Unknown values are
// shown as-is.
func StatusLabel(s task.Status) string {
	meta, ok := s.Meta()
	if !ok {
		return string(s)
	}
	return colored(string(s), meta.Color)
}

// PriorityLabel renders a priority in its palette color.
func PriorityLabel(p task.Priority) string {
	meta, ok := p.Meta()
	if !ok {
		return string(p)
	}
	return colored(string(p), meta.Color)
}

// DifficultyStars returns the star rating of d, or "--" when unrated.
func DifficultyStars(d task.Difficulty) string {
	meta, ok := d.Meta()
	if !ok {
		return dimStyle.Render("--")
	}
	return meta.Stars
}

// CategoryLabel renders a category name in its color.
func CategoryLabel(c task.Category) string {
	return colored(c.Name, c.Color)
}

// RelativeTime describes how long ago t was: "Just now", "5h ago", "3d ago".
// A zero t reads as "Just now".
func RelativeTime(t, now time.Time) string {
	if t.IsZero() {
		return "Just now"
	}
	d := now.Sub(t)
	if d < 0 {
		d = -d
	}
	switch {
	case d < time.Hour:
		return "Just now"
	case d < 24*time.Hour:
		return strconv.Itoa(int(d/time.Hour)) + "h ago"
	default:
		return strconv.Itoa(int(d/(24*time.Hour))) + "d ago"
	}
}

// FormatMinutes renders minutes as "45m" or "2h 30m".
func FormatMinutes(m int) string {
	const perHour = 60
	if m < perHour {
		return strconv.Itoa(m) + "m"
	}
	if m%perHour == 0 {
		return strconv.Itoa(m/perHour) + "h"
	}
	return strconv.Itoa(m/perHour) + "h " + strconv.Itoa(m%perHour) + "m"
}

// ProgressBar renders a percentage as a fixed-width bar.
func ProgressBar(percent float64, width int) string {
	percent = max(0, min(100, percent)) //nolint:mnd // percentage bounds
	filled := int(percent / 100 * float64(width))
	return "[" + strings.Repeat("#", filled) + strings.Repeat(".", width-filled) + "]"
}

// Messagef prints a simple formatted message line.
func Messagef(w io.Writer, format string, args ...interface{}) {
	fmt.Fprintf(w, format+"\n", args...)
}

// padRight pads s with spaces to the given visible width, accounting for ANSI
// escape codes that are invisible but consume bytes.
func padRight(s string, width int) string {
	visible := lipgloss.Width(s)
	if visible >= width {
		return s
	}
	return s + strings.Repeat(" ", width-visible)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

func timeOrDash(t time.Time) string {
	if t.IsZero() {
		return dimStyle.Render("--")
	}
	return t.Format(timeLayout)
}

func tagsOrDash(tags []string) string {
	if len(tags) == 0 {
		return dimStyle.Render("--")
	}
	return tagStyle.Render(strings.Join(tags, ", "))
}
