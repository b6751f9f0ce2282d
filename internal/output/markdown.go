package output

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

const markdownWidth = 80

// RenderMarkdown renders a task description for the terminal. If the
// renderer fails, the raw markdown is returned.
func RenderMarkdown(md string) string {
	style := glamour.WithAutoStyle()
	if !colorEnabled {
		style = glamour.WithStandardStyle("notty")
	}
	r, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(markdownWidth))
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimRight(out, "\n") + "\n"
}
