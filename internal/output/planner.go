package output

import (
	"fmt"
	"io"
	"os"

	"github.com/twiced-technology-gmbh/studytrack/internal/planner"
)

// GoalTable renders goals with a progress bar.
func GoalTable(w io.Writer, goals []planner.Goal) {
	if len(goals) == 0 {
		fmt.Fprintln(os.Stderr, "No goals found.")
		return
	}
	fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("%-8s %-4s %-32s %-12s %s", "ID", "", "TITLE", "TARGET", "PROGRESS")))
	for _, g := range goals {
		mark := "[ ]"
		if g.Completed {
			mark = earnedStyle.Render("[x]")
		}
		target := dimStyle.Render("--")
		if g.TargetDate != nil {
			target = g.TargetDate.String()
		}
		fmt.Fprintf(w, "%-8s %s %s %s %s %3d%%\n",
			shortID(g.ID), padRight(mark, 4), padRight(truncate(g.Title, 32), 32), //nolint:mnd // title width
			padRight(target, 12), ProgressBar(float64(g.Progress), 10), g.Progress) //nolint:mnd // column widths
	}
}

// ResourceTable renders bookmarked resources.
func ResourceTable(w io.Writer, items []planner.Resource) {
	if len(items) == 0 {
		fmt.Fprintln(os.Stderr, "No resources found.")
		return
	}
	for i, r := range items {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "%s %s\n", dimStyle.Render(shortID(r.ID)), titleStyle.Render(r.Title))
		if r.URL != "" {
			fmt.Fprintln(w, "  "+tagStyle.Render(r.URL))
		}
		if r.Notes != "" {
			fmt.Fprintln(w, "  "+r.Notes)
		}
	}
}

// SettingsTable renders settings as on/off switches.
func SettingsTable(w io.Writer, s planner.Settings) {
	for _, key := range planner.SettingKeys() {
		v, _ := s.Get(key)
		state := dimStyle.Render("off")
		if v {
			state = earnedStyle.Render("on")
		}
		fmt.Fprintf(w, "%-18s %s\n", key, state)
	}
}

// shortID returns the first 8 characters of an id, enough to address it.
func shortID(id string) string {
	const n = 8
	if len(id) <= n {
		return id
	}
	return id[:n]
}
