package output

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/twiced-technology-gmbh/studytrack/internal/metrics"
	"github.com/twiced-technology-gmbh/studytrack/internal/planner"
	"github.com/twiced-technology-gmbh/studytrack/internal/task"
)

// TaskCompact renders a list of tasks in one-line-per-record compact format.
func TaskCompact(w io.Writer, tasks []*task.Task) {
	if len(tasks) == 0 {
		fmt.Fprintln(os.Stderr, "No tasks found.")
		return
	}

	for _, t := range tasks {
		fmt.Fprintln(w, formatTaskLine(t))
	}
}

// TaskDetailCompact renders a single task with detail in compact format.
func TaskDetailCompact(w io.Writer, t *task.Task) {
	line := formatTaskLine(t)
	if t.TimeEstimate != nil {
		line += " est:" + FormatMinutes(*t.TimeEstimate)
	}
	fmt.Fprintln(w, line)

	ts := "  created:" + t.Created.Format("2006-01-02") +
		" updated:" + t.Updated.Format("2006-01-02")
	if t.CompletedAt != nil {
		ts += " completed:" + t.CompletedAt.Format("2006-01-02")
	}
	fmt.Fprintln(w, ts)

	if t.Description != "" {
		for _, bodyLine := range strings.Split(strings.TrimRight(t.Description, "\n"), "\n") {
			fmt.Fprintln(w, "  "+bodyLine)
		}
	}
}

// StatsCompact renders statistics in compact format.
func StatsCompact(w io.Writer, boardName string, s metrics.Statistics, streak metrics.StreakSummary) {
	fmt.Fprintf(w, "%s (%d tasks) %.1f%% complete, streak %d\n",
		boardName, s.TotalTasks, s.CompletionRate, streak.Current)
	fmt.Fprintf(w, "  completed: %d, in_progress: %d, pending: %d\n",
		s.CompletedTasks, s.InProgressTasks, s.PendingTasks)

	parts := make([]string, 0, len(s.PriorityDistribution))
	for _, p := range task.AllPriorities() {
		parts = append(parts, string(p)+"="+strconv.Itoa(s.PriorityDistribution[p]))
	}
	fmt.Fprintln(w, "Priority: "+strings.Join(parts, " "))

	for _, c := range s.CategoryBreakdown {
		fmt.Fprintf(w, "  %s: %d/%d\n", c.Name, c.Completed, c.Total)
	}
}

// BadgeCompact renders earned badges on one line each.
func BadgeCompact(w io.Writer, badges []metrics.Badge) {
	for _, b := range badges {
		state := "locked"
		if b.Earned {
			state = "earned"
		}
		fmt.Fprintf(w, "%s [%s] %s\n", b.ID, state, b.Title)
	}
}

// AgendaCompact renders only the days that have tasks.
func AgendaCompact(w io.Writer, agenda []metrics.AgendaDay) {
	for _, d := range agenda {
		for _, t := range d.Tasks {
			fmt.Fprintln(w, d.Day.String()+" "+formatTaskLine(t))
		}
	}
}

// GoalCompact renders goals in compact format.
func GoalCompact(w io.Writer, goals []planner.Goal) {
	for _, g := range goals {
		line := shortID(g.ID) + " " + g.Title + " " + strconv.Itoa(g.Progress) + "%"
		if g.Completed {
			line += " done"
		}
		if g.TargetDate != nil {
			line += " target:" + g.TargetDate.String()
		}
		fmt.Fprintln(w, line)
	}
}

// ResourceCompact renders resources in compact format.
func ResourceCompact(w io.Writer, items []planner.Resource) {
	for _, r := range items {
		line := shortID(r.ID) + " " + r.Title
		if r.URL != "" {
			line += " <" + r.URL + ">"
		}
		fmt.Fprintln(w, line)
	}
}

// formatTaskLine builds the one-line representation of a task.
func formatTaskLine(t *task.Task) string {
	line := "#" + strconv.Itoa(t.ID) + " [" + string(t.Status) + "/" + string(t.Priority) + "] " + t.Title

	if t.Category != "" {
		line += " {" + t.Category + "}"
	}
	if len(t.Tags) > 0 {
		line += " (" + strings.Join(t.Tags, ", ") + ")"
	}
	if !t.Scheduled.IsZero() {
		line += " on:" + t.Scheduled.UTC().Format("2006-01-02")
	}

	return line
}

// GroupCompact renders grouped tasks with a "## label" line per group.
func GroupCompact(w io.Writer, groups []metrics.Group) {
	if len(groups) == 0 {
		fmt.Fprintln(os.Stderr, "No tasks found.")
		return
	}
	for _, g := range groups {
		fmt.Fprintf(w, "## %s %d/%d\n", g.Label, g.Completed, g.Total)
		for _, t := range g.Tasks {
			fmt.Fprintln(w, formatTaskLine(t))
		}
	}
}
