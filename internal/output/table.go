package output

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/twiced-technology-gmbh/studytrack/internal/metrics"
	"github.com/twiced-technology-gmbh/studytrack/internal/task"
)

const maxTitle = 48

// TaskTable renders a list of tasks as a formatted table.
func TaskTable(w io.Writer, tasks []*task.Task, categories []task.Category) {
	if len(tasks) == 0 {
		fmt.Fprintln(os.Stderr, "No tasks found.")
		return
	}

	const pad = 2
	idW, statusW, prioW, titleW, catW, diffW := 4, 8, 10, 7, 10, 8
	for _, t := range tasks {
		idW = max(idW, len(strconv.Itoa(t.ID))+pad)
		statusW = max(statusW, len(t.Status)+pad)
		prioW = max(prioW, len(t.Priority)+pad)
		titleW = max(titleW, min(len([]rune(t.Title))+pad, maxTitle+pad))
		catW = max(catW, min(len(task.ResolveCategory(categories, t.Category).Name)+pad, 24)) //nolint:mnd // max category width
	}

	header := fmt.Sprintf("%-*s %-*s %-*s %-*s %-*s %-*s %s",
		idW, "ID", statusW, "STATUS", prioW, "PRIORITY",
		titleW, "TITLE", catW, "CATEGORY", diffW, "LEVEL", "SCHEDULED")
	fmt.Fprintln(w, headerStyle.Render(header))

	for _, t := range tasks {
		cat := task.ResolveCategory(categories, t.Category)
		row := fmt.Sprintf("%-*d %s %s %s %s %s %s",
			idW, t.ID,
			padRight(StatusLabel(t.Status), statusW),
			padRight(PriorityLabel(t.Priority), prioW),
			padRight(truncate(t.Title, maxTitle), titleW),
			padRight(CategoryLabel(cat), catW),
			padRight(DifficultyStars(t.Difficulty), diffW),
			dateOrDash(t.Scheduled))
		fmt.Fprintln(w, strings.TrimRight(row, " "))
	}
}

// RecentTable renders the most recently created tasks with their age.
func RecentTable(w io.Writer, tasks []*task.Task, now time.Time) {
	if len(tasks) == 0 {
		fmt.Fprintln(os.Stderr, "No tasks found.")
		return
	}
	fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("%-6s %-13s %-10s %-*s %s",
		"ID", "STATUS", "PRIORITY", maxTitle, "TITLE", "CREATED")))
	for _, t := range tasks {
		fmt.Fprintf(w, "%-6d %s %s %s %s\n",
			t.ID,
			padRight(StatusLabel(t.Status), 13), //nolint:mnd // status column width
			padRight(PriorityLabel(t.Priority), 10), //nolint:mnd // priority column width
			padRight(truncate(t.Title, maxTitle), maxTitle),
			RelativeTime(t.Created, now))
	}
}

// TaskDetail renders a single task with full detail. The description is
// rendered as markdown.
func TaskDetail(w io.Writer, t *task.Task, categories []task.Category) {
	titleLine := fmt.Sprintf("Task #%d: %s", t.ID, t.Title)
	fmt.Fprintln(w, titleStyle.Render(titleLine))
	fmt.Fprintln(w, strings.Repeat("─", len([]rune(titleLine))))

	printField(w, "Status", StatusLabel(t.Status))
	printField(w, "Priority", PriorityLabel(t.Priority))
	if meta, ok := t.Difficulty.Meta(); ok {
		printField(w, "Difficulty", meta.Stars+" "+meta.Label)
	} else {
		printField(w, "Difficulty", dimStyle.Render("--"))
	}
	printField(w, "Category", CategoryLabel(task.ResolveCategory(categories, t.Category)))
	printField(w, "Tags", tagsOrDash(t.Tags))
	printField(w, "Scheduled", timeOrDash(t.Scheduled))
	if t.TimeEstimate != nil {
		printField(w, "Estimate", FormatMinutes(*t.TimeEstimate))
	} else {
		printField(w, "Estimate", dimStyle.Render("--"))
	}
	printField(w, "Created", timeOrDash(t.Created))
	printField(w, "Updated", timeOrDash(t.Updated))
	if t.CompletedAt != nil {
		printField(w, "Completed", t.CompletedAt.Format(timeLayout))
	}

	if strings.TrimSpace(t.Description) != "" {
		fmt.Fprintln(w)
		fmt.Fprint(w, RenderMarkdown(t.Description))
	}
}

// StatsTable renders aggregate statistics and streaks as a dashboard.
func StatsTable(w io.Writer, boardName string, s metrics.Statistics, streak metrics.StreakSummary) {
	fmt.Fprintln(w, titleStyle.Render(boardName))
	fmt.Fprintf(w, "Total: %d tasks  Completed: %d  In progress: %d  Pending: %d\n",
		s.TotalTasks, s.CompletedTasks, s.InProgressTasks, s.PendingTasks)
	fmt.Fprintf(w, "Completion: %s %.1f%%\n", ProgressBar(s.CompletionRate, 20), s.CompletionRate) //nolint:mnd // bar width
	fmt.Fprintf(w, "Streak: %d day(s) (longest %d)%s\n", streak.Current, streak.Longest, streakNote(streak))
	if s.EstimatedMinutes > 0 {
		fmt.Fprintf(w, "Estimated: %s  Remaining: %s\n", FormatMinutes(s.EstimatedMinutes), FormatMinutes(s.RemainingMinutes))
	}

	const colW = 16
	fmt.Fprintln(w)
	fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("%-*s %6s", colW, "PRIORITY", "COUNT")))
	for _, p := range task.AllPriorities() {
		fmt.Fprintf(w, "%s %6d\n", padRight(PriorityLabel(p), colW), s.PriorityDistribution[p])
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("%-*s %6s", colW, "DIFFICULTY", "COUNT")))
	for _, d := range task.AllDifficulties() {
		meta, _ := d.Meta()
		fmt.Fprintf(w, "%s %6d\n", padRight(meta.Stars+" "+meta.Label, colW), s.DifficultyDistribution[d])
	}
	if s.UnratedTasks > 0 {
		fmt.Fprintf(w, "%s %6d\n", padRight(dimStyle.Render("unrated"), colW), s.UnratedTasks)
	}

	if len(s.CategoryBreakdown) > 0 {
		const catW = 20
		fmt.Fprintln(w)
		fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("%-*s %9s %7s", catW, "CATEGORY", "DONE", "PCT")))
		for _, c := range s.CategoryBreakdown {
			fmt.Fprintf(w, "%s %4d/%-4d %6.1f%%\n",
				padRight(colored(truncate(c.Name, catW), c.Color), catW), c.Completed, c.Total, c.Percent)
		}
	}
}

func streakNote(s metrics.StreakSummary) string {
	if s.LastDay == nil || s.Active {
		return ""
	}
	return dimStyle.Render(" last completion " + s.LastDay.String())
}

// BadgeTable renders the badge catalog with earned markers.
func BadgeTable(w io.Writer, badges []metrics.Badge) {
	fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("%-4s %-10s %-12s %s", "", "ID", "TITLE", "DESCRIPTION")))
	for _, b := range badges {
		mark := dimStyle.Render("[ ]")
		title := dimStyle.Render(b.Title)
		if b.Earned {
			mark = earnedStyle.Render("[x]")
			title = earnedStyle.Render(b.Title)
		}
		fmt.Fprintf(w, "%s %-10s %s %s\n", padRight(mark, 4), b.ID, padRight(title, 12), b.Description) //nolint:mnd // column widths
	}
	fmt.Fprintf(w, "\n%d/%d earned\n", metrics.EarnedCount(badges), len(badges))
}

// AgendaTable renders an agenda day by day.
func AgendaTable(w io.Writer, agenda []metrics.AgendaDay, now time.Time) {
	today := now.UTC().Format("2006-01-02")
	for _, d := range agenda {
		label := d.Day.Format("Mon 2006-01-02")
		if d.Day.String() == today {
			label += " (today)"
		}
		if len(d.Tasks) == 0 {
			fmt.Fprintln(w, dimStyle.Render(label))
			continue
		}
		fmt.Fprintln(w, titleStyle.Render(label))
		for _, t := range d.Tasks {
			fmt.Fprintf(w, "  %s #%-4d %s %s %s\n",
				t.Scheduled.UTC().Format("15:04"), t.ID,
				padRight(StatusLabel(t.Status), 12), //nolint:mnd // status column width
				padRight(PriorityLabel(t.Priority), 9), //nolint:mnd // priority column width
				truncate(t.Title, maxTitle))
		}
	}
	fmt.Fprintf(w, "\n%d task(s) in %d day(s)\n", metrics.Count(agenda), len(agenda))
}

// CategoryTable renders the configured categories with their task counts.
func CategoryTable(w io.Writer, categories []task.Category, counts map[string]int) {
	if len(categories) == 0 {
		fmt.Fprintln(os.Stderr, "No categories found.")
		return
	}
	fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("%-20s %-24s %-8s %5s", "ID", "NAME", "COLOR", "TASKS")))
	for _, c := range categories {
		fmt.Fprintf(w, "%-20s %s %-8s %5d\n", c.ID, padRight(CategoryLabel(c), 24), c.Color, counts[c.ID]) //nolint:mnd // name width
	}
}

func printField(w io.Writer, label, value string) {
	fmt.Fprintf(w, "  %-12s %s\n", label+":", value)
}

func dateOrDash(t time.Time) string {
	if t.IsZero() {
		return dimStyle.Render("--")
	}
	return t.UTC().Format("2006-01-02")
}

// GroupedTable renders one task table per group, each under a heading with
// the group's completion counts.
func GroupedTable(w io.Writer, groups []metrics.Group, categories []task.Category) {
	if len(groups) == 0 {
		fmt.Fprintln(os.Stderr, "No tasks found.")
		return
	}
	for i, g := range groups {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("%s (%d/%d done)", g.Label, g.Completed, g.Total)))
		TaskTable(w, g.Tasks, categories)
	}
}
