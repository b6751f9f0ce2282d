// Package tui implements the terminal dashboard for a study board.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/twiced-technology-gmbh/studytrack/internal/activity"
	"github.com/twiced-technology-gmbh/studytrack/internal/config"
	"github.com/twiced-technology-gmbh/studytrack/internal/metrics"
	"github.com/twiced-technology-gmbh/studytrack/internal/task"
)

// Layout constants.
const (
	statsWidth    = 34               // right-hand panel
	chromeHeight  = 4                // header, blank line, status bar, blank line
	barWidth      = 20               // completion bar inside the stats panel
	tickInterval  = 30 * time.Second // how often relative times refresh
	minListHeight = 3
)

// Dashboard is the top-level bubbletea model: a filtered task list on the
// left and statistics, streak and badges on the right.
type Dashboard struct {
	cfg      *config.Config
	tasks    []*task.Task
	warnings int

	rows   []*task.Task
	stats  metrics.Statistics
	streak metrics.StreakSummary
	badges []metrics.Badge

	statusIdx   int
	priorityIdx int
	recent      bool
	cursor      int
	scrollOff   int

	width  int
	height int
	err    error
	now    func() time.Time
	keys   keyMap
	logger *zap.Logger
}

// NewDashboard creates a Dashboard for cfg and loads the current tasks.
func NewDashboard(cfg *config.Config) *Dashboard {
	d := &Dashboard{cfg: cfg, now: time.Now, keys: defaultKeys(), logger: zap.NewNop()}
	d.loadTasks()
	return d
}

// SetNow overrides the clock used for streaks and relative times.
func (d *Dashboard) SetNow(fn func() time.Time) {
	d.now = fn
	d.refresh()
}

// SetLogger sets the logger for failures that do not stop the dashboard.
func (d *Dashboard) SetLogger(l *zap.Logger) {
	d.logger = l
}

// Init implements tea.Model.
func (d *Dashboard) Init() tea.Cmd {
	return tickCmd()
}

// Update implements tea.Model.
func (d *Dashboard) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return d.handleKey(msg)
	case tea.WindowSizeMsg:
		d.width = msg.Width
		d.height = msg.Height
		d.clampCursor()
		return d, nil
	case ReloadMsg:
		d.loadTasks()
		return d, nil
	case TickMsg:
		d.refresh()
		return d, tickCmd()
	}
	return d, nil
}

// View implements tea.Model.
func (d *Dashboard) View() string {
	if d.width == 0 {
		return "Loading..."
	}

	header := d.renderHeader()
	listWidth := max(d.width-statsWidth-1, 20) //nolint:mnd // narrowest usable list
	list := d.renderList(listWidth)
	panel := d.renderStats()
	body := lipgloss.JoinHorizontal(lipgloss.Top, list, " ", panel)

	return lipgloss.JoinVertical(lipgloss.Left, header, "", body, "", d.renderStatusBar())
}

// WatchPaths returns the directories that should be watched for changes.
func (d *Dashboard) WatchPaths() []string {
	paths := []string{d.cfg.TasksPath()}
	if d.cfg.Dir() != d.cfg.TasksPath() {
		paths = append(paths, d.cfg.Dir())
	}
	return paths
}

// Selected returns the task under the cursor, or nil when the list is empty.
func (d *Dashboard) Selected() *task.Task {
	if d.cursor < 0 || d.cursor >= len(d.rows) {
		return nil
	}
	return d.rows[d.cursor]
}

func (d *Dashboard) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, d.keys.Quit):
		return d, tea.Quit
	case key.Matches(msg, d.keys.Up):
		d.cursor--
		d.clampCursor()
	case key.Matches(msg, d.keys.Down):
		d.cursor++
		d.clampCursor()
	case key.Matches(msg, d.keys.Status):
		d.statusIdx = (d.statusIdx + 1) % len(metrics.StatusFilters())
		d.cursor = 0
		d.refresh()
	case key.Matches(msg, d.keys.Priority):
		d.priorityIdx = (d.priorityIdx + 1) % len(metrics.PriorityFilters())
		d.cursor = 0
		d.refresh()
	case key.Matches(msg, d.keys.Recent):
		d.recent = !d.recent
		d.cursor = 0
		d.refresh()
	case key.Matches(msg, d.keys.Complete):
		if t := d.Selected(); t != nil {
			next := task.StatusCompleted
			if t.IsCompleted() {
				next = task.StatusPending
			}
			d.moveSelected(next)
		}
	case key.Matches(msg, d.keys.Start):
		d.moveSelected(task.StatusInProgress)
	case key.Matches(msg, d.keys.Reload):
		d.loadTasks()
	}
	return d, nil
}

// moveSelected writes a status change for the selected task and reloads.
func (d *Dashboard) moveSelected(status task.Status) {
	t := d.Selected()
	if t == nil || t.File == "" {
		return
	}
	from := t.Status
	now := d.now()
	if !task.SetStatus(t, status, now) {
		return
	}
	if err := task.Write(t.File, t); err != nil {
		d.loadTasks()
		d.err = fmt.Errorf("updating task #%d: %w", t.ID, err)
		return
	}
	err := activity.Append(d.cfg.Dir(), activity.Entry{
		Timestamp: now,
		Action:    "move",
		TaskID:    t.ID,
		Detail:    string(from) + " -> " + string(status),
	})
	if err != nil {
		d.logger.Warn("activity log write failed", zap.String("action", "move"), zap.Int("task", t.ID), zap.Error(err))
	}
	d.loadTasks()
}

func (d *Dashboard) loadTasks() {
	tasks, warnings, err := task.ReadAllLenient(d.cfg.TasksPath())
	if err != nil {
		d.err = err
		return
	}
	d.tasks = tasks
	d.warnings = len(warnings)
	d.refresh()
}

// refresh recomputes the visible rows and the stats panel from d.tasks.
func (d *Dashboard) refresh() {
	opts := d.filterOptions()

	var rows []*task.Task
	var err error
	if d.recent {
		rows, err = metrics.Recent(d.tasks, opts)
	} else {
		rows, err = metrics.TaskList(d.tasks, opts)
	}
	if err != nil {
		d.setEngineError(err)
		return
	}

	stats, err := metrics.ComputeStatistics(d.tasks, d.cfg.Categories)
	if err != nil {
		d.setEngineError(err)
		return
	}
	streak, err := metrics.Streak(d.tasks, d.now())
	if err != nil {
		d.setEngineError(err)
		return
	}

	d.rows = rows
	d.stats = stats
	d.streak = streak
	d.badges = metrics.EvaluateBadges(stats, streak.Current)
	d.err = nil
	d.clampCursor()
}

func (d *Dashboard) setEngineError(err error) {
	d.err = err
	d.rows = nil
	d.stats = metrics.Statistics{}
	d.streak = metrics.StreakSummary{}
	d.badges = metrics.BadgeCatalog()
	d.cursor = 0
}

func (d *Dashboard) filterOptions() metrics.FilterOptions {
	return metrics.FilterOptions{
		Status:   metrics.StatusFilters()[d.statusIdx],
		Priority: metrics.PriorityFilters()[d.priorityIdx],
	}
}

func (d *Dashboard) clampCursor() {
	if d.cursor >= len(d.rows) {
		d.cursor = len(d.rows) - 1
	}
	if d.cursor < 0 {
		d.cursor = 0
	}

	visible := d.listHeight()
	if d.cursor < d.scrollOff {
		d.scrollOff = d.cursor
	}
	if d.cursor >= d.scrollOff+visible {
		d.scrollOff = d.cursor - visible + 1
	}
	if d.scrollOff < 0 {
		d.scrollOff = 0
	}
}

func (d *Dashboard) listHeight() int {
	if d.height == 0 {
		return len(d.rows) + 1
	}
	return max(d.height-chromeHeight-1, minListHeight)
}

// --- Messages ---

// ReloadMsg is sent by the file watcher to trigger a refresh.
type ReloadMsg struct{}

// TickMsg is sent periodically to refresh relative times and the streak.
type TickMsg struct{}

func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(time.Time) tea.Msg { return TickMsg{} })
}

// --- View rendering ---

func (d *Dashboard) renderHeader() string {
	view := "by priority"
	if d.recent {
		view = fmt.Sprintf("recent %d", metrics.RecentLimit)
	}
	opts := d.filterOptions()
	line := fmt.Sprintf(" %s  status:%s  priority:%s  %s",
		titleStyle.Render(d.cfg.Board.Name), opts.Status, opts.Priority, dimStyle.Render(view))
	return truncate(line, d.width)
}

func (d *Dashboard) renderList(width int) string {
	var b strings.Builder
	b.WriteString(columnHeaderStyle.Render(fmt.Sprintf("Tasks (%d)", len(d.rows))))
	b.WriteString("\n")

	if len(d.rows) == 0 {
		b.WriteString(dimStyle.Render("  no tasks"))
		return lipgloss.NewStyle().Width(width).Render(b.String())
	}

	end := min(d.scrollOff+d.listHeight(), len(d.rows))
	for i := d.scrollOff; i < end; i++ {
		b.WriteString(d.renderRow(d.rows[i], i == d.cursor, width))
		if i < end-1 {
			b.WriteString("\n")
		}
	}
	return lipgloss.NewStyle().Width(width).Render(b.String())
}

func (d *Dashboard) renderRow(t *task.Task, active bool, width int) string {
	marker := "  "
	if active {
		marker = "> "
	}
	right := priorityBadge(t.Priority)
	if d.recent {
		right = dimStyle.Render(relativeTime(t.Created, d.now()))
	}
	cat := task.ResolveCategory(d.cfg.Categories, t.Category)

	title := fmt.Sprintf("#%d %s", t.ID, t.Title)
	title = truncate(title, max(width-lipgloss.Width(right)-18, 8)) //nolint:mnd // room for status + marker
	line := fmt.Sprintf("%s%s %s %s  %s",
		marker, statusBadge(t.Status), title, right,
		lipgloss.NewStyle().Foreground(lipgloss.Color(cat.Color)).Render(cat.Name))
	if active {
		return activeRowStyle.Render(line)
	}
	return line
}

func (d *Dashboard) renderStats() string {
	s := d.stats
	lines := []string{
		columnHeaderStyle.Render("Progress"),
		fmt.Sprintf("Tasks      %d", s.TotalTasks),
		fmt.Sprintf("Completed  %d", s.CompletedTasks),
		fmt.Sprintf("Active     %d (%d in progress)", s.ActiveTasks, s.InProgressTasks),
		fmt.Sprintf("Rate       %.1f%%", s.CompletionRate),
		progressBar(s.CompletionRate, barWidth),
		"",
		fmt.Sprintf("Streak     %d day(s)", d.streak.Current),
		fmt.Sprintf("Longest    %d day(s)", d.streak.Longest),
		"",
		columnHeaderStyle.Render(fmt.Sprintf("Badges %d/%d", metrics.EarnedCount(d.badges), len(d.badges))),
	}
	for _, badge := range d.badges {
		if badge.Earned {
			lines = append(lines, earnedStyle.Render("* "+badge.Title))
		} else {
			lines = append(lines, dimStyle.Render("- "+badge.Title))
		}
	}

	if len(s.CategoryBreakdown) > 0 {
		lines = append(lines, "", columnHeaderStyle.Render("Categories"))
		for _, c := range s.CategoryBreakdown {
			lines = append(lines, fmt.Sprintf("%s %d/%d",
				truncate(c.Name, statsWidth-12), c.Completed, c.Total)) //nolint:mnd // counts column
		}
	}

	return panelStyle.Width(statsWidth - 2).Render(strings.Join(lines, "\n")) //nolint:mnd // border
}

func (d *Dashboard) renderStatusBar() string {
	status := fmt.Sprintf(" %d tasks | s:status p:priority r:recent x:done i:start q:quit", len(d.tasks))
	if d.warnings > 0 {
		status += fmt.Sprintf(" | %d unreadable file(s)", d.warnings)
	}
	status = truncate(status, d.width)

	if d.err != nil {
		errStr := errorStyle.Render(truncate("Error: "+d.err.Error(), d.width))
		return errStr + "\n" + statusBarStyle.Render(status)
	}
	return statusBarStyle.Render(status)
}

func relativeTime(t, now time.Time) string {
	if t.IsZero() {
		return "Just now"
	}
	age := now.Sub(t)
	if age < 0 {
		age = -age
	}
	switch {
	case age < time.Hour:
		return "Just now"
	case age < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(age/time.Hour))
	default:
		return fmt.Sprintf("%dd ago", int(age/(24*time.Hour)))
	}
}

func progressBar(percent float64, width int) string {
	percent = max(0, min(100, percent)) //nolint:mnd // percentage bounds
	filled := int(percent / 100 * float64(width))
	return barStyle.Render(strings.Repeat("█", filled)) + dimStyle.Render(strings.Repeat("░", width-filled))
}

// truncate shortens s to at most n display columns.
func truncate(s string, n int) string {
	if n <= 0 || lipgloss.Width(s) <= n {
		return s
	}
	r := []rune(s)
	for len(r) > 0 && lipgloss.Width(string(r))+3 > n {
		r = r[:len(r)-1]
	}
	return string(r) + "..."
}
