package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/twiced-technology-gmbh/studytrack/internal/activity"
	"github.com/twiced-technology-gmbh/studytrack/internal/config"
	"github.com/twiced-technology-gmbh/studytrack/internal/task"
)

var fixedNow = time.Date(2026, 3, 15, 14, 30, 0, 0, time.UTC)

func setupBoard(t *testing.T, tasks ...*task.Task) *config.Config {
	t.Helper()
	cfg, err := config.Init(filepath.Join(t.TempDir(), config.DefaultDir), "Study")
	require.NoError(t, err)
	for _, tk := range tasks {
		path := filepath.Join(cfg.TasksPath(), task.GenerateFilename(tk.ID, task.GenerateSlug(tk.Title)))
		require.NoError(t, task.Write(path, tk))
	}
	return cfg
}

func newTask(id int, title string, status task.Status, priority task.Priority) *task.Task {
	created := fixedNow.Add(-time.Duration(id) * time.Hour)
	tk := &task.Task{
		ID:       id,
		Title:    title,
		Status:   status,
		Priority: priority,
		Category: "general",
		Created:  created,
		Updated:  created,
	}
	if status == task.StatusCompleted {
		done := fixedNow.Add(-time.Hour)
		tk.CompletedAt = &done
	}
	return tk
}

func press(d *Dashboard, k string) {
	d.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)})
}

func rowIDs(d *Dashboard) []int {
	out := make([]int, len(d.rows))
	for i, tk := range d.rows {
		out[i] = tk.ID
	}
	return out
}

func newDashboard(t *testing.T, tasks ...*task.Task) *Dashboard {
	t.Helper()
	d := NewDashboard(setupBoard(t, tasks...))
	d.SetNow(func() time.Time { return fixedNow })
	return d
}

func TestDashboard_LoadsSortedByPriority(t *testing.T) {
	d := newDashboard(t,
		newTask(1, "Read chapter", task.StatusPending, task.PriorityLow),
		newTask(2, "Practice sets", task.StatusInProgress, task.PriorityCritical),
		newTask(3, "Flashcards", task.StatusCompleted, task.PriorityHigh),
	)

	require.NoError(t, d.err)
	assert.Equal(t, []int{2, 3, 1}, rowIDs(d))
	assert.Equal(t, 3, d.stats.TotalTasks)
	assert.Equal(t, 1, d.streak.Current)
	require.NotNil(t, d.Selected())
	assert.Equal(t, 2, d.Selected().ID)
}

func TestDashboard_CyclesFilters(t *testing.T) {
	d := newDashboard(t,
		newTask(1, "Read chapter", task.StatusPending, task.PriorityLow),
		newTask(2, "Practice sets", task.StatusInProgress, task.PriorityCritical),
		newTask(3, "Flashcards", task.StatusCompleted, task.PriorityHigh),
	)

	press(d, "s") // active
	assert.Equal(t, []int{2, 1}, rowIDs(d))
	press(d, "s") // pending
	assert.Equal(t, []int{1}, rowIDs(d))

	press(d, "s")
	press(d, "s")
	press(d, "s") // back to all
	assert.Equal(t, []int{2, 3, 1}, rowIDs(d))

	press(d, "p") // critical
	assert.Equal(t, []int{2}, rowIDs(d))
	press(d, "p") // high
	assert.Equal(t, []int{3}, rowIDs(d))
}

func TestDashboard_RecentView(t *testing.T) {
	d := newDashboard(t,
		newTask(1, "Read chapter", task.StatusPending, task.PriorityLow),
		newTask(2, "Practice sets", task.StatusInProgress, task.PriorityCritical),
		newTask(3, "Flashcards", task.StatusCompleted, task.PriorityHigh),
	)

	press(d, "r")
	assert.Equal(t, []int{1, 2, 3}, rowIDs(d), "newest created first")
}

func TestDashboard_CompleteSelectedTask(t *testing.T) {
	d := newDashboard(t,
		newTask(1, "Read chapter", task.StatusPending, task.PriorityLow),
		newTask(2, "Practice sets", task.StatusInProgress, task.PriorityCritical),
	)

	press(d, "x")

	require.NoError(t, d.err)
	path, err := task.FindByID(d.cfg.TasksPath(), 2)
	require.NoError(t, err)
	saved, err := task.Read(path)
	require.NoError(t, err)
	assert.Equal(t, task.StatusCompleted, saved.Status)
	require.NotNil(t, saved.CompletedAt)
	assert.True(t, saved.CompletedAt.Equal(fixedNow))
	assert.Equal(t, 1, d.stats.CompletedTasks)

	entries, err := activity.Read(d.cfg.Dir(), 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "move", entries[0].Action)
	assert.Equal(t, 2, entries[0].TaskID)

	press(d, "x") // reopen
	saved, err = task.Read(path)
	require.NoError(t, err)
	assert.Equal(t, task.StatusPending, saved.Status)
	assert.Nil(t, saved.CompletedAt)
}

func TestDashboard_ActivityLogFailureIsLogged(t *testing.T) {
	d := newDashboard(t,
		newTask(1, "Read chapter", task.StatusPending, task.PriorityLow),
	)
	core, logs := observer.New(zapcore.WarnLevel)
	d.SetLogger(zap.New(core))
	require.NoError(t, os.Mkdir(filepath.Join(d.cfg.Dir(), activity.FileName), 0o755))

	press(d, "x")

	require.NoError(t, d.err)
	path, err := task.FindByID(d.cfg.TasksPath(), 1)
	require.NoError(t, err)
	saved, err := task.Read(path)
	require.NoError(t, err)
	assert.Equal(t, task.StatusCompleted, saved.Status)

	entries := logs.FilterMessage("activity log write failed").All()
	require.Len(t, entries, 1)
	assert.Equal(t, int64(1), entries[0].ContextMap()["task"])
}

func TestDashboard_CursorStaysInBounds(t *testing.T) {
	d := newDashboard(t,
		newTask(1, "Read chapter", task.StatusPending, task.PriorityLow),
		newTask(2, "Practice sets", task.StatusPending, task.PriorityHigh),
	)

	press(d, "k")
	assert.Equal(t, 0, d.cursor)
	press(d, "j")
	press(d, "j")
	press(d, "j")
	assert.Equal(t, 1, d.cursor)
}

func TestDashboard_MalformedTaskShowsError(t *testing.T) {
	d := newDashboard(t,
		newTask(1, "Read chapter", task.StatusPending, task.PriorityLow),
		newTask(2, "Broken", task.Status("archived"), task.PriorityHigh),
	)

	require.Error(t, d.err)
	assert.Empty(t, d.rows)
	assert.Nil(t, d.Selected())

	d.Update(tea.WindowSizeMsg{Width: 120, Height: 30})
	assert.Contains(t, d.View(), "Error:")
}

func TestDashboard_View(t *testing.T) {
	d := newDashboard(t,
		newTask(1, "Read chapter", task.StatusCompleted, task.PriorityLow),
	)
	assert.Equal(t, "Loading...", d.View())

	d.Update(tea.WindowSizeMsg{Width: 120, Height: 30})
	out := d.View()
	for _, want := range []string{"Study", "Tasks (1)", "Read chapter", "Badges 1/6", "First Win", "General"} {
		assert.True(t, strings.Contains(out, want), "view missing %q", want)
	}
}

func TestDashboard_WatchPaths(t *testing.T) {
	d := newDashboard(t)
	assert.Equal(t, []string{d.cfg.TasksPath(), d.cfg.Dir()}, d.WatchPaths())
}

func TestRelativeTime(t *testing.T) {
	assert.Equal(t, "Just now", relativeTime(fixedNow.Add(-30*time.Minute), fixedNow))
	assert.Equal(t, "5h ago", relativeTime(fixedNow.Add(-5*time.Hour), fixedNow))
	assert.Equal(t, "2d ago", relativeTime(fixedNow.Add(-50*time.Hour), fixedNow))
}
