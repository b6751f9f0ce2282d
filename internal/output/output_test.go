package output

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/twiced-technology-gmbh/studytrack/internal/metrics"
	"github.com/twiced-technology-gmbh/studytrack/internal/task"
)

func init() {
	DisableColor()
}

func TestDetect(t *testing.T) {
	t.Setenv(EnvOutput, "")
	assert.Equal(t, FormatJSON, Detect(true, true, true))
	assert.Equal(t, FormatCompact, Detect(false, true, true))
	assert.Equal(t, FormatTable, Detect(false, false, false))

	t.Setenv(EnvOutput, "json")
	assert.Equal(t, FormatJSON, Detect(false, false, false))
	assert.Equal(t, FormatTable, Detect(false, true, false))
}

func TestRelativeTime(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		at   time.Time
		want string
	}{
		{time.Time{}, "Just now"},
		{now.Add(-30 * time.Minute), "Just now"},
		{now.Add(-5 * time.Hour), "5h ago"},
		{now.Add(-23*time.Hour - 59*time.Minute), "23h ago"},
		{now.Add(-24 * time.Hour), "1d ago"},
		{now.Add(-80 * time.Hour), "3d ago"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, RelativeTime(tt.at, now))
	}
}

func TestFormatMinutesAndProgress(t *testing.T) {
	assert.Equal(t, "45m", FormatMinutes(45))
	assert.Equal(t, "2h", FormatMinutes(120))
	assert.Equal(t, "1h 30m", FormatMinutes(90))

	assert.Equal(t, "[#####.....]", ProgressBar(50, 10))
	assert.Equal(t, "[..........]", ProgressBar(-5, 10))
	assert.Equal(t, "[##########]", ProgressBar(140, 10))
}

func TestLabels_UnknownValuesPassThrough(t *testing.T) {
	assert.Equal(t, "blocked", StatusLabel("blocked"))
	assert.Equal(t, "completed", StatusLabel(task.StatusCompleted))
	assert.Equal(t, "★★", DifficultyStars(task.DifficultyIntermediate))
	assert.Equal(t, "--", DifficultyStars(""))
}

func TestTaskTable(t *testing.T) {
	cats := []task.Category{{ID: "go", Name: "Go", Color: "#00add8"}}
	tasks := []*task.Task{
		{ID: 1, Title: "Generics", Status: task.StatusInProgress, Priority: task.PriorityHigh, Category: "go",
			Difficulty: task.DifficultyAdvanced, Scheduled: time.Date(2026, 3, 16, 9, 0, 0, 0, time.UTC)},
		{ID: 12, Title: "Loose end", Status: task.StatusPending, Priority: task.PriorityLow},
	}

	var buf bytes.Buffer
	TaskTable(&buf, tasks, cats)
	out := buf.String()

	assert.Contains(t, out, "CATEGORY")
	assert.Contains(t, out, "Generics")
	assert.Contains(t, out, "★★★")
	assert.Contains(t, out, "2026-03-16")
	assert.Contains(t, out, task.UncategorizedName)
}

func TestStatsTable(t *testing.T) {
	stats := metrics.Statistics{
		TotalTasks: 10, CompletedTasks: 4, InProgressTasks: 3, PendingTasks: 3,
		CompletionRate:         40,
		PriorityDistribution:   map[task.Priority]int{task.PriorityHigh: 10},
		DifficultyDistribution: map[task.Difficulty]int{},
		CategoryBreakdown: []metrics.CategoryStat{
			{ID: "go", Name: "Go", Completed: 1, Total: 2, Percent: 50},
		},
	}

	var buf bytes.Buffer
	StatsTable(&buf, "Board", stats, metrics.StreakSummary{Current: 3, Longest: 5})
	out := buf.String()

	assert.Contains(t, out, "40.0%")
	assert.Contains(t, out, "Streak: 3 day(s) (longest 5)")
	assert.Contains(t, out, "Go")
	assert.Contains(t, out, "50.0%")
}

func TestBadgeTable(t *testing.T) {
	var buf bytes.Buffer
	BadgeTable(&buf, metrics.EvaluateBadges(metrics.Statistics{CompletedTasks: 5}, 3))
	assert.Contains(t, buf.String(), "3/6 earned")
}

func TestJSONError(t *testing.T) {
	var buf bytes.Buffer
	JSONError(&buf, "TASK_NOT_FOUND", "task not found: #3", map[string]any{"id": 3})

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "TASK_NOT_FOUND", resp.Code)
	assert.EqualValues(t, 3, resp.Details["id"])
}

func TestGroupedOutput(t *testing.T) {
	groups := []metrics.Group{
		{Key: "go", Label: "Go", Total: 2, Completed: 1, Tasks: []*task.Task{
			{ID: 3, Title: "Channels", Status: task.StatusCompleted, Priority: task.PriorityHigh, Category: "go"},
			{ID: 4, Title: "Select", Status: task.StatusPending, Priority: task.PriorityLow, Category: "go"},
		}},
		{Key: "", Label: task.UncategorizedName, Total: 1, Tasks: []*task.Task{
			{ID: 9, Title: "Misc", Status: task.StatusPending, Priority: task.PriorityMedium},
		}},
	}

	var buf bytes.Buffer
	GroupedTable(&buf, groups, []task.Category{{ID: "go", Name: "Go"}})
	out := buf.String()
	assert.Contains(t, out, "Go (1/2 done)")
	assert.Contains(t, out, "Uncategorized (0/1 done)")
	assert.Contains(t, out, "Channels")

	buf.Reset()
	GroupCompact(&buf, groups)
	assert.Equal(t, "## Go 1/2\n"+
		"#3 [completed/high] Channels {go}\n"+
		"#4 [pending/low] Select {go}\n"+
		"## Uncategorized 0/1\n"+
		"#9 [pending/medium] Misc\n", buf.String())
}
