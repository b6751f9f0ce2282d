package metrics

import (
	"math/rand"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/twiced-technology-gmbh/studytrack/internal/task"
)

func statusMix(completed, inProgress, pending int) []*task.Task {
	var tasks []*task.Task
	id := 1
	add := func(n int, s task.Status) {
		for range n {
			tasks = append(tasks, mk(id, s, task.PriorityMedium))
			id++
		}
	}
	add(completed, task.StatusCompleted)
	add(inProgress, task.StatusInProgress)
	add(pending, task.StatusPending)
	return tasks
}

func TestComputeStatistics_Counts(t *testing.T) {
	stats, err := ComputeStatistics(statusMix(4, 3, 3), nil)
	require.NoError(t, err)

	assert.Equal(t, 10, stats.TotalTasks)
	assert.Equal(t, 4, stats.CompletedTasks)
	assert.Equal(t, 3, stats.InProgressTasks)
	assert.Equal(t, 3, stats.PendingTasks)
	assert.Equal(t, 6, stats.ActiveTasks)
	assert.InDelta(t, 40.0, stats.CompletionRate, 1e-9)
}

func TestComputeStatistics_Empty(t *testing.T) {
	stats, err := ComputeStatistics(nil, nil)
	require.NoError(t, err)

	assert.Zero(t, stats.TotalTasks)
	assert.Zero(t, stats.CompletionRate)
	assert.Empty(t, stats.CategoryBreakdown)
	for _, p := range task.AllPriorities() {
		count, ok := stats.PriorityDistribution[p]
		assert.True(t, ok, "priority %s missing", p)
		assert.Zero(t, count)
	}
}

func TestComputeStatistics_CompletionRateBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for range 200 {
		c, ip, p := rng.Intn(20), rng.Intn(20), rng.Intn(20)
		stats, err := ComputeStatistics(statusMix(c, ip, p), nil)
		require.NoError(t, err)

		assert.GreaterOrEqual(t, stats.CompletionRate, 0.0)
		assert.LessOrEqual(t, stats.CompletionRate, 100.0)
		assert.Equal(t, stats.TotalTasks, stats.CompletedTasks+stats.InProgressTasks+stats.PendingTasks)
		if stats.TotalTasks == 0 {
			assert.Zero(t, stats.CompletionRate)
		}
	}
}

func TestComputeStatistics_Distributions(t *testing.T) {
	tasks := sample()
	tasks[0].Difficulty = task.DifficultyExpert
	tasks[1].Difficulty = task.DifficultyBeginner
	tasks[2].Difficulty = task.DifficultyExpert
	five, ten := 5, 10
	tasks[1].TimeEstimate = &five // completed
	tasks[3].TimeEstimate = &ten

	stats, err := ComputeStatistics(tasks, nil)
	require.NoError(t, err)

	assert.Equal(t, map[task.Priority]int{
		task.PriorityCritical: 2,
		task.PriorityHigh:     2,
		task.PriorityMedium:   1,
		task.PriorityLow:      2,
	}, stats.PriorityDistribution)
	assert.Equal(t, 2, stats.DifficultyDistribution[task.DifficultyExpert])
	assert.Equal(t, 1, stats.DifficultyDistribution[task.DifficultyBeginner])
	assert.Zero(t, stats.DifficultyDistribution[task.DifficultyAdvanced])
	assert.Equal(t, 4, stats.UnratedTasks)
	assert.Equal(t, 15, stats.EstimatedMinutes)
	assert.Equal(t, 10, stats.RemainingMinutes)
}

func TestComputeStatistics_CategoryBreakdown(t *testing.T) {
	categories := []task.Category{
		{ID: "go", Name: "Go", Color: "#00add8"},
		{ID: "math", Name: "Math"},
		{ID: "art", Name: "Art", Color: "#ff0000"},
	}
	tasks := statusMix(2, 1, 3)
	tasks[0].Category = "math"    // completed
	tasks[1].Category = "ghost"   // completed, unknown id
	tasks[2].Category = "go"      // in progress
	tasks[3].Category = "math"    // pending
	tasks[4].Category = ""        // pending
	tasks[5].Category = "ghost"   // pending

	stats, err := ComputeStatistics(tasks, categories)
	require.NoError(t, err)

	assert.Equal(t, []CategoryStat{
		{ID: "go", Name: "Go", Color: "#00add8", Completed: 0, Total: 1, Percent: 0},
		{ID: "math", Name: "Math", Color: task.DefaultCategoryColor, Completed: 1, Total: 2, Percent: 50},
		{ID: "ghost", Name: task.UncategorizedName, Color: task.DefaultCategoryColor, Completed: 1, Total: 2, Percent: 50},
		{ID: "", Name: task.UncategorizedName, Color: task.DefaultCategoryColor, Completed: 0, Total: 1, Percent: 0},
	}, stats.CategoryBreakdown)
}

func TestComputeStatistics_RejectsMalformedTasks(t *testing.T) {
	tests := []struct {
		name string
		tk   *task.Task
		want error
	}{
		{"nil task", nil, ErrInvalidInput},
		{"missing status", mk(1, "", task.PriorityLow), ErrInvalidInput},
		{"missing priority", mk(2, task.StatusPending, ""), ErrInvalidInput},
		{"unknown status", mk(3, "done", task.PriorityLow), ErrUnrecognizedValue},
		{"unknown priority", mk(4, task.StatusPending, "urgent"), ErrUnrecognizedValue},
		{"unknown difficulty", func() *task.Task {
			tk := mk(5, task.StatusPending, task.PriorityLow)
			tk.Difficulty = "godlike"
			return tk
		}(), ErrUnrecognizedValue},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stats, err := ComputeStatistics([]*task.Task{mk(99, task.StatusPending, task.PriorityLow), tt.tk}, nil)
			assert.ErrorIs(t, err, tt.want)
			assert.Zero(t, stats.TotalTasks, "no partial result")
		})
	}
}

func TestPercent(t *testing.T) {
	assert.Zero(t, Percent(3, 0))
	assert.InDelta(t, 25.0, Percent(1, 4), 1e-9)
	assert.InDelta(t, 100.0, Percent(4, 4), 1e-9)
}

func TestEngine_ConcurrentCallsShareSnapshot(t *testing.T) {
	tasks := append(sample(), completedOn(20, day(0)), completedOn(21, day(-1)))
	want, err := ComputeStatistics(tasks, nil)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			stats, err := ComputeStatistics(tasks, nil)
			assert.NoError(t, err)
			assert.Equal(t, want, stats)

			streak, err := ComputeStreak(tasks, now)
			assert.NoError(t, err)
			assert.Equal(t, 2, streak)

			_, err = TaskList(tasks, FilterOptions{Status: StatusActive})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
}
