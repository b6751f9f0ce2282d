package metrics

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/twiced-technology-gmbh/studytrack/internal/clierr"
	"github.com/twiced-technology-gmbh/studytrack/internal/task"
)

func groupKeysOf(groups []Group) []string {
	out := make([]string, len(groups))
	for i, g := range groups {
		out[i] = g.Key
	}
	return out
}

func TestGroupBy_StatusFollowsCatalog(t *testing.T) {
	groups, err := GroupBy(sample(), GroupStatus, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"pending", "in_progress", "completed"}, groupKeysOf(groups))
	assert.Equal(t, []int{1, 4, 7}, ids(groups[0].Tasks))
	assert.Equal(t, 3, groups[0].Pending)
	assert.Equal(t, "In Progress", groups[1].Label)
	assert.Equal(t, 2, groups[2].Completed)
}

func TestGroupBy_PriorityCountsStatuses(t *testing.T) {
	groups, err := GroupBy(sample(), GroupPriority, nil)
	require.NoError(t, err)

	require.Equal(t, []string{"critical", "high", "medium", "low"}, groupKeysOf(groups))
	critical := groups[0]
	assert.Equal(t, 2, critical.Total)
	assert.Equal(t, 1, critical.Completed)
	assert.Equal(t, 1, critical.Pending)
}

func TestGroupBy_CategoryOrder(t *testing.T) {
	cats := []task.Category{{ID: "go", Name: "Go"}, {ID: "math", Name: "Math"}}
	tasks := sample()[:4]
	tasks[0].Category = "ghost"
	tasks[1].Category = "math"
	tasks[2].Category = "go"
	// tasks[3] has no category.

	groups, err := GroupBy(tasks, GroupCategory, cats)
	require.NoError(t, err)

	assert.Equal(t, []string{"go", "math", "ghost", ""}, groupKeysOf(groups))
	assert.Equal(t, "Go", groups[0].Label)
	assert.Equal(t, task.UncategorizedName, groups[2].Label)
	assert.Equal(t, task.UncategorizedName, groups[3].Label)
}

func TestGroupBy_TagsFanOut(t *testing.T) {
	tasks := sample()[:3]
	tasks[0].Tags = []string{"video", "book"}
	tasks[1].Tags = []string{"book"}

	groups, err := GroupBy(tasks, GroupTag, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"book", "video", "(untagged)"}, groupKeysOf(groups))
	assert.Equal(t, []int{1, 2}, ids(groups[0].Tasks))
	assert.Equal(t, []int{3}, ids(groups[2].Tasks))
}

func TestGroupBy_RepeatedTagCountsOnce(t *testing.T) {
	done := mk(1, task.StatusCompleted, task.PriorityLow)
	done.Tags = []string{"go", "go"}

	groups, err := GroupBy([]*task.Task{done}, GroupTag, nil)
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, 1, groups[0].Total)
	assert.Equal(t, 1, groups[0].Completed)
	assert.Equal(t, []int{1}, ids(groups[0].Tasks))
}

func TestGroupBy_DifficultyUnratedLast(t *testing.T) {
	tasks := sample()[:3]
	tasks[0].Difficulty = task.DifficultyExpert
	tasks[2].Difficulty = task.DifficultyBeginner

	groups, err := GroupBy(tasks, GroupDifficulty, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"beginner", "expert", "(unrated)"}, groupKeysOf(groups))
}

func TestGroupBy_Errors(t *testing.T) {
	_, err := GroupBy(sample(), "assignee", nil)
	var cliErr *clierr.Error
	require.True(t, errors.As(err, &cliErr))
	assert.Equal(t, clierr.InvalidFilter, cliErr.Code)

	bad := sample()
	bad[2].Priority = "urgent"
	_, err = GroupBy(bad, GroupStatus, nil)
	assert.ErrorIs(t, err, ErrUnrecognizedValue)

	groups, err := GroupBy(nil, GroupStatus, nil)
	require.NoError(t, err)
	assert.Empty(t, groups)
}
