package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/twiced-technology-gmbh/studytrack/internal/task"
)

func TestSortByPriority_StableByRank(t *testing.T) {
	got, err := SortByPriority(sample())
	require.NoError(t, err)
	assert.Equal(t, []int{2, 4, 3, 7, 5, 1, 6}, ids(got))
}

func TestSortByPriority_RejectsUnknownPriority(t *testing.T) {
	_, err := SortByPriority([]*task.Task{mk(1, task.StatusPending, "")})
	var invalid *InvalidInputError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "priority", invalid.Field)

	_, err = SortByPriority([]*task.Task{mk(2, task.StatusPending, "urgent")})
	assert.ErrorIs(t, err, ErrUnrecognizedValue)
}

func TestTaskList_FiltersThenSorts(t *testing.T) {
	got, err := TaskList(sample(), FilterOptions{Status: StatusActive})
	require.NoError(t, err)
	assert.Equal(t, []int{4, 3, 7, 1, 6}, ids(got))
}

func TestRecent_NewestFirstLimited(t *testing.T) {
	var tasks []*task.Task
	for i := 1; i <= 12; i++ {
		tasks = append(tasks, mk(i, task.StatusPending, task.PriorityLow))
	}
	undated := mk(13, task.StatusPending, task.PriorityLow)
	undated.Created = time.Time{}
	tasks = append([]*task.Task{undated}, tasks...)

	got, err := Recent(tasks, FilterOptions{})
	require.NoError(t, err)
	assert.Len(t, got, RecentLimit)
	assert.Equal(t, []int{12, 11, 10, 9, 8, 7, 6, 5, 4, 3}, ids(got))
}

func TestRecent_UndatedSortLast(t *testing.T) {
	undated := mk(1, task.StatusPending, task.PriorityLow)
	undated.Created = time.Time{}
	dated := mk(2, task.StatusPending, task.PriorityLow)

	got, err := Recent([]*task.Task{undated, dated}, FilterOptions{})
	require.NoError(t, err)
	assert.Equal(t, []int{2, 1}, ids(got))
}

func TestRecent_TiesKeepInputOrder(t *testing.T) {
	a := mk(1, task.StatusPending, task.PriorityLow)
	b := mk(2, task.StatusPending, task.PriorityLow)
	b.Created = a.Created

	got, err := Recent([]*task.Task{b, a}, FilterOptions{})
	require.NoError(t, err)
	assert.Equal(t, []int{2, 1}, ids(got))
}
