package metrics

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/twiced-technology-gmbh/studytrack/internal/clierr"
	"github.com/twiced-technology-gmbh/studytrack/internal/task"
)

func TestFilter_StatusBuckets(t *testing.T) {
	tests := []struct {
		filter StatusFilter
		want   []int
	}{
		{StatusAll, []int{1, 2, 3, 4, 5, 6, 7}},
		{"", []int{1, 2, 3, 4, 5, 6, 7}},
		{StatusActive, []int{1, 3, 4, 6, 7}},
		{StatusPending, []int{1, 4, 7}},
		{StatusInProgress, []int{3, 6}},
		{StatusCompleted, []int{2, 5}},
	}
	for _, tt := range tests {
		t.Run(string(tt.filter), func(t *testing.T) {
			got, err := Filter(sample(), FilterOptions{Status: tt.filter})
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestFilter_ComposesStatusAndPriority(t *testing.T) {
	got, err := Filter(sample(), FilterOptions{Status: StatusActive, Priority: PriorityFilter(task.PriorityCritical)})
	require.NoError(t, err)
	assert.Equal(t, []int{4}, ids(got))

	got, err = Filter(sample(), FilterOptions{Priority: PriorityFilter(task.PriorityLow)})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 6}, ids(got))
}

func TestFilter_Idempotent(t *testing.T) {
	for _, sf := range StatusFilters() {
		for _, pf := range PriorityFilters() {
			opts := FilterOptions{Status: sf, Priority: pf}
			once, err := Filter(sample(), opts)
			require.NoError(t, err)
			twice, err := Filter(once, opts)
			require.NoError(t, err)
			assert.Equal(t, once, twice, "status=%s priority=%s", sf, pf)
		}
	}
}

func TestFilter_ActiveAndCompletedPartitionAll(t *testing.T) {
	all, err := Filter(sample(), FilterOptions{Status: StatusAll})
	require.NoError(t, err)
	active, err := Filter(sample(), FilterOptions{Status: StatusActive})
	require.NoError(t, err)
	completed, err := Filter(sample(), FilterOptions{Status: StatusCompleted})
	require.NoError(t, err)

	seen := map[int]int{}
	for _, tk := range active {
		seen[tk.ID]++
	}
	for _, tk := range completed {
		seen[tk.ID]++
	}
	assert.Len(t, seen, len(all))
	for _, tk := range all {
		assert.Equal(t, 1, seen[tk.ID], "task %d must be in exactly one bucket", tk.ID)
	}
}

func TestFilter_DoesNotMutateInput(t *testing.T) {
	in := sample()
	before := ids(in)

	_, err := TaskList(in, FilterOptions{})
	require.NoError(t, err)
	_, err = Recent(in, FilterOptions{})
	require.NoError(t, err)

	assert.Equal(t, before, ids(in))
}

func TestFilter_RejectsMalformedTasks(t *testing.T) {
	missing := mk(9, "", task.PriorityLow)
	_, err := Filter([]*task.Task{missing}, FilterOptions{})
	var invalid *InvalidInputError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, 9, invalid.TaskID)
	assert.Equal(t, "status", invalid.Field)
	assert.True(t, errors.Is(err, ErrInvalidInput))

	unknown := mk(10, "blocked", task.PriorityLow)
	_, err = Filter([]*task.Task{unknown}, FilterOptions{})
	var unrecognized *UnrecognizedValueError
	require.ErrorAs(t, err, &unrecognized)
	assert.Equal(t, "blocked", unrecognized.Value)
	assert.True(t, errors.Is(err, ErrUnrecognizedValue))

	_, err = Filter([]*task.Task{nil}, FilterOptions{})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestFilter_PriorityCheckedOnlyWhenFiltering(t *testing.T) {
	odd := mk(11, task.StatusPending, "urgent")

	got, err := Filter([]*task.Task{odd}, FilterOptions{})
	require.NoError(t, err)
	assert.Len(t, got, 1)

	_, err = Filter([]*task.Task{odd}, FilterOptions{Priority: PriorityFilter(task.PriorityHigh)})
	assert.ErrorIs(t, err, ErrUnrecognizedValue)
}

func TestFilter_RejectsUnknownFilterValues(t *testing.T) {
	tests := []struct {
		name string
		opts FilterOptions
	}{
		{"status", FilterOptions{Status: "archived"}},
		{"priority", FilterOptions{Priority: "urgent"}},
		{"uppercase status", FilterOptions{Status: "Active"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Filter(sample(), tt.opts)
			require.Error(t, err)
			assert.Nil(t, got)
			assert.Equal(t, clierr.InvalidFilter, clierr.CodeOf(err))

			_, err = TaskList(sample(), tt.opts)
			assert.Equal(t, clierr.InvalidFilter, clierr.CodeOf(err))
			_, err = Recent(sample(), tt.opts)
			assert.Equal(t, clierr.InvalidFilter, clierr.CodeOf(err))
		})
	}
}

func TestFilter_EmptyInput(t *testing.T) {
	got, err := Filter(nil, FilterOptions{Status: StatusActive})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestParseStatusFilter(t *testing.T) {
	f, err := ParseStatusFilter("In-Progress")
	require.NoError(t, err)
	assert.Equal(t, StatusInProgress, f)

	f, err = ParseStatusFilter("")
	require.NoError(t, err)
	assert.Equal(t, StatusAll, f)

	_, err = ParseStatusFilter("done")
	assert.Equal(t, clierr.InvalidFilter, clierr.CodeOf(err))
}

func TestParsePriorityFilter(t *testing.T) {
	f, err := ParsePriorityFilter("CRITICAL")
	require.NoError(t, err)
	assert.Equal(t, PriorityFilter(task.PriorityCritical), f)

	_, err = ParsePriorityFilter("urgent")
	assert.Equal(t, clierr.InvalidFilter, clierr.CodeOf(err))
}
