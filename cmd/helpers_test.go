package cmd

import (
	"errors"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/twiced-technology-gmbh/studytrack/internal/clierr"
	"github.com/twiced-technology-gmbh/studytrack/internal/metrics"
	"github.com/twiced-technology-gmbh/studytrack/internal/task"
)

func TestParseIDs(t *testing.T) {
	ids, err := parseIDs("3, #1,3,,7")
	require.NoError(t, err)
	assert.Equal(t, []int{3, 1, 7}, ids)

	for _, bad := range []string{"", ",", "abc", "0", "-2"} {
		_, err := parseIDs(bad)
		assert.Error(t, err, "input %q", bad)
	}
}

func TestParseNow(t *testing.T) {
	got, err := parseNow("2026-03-15T14:30:00Z")
	require.NoError(t, err)
	assert.True(t, got.Equal(time.Date(2026, 3, 15, 14, 30, 0, 0, time.UTC)))

	got, err = parseNow("2026-03-15")
	require.NoError(t, err)
	assert.True(t, got.Equal(time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)))

	_, err = parseNow("yesterday")
	assert.Error(t, err)
}

func TestSettingKey(t *testing.T) {
	assert.Equal(t, "weekly_summary", settingKey("weeklySummary"))
	assert.Equal(t, "focus_reminders", settingKey("focus-reminders"))
	assert.Equal(t, "compact_mode", settingKey("compact_mode"))
}

func TestParseSwitchAndPercent(t *testing.T) {
	on, err := parseSwitch("on")
	require.NoError(t, err)
	assert.True(t, on)
	off, err := parseSwitch("false")
	require.NoError(t, err)
	assert.False(t, off)
	_, err = parseSwitch("maybe")
	assert.Error(t, err)

	n, err := parsePercent("40%")
	require.NoError(t, err)
	assert.Equal(t, 40, n)
	_, err = parsePercent("lots")
	assert.Error(t, err)
}

func TestTagHelpers(t *testing.T) {
	tags := appendUnique([]string{"go"}, "go", " book ", "")
	assert.Equal(t, []string{"go", "book"}, tags)
	assert.Equal(t, []string{"book"}, removeAll(tags, "go"))
}

func TestEngineError(t *testing.T) {
	var cliErr *clierr.Error

	err := engineError(&metrics.UnrecognizedValueError{TaskID: 4, Field: "status", Value: "archived"})
	require.True(t, errors.As(err, &cliErr))
	assert.Equal(t, clierr.UnrecognizedValue, cliErr.Code)
	assert.Equal(t, 4, cliErr.Details["task_id"])
	assert.Equal(t, "archived", cliErr.Details["value"])

	err = engineError(&metrics.InvalidInputError{TaskID: 2, Field: "priority"})
	require.True(t, errors.As(err, &cliErr))
	assert.Equal(t, clierr.InvalidInput, cliErr.Code)
	assert.Equal(t, "priority", cliErr.Details["field"])

	plain := errors.New("disk full")
	assert.Same(t, plain, engineError(plain))
}

func TestApplyCompletedFlag_BackfillKeepsUpdatedCurrent(t *testing.T) {
	prev := flagNow
	flagNow = "2026-03-20T09:00:00Z"
	t.Cleanup(func() { flagNow = prev })

	created := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	tk := &task.Task{ID: 5, Title: "Proofs", Status: task.StatusPending, Priority: task.PriorityMedium,
		Created: created, Updated: created}

	c := &cobra.Command{}
	c.Flags().String("completed", "", "")
	require.NoError(t, c.Flags().Set("completed", "2026-03-01"))

	changed, err := applyCompletedFlag(c, tk, nil)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, task.StatusCompleted, tk.Status)
	require.NotNil(t, tk.CompletedAt)
	assert.True(t, tk.CompletedAt.Equal(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, tk.Updated.Equal(time.Date(2026, 3, 20, 9, 0, 0, 0, time.UTC)))
	assert.False(t, tk.Updated.Before(tk.Created))
}
