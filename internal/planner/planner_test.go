package planner

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/twiced-technology-gmbh/studytrack/internal/clierr"
	"github.com/twiced-technology-gmbh/studytrack/internal/date"
	"github.com/twiced-technology-gmbh/studytrack/internal/store"
)

var now = time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

func TestGoals_AddListNewestFirst(t *testing.T) {
	goals := NewGoals(store.NewMemory())

	empty, err := goals.List()
	require.NoError(t, err)
	assert.Empty(t, empty)

	target := date.New(2026, 6, 30)
	first, err := goals.Add("Finish Go course", &target, 10, now)
	require.NoError(t, err)
	second, err := goals.Add("Read SICP", nil, 0, now.Add(time.Hour))
	require.NoError(t, err)

	list, err := goals.List()
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, first.ID, list[1].ID)
	require.NotNil(t, list[1].TargetDate)
	assert.Equal(t, "2026-06-30", list[1].TargetDate.String())
	assert.NotEqual(t, first.ID, second.ID)
}

func TestGoals_AddValidates(t *testing.T) {
	goals := NewGoals(store.NewMemory())

	_, err := goals.Add("  ", nil, 0, now)
	assert.Equal(t, clierr.InvalidInput, clierr.CodeOf(err))

	for _, p := range []int{-1, 101} {
		_, err = goals.Add("x", nil, p, now)
		assert.Equal(t, clierr.InvalidInput, clierr.CodeOf(err), "progress %d", p)
	}
}

func TestGoals_ProgressToggleRemove(t *testing.T) {
	goals := NewGoals(store.NewMemory())
	goal, err := goals.Add("Learn SQL", nil, 0, now)
	require.NoError(t, err)

	updated, err := goals.SetProgress(goal.ID, 60)
	require.NoError(t, err)
	assert.Equal(t, 60, updated.Progress)

	_, err = goals.SetProgress(goal.ID, 120)
	assert.Equal(t, clierr.InvalidInput, clierr.CodeOf(err))

	toggled, err := goals.ToggleComplete(goal.ID[:8])
	require.NoError(t, err)
	assert.True(t, toggled.Completed)
	toggled, err = goals.ToggleComplete(goal.ID)
	require.NoError(t, err)
	assert.False(t, toggled.Completed)

	removed, err := goals.Remove(goal.ID)
	require.NoError(t, err)
	assert.Equal(t, "Learn SQL", removed.Title)

	_, err = goals.Remove(goal.ID)
	assert.Equal(t, clierr.GoalNotFound, clierr.CodeOf(err))
}

func TestGoals_ShortOrAmbiguousPrefix(t *testing.T) {
	kv := store.NewMemory()
	require.NoError(t, kv.Set(GoalsKey, []byte(`[
		{"id":"abcd1111","title":"a","progress":0,"completed":false},
		{"id":"abcd2222","title":"b","progress":0,"completed":false}
	]`)))
	goals := NewGoals(kv)

	_, err := goals.ToggleComplete("abc")
	assert.Equal(t, clierr.GoalNotFound, clierr.CodeOf(err))

	_, err = goals.ToggleComplete("abcd")
	assert.Equal(t, clierr.GoalNotFound, clierr.CodeOf(err))

	g, err := goals.ToggleComplete("abcd2")
	require.NoError(t, err)
	assert.Equal(t, "b", g.Title)
}

func TestGoals_CorruptDocument(t *testing.T) {
	kv := store.NewMemory()
	require.NoError(t, kv.Set(GoalsKey, []byte("{not json")))

	_, err := NewGoals(kv).List()
	assert.ErrorContains(t, err, "decoding learning_goals")
}

func TestResources_AddListRemove(t *testing.T) {
	resources := NewResources(store.NewMemory())

	_, err := resources.Add("", "https://go.dev", "", now)
	assert.Equal(t, clierr.InvalidInput, clierr.CodeOf(err))

	tour, err := resources.Add("Tour of Go", " https://go.dev/tour ", "start here", now)
	require.NoError(t, err)
	assert.Equal(t, "https://go.dev/tour", tour.URL)
	_, err = resources.Add("Effective Go", "", "", now)
	require.NoError(t, err)

	list, err := resources.List()
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Effective Go", list[0].Title)

	_, err = resources.Remove(tour.ID)
	require.NoError(t, err)
	list, err = resources.List()
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = resources.Remove("missing-id")
	assert.Equal(t, clierr.ResourceNotFound, clierr.CodeOf(err))
}

func TestSettings_DefaultsToggleSet(t *testing.T) {
	kv := store.NewMemory()
	settings := NewSettings(kv)

	s, err := settings.Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultSettings(), s)
	assert.True(t, s.Notifications)
	assert.False(t, s.CompactMode)

	s, err = settings.Toggle("compact_mode")
	require.NoError(t, err)
	assert.True(t, s.CompactMode)

	s, err = settings.Set("notifications", false)
	require.NoError(t, err)
	assert.False(t, s.Notifications)

	reloaded, err := NewSettings(kv).Load()
	require.NoError(t, err)
	assert.Equal(t, s, reloaded)

	v, err := reloaded.Get("weekly_summary")
	require.NoError(t, err)
	assert.True(t, v)

	_, err = settings.Toggle("dark_mode")
	assert.Equal(t, clierr.UnknownSetting, clierr.CodeOf(err))
	_, err = reloaded.Get("dark_mode")
	assert.Equal(t, clierr.UnknownSetting, clierr.CodeOf(err))
}

func TestSettings_PartialDocumentKeepsDefaults(t *testing.T) {
	kv := store.NewMemory()
	require.NoError(t, kv.Set(SettingsKey, []byte(`{"focus_reminders":true}`)))

	s, err := NewSettings(kv).Load()
	require.NoError(t, err)
	assert.Equal(t, Settings{Notifications: true, WeeklySummary: true, FocusReminders: true}, s)
}
