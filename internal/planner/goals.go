package planner

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/twiced-technology-gmbh/studytrack/internal/clierr"
	"github.com/twiced-technology-gmbh/studytrack/internal/date"
	"github.com/twiced-technology-gmbh/studytrack/internal/store"
)

// Goal is a learning target with manual progress tracking.
type Goal struct {
	ID         string     `json:"id"`
	Title      string     `json:"title"`
	TargetDate *date.Date `json:"target_date,omitempty"`
	Progress   int        `json:"progress"` // percent, 0..100
	Completed  bool       `json:"completed"`
	Created    time.Time  `json:"created"`
}

// Goals manages the goal collection.
type Goals struct {
	kv store.KV
}

// NewGoals returns a Goals backed by kv.
func NewGoals(kv store.KV) *Goals {
	return &Goals{kv: kv}
}

// List returns all goals, newest first.
func (g *Goals) List() ([]Goal, error) {
	var goals []Goal
	if err := load(g.kv, GoalsKey, &goals); err != nil {
		return nil, err
	}
	return goals, nil
}

// Add creates a goal and puts it first in the list.
func (g *Goals) Add(title string, target *date.Date, progress int, now time.Time) (Goal, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return Goal{}, clierr.New(clierr.InvalidInput, "goal title is required")
	}
	if err := validateProgress(progress); err != nil {
		return Goal{}, err
	}

	goals, err := g.List()
	if err != nil {
		return Goal{}, err
	}
	goal := Goal{
		ID:         uuid.NewString(),
		Title:      title,
		TargetDate: target,
		Progress:   progress,
		Created:    now,
	}
	if err := save(g.kv, GoalsKey, append([]Goal{goal}, goals...)); err != nil {
		return Goal{}, err
	}
	return goal, nil
}

// SetProgress updates the progress of the goal identified by ref (id or
// unique id prefix).
func (g *Goals) SetProgress(ref string, progress int) (Goal, error) {
	if err := validateProgress(progress); err != nil {
		return Goal{}, err
	}
	return g.update(ref, func(goal *Goal) { goal.Progress = progress })
}

// ToggleComplete flips the completed flag of the goal identified by ref.
func (g *Goals) ToggleComplete(ref string) (Goal, error) {
	return g.update(ref, func(goal *Goal) { goal.Completed = !goal.Completed })
}

// Remove deletes the goal identified by ref and returns it.
func (g *Goals) Remove(ref string) (Goal, error) {
	goals, i, err := g.find(ref)
	if err != nil {
		return Goal{}, err
	}
	removed := goals[i]
	goals = append(goals[:i], goals[i+1:]...)
	if err := save(g.kv, GoalsKey, goals); err != nil {
		return Goal{}, err
	}
	return removed, nil
}

func (g *Goals) update(ref string, fn func(*Goal)) (Goal, error) {
	goals, i, err := g.find(ref)
	if err != nil {
		return Goal{}, err
	}
	fn(&goals[i])
	if err := save(g.kv, GoalsKey, goals); err != nil {
		return Goal{}, err
	}
	return goals[i], nil
}

func (g *Goals) find(ref string) ([]Goal, int, error) {
	goals, err := g.List()
	if err != nil {
		return nil, -1, err
	}
	ids := make([]string, len(goals))
	for i, goal := range goals {
		ids[i] = goal.ID
	}
	i, err := matchID(ids, ref, func() *clierr.Error {
		return clierr.Newf(clierr.GoalNotFound, "goal not found: %s", ref).
			WithDetails(map[string]any{"id": ref})
	})
	return goals, i, err
}

func validateProgress(progress int) error {
	if progress < 0 || progress > 100 {
		return clierr.Newf(clierr.InvalidInput, "progress must be between 0 and 100, got %d", progress).
			WithDetails(map[string]any{"progress": progress})
	}
	return nil
}
