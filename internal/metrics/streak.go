package metrics

import (
	"sort"
	"time"

	"github.com/twiced-technology-gmbh/studytrack/internal/date"
	"github.com/twiced-technology-gmbh/studytrack/internal/task"
)

// StreakSummary describes completion streaks over UTC calendar days.
type StreakSummary struct {
	// Current counts consecutive days ending at the latest completion day,
	// whether or not that day is today.
	Current int `json:"current"`
	Longest int `json:"longest"`
	// LastDay is the latest completion day; nil when nothing was completed.
	LastDay *date.Date `json:"last_day,omitempty"`
	// Active is true when LastDay is today or yesterday.
	Active bool `json:"active"`
	// Days is the number of distinct completion days.
	Days int `json:"days"`
}

// ComputeStreak returns the number of consecutive UTC days with at least one
// completion, counted backward from the most recent completion day.
// Completed tasks without a completion time are ignored.
func ComputeStreak(tasks []*task.Task, now time.Time) (int, error) {
	s, err := Streak(tasks, now)
	if err != nil {
		return 0, err
	}
	return s.Current, nil
}

// Streak computes the full streak summary. now only decides Active.
func Streak(tasks []*task.Task, now time.Time) (StreakSummary, error) {
	days, err := completionDays(tasks)
	if err != nil {
		return StreakSummary{}, err
	}
	if len(days) == 0 {
		return StreakSummary{}, nil
	}

	summary := StreakSummary{Current: 1, Longest: 1, Days: len(days)}
	last := days[0]
	summary.LastDay = &last

	run := 1
	current := true
	for i := 1; i < len(days); i++ {
		if days[i-1].DaysSince(days[i]) == 1 {
			run++
		} else {
			current = false
			run = 1
		}
		if current {
			summary.Current = run
		}
		if run > summary.Longest {
			summary.Longest = run
		}
	}

	gap := date.FromTime(now).DaysSince(last)
	summary.Active = gap == 0 || gap == 1
	return summary, nil
}

// completionDays returns the distinct UTC completion days, newest first.
func completionDays(tasks []*task.Task) ([]date.Date, error) {
	seen := make(map[int64]struct{})
	var days []date.Date
	for i, t := range tasks {
		if err := checkStatus(t, i); err != nil {
			return nil, err
		}
		if t.Status != task.StatusCompleted || t.CompletedAt == nil {
			continue
		}
		d := date.FromTime(*t.CompletedAt)
		if _, dup := seen[d.Unix()]; dup {
			continue
		}
		seen[d.Unix()] = struct{}{}
		days = append(days, d)
	}

	sort.Slice(days, func(i, j int) bool { return days[i].After(days[j].Time) })
	return days, nil
}
