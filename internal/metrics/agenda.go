package metrics

import (
	"fmt"
	"sort"
	"time"

	"github.com/twiced-technology-gmbh/studytrack/internal/date"
	"github.com/twiced-technology-gmbh/studytrack/internal/task"
)

// MaxAgendaDays bounds the agenda window.
const MaxAgendaDays = 366

// AgendaDay holds the tasks scheduled on one UTC day.
type AgendaDay struct {
	Day   date.Date    `json:"day"`
	Tasks []*task.Task `json:"tasks"`
}

// Agenda buckets tasks by scheduled UTC day over days consecutive days
// starting at from's day. Tasks outside the window are ignored; each day's
// tasks are ordered by scheduled time, ties in input order.
func Agenda(tasks []*task.Task, from time.Time, days int) ([]AgendaDay, error) {
	if days < 1 || days > MaxAgendaDays {
		return nil, fmt.Errorf("%w: agenda window must be 1..%d days, got %d", ErrInvalidInput, MaxAgendaDays, days)
	}

	start := date.FromTime(from)
	out := make([]AgendaDay, days)
	for i := range out {
		out[i] = AgendaDay{Day: start.AddDays(i), Tasks: []*task.Task{}}
	}

	for i, t := range tasks {
		if err := checkNotNil(t, i); err != nil {
			return nil, err
		}
		if t.Scheduled.IsZero() {
			return nil, &InvalidInputError{TaskID: t.ID, Index: i, Field: "scheduled_date"}
		}
		offset := date.FromTime(t.Scheduled).DaysSince(start)
		if offset < 0 || offset >= days {
			continue
		}
		out[offset].Tasks = append(out[offset].Tasks, t)
	}

	for _, d := range out {
		sort.SliceStable(d.Tasks, func(i, j int) bool {
			return d.Tasks[i].Scheduled.Before(d.Tasks[j].Scheduled)
		})
	}
	return out, nil
}

// Count returns the number of tasks across all agenda days.
func Count(agenda []AgendaDay) int {
	n := 0
	for _, d := range agenda {
		n += len(d.Tasks)
	}
	return n
}
