package metrics

import (
	"time"

	"github.com/twiced-technology-gmbh/studytrack/internal/task"
)

var now = time.Date(2026, 3, 15, 14, 30, 0, 0, time.UTC)

func day(offset int) time.Time {
	return now.AddDate(0, 0, offset)
}

func mk(id int, status task.Status, priority task.Priority) *task.Task {
	return &task.Task{
		ID:        id,
		Title:     "task",
		Status:    status,
		Priority:  priority,
		Scheduled: now,
		Created:   now.Add(time.Duration(id) * time.Minute),
	}
}

func completedOn(id int, at time.Time) *task.Task {
	t := mk(id, task.StatusCompleted, task.PriorityMedium)
	t.CompletedAt = &at
	return t
}

func ids(tasks []*task.Task) []int {
	out := make([]int, len(tasks))
	for i, t := range tasks {
		out[i] = t.ID
	}
	return out
}

func sample() []*task.Task {
	return []*task.Task{
		mk(1, task.StatusPending, task.PriorityLow),
		mk(2, task.StatusCompleted, task.PriorityCritical),
		mk(3, task.StatusInProgress, task.PriorityHigh),
		mk(4, task.StatusPending, task.PriorityCritical),
		mk(5, task.StatusCompleted, task.PriorityMedium),
		mk(6, task.StatusInProgress, task.PriorityLow),
		mk(7, task.StatusPending, task.PriorityHigh),
	}
}
