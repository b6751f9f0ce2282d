package metrics

import (
	"sort"
	"time"

	"github.com/twiced-technology-gmbh/studytrack/internal/task"
)

// RecentLimit caps the number of tasks returned by Recent.
const RecentLimit = 10

// SortByPriority returns a copy of tasks ordered from critical to low.
// Tasks of equal priority keep their input order.
func SortByPriority(tasks []*task.Task) ([]*task.Task, error) {
	ranks := make([]int, len(tasks))
	for i, t := range tasks {
		if err := checkPriority(t, i); err != nil {
			return nil, err
		}
		meta, _ := t.Priority.Meta()
		ranks[i] = meta.Rank
	}

	idx := make([]int, len(tasks))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return ranks[idx[a]] < ranks[idx[b]]
	})

	out := make([]*task.Task, len(tasks))
	for i, j := range idx {
		out[i] = tasks[j]
	}
	return out, nil
}

// TaskList filters tasks and orders the result by priority, as the task
// list shows them.
func TaskList(tasks []*task.Task, opts FilterOptions) ([]*task.Task, error) {
	filtered, err := Filter(tasks, opts)
	if err != nil {
		return nil, err
	}
	return SortByPriority(filtered)
}

// Recent filters tasks and returns the RecentLimit most recently created.
// A zero creation time sorts as the Unix epoch. Ties keep input order.
func Recent(tasks []*task.Task, opts FilterOptions) ([]*task.Task, error) {
	filtered, err := Filter(tasks, opts)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return createdKey(filtered[i]).After(createdKey(filtered[j]))
	})

	if len(filtered) > RecentLimit {
		filtered = filtered[:RecentLimit]
	}
	return filtered, nil
}

func createdKey(t *task.Task) time.Time {
	if t.Created.IsZero() {
		return time.Unix(0, 0)
	}
	return t.Created
}
