package metrics

import (
	"github.com/twiced-technology-gmbh/studytrack/internal/task"
)

// Statistics aggregates a task snapshot.
type Statistics struct {
	TotalTasks      int `json:"total_tasks"`
	CompletedTasks  int `json:"completed_tasks"`
	InProgressTasks int `json:"in_progress_tasks"`
	PendingTasks    int `json:"pending_tasks"`
	ActiveTasks     int `json:"active_tasks"` // pending + in progress

	// CompletionRate is a percentage in [0, 100]; 0 for an empty snapshot.
	CompletionRate float64 `json:"completion_rate"`

	// PriorityDistribution always holds every priority.
	PriorityDistribution map[task.Priority]int `json:"priority_distribution"`
	// DifficultyDistribution always holds every difficulty; unrated tasks
	// are counted in UnratedTasks.
	DifficultyDistribution map[task.Difficulty]int `json:"difficulty_distribution"`
	UnratedTasks           int                     `json:"unrated_tasks"`

	CategoryBreakdown []CategoryStat `json:"category_breakdown"`

	EstimatedMinutes int `json:"estimated_minutes"`
	RemainingMinutes int `json:"remaining_minutes"` // estimates of tasks not yet completed
}

// CategoryStat counts the tasks of one category.
type CategoryStat struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Color     string  `json:"color"`
	Completed int     `json:"completed"`
	Total     int     `json:"total"`
	Percent   float64 `json:"percent"`
}

// Percent returns part/total*100, or 0 when total is 0.
func Percent(part, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}

// ComputeStatistics counts tasks by status, priority, difficulty and
// category. Only categories referenced by at least one task appear in the
// breakdown: known categories in the given order, then unresolved ids in
// order of first appearance.
func ComputeStatistics(tasks []*task.Task, categories []task.Category) (Statistics, error) {
	stats := Statistics{
		PriorityDistribution:   make(map[task.Priority]int, len(task.AllPriorities())),
		DifficultyDistribution: make(map[task.Difficulty]int, len(task.AllDifficulties())),
		CategoryBreakdown:      []CategoryStat{},
	}
	for _, p := range task.AllPriorities() {
		stats.PriorityDistribution[p] = 0
	}
	for _, d := range task.AllDifficulties() {
		stats.DifficultyDistribution[d] = 0
	}

	byCategory := make(map[string]*CategoryStat)
	var unresolved []string

	for i, t := range tasks {
		if err := checkTask(t, i); err != nil {
			return Statistics{}, err
		}

		stats.TotalTasks++
		done := t.Status == task.StatusCompleted
		switch t.Status {
		case task.StatusCompleted:
			stats.CompletedTasks++
		case task.StatusInProgress:
			stats.InProgressTasks++
		case task.StatusPending:
			stats.PendingTasks++
		}

		stats.PriorityDistribution[t.Priority]++
		if t.Difficulty == "" {
			stats.UnratedTasks++
		} else {
			stats.DifficultyDistribution[t.Difficulty]++
		}

		stats.EstimatedMinutes += t.EstimateMinutes()
		if !done {
			stats.RemainingMinutes += t.EstimateMinutes()
		}

		cs, ok := byCategory[t.Category]
		if !ok {
			c := task.ResolveCategory(categories, t.Category)
			cs = &CategoryStat{ID: t.Category, Name: c.Name, Color: c.Color}
			byCategory[t.Category] = cs
			if t.Category == "" || task.FindCategory(categories, t.Category) < 0 {
				unresolved = append(unresolved, t.Category)
			}
		}
		cs.Total++
		if done {
			cs.Completed++
		}
	}

	stats.ActiveTasks = stats.PendingTasks + stats.InProgressTasks
	stats.CompletionRate = Percent(stats.CompletedTasks, stats.TotalTasks)

	for _, c := range categories {
		if cs, ok := byCategory[c.ID]; ok && c.ID != "" {
			stats.CategoryBreakdown = append(stats.CategoryBreakdown, finish(cs))
			delete(byCategory, c.ID)
		}
	}
	for _, id := range unresolved {
		stats.CategoryBreakdown = append(stats.CategoryBreakdown, finish(byCategory[id]))
	}

	return stats, nil
}

func finish(cs *CategoryStat) CategoryStat {
	cs.Percent = Percent(cs.Completed, cs.Total)
	return *cs
}

func checkTask(t *task.Task, i int) error {
	if err := checkStatus(t, i); err != nil {
		return err
	}
	if err := checkPriority(t, i); err != nil {
		return err
	}
	return checkDifficulty(t)
}
