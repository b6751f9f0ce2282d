package metrics

import (
	"strings"

	"github.com/twiced-technology-gmbh/studytrack/internal/clierr"
	"github.com/twiced-technology-gmbh/studytrack/internal/task"
)

// StatusFilter selects tasks by lifecycle bucket.
type StatusFilter string

// Status filters. The empty value behaves as StatusAll.
const (
	StatusAll        StatusFilter = "all"
	StatusActive     StatusFilter = "active" // anything not completed
	StatusPending    StatusFilter = StatusFilter(task.StatusPending)
	StatusInProgress StatusFilter = StatusFilter(task.StatusInProgress)
	StatusCompleted  StatusFilter = StatusFilter(task.StatusCompleted)
)

// PriorityFilter selects tasks by priority. The empty value behaves as PriorityAll.
type PriorityFilter string

// PriorityAll matches every priority.
const PriorityAll PriorityFilter = "all"

// StatusFilters lists the accepted status filter values.
func StatusFilters() []StatusFilter {
	return []StatusFilter{StatusAll, StatusActive, StatusPending, StatusInProgress, StatusCompleted}
}

// PriorityFilters lists the accepted priority filter values.
func PriorityFilters() []PriorityFilter {
	out := []PriorityFilter{PriorityAll}
	for _, p := range task.AllPriorities() {
		out = append(out, PriorityFilter(p))
	}
	return out
}

// ParseStatusFilter converts user input into a StatusFilter.
func ParseStatusFilter(s string) (StatusFilter, error) {
	in := strings.NewReplacer("-", "_", " ", "_").Replace(strings.ToLower(strings.TrimSpace(s)))
	if in == "" {
		return StatusAll, nil
	}
	for _, f := range StatusFilters() {
		if string(f) == in {
			return f, nil
		}
	}
	return "", invalidStatusFilter(s)
}

// ParsePriorityFilter converts user input into a PriorityFilter.
func ParsePriorityFilter(s string) (PriorityFilter, error) {
	in := strings.ToLower(strings.TrimSpace(s))
	if in == "" {
		return PriorityAll, nil
	}
	for _, f := range PriorityFilters() {
		if string(f) == in {
			return f, nil
		}
	}
	return "", invalidPriorityFilter(s)
}

func invalidStatusFilter(s string) *clierr.Error {
	return clierr.Newf(clierr.InvalidFilter, "invalid status filter %q", s).
		WithDetails(map[string]any{
			"filter":  s,
			"allowed": StatusFilters(),
		})
}

func invalidPriorityFilter(s string) *clierr.Error {
	return clierr.Newf(clierr.InvalidFilter, "invalid priority filter %q", s).
		WithDetails(map[string]any{
			"filter":  s,
			"allowed": PriorityFilters(),
		})
}

// FilterOptions defines which tasks to include.
type FilterOptions struct {
	Status   StatusFilter
	Priority PriorityFilter
}

func (o FilterOptions) allStatuses() bool { return o.Status == "" || o.Status == StatusAll }

func (o FilterOptions) allPriorities() bool { return o.Priority == "" || o.Priority == PriorityAll }

// validate rejects filter values outside the catalogs.
func (o FilterOptions) validate() error {
	if o.Status != "" && indexOf(StatusFilters(), o.Status) == len(StatusFilters()) {
		return invalidStatusFilter(string(o.Status))
	}
	if o.Priority != "" && indexOf(PriorityFilters(), o.Priority) == len(PriorityFilters()) {
		return invalidPriorityFilter(string(o.Priority))
	}
	return nil
}

// Filter returns the tasks matching opts in input order. The status filter is
// applied first, then the priority filter. Every task must carry a known
// status; priorities are checked only when a priority filter is set.
// Unknown filter values fail with an INVALID_FILTER error.
func Filter(tasks []*task.Task, opts FilterOptions) ([]*task.Task, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	result := make([]*task.Task, 0, len(tasks))
	for i, t := range tasks {
		if err := checkStatus(t, i); err != nil {
			return nil, err
		}
		if !opts.allPriorities() {
			if err := checkPriority(t, i); err != nil {
				return nil, err
			}
		}
		if matchesStatus(t.Status, opts) && matchesPriority(t.Priority, opts) {
			result = append(result, t)
		}
	}
	return result, nil
}

func matchesStatus(s task.Status, opts FilterOptions) bool {
	switch {
	case opts.allStatuses():
		return true
	case opts.Status == StatusActive:
		return s != task.StatusCompleted
	default:
		return StatusFilter(s) == opts.Status
	}
}

func matchesPriority(p task.Priority, opts FilterOptions) bool {
	return opts.allPriorities() || PriorityFilter(p) == opts.Priority
}
