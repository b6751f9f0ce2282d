package metrics

import (
	"sort"

	"github.com/twiced-technology-gmbh/studytrack/internal/clierr"
	"github.com/twiced-technology-gmbh/studytrack/internal/task"
)

// Group-by fields.
const (
	GroupStatus     = "status"
	GroupPriority   = "priority"
	GroupCategory   = "category"
	GroupDifficulty = "difficulty"
	GroupTag        = "tag"
)

const (
	unratedKey  = "(unrated)"
	untaggedKey = "(untagged)"
)

// Group is one bucket of a grouped view with its per-status counts.
type Group struct {
	Key        string       `json:"key"`
	Label      string       `json:"label"`
	Total      int          `json:"total"`
	Completed  int          `json:"completed"`
	InProgress int          `json:"in_progress"`
	Pending    int          `json:"pending"`
	Tasks      []*task.Task `json:"tasks"`
}

// GroupByFields lists the accepted group-by fields.
func GroupByFields() []string {
	return []string{GroupStatus, GroupPriority, GroupCategory, GroupDifficulty, GroupTag}
}

// GroupBy buckets tasks by field. Status, priority and difficulty groups
// follow their catalog order, categories follow the configured order with
// unknown ids after them, and tags sort alphabetically. A task with several
// tags appears in each of their groups. Tasks keep their input order inside
// a group.
func GroupBy(tasks []*task.Task, field string, categories []task.Category) ([]Group, error) {
	if !validGroupField(field) {
		return nil, clierr.Newf(clierr.InvalidFilter, "invalid group-by field %q", field).
			WithDetails(map[string]any{"field": field, "allowed": GroupByFields()})
	}

	groups := make(map[string]*Group)
	var firstSeen []string
	for i, t := range tasks {
		if err := checkTask(t, i); err != nil {
			return nil, err
		}
		for _, key := range groupKeys(t, field) {
			g, ok := groups[key]
			if !ok {
				g = &Group{Key: key, Label: groupLabel(key, field, categories), Tasks: []*task.Task{}}
				groups[key] = g
				firstSeen = append(firstSeen, key)
			}
			g.Total++
			switch t.Status {
			case task.StatusCompleted:
				g.Completed++
			case task.StatusInProgress:
				g.InProgress++
			case task.StatusPending:
				g.Pending++
			}
			g.Tasks = append(g.Tasks, t)
		}
	}

	keys := sortGroupKeys(firstSeen, field, categories)
	out := make([]Group, 0, len(keys))
	for _, k := range keys {
		out = append(out, *groups[k])
	}
	return out, nil
}

func validGroupField(field string) bool {
	for _, f := range GroupByFields() {
		if f == field {
			return true
		}
	}
	return false
}

func groupKeys(t *task.Task, field string) []string {
	switch field {
	case GroupStatus:
		return []string{string(t.Status)}
	case GroupPriority:
		return []string{string(t.Priority)}
	case GroupCategory:
		return []string{t.Category}
	case GroupDifficulty:
		if t.Difficulty == "" {
			return []string{unratedKey}
		}
		return []string{string(t.Difficulty)}
	default:
		keys := make([]string, 0, len(t.Tags))
		for _, tag := range t.Tags {
			if indexOf(keys, tag) == len(keys) {
				keys = append(keys, tag)
			}
		}
		if len(keys) == 0 {
			return []string{untaggedKey}
		}
		return keys
	}
}

func groupLabel(key, field string, categories []task.Category) string {
	switch field {
	case GroupStatus:
		if meta, ok := task.Status(key).Meta(); ok {
			return meta.Label
		}
	case GroupPriority:
		if meta, ok := task.Priority(key).Meta(); ok {
			return meta.Label
		}
	case GroupDifficulty:
		if meta, ok := task.Difficulty(key).Meta(); ok {
			return meta.Label
		}
	case GroupCategory:
		return task.ResolveCategory(categories, key).Name
	}
	return key
}

func sortGroupKeys(keys []string, field string, categories []task.Category) []string {
	rank := func(string) int { return 0 }
	switch field {
	case GroupStatus:
		rank = func(k string) int { return indexOf(task.AllStatuses(), task.Status(k)) }
	case GroupPriority:
		rank = func(k string) int { return indexOf(task.AllPriorities(), task.Priority(k)) }
	case GroupDifficulty:
		rank = func(k string) int { return indexOf(task.AllDifficulties(), task.Difficulty(k)) }
	case GroupCategory:
		rank = func(k string) int {
			if k == "" {
				return len(categories)
			}
			if i := task.FindCategory(categories, k); i >= 0 {
				return i
			}
			return len(categories)
		}
	case GroupTag:
		sort.SliceStable(keys, func(i, j int) bool {
			if (keys[i] == untaggedKey) != (keys[j] == untaggedKey) {
				return keys[j] == untaggedKey
			}
			return keys[i] < keys[j]
		})
		return keys
	}
	sort.SliceStable(keys, func(i, j int) bool { return rank(keys[i]) < rank(keys[j]) })
	return keys
}

// indexOf returns the catalog position of v, or len(values) when absent
// so unrated and unknown keys sort last.
func indexOf[T comparable](values []T, v T) int {
	for i, x := range values {
		if x == v {
			return i
		}
	}
	return len(values)
}
