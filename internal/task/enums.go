package task

// Status is the lifecycle state of a task. The value set is closed.
type Status string

// Statuses.
const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

// Priority is the urgency of a task. The value set is closed.
type Priority string

// Priorities, most urgent first.
const (
	PriorityCritical Priority = "critical"
	PriorityHigh     Priority = "high"
	PriorityMedium   Priority = "medium"
	PriorityLow      Priority = "low"
)

// Difficulty is an optional skill-level rating. The value set is closed;
// the empty Difficulty means "not rated".
type Difficulty string

// Difficulties, easiest first.
const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
	DifficultyExpert       Difficulty = "expert"
)

// StatusMeta holds display attributes for a Status.
type StatusMeta struct {
	Label string
	Color string
}

// PriorityMeta holds ordering and display attributes for a Priority.
type PriorityMeta struct {
	Rank  int // 0 is the most urgent
	Label string
	Color string
}

// DifficultyMeta holds display attributes for a Difficulty.
type DifficultyMeta struct {
	Level int
	Label string
	Stars string
}

// The tables below are the single source of truth for each enumeration:
// the All* catalogs and Valid are derived from them, so a value without
// metadata cannot exist.
var (
	statusOrder = []Status{StatusPending, StatusInProgress, StatusCompleted}
	statusTable = map[Status]StatusMeta{
		StatusPending:    {Label: "Pending", Color: "#6b7280"},
		StatusInProgress: {Label: "In Progress", Color: "#dc2626"},
		StatusCompleted:  {Label: "Completed", Color: "#059669"},
	}

	priorityOrder = []Priority{PriorityCritical, PriorityHigh, PriorityMedium, PriorityLow}
	priorityTable = map[Priority]PriorityMeta{
		PriorityCritical: {Rank: 0, Label: "Critical", Color: "#7c3aed"},
		PriorityHigh:     {Rank: 1, Label: "High", Color: "#c2410c"},
		PriorityMedium:   {Rank: 2, Label: "Medium", Color: "#a16207"},
		PriorityLow:      {Rank: 3, Label: "Low", Color: "#1d4ed8"},
	}

	difficultyOrder = []Difficulty{DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced, DifficultyExpert}
	difficultyTable = map[Difficulty]DifficultyMeta{
		DifficultyBeginner:     {Level: 1, Label: "Beginner", Stars: "★"},
		DifficultyIntermediate: {Level: 2, Label: "Intermediate", Stars: "★★"},
		DifficultyAdvanced:     {Level: 3, Label: "Advanced", Stars: "★★★"},
		DifficultyExpert:       {Level: 4, Label: "Expert", Stars: "★★★★"},
	}
)

// AllStatuses returns every status in workflow order.
func AllStatuses() []Status {
	return append([]Status(nil), statusOrder...)
}

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	_, ok := statusTable[s]
	return ok
}

// Meta returns the display attributes of s. ok is false for unknown values.
func (s Status) Meta() (meta StatusMeta, ok bool) {
	meta, ok = statusTable[s]
	return meta, ok
}

// AllPriorities returns every priority, most urgent first.
func AllPriorities() []Priority {
	return append([]Priority(nil), priorityOrder...)
}

// Valid reports whether p is a known priority.
func (p Priority) Valid() bool {
	_, ok := priorityTable[p]
	return ok
}

// Meta returns the rank and display attributes of p. ok is false for unknown values.
func (p Priority) Meta() (meta PriorityMeta, ok bool) {
	meta, ok = priorityTable[p]
	return meta, ok
}

// AllDifficulties returns every difficulty, easiest first.
func AllDifficulties() []Difficulty {
	return append([]Difficulty(nil), difficultyOrder...)
}

// Valid reports whether d is a known difficulty. The empty value is not valid;
// callers treating difficulty as optional check for it first.
func (d Difficulty) Valid() bool {
	_, ok := difficultyTable[d]
	return ok
}

// Meta returns the display attributes of d. ok is false for unknown or empty values.
func (d Difficulty) Meta() (meta DifficultyMeta, ok bool) {
	meta, ok = difficultyTable[d]
	return meta, ok
}
