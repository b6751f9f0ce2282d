// Package task handles learning tasks, their categories, and the markdown
// files they are stored in.
package task

import (
	"time"
)

// Task represents a learning task parsed from a markdown file.
type Task struct {
	ID           int        `yaml:"id" json:"id"`
	Title        string     `yaml:"title" json:"title"`
	Status       Status     `yaml:"status" json:"status"`
	Priority     Priority   `yaml:"priority" json:"priority"`
	Difficulty   Difficulty `yaml:"difficulty,omitempty" json:"difficulty,omitempty"`
	Category     string     `yaml:"category,omitempty" json:"category,omitempty"`
	Scheduled    time.Time  `yaml:"scheduled" json:"scheduled_date"`
	CompletedAt  *time.Time `yaml:"completed_at,omitempty" json:"completed_at,omitempty"`
	TimeEstimate *int       `yaml:"time_estimate,omitempty" json:"time_estimate,omitempty"` // minutes
	Tags         []string   `yaml:"tags,omitempty" json:"tags,omitempty"`
	Created      time.Time  `yaml:"created" json:"created_at"`
	Updated      time.Time  `yaml:"updated" json:"updated_at"`

	// Description is the markdown content below the frontmatter (not in YAML).
	Description string `yaml:"-" json:"description,omitempty"`

	// File is the path to the task file (not in YAML).
	File string `yaml:"-" json:"file,omitempty"`
}

// IsCompleted reports whether the task is in the completed status.
func (t *Task) IsCompleted() bool {
	return t.Status == StatusCompleted
}

// EstimateMinutes returns the time estimate, or 0 when none is set.
func (t *Task) EstimateMinutes() int {
	if t.TimeEstimate == nil {
		return 0
	}
	return *t.TimeEstimate
}
