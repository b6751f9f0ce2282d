// Package config handles study board configuration.
package config

import "github.com/twiced-technology-gmbh/studytrack/internal/task"

const (
	// DefaultDir is the default board directory name.
	DefaultDir = "studytrack"
	// DefaultTasksDir is the default tasks subdirectory name.
	DefaultTasksDir = "tasks"
	// DefaultPriority is the default priority for new tasks.
	DefaultPriority = task.PriorityMedium
	// DefaultCalendarDays is the default agenda window.
	DefaultCalendarDays = 14
	// DefaultLogLevel is the default log level.
	DefaultLogLevel = "warn"
	// DefaultLogEncoding is the default log encoder.
	DefaultLogEncoding = "console"

	// ConfigFileName is the name of the config file within the board directory.
	ConfigFileName = "config.yml"
	// PlannerFileName is the planner database within the board directory.
	PlannerFileName = "planner.db"

	// CurrentVersion is the current config schema version.
	CurrentVersion = 3

	maxCalendarDays = 366
)

// CalendarRanges are the agenda windows offered by the calendar view.
var CalendarRanges = []int{7, 14, 30}

// DefaultCategories seeds a new board.
var DefaultCategories = []task.Category{
	{ID: "general", Name: "General", Color: task.DefaultCategoryColor},
}
