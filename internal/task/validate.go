package task

import (
	"strings"

	"github.com/twiced-technology-gmbh/studytrack/internal/clierr"
)

// normalizeEnum lowercases s and accepts "in-progress" / "in progress"
// spellings for underscore-separated values.
func normalizeEnum(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer("-", "_", " ", "_").Replace(s)
}

// ParseStatus converts user input into a Status.
func ParseStatus(s string) (Status, error) {
	status := Status(normalizeEnum(s))
	if status.Valid() {
		return status, nil
	}
	return "", clierr.Newf(clierr.InvalidStatus, "invalid status %q", s).
		WithDetails(map[string]any{
			"status":  s,
			"allowed": AllStatuses(),
		})
}

// ParsePriority converts user input into a Priority.
func ParsePriority(s string) (Priority, error) {
	priority := Priority(normalizeEnum(s))
	if priority.Valid() {
		return priority, nil
	}
	return "", clierr.Newf(clierr.InvalidPriority, "invalid priority %q", s).
		WithDetails(map[string]any{
			"priority": s,
			"allowed":  AllPriorities(),
		})
}

// ParseDifficulty converts user input into a Difficulty. Empty input yields
// the empty (unrated) Difficulty.
func ParseDifficulty(s string) (Difficulty, error) {
	if strings.TrimSpace(s) == "" {
		return "", nil
	}
	difficulty := Difficulty(normalizeEnum(s))
	if difficulty.Valid() {
		return difficulty, nil
	}
	return "", clierr.Newf(clierr.InvalidDifficulty, "invalid difficulty %q", s).
		WithDetails(map[string]any{
			"difficulty": s,
			"allowed":    AllDifficulties(),
		})
}

// ValidateDate returns a CLIError for invalid date input.
func ValidateDate(field, input string, err error) *clierr.Error {
	return clierr.Newf(clierr.InvalidDate, "invalid %s date: %v", field, err).
		WithDetails(map[string]any{
			"field": field,
			"input": input,
		})
}

// ValidateTaskID returns a CLIError for invalid task ID input.
func ValidateTaskID(input string) *clierr.Error {
	return clierr.Newf(clierr.InvalidTaskID, "invalid task ID %q", input).
		WithDetails(map[string]any{"input": input})
}

// ValidateCategory checks that id names a known category. The empty id is
// always accepted and means "uncategorized".
func ValidateCategory(id string, categories []Category) error {
	if id == "" || FindCategory(categories, id) >= 0 {
		return nil
	}
	ids := make([]string, len(categories))
	for i, c := range categories {
		ids[i] = c.ID
	}
	return clierr.Newf(clierr.CategoryNotFound, "unknown category %q", id).
		WithDetails(map[string]any{
			"category": id,
			"allowed":  ids,
		})
}

// ValidateTimeEstimate rejects negative minute estimates.
func ValidateTimeEstimate(minutes int) error {
	if minutes < 0 {
		return clierr.Newf(clierr.InvalidInput, "time estimate must be >= 0 minutes, got %d", minutes).
			WithDetails(map[string]any{"time_estimate": minutes})
	}
	return nil
}
