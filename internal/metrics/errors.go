// Package metrics derives filtered views, streaks, statistics, badges and
// the calendar agenda from a snapshot of tasks. It performs no I/O and
// never mutates its input; every function takes the current time explicitly
// where day boundaries matter.
package metrics

import (
	"errors"
	"fmt"

	"github.com/twiced-technology-gmbh/studytrack/internal/task"
)

// Sentinel errors matched by the typed errors below via errors.Is.
var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrUnrecognizedValue = errors.New("unrecognized value")
)

// InvalidInputError reports a task that is nil or lacks a field the
// computation needs.
type InvalidInputError struct {
	TaskID int
	Index  int // position in the input slice
	Field  string
}

func (e *InvalidInputError) Error() string {
	if e.Field == "task" {
		return fmt.Sprintf("task at position %d is nil", e.Index)
	}
	return fmt.Sprintf("task #%d: missing %s", e.TaskID, e.Field)
}

// Is makes errors.Is(err, ErrInvalidInput) true.
func (e *InvalidInputError) Is(target error) bool { return target == ErrInvalidInput }

// UnrecognizedValueError reports an enumerated field holding a value outside
// its closed set.
type UnrecognizedValueError struct {
	TaskID int
	Field  string
	Value  string
}

func (e *UnrecognizedValueError) Error() string {
	return fmt.Sprintf("task #%d: unrecognized %s %q", e.TaskID, e.Field, e.Value)
}

// Is makes errors.Is(err, ErrUnrecognizedValue) true.
func (e *UnrecognizedValueError) Is(target error) bool { return target == ErrUnrecognizedValue }

func checkNotNil(t *task.Task, i int) error {
	if t == nil {
		return &InvalidInputError{Index: i, Field: "task"}
	}
	return nil
}

func checkStatus(t *task.Task, i int) error {
	if err := checkNotNil(t, i); err != nil {
		return err
	}
	if t.Status == "" {
		return &InvalidInputError{TaskID: t.ID, Index: i, Field: "status"}
	}
	if !t.Status.Valid() {
		return &UnrecognizedValueError{TaskID: t.ID, Field: "status", Value: string(t.Status)}
	}
	return nil
}

func checkPriority(t *task.Task, i int) error {
	if err := checkNotNil(t, i); err != nil {
		return err
	}
	if t.Priority == "" {
		return &InvalidInputError{TaskID: t.ID, Index: i, Field: "priority"}
	}
	if !t.Priority.Valid() {
		return &UnrecognizedValueError{TaskID: t.ID, Field: "priority", Value: string(t.Priority)}
	}
	return nil
}

// checkDifficulty accepts the empty (unrated) difficulty.
func checkDifficulty(t *task.Task) error {
	if t.Difficulty != "" && !t.Difficulty.Valid() {
		return &UnrecognizedValueError{TaskID: t.ID, Field: "difficulty", Value: string(t.Difficulty)}
	}
	return nil
}
