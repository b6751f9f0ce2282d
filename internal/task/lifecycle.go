package task

import (
	"time"
)

// SetStatus moves t to newStatus and keeps CompletedAt consistent with it:
//   - moving to completed stamps CompletedAt with now (an existing stamp is kept
//     when the task was already completed);
//   - moving away from completed clears CompletedAt (reopening).
//
// Updated is set to now when the status changes. It reports whether anything changed.
func SetStatus(t *Task, newStatus Status, now time.Time) bool {
	if t.Status == newStatus {
		if newStatus == StatusCompleted && t.CompletedAt == nil {
			stamp := now
			t.CompletedAt = &stamp
			t.Updated = now
			return true
		}
		return false
	}

	t.Status = newStatus
	if newStatus == StatusCompleted {
		stamp := now
		t.CompletedAt = &stamp
	} else {
		t.CompletedAt = nil
	}
	t.Updated = now
	return true
}
