package engine

import (
	"github.com/casetrack/casetrack-api/internal/models"
)

// Change is a requested transition input for Apply. Exactly one of the
// three concrete types is passed per mutation:
//
//   - Cancel: explicit cancellation, always wins and is terminal.
//   - ProgressChange: a progress-driven update, status derived from the value.
//   - FieldChange: a field-only edit; status/progress pass through unless
//     the caller explicitly supplies them (manual override).
type Change interface {
	isChange()
}

type Cancel struct{}

type ProgressChange struct {
	Progress int
}

type FieldChange struct {
	Status   *models.GoalStatus
	Progress *int
}

func (Cancel) isChange()         {}
func (ProgressChange) isChange() {}
func (FieldChange) isChange()    {}

// Apply computes the resulting (status, progress) for a goal in the given
// current state. It never rejects a transition; it always produces some
// resulting state. Precedence: cancel, then progress derivation, then
// pass-through.
func Apply(status models.GoalStatus, progress int, ch Change) (models.GoalStatus, int) {
	switch c := ch.(type) {
	case Cancel:
		// Progress is left at its current value, not reset.
		return models.GoalCancelled, progress

	case ProgressChange:
		// A cancelled goal never comes back via progress alone.
		if status == models.GoalCancelled {
			return models.GoalCancelled, c.Progress
		}
		switch {
		case c.Progress == 100:
			return models.GoalCompleted, c.Progress
		case c.Progress > 0:
			return models.GoalInProgress, c.Progress
		default:
			// progress == 0 (or below): status stays as-is, no force
			// back to NOT_STARTED.
			return status, c.Progress
		}

	case FieldChange:
		if c.Status != nil {
			status = *c.Status
		}
		if c.Progress != nil {
			progress = *c.Progress
		}
		return status, progress
	}

	return status, progress
}
