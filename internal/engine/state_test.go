package engine

import (
	"testing"

	"github.com/casetrack/casetrack-api/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestApplyProgressDerivation(t *testing.T) {
	tests := []struct {
		name         string
		status       models.GoalStatus
		progress     int
		newProgress  int
		wantStatus   models.GoalStatus
		wantProgress int
	}{
		{"midway starts the goal", models.GoalNotStarted, 0, 45, models.GoalInProgress, 45},
		{"one percent is in progress", models.GoalNotStarted, 0, 1, models.GoalInProgress, 1},
		{"full progress completes", models.GoalInProgress, 45, 100, models.GoalCompleted, 100},
		{"full progress completes from scratch", models.GoalNotStarted, 0, 100, models.GoalCompleted, 100},
		{"zero leaves status alone", models.GoalNotStarted, 0, 0, models.GoalNotStarted, 0},
		{"zero does not reset an active goal", models.GoalInProgress, 45, 0, models.GoalInProgress, 0},
		{"zero does not reopen a completed goal", models.GoalCompleted, 100, 0, models.GoalCompleted, 0},
		{"regression from completed", models.GoalCompleted, 100, 80, models.GoalInProgress, 80},
		{"cancelled stays cancelled", models.GoalCancelled, 30, 90, models.GoalCancelled, 90},
		{"cancelled stays cancelled even at 100", models.GoalCancelled, 30, 100, models.GoalCancelled, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, progress := Apply(tt.status, tt.progress, ProgressChange{Progress: tt.newProgress})
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantProgress, progress)
		})
	}
}

func TestApplyCancel(t *testing.T) {
	// Cancel wins from any state and preserves progress.
	for _, from := range []models.GoalStatus{
		models.GoalNotStarted, models.GoalInProgress, models.GoalCompleted, models.GoalCancelled,
	} {
		status, progress := Apply(from, 67, Cancel{})
		assert.Equal(t, models.GoalCancelled, status, "from %s", from)
		assert.Equal(t, 67, progress, "from %s", from)
	}
}

func TestApplyFieldChange(t *testing.T) {
	t.Run("nothing supplied passes through", func(t *testing.T) {
		status, progress := Apply(models.GoalInProgress, 45, FieldChange{})
		assert.Equal(t, models.GoalInProgress, status)
		assert.Equal(t, 45, progress)
	})

	t.Run("explicit status is accepted as-is", func(t *testing.T) {
		completed := models.GoalCompleted
		status, progress := Apply(models.GoalInProgress, 45, FieldChange{Status: &completed})
		assert.Equal(t, models.GoalCompleted, status)
		assert.Equal(t, 45, progress)
	})

	t.Run("explicit progress does not derive status", func(t *testing.T) {
		p := 100
		status, progress := Apply(models.GoalInProgress, 45, FieldChange{Progress: &p})
		assert.Equal(t, models.GoalInProgress, status)
		assert.Equal(t, 100, progress)
	})
}
