package engine

import (
	"testing"

	"github.com/casetrack/casetrack-api/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLedgerAppendAndList(t *testing.T) {
	db := newTestDB(t)
	ledger := NewLedger(db)
	goalID := uuid.New()

	require.NoError(t, ledger.Append(db, goalID, models.GoalNotStarted, 0, "created"))
	require.NoError(t, ledger.Append(db, goalID, models.GoalInProgress, 40, "first check"))
	require.NoError(t, ledger.Append(db, goalID, models.GoalCompleted, 100, "done"))

	entries, err := ledger.ListFor(goalID)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "done", entries[0].Note)
	assert.Equal(t, "created", entries[2].Note)

	// Entries for other goals are invisible.
	other, err := ledger.ListFor(uuid.New())
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestLedgerDeleteAllFor(t *testing.T) {
	db := newTestDB(t)
	ledger := NewLedger(db)

	keep := uuid.New()
	drop := uuid.New()
	require.NoError(t, ledger.Append(db, keep, models.GoalNotStarted, 0, "created"))
	require.NoError(t, ledger.Append(db, drop, models.GoalNotStarted, 0, "created"))
	require.NoError(t, ledger.Append(db, drop, models.GoalInProgress, 10, "check"))

	require.NoError(t, ledger.DeleteAllFor(db, drop))

	gone, err := ledger.ListFor(drop)
	require.NoError(t, err)
	assert.Empty(t, gone)

	kept, err := ledger.ListFor(keep)
	require.NoError(t, err)
	assert.Len(t, kept, 1)
}
