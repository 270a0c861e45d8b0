package engine

import (
	"github.com/casetrack/casetrack-api/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Ledger is the append-only history log for goals. Entries are written in
// the same transaction as the goal row they snapshot, so every committed
// mutation has exactly one matching entry.
type Ledger struct {
	db *gorm.DB
}

func NewLedger(db *gorm.DB) *Ledger {
	return &Ledger{db: db}
}

// Append records one snapshot on the given transaction handle.
func (l *Ledger) Append(tx *gorm.DB, goalID uuid.UUID, status models.GoalStatus, progress int, note string) error {
	entry := models.GoalHistory{
		GoalID:   goalID,
		Status:   status,
		Progress: progress,
		Note:     note,
	}
	return tx.Create(&entry).Error
}

// ListFor returns every entry for a goal, most recent first. Callers
// rendering history rely on this ordering.
func (l *Ledger) ListFor(goalID uuid.UUID) ([]models.GoalHistory, error) {
	var entries []models.GoalHistory
	err := l.db.Where("goal_id = ?", goalID).
		Order("created_at DESC").
		Find(&entries).Error
	return entries, err
}

// DeleteAllFor removes every entry for a goal. Used only as the first
// step of goal deletion, on the deletion transaction.
func (l *Ledger) DeleteAllFor(tx *gorm.DB, goalID uuid.UUID) error {
	return tx.Where("goal_id = ?", goalID).Delete(&models.GoalHistory{}).Error
}
