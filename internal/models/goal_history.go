package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GoalHistory is an append-only snapshot of a goal's status and progress
// at the moment a change was recorded. Rows are never updated; they are
// removed only when the owning goal is deleted.
type GoalHistory struct {
	ID        uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	GoalID    uuid.UUID  `json:"goalId" gorm:"type:uuid;index;not null"`
	Status    GoalStatus `json:"status" gorm:"not null"`
	Progress  int        `json:"progress" gorm:"not null"`
	Note      string     `json:"note" gorm:"not null"`
	CreatedAt time.Time  `json:"createdAt"`
}

func (GoalHistory) TableName() string {
	return "goal_history"
}

func (h *GoalHistory) BeforeCreate(tx *gorm.DB) error {
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	return nil
}
