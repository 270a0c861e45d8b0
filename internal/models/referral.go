package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Referral struct {
	ID         uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	StudentID  uuid.UUID      `json:"studentId" gorm:"type:uuid;index;not null"`
	Reason     string         `json:"reason" gorm:"not null"`
	Source     string         `json:"source" gorm:"not null"` // teacher, parent, self, admin
	Status     string         `json:"status" gorm:"not null;default:'open'"` // open, closed
	ReferredAt time.Time      `json:"referredAt" gorm:"not null"`
	ClosedAt   *time.Time     `json:"closedAt"`
	CreatedAt  time.Time      `json:"createdAt"`
	UpdatedAt  time.Time      `json:"updatedAt"`
	DeletedAt  gorm.DeletedAt `json:"-" gorm:"index"`

	Student *Student `json:"student,omitempty" gorm:"foreignKey:StudentID"`
}

func (r *Referral) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	if r.ReferredAt.IsZero() {
		r.ReferredAt = time.Now()
	}
	return nil
}

// Referral DTOs
type CreateReferralRequest struct {
	StudentID uuid.UUID `json:"studentId" validate:"required"`
	Reason    string    `json:"reason" validate:"required"`
	Source    string    `json:"source" validate:"required"`
}

type UpdateReferralRequest struct {
	Reason *string `json:"reason"`
	Source *string `json:"source"`
	Status *string `json:"status"`
}
