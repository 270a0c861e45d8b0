package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Assessment stores a single scored measure for a student.
type Assessment struct {
	ID         uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	StudentID  uuid.UUID      `json:"studentId" gorm:"type:uuid;index;not null"`
	Subject    string         `json:"subject" gorm:"not null"`
	Score      float64        `json:"score" gorm:"not null"`
	MaxScore   float64        `json:"maxScore" gorm:"not null;default:100"`
	AssessedAt time.Time      `json:"assessedAt" gorm:"not null"`
	Notes      *string        `json:"notes"`
	CreatedAt  time.Time      `json:"createdAt"`
	UpdatedAt  time.Time      `json:"updatedAt"`
	DeletedAt  gorm.DeletedAt `json:"-" gorm:"index"`

	Student *Student `json:"student,omitempty" gorm:"foreignKey:StudentID"`
}

func (a *Assessment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// Assessment DTOs
type CreateAssessmentRequest struct {
	StudentID  uuid.UUID  `json:"studentId" validate:"required"`
	Subject    string     `json:"subject" validate:"required"`
	Score      float64    `json:"score"`
	MaxScore   float64    `json:"maxScore"`
	AssessedAt *time.Time `json:"assessedAt"`
	Notes      *string    `json:"notes"`
}

type UpdateAssessmentRequest struct {
	Subject    *string    `json:"subject"`
	Score      *float64   `json:"score"`
	MaxScore   *float64   `json:"maxScore"`
	AssessedAt *time.Time `json:"assessedAt"`
	Notes      *string    `json:"notes"`
}
