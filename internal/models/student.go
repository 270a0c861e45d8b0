package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Student struct {
	ID         uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	FirstName  string         `json:"firstName" gorm:"not null"`
	LastName   string         `json:"lastName" gorm:"not null"`
	GradeLevel int            `json:"gradeLevel" gorm:"not null"`
	Homeroom   *string        `json:"homeroom"`
	Notes      *string        `json:"notes"`
	CreatedAt  time.Time      `json:"createdAt"`
	UpdatedAt  time.Time      `json:"updatedAt"`
	DeletedAt  gorm.DeletedAt `json:"-" gorm:"index"`
	Goals      []Goal         `json:"goals,omitempty" gorm:"foreignKey:StudentID"`
}

func (s *Student) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// Student DTOs
type CreateStudentRequest struct {
	FirstName  string  `json:"firstName" validate:"required"`
	LastName   string  `json:"lastName" validate:"required"`
	GradeLevel int     `json:"gradeLevel" validate:"required"`
	Homeroom   *string `json:"homeroom"`
	Notes      *string `json:"notes"`
}

type UpdateStudentRequest struct {
	FirstName  *string `json:"firstName"`
	LastName   *string `json:"lastName"`
	GradeLevel *int    `json:"gradeLevel"`
	Homeroom   *string `json:"homeroom"`
	Notes      *string `json:"notes"`
}
