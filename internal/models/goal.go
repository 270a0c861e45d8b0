package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GoalStatus is the closed set of lifecycle states for a goal.
type GoalStatus string

const (
	GoalNotStarted GoalStatus = "NOT_STARTED"
	GoalInProgress GoalStatus = "IN_PROGRESS"
	GoalCompleted  GoalStatus = "COMPLETED"
	GoalCancelled  GoalStatus = "CANCELLED"
)

type Goal struct {
	ID             uuid.UUID     `json:"id" gorm:"type:uuid;primaryKey"`
	StudentID      uuid.UUID     `json:"studentId" gorm:"type:uuid;index;not null"`
	InterventionID *uuid.UUID    `json:"interventionId" gorm:"type:uuid;index"`
	Title          string        `json:"title" gorm:"not null"`
	Description    *string       `json:"description"`
	Target         *string       `json:"target"`
	TargetDate     *time.Time    `json:"targetDate"`
	Status         GoalStatus    `json:"status" gorm:"not null;default:'NOT_STARTED'"`
	Progress       int           `json:"progress" gorm:"default:0"`
	CreatedAt      time.Time     `json:"createdAt"`
	UpdatedAt      time.Time     `json:"updatedAt"`
	Student        *Student      `json:"student,omitempty" gorm:"foreignKey:StudentID"`
	Intervention   *Intervention `json:"intervention,omitempty" gorm:"foreignKey:InterventionID"`
	History        []GoalHistory `json:"history,omitempty" gorm:"foreignKey:GoalID"`
}

func (g *Goal) BeforeCreate(tx *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}

// Goal DTOs
type CreateGoalRequest struct {
	StudentID      uuid.UUID  `json:"studentId" validate:"required"`
	InterventionID *uuid.UUID `json:"interventionId"`
	Title          string     `json:"title" validate:"required"`
	Description    *string    `json:"description"`
	Target         *string    `json:"target"`
	TargetDate     *time.Time `json:"targetDate"`
}

type UpdateGoalRequest struct {
	InterventionID *uuid.UUID  `json:"interventionId"`
	Title          *string     `json:"title"`
	Description    *string     `json:"description"`
	Target         *string     `json:"target"`
	TargetDate     *time.Time  `json:"targetDate"`
	Status         *GoalStatus `json:"status"`
	Progress       *int        `json:"progress"`
}

type UpdateProgressRequest struct {
	Progress *int   `json:"progress" validate:"required"`
	Note     string `json:"note" validate:"required"`
}

type CancelGoalRequest struct {
	Note string `json:"note" validate:"required"`
}
