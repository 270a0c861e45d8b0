package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Intervention struct {
	ID          uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	Name        string         `json:"name" gorm:"not null"`
	Description *string        `json:"description"`
	Tier        int            `json:"tier" gorm:"not null;default:1"` // 1 = universal, 2 = targeted, 3 = intensive
	StartDate   *time.Time     `json:"startDate"`
	EndDate     *time.Time     `json:"endDate"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
	Goals       []Goal         `json:"goals,omitempty" gorm:"foreignKey:InterventionID"`
}

func (i *Intervention) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// Intervention DTOs
type CreateInterventionRequest struct {
	Name        string     `json:"name" validate:"required"`
	Description *string    `json:"description"`
	Tier        int        `json:"tier"`
	StartDate   *time.Time `json:"startDate"`
	EndDate     *time.Time `json:"endDate"`
}

type UpdateInterventionRequest struct {
	Name        *string    `json:"name"`
	Description *string    `json:"description"`
	Tier        *int       `json:"tier"`
	StartDate   *time.Time `json:"startDate"`
	EndDate     *time.Time `json:"endDate"`
}
