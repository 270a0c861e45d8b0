package services

import (
	"github.com/casetrack/casetrack-api/internal/engine"
	"github.com/casetrack/casetrack-api/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DBResolver answers the engine's existence checks against the directory
// tables. A lookup failure is reported as "does not exist"; the resolver
// itself never errors.
type DBResolver struct {
	db *gorm.DB
}

func NewDBResolver(db *gorm.DB) *DBResolver {
	return &DBResolver{db: db}
}

func (r *DBResolver) Exists(kind engine.Kind, id uuid.UUID) bool {
	var count int64
	switch kind {
	case engine.KindStudent:
		r.db.Model(&models.Student{}).Where("id = ?", id).Count(&count)
	case engine.KindIntervention:
		r.db.Model(&models.Intervention{}).Where("id = ?", id).Count(&count)
	case engine.KindGoal:
		r.db.Model(&models.Goal{}).Where("id = ?", id).Count(&count)
	}
	return count > 0
}
