package engine

import (
	"errors"

	"github.com/casetrack/casetrack-api/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// History notes written by the engine itself. Progress updates and
// cancellations carry the caller's note verbatim instead.
const (
	noteCreated = "created"
	noteUpdated = "updated"
)

// Engine manages a goal through its lifecycle: every mutation recomputes
// the goal's state through the transition rules and appends exactly one
// history snapshot in the same transaction as the goal row. The engine
// holds no state between calls; the store's transaction boundary is the
// only consistency mechanism.
type Engine struct {
	db       *gorm.DB
	resolver Resolver
	ledger   *Ledger
}

func New(db *gorm.DB, resolver Resolver) *Engine {
	return &Engine{db: db, resolver: resolver, ledger: NewLedger(db)}
}

// Filter narrows FindAll results. Status filtering is set membership.
type Filter struct {
	StudentID      *uuid.UUID
	InterventionID *uuid.UUID
	Status         []models.GoalStatus
}

// Create validates the student (and intervention, if given) references,
// then persists a NOT_STARTED goal with progress 0 and its seed history
// entry in one transaction.
func (e *Engine) Create(req models.CreateGoalRequest) (*models.Goal, error) {
	if !e.resolver.Exists(KindStudent, req.StudentID) {
		return nil, &NotFound{Kind: KindStudent, ID: req.StudentID.String()}
	}
	if req.InterventionID != nil && !e.resolver.Exists(KindIntervention, *req.InterventionID) {
		return nil, &NotFound{Kind: KindIntervention, ID: req.InterventionID.String()}
	}

	goal := models.Goal{
		StudentID:      req.StudentID,
		InterventionID: req.InterventionID,
		Title:          req.Title,
		Description:    req.Description,
		Target:         req.Target,
		TargetDate:     req.TargetDate,
		Status:         models.GoalNotStarted,
		Progress:       0,
	}

	err := e.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&goal).Error; err != nil {
			return err
		}
		return e.ledger.Append(tx, goal.ID, goal.Status, goal.Progress, noteCreated)
	})
	if err != nil {
		return nil, err
	}

	return e.FindOne(goal.ID)
}

// Update merges the supplied fields into the goal. Status and progress
// pass through unchanged unless explicitly supplied (manual override).
// The history snapshot always records the post-merge status and progress,
// so it can never contain a null.
func (e *Engine) Update(id uuid.UUID, req models.UpdateGoalRequest) (*models.Goal, error) {
	goal, err := e.fetch(id)
	if err != nil {
		return nil, err
	}
	if req.InterventionID != nil && !e.resolver.Exists(KindIntervention, *req.InterventionID) {
		return nil, &NotFound{Kind: KindIntervention, ID: req.InterventionID.String()}
	}

	if req.InterventionID != nil {
		goal.InterventionID = req.InterventionID
	}
	if req.Title != nil {
		goal.Title = *req.Title
	}
	if req.Description != nil {
		goal.Description = req.Description
	}
	if req.Target != nil {
		goal.Target = req.Target
	}
	if req.TargetDate != nil {
		goal.TargetDate = req.TargetDate
	}
	goal.Status, goal.Progress = Apply(goal.Status, goal.Progress, FieldChange{
		Status:   req.Status,
		Progress: req.Progress,
	})

	if err := e.persist(goal, noteUpdated); err != nil {
		return nil, err
	}
	return e.FindOne(goal.ID)
}

// UpdateProgress records a new progress value, derives the status from it
// and appends a history entry carrying the caller's note verbatim.
func (e *Engine) UpdateProgress(id uuid.UUID, progress int, note string) (*models.Goal, error) {
	goal, err := e.fetch(id)
	if err != nil {
		return nil, err
	}

	goal.Status, goal.Progress = Apply(goal.Status, goal.Progress, ProgressChange{Progress: progress})

	if err := e.persist(goal, note); err != nil {
		return nil, err
	}
	return e.FindOne(goal.ID)
}

// Cancel forces the goal to CANCELLED, leaving progress at its current
// value. Cancellation is terminal.
func (e *Engine) Cancel(id uuid.UUID, note string) (*models.Goal, error) {
	goal, err := e.fetch(id)
	if err != nil {
		return nil, err
	}

	goal.Status, goal.Progress = Apply(goal.Status, goal.Progress, Cancel{})

	if err := e.persist(goal, note); err != nil {
		return nil, err
	}
	return e.FindOne(goal.ID)
}

// Remove deletes the goal's history first, then the goal, in one
// transaction. The goal's last-known state is returned for display.
func (e *Engine) Remove(id uuid.UUID) (*models.Goal, error) {
	goal, err := e.FindOne(id)
	if err != nil {
		return nil, err
	}

	err = e.db.Transaction(func(tx *gorm.DB) error {
		if err := e.ledger.DeleteAllFor(tx, id); err != nil {
			return err
		}
		return tx.Delete(&models.Goal{}, "id = ?", id).Error
	})
	if err != nil {
		return nil, err
	}
	return goal, nil
}

// FindOne returns the goal with its student and intervention summaries
// and full history, most recent entry first.
func (e *Engine) FindOne(id uuid.UUID) (*models.Goal, error) {
	var goal models.Goal
	err := e.withRelations(e.db).First(&goal, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &NotFound{Kind: KindGoal, ID: id.String()}
	}
	if err != nil {
		return nil, err
	}
	return &goal, nil
}

// FindAll lists goals matching the filter, active and unstarted goals
// with near target dates first.
func (e *Engine) FindAll(f Filter) ([]models.Goal, error) {
	q := e.withRelations(e.db)
	if f.StudentID != nil {
		q = q.Where("student_id = ?", *f.StudentID)
	}
	if f.InterventionID != nil {
		q = q.Where("intervention_id = ?", *f.InterventionID)
	}
	if len(f.Status) > 0 {
		q = q.Where("status IN ?", f.Status)
	}

	var goals []models.Goal
	// Lifecycle order, not lexical: unstarted and active goals surface
	// ahead of finished ones. NULL target dates sort last on both SQLite
	// and Postgres via the IS NULL key.
	err := q.
		Order("CASE status WHEN 'NOT_STARTED' THEN 0 WHEN 'IN_PROGRESS' THEN 1 WHEN 'COMPLETED' THEN 2 ELSE 3 END").
		Order("target_date IS NULL").
		Order("target_date ASC").
		Find(&goals).Error
	if err != nil {
		return nil, err
	}
	return goals, nil
}

// History returns the goal's ledger entries, most recent first. An empty
// history is not an error; a missing goal is.
func (e *Engine) History(id uuid.UUID) ([]models.GoalHistory, error) {
	if _, err := e.fetch(id); err != nil {
		return nil, err
	}
	return e.ledger.ListFor(id)
}

// fetch loads the bare goal row, translating a missing row into NotFound.
func (e *Engine) fetch(id uuid.UUID) (*models.Goal, error) {
	var goal models.Goal
	err := e.db.First(&goal, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &NotFound{Kind: KindGoal, ID: id.String()}
	}
	if err != nil {
		return nil, err
	}
	return &goal, nil
}

// persist writes the goal row and its history snapshot atomically.
func (e *Engine) persist(goal *models.Goal, note string) error {
	return e.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(goal).Error; err != nil {
			return err
		}
		return e.ledger.Append(tx, goal.ID, goal.Status, goal.Progress, note)
	})
}

func (e *Engine) withRelations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Student").
		Preload("Intervention").
		Preload("History", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		})
}
