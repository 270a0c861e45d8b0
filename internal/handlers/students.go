package handlers

import (
	"sort"
	"time"

	"github.com/casetrack/casetrack-api/internal/database"
	"github.com/casetrack/casetrack-api/internal/models"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func GetStudents(c *fiber.Ctx) error {
	q := database.DB.Order("last_name ASC, first_name ASC")

	if grade := c.QueryInt("gradeLevel", 0); grade > 0 {
		q = q.Where("grade_level = ?", grade)
	}

	var students []models.Student
	if err := q.Find(&students).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch students",
		})
	}

	return c.JSON(students)
}

func GetStudent(c *fiber.Ctx) error {
	studentID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid student ID",
		})
	}

	var student models.Student
	if err := database.DB.
		Preload("Goals", func(db *gorm.DB) *gorm.DB {
			return db.Order("status ASC, target_date ASC")
		}).
		First(&student, "id = ?", studentID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Student not found",
		})
	}

	return c.JSON(student)
}

func CreateStudent(c *fiber.Ctx) error {
	var req models.CreateStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if req.FirstName == "" || req.LastName == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "First and last name are required",
		})
	}

	student := models.Student{
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		GradeLevel: req.GradeLevel,
		Homeroom:   req.Homeroom,
		Notes:      req.Notes,
	}

	if err := database.DB.Create(&student).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create student",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(student)
}

func UpdateStudent(c *fiber.Ctx) error {
	studentID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid student ID",
		})
	}

	var student models.Student
	if err := database.DB.First(&student, "id = ?", studentID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Student not found",
		})
	}

	var req models.UpdateStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if req.FirstName != nil {
		student.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		student.LastName = *req.LastName
	}
	if req.GradeLevel != nil {
		student.GradeLevel = *req.GradeLevel
	}
	if req.Homeroom != nil {
		student.Homeroom = req.Homeroom
	}
	if req.Notes != nil {
		student.Notes = req.Notes
	}

	if err := database.DB.Save(&student).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update student",
		})
	}

	return c.JSON(student)
}

func DeleteStudent(c *fiber.Ctx) error {
	studentID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid student ID",
		})
	}

	var student models.Student
	if err := database.DB.First(&student, "id = ?", studentID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Student not found",
		})
	}

	if err := database.DB.Delete(&student).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete student",
		})
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// TimelineEntry represents a single item in a student's case timeline.
type TimelineEntry struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"` // goal_change, assessment, referral
	Title     string    `json:"title"`
	Detail    string    `json:"detail"`
	Timestamp time.Time `json:"timestamp"`
}

// GetStudentTimeline returns a reverse-chronological feed of the
// student's goal history, assessments and referrals.
func GetStudentTimeline(c *fiber.Ctx) error {
	studentID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid student ID",
		})
	}

	var student models.Student
	if err := database.DB.First(&student, "id = ?", studentID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Student not found",
		})
	}

	var entries []TimelineEntry

	// Goal history for every goal of this student.
	type goalRow struct {
		ID    uuid.UUID
		Title string
	}
	var goalRows []goalRow
	database.DB.Model(&models.Goal{}).
		Where("student_id = ?", studentID).
		Select("id, title").
		Scan(&goalRows)

	goalTitle := map[uuid.UUID]string{}
	var goalIDs []uuid.UUID
	for _, g := range goalRows {
		goalTitle[g.ID] = g.Title
		goalIDs = append(goalIDs, g.ID)
	}

	if len(goalIDs) > 0 {
		var history []models.GoalHistory
		database.DB.Where("goal_id IN ?", goalIDs).
			Order("created_at DESC").
			Limit(60).
			Find(&history)

		for _, h := range history {
			entries = append(entries, TimelineEntry{
				ID:        "goal_" + h.ID.String(),
				Type:      "goal_change",
				Title:     goalTitle[h.GoalID],
				Detail:    h.Note,
				Timestamp: h.CreatedAt,
			})
		}
	}

	var assessments []models.Assessment
	database.DB.Where("student_id = ?", studentID).
		Order("assessed_at DESC").
		Limit(40).
		Find(&assessments)

	for _, a := range assessments {
		entries = append(entries, TimelineEntry{
			ID:        "assessment_" + a.ID.String(),
			Type:      "assessment",
			Title:     a.Subject,
			Timestamp: a.AssessedAt,
		})
	}

	var referrals []models.Referral
	database.DB.Where("student_id = ?", studentID).
		Order("referred_at DESC").
		Limit(30).
		Find(&referrals)

	for _, r := range referrals {
		entries = append(entries, TimelineEntry{
			ID:        "referral_" + r.ID.String(),
			Type:      "referral",
			Title:     r.Reason,
			Detail:    "referred by " + r.Source,
			Timestamp: r.ReferredAt,
		})
	}

	// Sort newest first.
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Timestamp.After(entries[j].Timestamp)
	})

	if entries == nil {
		entries = []TimelineEntry{}
	}
	return c.JSON(entries)
}
