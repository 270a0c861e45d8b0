package handlers

import (
	"time"

	"github.com/casetrack/casetrack-api/internal/database"
	"github.com/casetrack/casetrack-api/internal/models"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func GetAssessments(c *fiber.Ctx) error {
	q := database.DB.Preload("Student").Order("assessed_at DESC")

	if s := c.Query("studentId"); s != "" {
		studentID, err := uuid.Parse(s)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid student ID",
			})
		}
		q = q.Where("student_id = ?", studentID)
	}
	if subject := c.Query("subject"); subject != "" {
		q = q.Where("subject = ?", subject)
	}

	var assessments []models.Assessment
	if err := q.Find(&assessments).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch assessments",
		})
	}

	return c.JSON(assessments)
}

func CreateAssessment(c *fiber.Ctx) error {
	var req models.CreateAssessmentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if req.StudentID == uuid.Nil || req.Subject == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Student ID and subject are required",
		})
	}

	var student models.Student
	if err := database.DB.First(&student, "id = ?", req.StudentID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Student not found",
		})
	}

	assessedAt := time.Now()
	if req.AssessedAt != nil {
		assessedAt = *req.AssessedAt
	}
	maxScore := req.MaxScore
	if maxScore == 0 {
		maxScore = 100
	}

	assessment := models.Assessment{
		StudentID:  req.StudentID,
		Subject:    req.Subject,
		Score:      req.Score,
		MaxScore:   maxScore,
		AssessedAt: assessedAt,
		Notes:      req.Notes,
	}

	if err := database.DB.Create(&assessment).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create assessment",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(assessment)
}

func UpdateAssessment(c *fiber.Ctx) error {
	assessmentID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid assessment ID",
		})
	}

	var assessment models.Assessment
	if err := database.DB.First(&assessment, "id = ?", assessmentID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Assessment not found",
		})
	}

	var req models.UpdateAssessmentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if req.Subject != nil {
		assessment.Subject = *req.Subject
	}
	if req.Score != nil {
		assessment.Score = *req.Score
	}
	if req.MaxScore != nil {
		assessment.MaxScore = *req.MaxScore
	}
	if req.AssessedAt != nil {
		assessment.AssessedAt = *req.AssessedAt
	}
	if req.Notes != nil {
		assessment.Notes = req.Notes
	}

	if err := database.DB.Save(&assessment).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update assessment",
		})
	}

	return c.JSON(assessment)
}

func DeleteAssessment(c *fiber.Ctx) error {
	assessmentID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid assessment ID",
		})
	}

	var assessment models.Assessment
	if err := database.DB.First(&assessment, "id = ?", assessmentID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Assessment not found",
		})
	}

	if err := database.DB.Delete(&assessment).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete assessment",
		})
	}

	return c.SendStatus(fiber.StatusNoContent)
}
