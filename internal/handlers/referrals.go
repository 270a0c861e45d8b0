package handlers

import (
	"time"

	"github.com/casetrack/casetrack-api/internal/database"
	"github.com/casetrack/casetrack-api/internal/models"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func GetReferrals(c *fiber.Ctx) error {
	q := database.DB.Preload("Student").Order("referred_at DESC")

	if s := c.Query("studentId"); s != "" {
		studentID, err := uuid.Parse(s)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid student ID",
			})
		}
		q = q.Where("student_id = ?", studentID)
	}
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}

	var referrals []models.Referral
	if err := q.Find(&referrals).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch referrals",
		})
	}

	return c.JSON(referrals)
}

func CreateReferral(c *fiber.Ctx) error {
	var req models.CreateReferralRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if req.StudentID == uuid.Nil || req.Reason == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Student ID and reason are required",
		})
	}

	var student models.Student
	if err := database.DB.First(&student, "id = ?", req.StudentID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Student not found",
		})
	}

	source := req.Source
	if source == "" {
		source = "teacher"
	}

	referral := models.Referral{
		StudentID: req.StudentID,
		Reason:    req.Reason,
		Source:    source,
		Status:    "open",
	}

	if err := database.DB.Create(&referral).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create referral",
		})
	}

	notifyRole("counselor", "referral_opened",
		"New referral",
		student.FirstName+" "+student.LastName+": "+referral.Reason,
		map[string]interface{}{"studentId": student.ID.String(), "referralId": referral.ID.String()},
	)

	return c.Status(fiber.StatusCreated).JSON(referral)
}

func UpdateReferral(c *fiber.Ctx) error {
	referralID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid referral ID",
		})
	}

	var referral models.Referral
	if err := database.DB.First(&referral, "id = ?", referralID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Referral not found",
		})
	}

	var req models.UpdateReferralRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if req.Reason != nil {
		referral.Reason = *req.Reason
	}
	if req.Source != nil {
		referral.Source = *req.Source
	}
	if req.Status != nil && (*req.Status == "open" || *req.Status == "closed") {
		referral.Status = *req.Status
		if *req.Status == "closed" && referral.ClosedAt == nil {
			now := time.Now()
			referral.ClosedAt = &now
		}
		if *req.Status == "open" {
			referral.ClosedAt = nil
		}
	}

	if err := database.DB.Save(&referral).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update referral",
		})
	}

	return c.JSON(referral)
}

func DeleteReferral(c *fiber.Ctx) error {
	referralID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid referral ID",
		})
	}

	var referral models.Referral
	if err := database.DB.First(&referral, "id = ?", referralID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Referral not found",
		})
	}

	if err := database.DB.Delete(&referral).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete referral",
		})
	}

	return c.SendStatus(fiber.StatusNoContent)
}
