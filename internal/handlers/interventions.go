package handlers

import (
	"github.com/casetrack/casetrack-api/internal/database"
	"github.com/casetrack/casetrack-api/internal/models"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func GetInterventions(c *fiber.Ctx) error {
	q := database.DB.Order("tier ASC, name ASC")

	if tier := c.QueryInt("tier", 0); tier > 0 {
		q = q.Where("tier = ?", tier)
	}

	var interventions []models.Intervention
	if err := q.Find(&interventions).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch interventions",
		})
	}

	return c.JSON(interventions)
}

func GetIntervention(c *fiber.Ctx) error {
	interventionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid intervention ID",
		})
	}

	var intervention models.Intervention
	if err := database.DB.
		Preload("Goals").
		First(&intervention, "id = ?", interventionID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Intervention not found",
		})
	}

	return c.JSON(intervention)
}

func CreateIntervention(c *fiber.Ctx) error {
	var req models.CreateInterventionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if req.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Name is required",
		})
	}

	tier := req.Tier
	if tier < 1 || tier > 3 {
		tier = 1
	}

	intervention := models.Intervention{
		Name:        req.Name,
		Description: req.Description,
		Tier:        tier,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
	}

	if err := database.DB.Create(&intervention).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create intervention",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(intervention)
}

func UpdateIntervention(c *fiber.Ctx) error {
	interventionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid intervention ID",
		})
	}

	var intervention models.Intervention
	if err := database.DB.First(&intervention, "id = ?", interventionID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Intervention not found",
		})
	}

	var req models.UpdateInterventionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if req.Name != nil {
		intervention.Name = *req.Name
	}
	if req.Description != nil {
		intervention.Description = req.Description
	}
	if req.Tier != nil && *req.Tier >= 1 && *req.Tier <= 3 {
		intervention.Tier = *req.Tier
	}
	if req.StartDate != nil {
		intervention.StartDate = req.StartDate
	}
	if req.EndDate != nil {
		intervention.EndDate = req.EndDate
	}

	if err := database.DB.Save(&intervention).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update intervention",
		})
	}

	return c.JSON(intervention)
}

func DeleteIntervention(c *fiber.Ctx) error {
	interventionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid intervention ID",
		})
	}

	var intervention models.Intervention
	if err := database.DB.First(&intervention, "id = ?", interventionID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Intervention not found",
		})
	}

	// Goals keep running if their intervention is retired; unlink them.
	database.DB.Model(&models.Goal{}).
		Where("intervention_id = ?", interventionID).
		Update("intervention_id", nil)

	if err := database.DB.Delete(&intervention).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete intervention",
		})
	}

	return c.SendStatus(fiber.StatusNoContent)
}
