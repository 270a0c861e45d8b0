package handlers

import (
	"errors"
	"strings"

	"github.com/casetrack/casetrack-api/internal/engine"
	"github.com/casetrack/casetrack-api/internal/middleware"
	"github.com/casetrack/casetrack-api/internal/models"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Goals is the goal tracking engine instance, wired in main.
var Goals *engine.Engine

// StrictGoals enables boundary validation of progress ranges and manual
// status overrides. The engine itself stays permissive either way.
var StrictGoals bool

// goalError maps engine errors onto HTTP responses. NotFound carries the
// entity kind and id so the client can show which reference failed.
func goalError(c *fiber.Ctx, err error) error {
	var nf *engine.NotFound
	if errors.As(err, &nf) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": nf.Error(),
		})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "Storage failure",
	})
}

func CreateGoal(c *fiber.Ctx) error {
	var req models.CreateGoalRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if req.StudentID == uuid.Nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Student ID is required",
		})
	}
	if req.Title == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Title is required",
		})
	}

	goal, err := Goals.Create(req)
	if err != nil {
		return goalError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(goal)
}

func GetGoals(c *fiber.Ctx) error {
	var filter engine.Filter

	if s := c.Query("studentId"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid student ID",
			})
		}
		filter.StudentID = &id
	}
	if s := c.Query("interventionId"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid intervention ID",
			})
		}
		filter.InterventionID = &id
	}
	if s := c.Query("status"); s != "" {
		for _, part := range strings.Split(s, ",") {
			filter.Status = append(filter.Status, models.GoalStatus(strings.TrimSpace(part)))
		}
	}

	goals, err := Goals.FindAll(filter)
	if err != nil {
		return goalError(c, err)
	}

	if goals == nil {
		goals = []models.Goal{}
	}
	return c.JSON(goals)
}

func GetGoal(c *fiber.Ctx) error {
	goalID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid goal ID",
		})
	}

	goal, err := Goals.FindOne(goalID)
	if err != nil {
		return goalError(c, err)
	}
	return c.JSON(goal)
}

func UpdateGoal(c *fiber.Ctx) error {
	goalID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid goal ID",
		})
	}

	var req models.UpdateGoalRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if StrictGoals {
		if req.Status != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Manual status overrides are disabled",
			})
		}
		if req.Progress != nil && (*req.Progress < 0 || *req.Progress > 100) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Progress must be between 0 and 100",
			})
		}
	}

	goal, err := Goals.Update(goalID, req)
	if err != nil {
		return goalError(c, err)
	}
	return c.JSON(goal)
}

func UpdateGoalProgress(c *fiber.Ctx) error {
	goalID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid goal ID",
		})
	}

	var req models.UpdateProgressRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if req.Progress == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Progress is required",
		})
	}
	if req.Note == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Note is required",
		})
	}
	if StrictGoals && (*req.Progress < 0 || *req.Progress > 100) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Progress must be between 0 and 100",
		})
	}

	before, err := Goals.FindOne(goalID)
	if err != nil {
		return goalError(c, err)
	}

	goal, err := Goals.UpdateProgress(goalID, *req.Progress, req.Note)
	if err != nil {
		return goalError(c, err)
	}

	// Notify the acting user's inbox when a goal reaches completion.
	if goal.Status == models.GoalCompleted && before.Status != models.GoalCompleted {
		userID := middleware.GetUserID(c)
		if userID != uuid.Nil {
			studentName := ""
			if goal.Student != nil {
				studentName = goal.Student.FirstName + " " + goal.Student.LastName
			}
			CreateNotification(userID, "goal_completed",
				"Goal completed!",
				"\""+goal.Title+"\" for "+studentName+" reached 100%",
				map[string]interface{}{"studentId": goal.StudentID.String(), "goalId": goal.ID.String()},
			)
		}
	}

	return c.JSON(goal)
}

func CancelGoal(c *fiber.Ctx) error {
	goalID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid goal ID",
		})
	}

	var req models.CancelGoalRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if req.Note == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Note is required",
		})
	}

	goal, err := Goals.Cancel(goalID, req.Note)
	if err != nil {
		return goalError(c, err)
	}
	return c.JSON(goal)
}

func DeleteGoal(c *fiber.Ctx) error {
	goalID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid goal ID",
		})
	}

	goal, err := Goals.Remove(goalID)
	if err != nil {
		return goalError(c, err)
	}

	// Last-known state, for confirmation display.
	return c.JSON(goal)
}

func GetGoalHistory(c *fiber.Ctx) error {
	goalID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid goal ID",
		})
	}

	history, err := Goals.History(goalID)
	if err != nil {
		return goalError(c, err)
	}

	if history == nil {
		history = []models.GoalHistory{}
	}
	return c.JSON(history)
}
