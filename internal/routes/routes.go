package routes

import (
	"github.com/casetrack/casetrack-api/internal/handlers"
	"github.com/casetrack/casetrack-api/internal/middleware"
	"github.com/gofiber/fiber/v2"
)

func Setup(app *fiber.App) {
	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", handlers.Register)
	auth.Post("/login", handlers.Login)

	protected := api.Group("/", middleware.Protected())

	protected.Get("/me", handlers.GetMe)

	students := protected.Group("/students")
	students.Get("/", handlers.GetStudents)
	students.Post("/", handlers.CreateStudent)
	students.Get("/:id", handlers.GetStudent)
	students.Put("/:id", handlers.UpdateStudent)
	students.Delete("/:id", handlers.DeleteStudent)
	students.Get("/:id/timeline", handlers.GetStudentTimeline)

	interventions := protected.Group("/interventions")
	interventions.Get("/", handlers.GetInterventions)
	interventions.Post("/", handlers.CreateIntervention)
	interventions.Get("/:id", handlers.GetIntervention)
	interventions.Put("/:id", handlers.UpdateIntervention)
	interventions.Delete("/:id", handlers.DeleteIntervention)

	goals := protected.Group("/goals")
	goals.Get("/", handlers.GetGoals)
	goals.Post("/", handlers.CreateGoal)
	goals.Get("/:id", handlers.GetGoal)
	goals.Put("/:id", handlers.UpdateGoal)
	goals.Put("/:id/progress", handlers.UpdateGoalProgress)
	goals.Post("/:id/cancel", handlers.CancelGoal)
	goals.Delete("/:id", handlers.DeleteGoal)
	goals.Get("/:id/history", handlers.GetGoalHistory)

	assessments := protected.Group("/assessments")
	assessments.Get("/", handlers.GetAssessments)
	assessments.Post("/", handlers.CreateAssessment)
	assessments.Put("/:id", handlers.UpdateAssessment)
	assessments.Delete("/:id", handlers.DeleteAssessment)

	referrals := protected.Group("/referrals")
	referrals.Get("/", handlers.GetReferrals)
	referrals.Post("/", handlers.CreateReferral)
	referrals.Put("/:id", handlers.UpdateReferral)
	referrals.Delete("/:id", handlers.DeleteReferral)

	// Notifications
	notifications := protected.Group("/notifications")
	notifications.Get("/", handlers.GetNotifications)
	notifications.Put("/:id/read", handlers.MarkNotificationRead)
	notifications.Post("/read-all", handlers.MarkAllRead)

	// Device token for push notifications
	protected.Post("/device-token", handlers.RegisterDeviceToken)
}
