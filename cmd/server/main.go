package main

import (
	"log"

	"github.com/casetrack/casetrack-api/internal/config"
	"github.com/casetrack/casetrack-api/internal/database"
	"github.com/casetrack/casetrack-api/internal/engine"
	"github.com/casetrack/casetrack-api/internal/handlers"
	"github.com/casetrack/casetrack-api/internal/routes"
	"github.com/casetrack/casetrack-api/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/joho/godotenv"
)

func main() {
	// .env is optional; real deployments set env vars directly
	_ = godotenv.Load()

	cfg := config.Load()

	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	if err := services.InitPush(cfg.FCMServiceAccount); err != nil {
		log.Printf("Push notifications unavailable: %v", err)
	}

	handlers.Goals = engine.New(database.DB, services.NewDBResolver(database.DB))
	handlers.StrictGoals = cfg.StrictGoals

	app := fiber.New()
	app.Use(logger.New())
	app.Use(cors.New())

	routes.Setup(app)

	log.Printf("Listening on :%s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}
