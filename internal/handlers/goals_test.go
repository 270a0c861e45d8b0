package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/casetrack/casetrack-api/internal/database"
	"github.com/casetrack/casetrack-api/internal/engine"
	"github.com/casetrack/casetrack-api/internal/handlers"
	"github.com/casetrack/casetrack-api/internal/middleware"
	"github.com/casetrack/casetrack-api/internal/models"
	"github.com/casetrack/casetrack-api/internal/routes"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupApp(t *testing.T) (*fiber.App, string) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Student{},
		&models.Intervention{},
		&models.Goal{},
		&models.GoalHistory{},
		&models.Assessment{},
		&models.Referral{},
		&models.Notification{},
	))

	database.DB = db
	handlers.Goals = engine.New(db, dbResolver{db})
	handlers.StrictGoals = false

	token, err := middleware.GenerateToken(uuid.New(), "staff@example.com", "counselor")
	require.NoError(t, err)

	app := fiber.New()
	routes.Setup(app)
	return app, token
}

// dbResolver mirrors the production resolver without importing services,
// keeping the test wiring local to this package.
type dbResolver struct {
	db *gorm.DB
}

func (r dbResolver) Exists(kind engine.Kind, id uuid.UUID) bool {
	var count int64
	switch kind {
	case engine.KindStudent:
		r.db.Model(&models.Student{}).Where("id = ?", id).Count(&count)
	case engine.KindIntervention:
		r.db.Model(&models.Intervention{}).Where("id = ?", id).Count(&count)
	}
	return count > 0
}

func doJSON(t *testing.T, app *fiber.App, token, method, path string, body interface{}) (*http.Response, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Authorization", "Bearer "+token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	payload, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, payload
}

func seedStudent(t *testing.T) models.Student {
	t.Helper()
	student := models.Student{FirstName: "Aisha", LastName: "Bello", GradeLevel: 6}
	require.NoError(t, database.DB.Create(&student).Error)
	return student
}

func TestGoalRoutesLifecycle(t *testing.T) {
	app, token := setupApp(t)
	student := seedStudent(t)

	// Create
	resp, payload := doJSON(t, app, token, "POST", "/api/goals/", map[string]interface{}{
		"studentId": student.ID,
		"title":     "Improve attendance",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, string(payload))

	var goal models.Goal
	require.NoError(t, json.Unmarshal(payload, &goal))
	assert.Equal(t, models.GoalNotStarted, goal.Status)
	assert.Equal(t, 0, goal.Progress)
	require.Len(t, goal.History, 1)

	// Progress update
	resp, payload = doJSON(t, app, token, "PUT", fmt.Sprintf("/api/goals/%s/progress", goal.ID), map[string]interface{}{
		"progress": 45,
		"note":     "mid-quarter check",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(payload))
	require.NoError(t, json.Unmarshal(payload, &goal))
	assert.Equal(t, models.GoalInProgress, goal.Status)
	assert.Equal(t, 45, goal.Progress)
	require.Len(t, goal.History, 2)
	assert.Equal(t, "mid-quarter check", goal.History[0].Note)

	// Cancel
	resp, payload = doJSON(t, app, token, "POST", fmt.Sprintf("/api/goals/%s/cancel", goal.ID), map[string]interface{}{
		"note": "withdrawn",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(payload))
	require.NoError(t, json.Unmarshal(payload, &goal))
	assert.Equal(t, models.GoalCancelled, goal.Status)
	assert.Equal(t, 45, goal.Progress)

	// History endpoint, most recent first
	resp, payload = doJSON(t, app, token, "GET", fmt.Sprintf("/api/goals/%s/history", goal.ID), nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var history []models.GoalHistory
	require.NoError(t, json.Unmarshal(payload, &history))
	require.Len(t, history, 3)
	assert.Equal(t, "withdrawn", history[0].Note)
	assert.Equal(t, "created", history[2].Note)

	// Delete returns the last-known state, then the goal is gone
	resp, payload = doJSON(t, app, token, "DELETE", fmt.Sprintf("/api/goals/%s", goal.ID), nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(payload, &goal))
	assert.Equal(t, models.GoalCancelled, goal.Status)

	resp, _ = doJSON(t, app, token, "GET", fmt.Sprintf("/api/goals/%s", goal.ID), nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	resp, _ = doJSON(t, app, token, "GET", fmt.Sprintf("/api/goals/%s/history", goal.ID), nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestCreateGoalUnknownStudent(t *testing.T) {
	app, token := setupApp(t)

	ghost := uuid.New()
	resp, payload := doJSON(t, app, token, "POST", "/api/goals/", map[string]interface{}{
		"studentId": ghost,
		"title":     "x",
	})
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.Unmarshal(payload, &body))
	assert.Contains(t, body["error"], "student")
	assert.Contains(t, body["error"], ghost.String())
}

func TestGetGoalsStatusFilter(t *testing.T) {
	app, token := setupApp(t)
	student := seedStudent(t)

	for _, title := range []string{"a", "b"} {
		resp, payload := doJSON(t, app, token, "POST", "/api/goals/", map[string]interface{}{
			"studentId": student.ID,
			"title":     title,
		})
		require.Equal(t, fiber.StatusCreated, resp.StatusCode, string(payload))
	}

	var created []models.Goal
	require.NoError(t, database.DB.Find(&created).Error)
	require.Len(t, created, 2)

	_, err := handlers.Goals.UpdateProgress(created[0].ID, 50, "check")
	require.NoError(t, err)

	resp, payload := doJSON(t, app, token, "GET", "/api/goals/?status=IN_PROGRESS,COMPLETED", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var goals []models.Goal
	require.NoError(t, json.Unmarshal(payload, &goals))
	require.Len(t, goals, 1)
	assert.Equal(t, models.GoalInProgress, goals[0].Status)
}

func TestStrictProgressValidation(t *testing.T) {
	app, token := setupApp(t)
	handlers.StrictGoals = true
	defer func() { handlers.StrictGoals = false }()

	student := seedStudent(t)
	resp, payload := doJSON(t, app, token, "POST", "/api/goals/", map[string]interface{}{
		"studentId": student.ID,
		"title":     "strict",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, string(payload))

	var goal models.Goal
	require.NoError(t, json.Unmarshal(payload, &goal))

	resp, _ = doJSON(t, app, token, "PUT", fmt.Sprintf("/api/goals/%s/progress", goal.ID), map[string]interface{}{
		"progress": 150,
		"note":     "too much",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	status := models.GoalCompleted
	resp, _ = doJSON(t, app, token, "PUT", fmt.Sprintf("/api/goals/%s", goal.ID), map[string]interface{}{
		"status": status,
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestGoalRoutesRequireAuth(t *testing.T) {
	app, _ := setupApp(t)

	req := httptest.NewRequest("GET", "/api/goals/", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
