package api_test

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"fittrack/internal/api"
	"fittrack/internal/gateway"
	"fittrack/internal/models"
	"fittrack/internal/state"
	"fittrack/internal/storage"

	"github.com/gofiber/fiber/v2"
)

// fakeRemote answers login with a canned session and everything else
// with an empty JSON object.
func fakeRemote(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/login/":
			json.NewEncoder(w).Encode(models.AuthResponse{
				Token: "tok-1",
				User:  models.Profile{ID: "u1", Email: "a@b.c", Username: "alice"},
			})
		default:
			w.Write([]byte("{}"))
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func setupTestApp(t *testing.T) (*fiber.App, *state.Controller, *sql.DB) {
	t.Helper()
	db, err := storage.Initialize(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })

	gw := gateway.New(fakeRemote(t).URL, db)
	ctrl := state.NewController(gw, db)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{"error": err.Error()})
		},
	})
	api.SetupRoutes(app, ctrl, db)
	return app, ctrl, db
}

func jsonRequest(method, target string, body interface{}) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func loginRequest(t *testing.T, app *fiber.App, ctrl *state.Controller) {
	t.Helper()
	resp, err := app.Test(jsonRequest("POST", "/api/auth/login", models.LoginRequest{
		Email:    "a@b.c",
		Password: "secret",
	}))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}
	// Wait out the post-login background loads so later assertions see a
	// settled view.
	ctrl.Flush()
}

func TestLoginProjectsDashboard(t *testing.T) {
	app, ctrl, _ := setupTestApp(t)
	loginRequest(t, app, ctrl)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/state", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}

	var body struct {
		Screen string          `json:"screen"`
		User   *models.Profile `json:"user"`
	}
	raw, _ := io.ReadAll(resp.Body)
	json.Unmarshal(raw, &body)

	if body.Screen != "dashboard" {
		t.Fatalf("Expected dashboard screen, got %s", body.Screen)
	}
	if body.User == nil || body.User.Username != "alice" {
		t.Fatalf("Expected user alice, got %+v", body.User)
	}
	if ctrl.CurrentScreen() != state.ScreenDashboard {
		t.Fatal("Expected controller on dashboard")
	}
}

func TestLoginRejectsMissingFields(t *testing.T) {
	app, _, _ := setupTestApp(t)

	resp, err := app.Test(jsonRequest("POST", "/api/auth/login", models.LoginRequest{Email: "a@b.c"}))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != 400 {
		t.Fatalf("Expected status 400, got %d", resp.StatusCode)
	}
}

func TestWeeklyRequiresAuth(t *testing.T) {
	app, _, _ := setupTestApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/state/weekly", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != 401 {
		t.Fatalf("Expected status 401, got %d", resp.StatusCode)
	}
}

func TestAddWorkoutProjectsOptimistically(t *testing.T) {
	app, ctrl, _ := setupTestApp(t)
	loginRequest(t, app, ctrl)

	resp, err := app.Test(jsonRequest("POST", "/api/workouts", models.WorkoutEntry{
		Name:            "Run",
		DurationMinutes: 30,
		CaloriesBurned:  250,
	}))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != 201 {
		t.Fatalf("Expected status 201, got %d", resp.StatusCode)
	}

	var added models.WorkoutEntry
	raw, _ := io.ReadAll(resp.Body)
	json.Unmarshal(raw, &added)
	if added.ID == "" || added.Category != "cardio" {
		t.Fatalf("Expected defaulted entry with id, got %+v", added)
	}

	ctrl.Flush()
	if view := ctrl.State(); len(view.Workouts) != 1 {
		t.Fatalf("Expected one workout in view, got %d", len(view.Workouts))
	}
}

func TestAddWorkoutValidation(t *testing.T) {
	app, ctrl, _ := setupTestApp(t)
	loginRequest(t, app, ctrl)

	resp, err := app.Test(jsonRequest("POST", "/api/workouts", models.WorkoutEntry{Name: ""}))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != 400 {
		t.Fatalf("Expected status 400, got %d", resp.StatusCode)
	}
}

func TestWaterToggleEndpoint(t *testing.T) {
	app, ctrl, _ := setupTestApp(t)
	loginRequest(t, app, ctrl)

	if resp, _ := app.Test(jsonRequest("POST", "/api/water/3", nil)); resp.StatusCode != 200 {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}

	resp, err := app.Test(jsonRequest("POST", "/api/water/2", nil))
	if err != nil {
		t.Fatal(err)
	}
	var body struct {
		WaterIntake int `json:"waterIntake"`
	}
	raw, _ := io.ReadAll(resp.Body)
	json.Unmarshal(raw, &body)
	if body.WaterIntake != 1 {
		t.Fatalf("Expected drain to 1, got %d", body.WaterIntake)
	}

	if resp, _ := app.Test(jsonRequest("POST", "/api/water/11", nil)); resp.StatusCode != 400 {
		t.Fatalf("Expected status 400 for out-of-range glass, got %d", resp.StatusCode)
	}
	ctrl.Flush()
}

func TestPreferencesRoundTrip(t *testing.T) {
	app, _, _ := setupTestApp(t)

	resp, err := app.Test(jsonRequest("PUT", "/api/preferences", map[string]bool{
		"water-reminders":   true,
		"workout-reminders": false,
	}))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}

	resp, err = app.Test(httptest.NewRequest("GET", "/api/preferences", nil))
	if err != nil {
		t.Fatal(err)
	}
	var prefs map[string]bool
	raw, _ := io.ReadAll(resp.Body)
	json.Unmarshal(raw, &prefs)
	if !prefs["water-reminders"] || prefs["workout-reminders"] {
		t.Fatalf("Expected stored preferences, got %v", prefs)
	}
}

func TestThemeNormalization(t *testing.T) {
	app, _, _ := setupTestApp(t)

	resp, err := app.Test(jsonRequest("PUT", "/api/theme", map[string]string{"theme": "neon"}))
	if err != nil {
		t.Fatal(err)
	}
	var body struct {
		Theme string `json:"theme"`
	}
	raw, _ := io.ReadAll(resp.Body)
	json.Unmarshal(raw, &body)
	if body.Theme != "light" {
		t.Fatalf("Expected unknown theme normalized to light, got %s", body.Theme)
	}
}

func TestPushSubscribeValidation(t *testing.T) {
	app, _, db := setupTestApp(t)

	resp, err := app.Test(jsonRequest("POST", "/api/push/subscribe", models.PushSubscription{Endpoint: "https://push.example/ep1"}))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != 400 {
		t.Fatalf("Expected status 400 for partial subscription, got %d", resp.StatusCode)
	}

	resp, err = app.Test(jsonRequest("POST", "/api/push/subscribe", models.PushSubscription{
		Endpoint: "https://push.example/ep1",
		P256dh:   "key",
		Auth:     "secret",
	}))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}

	subs, err := storage.PushSubscriptions(db)
	if err != nil {
		t.Fatal(err)
	}
	if len(subs) != 1 {
		t.Fatalf("Expected one stored subscription, got %d", len(subs))
	}

	resp, err = app.Test(jsonRequest("DELETE", "/api/push/unsubscribe", map[string]string{"endpoint": "https://push.example/ep1"}))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}
	subs, _ = storage.PushSubscriptions(db)
	if len(subs) != 0 {
		t.Fatalf("Expected subscription removed, got %d", len(subs))
	}
}

func TestVapidPublicKeyUnconfigured(t *testing.T) {
	t.Setenv("VAPID_PUBLIC_KEY", "")
	app, _, _ := setupTestApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/push/vapid-public-key", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != 503 {
		t.Fatalf("Expected status 503, got %d", resp.StatusCode)
	}
}

func TestHealthCheck(t *testing.T) {
	app, _, _ := setupTestApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/health", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}
}
