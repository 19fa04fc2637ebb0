package api

import (
	"database/sql"

	"fittrack/internal/state"

	"github.com/gofiber/fiber/v2"
)

func SetupRoutes(app *fiber.App, ctrl *state.Controller, db *sql.DB) {
	api := app.Group("/api")

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/login", LoginHandler(ctrl))
	auth.Post("/register", RegisterHandler(ctrl))
	auth.Post("/logout", LogoutHandler(ctrl))

	// VAPID public key endpoint (public)
	api.Get("/push/vapid-public-key", VapidPublicKeyHandler())

	// State projection
	api.Get("/state", StateHandler(ctrl))
	api.Get("/state/weekly", WeeklyProgressHandler(ctrl))
	api.Get("/foods/search", FoodSearchHandler(ctrl))
	api.Get("/leaderboard", LeaderboardHandler(ctrl))

	// Optimistic writes
	api.Post("/workouts", AddWorkoutHandler(ctrl))
	api.Post("/meals", AddMealHandler(ctrl))
	api.Post("/goals", AddGoalHandler(ctrl))
	api.Post("/friends", AddFriendHandler(ctrl))
	api.Post("/water/:glass", WaterGlassHandler(ctrl))
	api.Post("/challenges/:id/join", JoinChallengeHandler(ctrl))
	api.Patch("/profile", UpdateProfileHandler(ctrl))

	// Local settings
	api.Get("/preferences", PreferencesHandler(db))
	api.Put("/preferences", UpdatePreferencesHandler(db))
	api.Get("/theme", ThemeHandler(db))
	api.Put("/theme", UpdateThemeHandler(db))

	// Push subscription routes
	push := api.Group("/push")
	push.Post("/subscribe", SubscribePushHandler(db))
	push.Delete("/unsubscribe", UnsubscribePushHandler(db))

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
}
