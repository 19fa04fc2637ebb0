package main

import (
	"context"
	"log"
	"os"
	"strings"
	"time"

	"fittrack/internal/api"
	"fittrack/internal/gateway"
	"fittrack/internal/notify"
	"fittrack/internal/state"
	"fittrack/internal/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	// Initialize local store
	dbPath := os.Getenv("FITTRACK_DB")
	if dbPath == "" {
		dbPath = "./data/fittrack.db"
	}
	db, err := storage.Initialize(dbPath)
	if err != nil {
		log.Fatal("Failed to initialize local store:", err)
	}
	defer db.Close()

	// Remote gateway. A stored session is restored here; expired tokens
	// are discarded.
	baseURL := os.Getenv("API_BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8000/api/v1"
	}
	gw := gateway.New(baseURL, db)

	ctrl := state.NewController(gw, db)

	if gw.IsAuthenticated() {
		log.Println("Restored session, loading initial state...")
		ctrl.LoadInitial(context.Background())
	}

	// Run background workers only if enabled (default: true)
	enableWorkers := os.Getenv("ENABLE_WORKERS")
	if enableWorkers == "" {
		enableWorkers = "true"
	}

	if enableWorkers == "true" {
		log.Println("Starting reminder worker...")
		go func() {
			ticker := time.NewTicker(30 * time.Minute)
			defer ticker.Stop()
			for range ticker.C {
				if err := notify.ProcessReminders(db, ctrl); err != nil {
					log.Printf("Reminder worker error: %v", err)
				}
			}
		}()
	} else {
		log.Println("Reminder worker disabled (set ENABLE_WORKERS=true to enable)")
	}

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	// Middleware
	app.Use(logger.New())

	// CORS configuration: restrict to specific origins
	allowedOrigins := strings.TrimSpace(os.Getenv("ALLOWED_ORIGINS"))
	if allowedOrigins == "" {
		allowedOrigins = "http://localhost:80,http://localhost:5173" // Default for local dev
		log.Println("WARNING: Using default ALLOWED_ORIGINS. Set ALLOWED_ORIGINS env var for production.")
	} else if allowedOrigins != "*" {
		parts := strings.Split(allowedOrigins, ",")
		for i, p := range parts {
			parts[i] = strings.TrimSpace(p)
		}
		allowedOrigins = strings.Join(parts, ",")
	}

	log.Printf("CORS allowed origins: %s", allowedOrigins)

	app.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
	}))

	// Setup routes
	api.SetupRoutes(app, ctrl, db)

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}

	log.Printf("Server starting on port %s", port)
	log.Fatal(app.Listen(":" + port))
}
