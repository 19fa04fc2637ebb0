package api

import (
	"database/sql"

	"fittrack/internal/storage"

	"github.com/gofiber/fiber/v2"
)

// Settings live entirely in the local store; no remote round trip.

func PreferencesHandler(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		prefs, err := storage.Preferences(db)
		if err != nil {
			return err
		}
		return c.JSON(prefs)
	}
}

func UpdatePreferencesHandler(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var prefs map[string]bool
		if err := c.BodyParser(&prefs); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		for key, enabled := range prefs {
			if err := storage.SetPreference(db, key, enabled); err != nil {
				return err
			}
		}

		updated, err := storage.Preferences(db)
		if err != nil {
			return err
		}
		return c.JSON(updated)
	}
}

func ThemeHandler(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"theme": storage.Theme(db)})
	}
}

func UpdateThemeHandler(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body struct {
			Theme string `json:"theme"`
		}
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if err := storage.SetTheme(db, body.Theme); err != nil {
			return err
		}
		return c.JSON(fiber.Map{"theme": storage.Theme(db)})
	}
}
