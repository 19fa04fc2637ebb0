package api

import (
	"strconv"

	"fittrack/internal/models"
	"fittrack/internal/state"

	"github.com/gofiber/fiber/v2"
)

// Write handlers apply the optimistic update and answer immediately; the
// remote sync happens in the background and never blocks the response.

func AddWorkoutHandler(ctrl *state.Controller) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if ctrl.CurrentUser() == nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Not authenticated")
		}

		var w models.WorkoutEntry
		if err := c.BodyParser(&w); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		added, err := ctrl.AddWorkout(w)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(added)
	}
}

func AddMealHandler(ctrl *state.Controller) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if ctrl.CurrentUser() == nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Not authenticated")
		}

		var m models.MealEntry
		if err := c.BodyParser(&m); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		added, err := ctrl.AddMeal(m)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(added)
	}
}

func AddGoalHandler(ctrl *state.Controller) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if ctrl.CurrentUser() == nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Not authenticated")
		}

		var g models.Goal
		if err := c.BodyParser(&g); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		added, err := ctrl.AddGoal(g)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(added)
	}
}

func AddFriendHandler(ctrl *state.Controller) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if ctrl.CurrentUser() == nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Not authenticated")
		}

		var body struct {
			Identifier string `json:"identifier"`
		}
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		if body.Identifier == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Identifier is required")
		}

		added, err := ctrl.AddFriend(body.Identifier)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(added)
	}
}

func WaterGlassHandler(ctrl *state.Controller) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if ctrl.CurrentUser() == nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Not authenticated")
		}

		glass, err := strconv.Atoi(c.Params("glass"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Glass must be a number")
		}

		intake, err := ctrl.SetWaterGlass(glass)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return c.JSON(fiber.Map{"waterIntake": intake})
	}
}

func JoinChallengeHandler(ctrl *state.Controller) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if ctrl.CurrentUser() == nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Not authenticated")
		}

		if err := ctrl.JoinChallenge(c.Params("id")); err != nil {
			return fiber.NewError(fiber.StatusNotFound, err.Error())
		}
		return c.JSON(fiber.Map{"success": true})
	}
}

func UpdateProfileHandler(ctrl *state.Controller) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if ctrl.CurrentUser() == nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Not authenticated")
		}

		var update models.ProfileUpdate
		if err := c.BodyParser(&update); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if err := ctrl.UpdateProfile(update); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return c.JSON(ctrl.CurrentUser())
	}
}
