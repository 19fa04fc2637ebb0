package api

import (
	"fittrack/internal/gateway"
	"fittrack/internal/state"

	"github.com/gofiber/fiber/v2"
)

// StateHandler projects the current view. An optional ?screen= query
// switches screens first, which re-runs that screen's load.
func StateHandler(ctrl *state.Controller) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if screen := c.Query("screen"); screen != "" {
			if err := ctrl.ShowScreen(c.Context(), state.Screen(screen)); err != nil {
				if ctrl.CurrentUser() == nil {
					return fiber.NewError(fiber.StatusUnauthorized, "Not authenticated")
				}
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			}
		}

		view := ctrl.State()
		resp := fiber.Map{
			"screen":        ctrl.CurrentScreen(),
			"user":          ctrl.CurrentUser(),
			"state":         view,
			"activityLevel": ctrl.ActivityLevel(),
		}
		if u := ctrl.CurrentUser(); u != nil {
			resp["calorieGoal"] = gateway.CalculateDailyCalorieGoal(*u)
			resp["consumedCalories"] = state.ConsumedCalories(view.Meals)
			if bmi, ok := gateway.CalculateBMI(u.Weight, u.Height); ok {
				resp["bmi"] = bmi
			}
		}
		return c.JSON(resp)
	}
}

// FoodSearchHandler passes a food database query through to the remote.
func FoodSearchHandler(ctrl *state.Controller) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if ctrl.CurrentUser() == nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Not authenticated")
		}
		query := c.Query("q")
		if query == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Query is required")
		}
		return c.JSON(ctrl.SearchFoods(c.Context(), query))
	}
}

func LeaderboardHandler(ctrl *state.Controller) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if ctrl.CurrentUser() == nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Not authenticated")
		}
		return c.JSON(ctrl.Leaderboard(c.Context()))
	}
}

// WeeklyProgressHandler serves the chart contract: labels, calories and
// workouts as three parallel 7-slot arrays, zeroed when the remote is
// unavailable.
func WeeklyProgressHandler(ctrl *state.Controller) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if ctrl.CurrentUser() == nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Not authenticated")
		}
		return c.JSON(ctrl.WeeklyProgress(c.Context()))
	}
}
