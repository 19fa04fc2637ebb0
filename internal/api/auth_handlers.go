package api

import (
	"context"

	"fittrack/internal/gateway"
	"fittrack/internal/models"
	"fittrack/internal/state"

	"github.com/gofiber/fiber/v2"
)

func LoginHandler(ctrl *state.Controller) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.LoginRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if req.Email == "" || req.Password == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Email and password are required")
		}

		if err := ctrl.Login(c.Context(), req.Email, req.Password); err != nil {
			if gateway.IsNetworkError(err) {
				return fiber.NewError(fiber.StatusBadGateway, "Remote service unreachable")
			}
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid credentials")
		}

		// Warm every screen; failures degrade to empty defaults.
		ctrl.LoadInitial(context.Background())

		return c.JSON(fiber.Map{
			"screen": ctrl.CurrentScreen(),
			"user":   ctrl.CurrentUser(),
		})
	}
}

func RegisterHandler(ctrl *state.Controller) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.RegisterRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if req.Email == "" || req.Username == "" || req.Password == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Email, username and password are required")
		}

		if err := ctrl.Register(c.Context(), req); err != nil {
			if gateway.IsNetworkError(err) {
				return fiber.NewError(fiber.StatusBadGateway, "Remote service unreachable")
			}
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		ctrl.LoadInitial(context.Background())

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"screen": ctrl.CurrentScreen(),
			"user":   ctrl.CurrentUser(),
		})
	}
}

func LogoutHandler(ctrl *state.Controller) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctrl.Logout(c.Context())
		return c.JSON(fiber.Map{"screen": ctrl.CurrentScreen()})
	}
}
