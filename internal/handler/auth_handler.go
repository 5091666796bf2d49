package handler

import (
	"errors"

	"go-order-desk/internal/service"
	"go-order-desk/pkg/validator"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login handles operator authentication
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req service.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}
	if err := validator.Check(&req); err != nil {
		return respondError(c, err)
	}

	response, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) || errors.Is(err, service.ErrOperatorInactive) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error(), "kind": "unauthorized"})
		}
		return respondError(c, err)
	}

	return c.JSON(response)
}

// Me returns the operator behind the bearer token
// GET /api/v1/auth/me
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	token, _ := c.Locals("token").(string)
	operator, err := h.authService.ValidateToken(token)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(operator)
}
