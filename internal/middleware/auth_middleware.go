package middleware

import (
	"strings"

	"go-order-desk/internal/repository"
	"go-order-desk/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

// RequireAuth is middleware that validates JWT token and sets operator info in context
func RequireAuth(tokens *jwt.Manager, operatorRepo repository.OperatorRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// Get Authorization header
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return unauthorized(c, "Missing authorization token")
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return unauthorized(c, "Invalid authorization format. Use: Bearer <token>")
		}
		tokenString := parts[1]

		claims, err := tokens.ValidateToken(tokenString)
		if err != nil {
			return unauthorized(c, "Invalid or expired token")
		}

		// Deactivated operators lose access before their token expires
		operator, err := operatorRepo.FindByID(claims.OperatorID)
		if err != nil {
			return unauthorized(c, "Operator not found")
		}
		if !operator.IsActive {
			return unauthorized(c, "Operator account is inactive")
		}

		c.Locals("operator_id", claims.OperatorID.String())
		c.Locals("operator_email", claims.Email)
		c.Locals("operator_name", claims.Name)
		c.Locals("token", tokenString)

		return c.Next()
	}
}

func unauthorized(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": message, "kind": "unauthorized"})
}
