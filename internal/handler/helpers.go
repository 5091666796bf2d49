package handler

import (
	"context"
	"errors"

	"go-order-desk/pkg/apperr"
	"go-order-desk/pkg/jwt"
	"go-order-desk/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// operatorID returns the authenticated operator set by RequireAuth
func operatorID(c *fiber.Ctx) string {
	id, ok := c.Locals("operator_id").(string)
	if !ok || id == "" {
		return "system"
	}
	return id
}

func parseID(c *fiber.Ctx, param string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(param))
	if err != nil {
		return uuid.Nil, apperr.Validationf("invalid %s", param)
	}
	return id, nil
}

// requestContext carries the request-scoped logger into the service layer
func requestContext(c *fiber.Ctx) context.Context {
	return logger.WithContext(c.UserContext(), logger.FromFiber(c))
}

func invalidJSON(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid JSON", "kind": apperr.KindValidation.String()})
}

// respondError renders err as {"error", "kind"} with the status of its kind
func respondError(c *fiber.Ctx, err error) error {
	if errors.Is(err, jwt.ErrInvalidToken) || errors.Is(err, jwt.ErrMissingToken) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error(), "kind": "unauthorized"})
	}

	kind := apperr.KindOf(err)
	message := err.Error()
	if kind == apperr.KindInternal {
		logger.FromFiber(c).Error("request failed", zap.String("path", c.Path()), zap.Error(err))
		message = "Internal Server Error"
	}
	return c.Status(kind.HTTPStatus()).JSON(fiber.Map{"error": message, "kind": kind.String()})
}
