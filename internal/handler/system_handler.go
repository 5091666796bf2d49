package handler

import (
	"context"
	"time"

	"go-order-desk/internal/loader"

	"github.com/gofiber/fiber/v2"
)

// Pinger checks storage reachability
type Pinger func(ctx context.Context) error

type SystemHandler struct {
	loader *loader.Loader
	ping   Pinger
}

func NewSystemHandler(l *loader.Loader, ping Pinger) *SystemHandler {
	return &SystemHandler{loader: l, ping: ping}
}

// Health reports whether the database answers
// GET /api/v1/health
func (h *SystemHandler) Health(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	if err := h.ping(ctx); err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "down", "database": err.Error()})
	}
	return c.JSON(fiber.Map{"status": "ok", "busy": h.loader.Busy()})
}

// Snapshot returns customers, products, orders and stats in one payload
// GET /api/v1/snapshot
func (h *SystemHandler) Snapshot(c *fiber.Ctx) error {
	snap, err := h.loader.LoadSync(requestContext(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(snap)
}
