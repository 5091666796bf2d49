package handler

import (
	"go-order-desk/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ReportHandler struct {
	service service.ReportService
}

func NewReportHandler(s service.ReportService) *ReportHandler {
	return &ReportHandler{service: s}
}

// GetStats returns overview counters
func (h *ReportHandler) GetStats(c *fiber.Ctx) error {
	stats, err := h.service.GetStats(requestContext(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(stats)
}

// GetLowStock returns active products under the threshold
// Query params: threshold (default from LOW_STOCK_THRESHOLD)
func (h *ReportHandler) GetLowStock(c *fiber.Ctx) error {
	threshold := c.QueryInt("threshold", 0)
	products, err := h.service.LowStock(requestContext(c), threshold)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"threshold": threshold, "data": products})
}

// GetTopProducts ranks products by units sold
// Query params: limit (default 5, max 100)
func (h *ReportHandler) GetTopProducts(c *fiber.Ctx) error {
	sales, err := h.service.TopProducts(requestContext(c), c.QueryInt("limit", 0))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(sales)
}

func (h *ReportHandler) GetOrdersByStatus(c *fiber.Ctx) error {
	counts, err := h.service.OrdersByStatus(requestContext(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(counts)
}

func (h *ReportHandler) GetCustomerSummary(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	summary, err := h.service.CustomerSummary(requestContext(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(summary)
}
