package handler

import (
	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Auth      *AuthHandler
	Customers *CustomerHandler
	Products  *ProductHandler
	Orders    *OrderHandler
	Reports   *ReportHandler
	System    *SystemHandler
}

// RegisterRoutes mounts the /api/v1 routes. requireAuth guards everything
// except login and health.
func RegisterRoutes(app *fiber.App, h Handlers, requireAuth fiber.Handler) {
	api := app.Group("/api/v1")

	// ============ PUBLIC ROUTES ============
	api.Get("/health", h.System.Health)
	api.Post("/auth/login", h.Auth.Login)

	// ============ PROTECTED ROUTES ============
	protected := api.Group("", requireAuth)
	protected.Get("/auth/me", h.Auth.Me)
	protected.Get("/snapshot", h.System.Snapshot)

	// Customer Routes
	protected.Get("/customers", h.Customers.GetCustomers)
	protected.Post("/customers", h.Customers.CreateCustomer)
	protected.Get("/customers/:id", h.Customers.GetCustomer)
	protected.Put("/customers/:id", h.Customers.UpdateCustomer)
	protected.Delete("/customers/:id", h.Customers.DeleteCustomer)
	protected.Get("/customers/:id/orders", h.Customers.GetCustomerOrders)

	// Product Routes
	protected.Get("/products", h.Products.GetProducts)
	protected.Post("/products", h.Products.CreateProduct)
	protected.Get("/products/available", h.Products.GetAvailableProducts)
	protected.Get("/products/:id", h.Products.GetProduct)
	protected.Put("/products/:id", h.Products.UpdateProduct)
	protected.Delete("/products/:id", h.Products.DeleteProduct)

	// Order Routes
	protected.Get("/orders", h.Orders.GetOrders)
	protected.Post("/orders", h.Orders.CreateOrder)
	protected.Get("/orders/:id", h.Orders.GetOrder)
	protected.Put("/orders/:id/status", h.Orders.UpdateOrderStatus)
	protected.Delete("/orders/:id", h.Orders.DeleteOrder)

	// Report Routes
	protected.Get("/reports/stats", h.Reports.GetStats)
	protected.Get("/reports/low-stock", h.Reports.GetLowStock)
	protected.Get("/reports/top-products", h.Reports.GetTopProducts)
	protected.Get("/reports/orders-by-status", h.Reports.GetOrdersByStatus)
	protected.Get("/reports/customers/:id", h.Reports.GetCustomerSummary)
}
