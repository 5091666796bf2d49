package handler

import (
	"go-order-desk/internal/service"

	"github.com/gofiber/fiber/v2"
)

type CustomerHandler struct {
	customers service.CustomerService
	orders    service.OrderService
}

func NewCustomerHandler(customers service.CustomerService, orders service.OrderService) *CustomerHandler {
	return &CustomerHandler{customers: customers, orders: orders}
}

// GET /api/v1/customers
func (h *CustomerHandler) GetCustomers(c *fiber.Ctx) error {
	customers, err := h.customers.ListCustomers(requestContext(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(customers)
}

// GET /api/v1/customers/:id
func (h *CustomerHandler) GetCustomer(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	customer, err := h.customers.GetCustomer(requestContext(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(customer)
}

// POST /api/v1/customers
func (h *CustomerHandler) CreateCustomer(c *fiber.Ctx) error {
	var req service.CustomerRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}
	customer, err := h.customers.CreateCustomer(requestContext(c), &req, operatorID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Customer created", "data": customer})
}

// PUT /api/v1/customers/:id
func (h *CustomerHandler) UpdateCustomer(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var req service.CustomerRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}
	customer, err := h.customers.UpdateCustomer(requestContext(c), id, &req, operatorID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Customer updated", "data": customer})
}

// DELETE /api/v1/customers/:id
func (h *CustomerHandler) DeleteCustomer(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	if err := h.customers.DeleteCustomer(requestContext(c), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Customer deleted"})
}

// GET /api/v1/customers/:id/orders
func (h *CustomerHandler) GetCustomerOrders(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	orders, err := h.orders.ListCustomerOrders(requestContext(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(orders)
}
