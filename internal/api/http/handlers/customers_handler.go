package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/enpl/fieldops-console/internal/api/dto"
	"github.com/enpl/fieldops-console/internal/service"
)

// CustomersHandler exposes customer CRUD endpoints.
type CustomersHandler struct {
	customers *service.CustomerService
}

// NewCustomersHandler constructs handler.
func NewCustomersHandler(customerService *service.CustomerService) *CustomersHandler {
	return &CustomersHandler{customers: customerService}
}

// Create handles POST /customers.
func (h *CustomersHandler) Create(c *fiber.Ctx) error {
	var req dto.CustomerRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	customer, err := h.customers.Create(c.Context(), customerInput(req))
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewCustomerResponse(customer)})
}

// List handles GET /customers.
func (h *CustomersHandler) List(c *fiber.Ctx) error {
	customers, err := h.customers.ListAll(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewCustomerResponses(customers)})
}

// Get handles GET /customers/:id.
func (h *CustomersHandler) Get(c *fiber.Ctx) error {
	id, err := parsePathID(c)
	if err != nil {
		return err
	}

	customer, err := h.customers.Get(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewCustomerResponse(customer)})
}

// Update handles PATCH /customers/:id.
func (h *CustomersHandler) Update(c *fiber.Ctx) error {
	id, err := parsePathID(c)
	if err != nil {
		return err
	}

	var req dto.CustomerRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	customer, err := h.customers.Update(c.Context(), id, customerInput(req))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewCustomerResponse(customer)})
}

// Delete handles DELETE /customers/:id.
func (h *CustomersHandler) Delete(c *fiber.Ctx) error {
	id, err := parsePathID(c)
	if err != nil {
		return err
	}

	if err := h.customers.Delete(c.Context(), id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"message": "Customer deleted successfully"}})
}

func customerInput(req dto.CustomerRequest) service.CustomerInput {
	return service.CustomerInput{
		CustomerName:    req.CustomerName,
		CustomerAddress: req.CustomerAddress,
		GSTNumber:       req.GSTNumber,
		ContactName:     req.ContactName,
		ContactNumber:   req.ContactNumber,
		Email:           req.Email,
	}
}
