package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/enpl/fieldops-console/internal/api/dto"
	"github.com/enpl/fieldops-console/internal/service"
)

// ServicesHandler exposes catalog CRUD endpoints.
type ServicesHandler struct {
	catalog *service.CatalogService
}

// NewServicesHandler constructs handler.
func NewServicesHandler(catalogService *service.CatalogService) *ServicesHandler {
	return &ServicesHandler{catalog: catalogService}
}

// Create handles POST /services.
func (h *ServicesHandler) Create(c *fiber.Ctx) error {
	var req dto.ServiceRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	svc, err := h.catalog.Create(c.Context(), service.ServiceInput{
		ServiceName: req.ServiceName,
		Description: req.Description,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewServiceResponse(svc)})
}

// List handles GET /services.
func (h *ServicesHandler) List(c *fiber.Ctx) error {
	services, err := h.catalog.ListAll(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewServiceResponses(services)})
}

// Get handles GET /services/:id.
func (h *ServicesHandler) Get(c *fiber.Ctx) error {
	id, err := parsePathID(c)
	if err != nil {
		return err
	}

	svc, err := h.catalog.Get(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewServiceResponse(svc)})
}

// Update handles PATCH /services/:id.
func (h *ServicesHandler) Update(c *fiber.Ctx) error {
	id, err := parsePathID(c)
	if err != nil {
		return err
	}

	var req dto.ServiceRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	svc, err := h.catalog.Update(c.Context(), id, service.ServiceInput{
		ServiceName: req.ServiceName,
		Description: req.Description,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewServiceResponse(svc)})
}

// Delete handles DELETE /services/:id.
func (h *ServicesHandler) Delete(c *fiber.Ctx) error {
	id, err := parsePathID(c)
	if err != nil {
		return err
	}

	if err := h.catalog.Delete(c.Context(), id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"message": "Service deleted successfully"}})
}
