package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/enpl/fieldops-console/internal/api/dto"
	"github.com/enpl/fieldops-console/internal/service"
)

// SitesHandler exposes site CRUD endpoints.
type SitesHandler struct {
	sites *service.SiteService
}

// NewSitesHandler constructs handler.
func NewSitesHandler(siteService *service.SiteService) *SitesHandler {
	return &SitesHandler{sites: siteService}
}

// Create handles POST /site.
func (h *SitesHandler) Create(c *fiber.Ctx) error {
	var req dto.SiteRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	site, err := h.sites.Create(c.Context(), siteInput(req))
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewSiteResponse(site)})
}

// List handles GET /site.
func (h *SitesHandler) List(c *fiber.Ctx) error {
	sites, err := h.sites.ListAll(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewSiteResponses(sites)})
}

// Get handles GET /site/:id.
func (h *SitesHandler) Get(c *fiber.Ctx) error {
	id, err := parsePathID(c)
	if err != nil {
		return err
	}

	site, err := h.sites.Get(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewSiteResponse(site)})
}

// Update handles PATCH /site/:id.
func (h *SitesHandler) Update(c *fiber.Ctx) error {
	id, err := parsePathID(c)
	if err != nil {
		return err
	}

	var req dto.SiteRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	site, err := h.sites.Update(c.Context(), id, siteInput(req))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewSiteResponse(site)})
}

// Delete handles DELETE /site/:id, cascading dependent tasks.
func (h *SitesHandler) Delete(c *fiber.Ctx) error {
	id, err := parsePathID(c)
	if err != nil {
		return err
	}

	if err := h.sites.Delete(c.Context(), id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"message": "Site deleted successfully"}})
}

func siteInput(req dto.SiteRequest) service.SiteInput {
	return service.SiteInput{
		CustomerID:    req.CustomerID,
		SiteName:      req.SiteName,
		SiteAddress:   req.SiteAddress,
		ContactName:   req.ContactName,
		ContactNumber: req.ContactNumber,
		ContactEmail:  req.ContactEmail,
	}
}
