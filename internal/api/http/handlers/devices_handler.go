package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/enpl/fieldops-console/internal/api/dto"
	"github.com/enpl/fieldops-console/internal/service"
)

// DevicesHandler exposes device CRUD endpoints.
type DevicesHandler struct {
	devices *service.DeviceService
}

// NewDevicesHandler constructs handler.
func NewDevicesHandler(deviceService *service.DeviceService) *DevicesHandler {
	return &DevicesHandler{devices: deviceService}
}

// Create handles POST /devices.
func (h *DevicesHandler) Create(c *fiber.Ctx) error {
	var req dto.DeviceRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	device, err := h.devices.Create(c.Context(), deviceInput(req))
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewDeviceResponse(device)})
}

// List handles GET /devices.
func (h *DevicesHandler) List(c *fiber.Ctx) error {
	devices, err := h.devices.ListAll(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewDeviceResponses(devices)})
}

// Get handles GET /devices/:id.
func (h *DevicesHandler) Get(c *fiber.Ctx) error {
	id, err := parsePathID(c)
	if err != nil {
		return err
	}

	device, err := h.devices.Get(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewDeviceResponse(device)})
}

// Update handles PATCH /devices/:id.
func (h *DevicesHandler) Update(c *fiber.Ctx) error {
	id, err := parsePathID(c)
	if err != nil {
		return err
	}

	var req dto.DeviceRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	device, err := h.devices.Update(c.Context(), id, deviceInput(req))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewDeviceResponse(device)})
}

// Delete handles DELETE /devices/:id.
func (h *DevicesHandler) Delete(c *fiber.Ctx) error {
	id, err := parsePathID(c)
	if err != nil {
		return err
	}

	if err := h.devices.Delete(c.Context(), id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"message": "Device deleted successfully"}})
}

func deviceInput(req dto.DeviceRequest) service.DeviceInput {
	return service.DeviceInput{
		DeviceName:     req.DeviceName,
		DeviceType:     req.DeviceType,
		DeviceIP:       req.DeviceIP,
		DevicePort:     req.DevicePort,
		DeviceUsername: req.DeviceUsername,
		DevicePassword: req.DevicePassword,
	}
}
