package handlers

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/enpl/fieldops-console/internal/api/dto"
	"github.com/enpl/fieldops-console/internal/domain"
	"github.com/enpl/fieldops-console/internal/service"
	apperrors "github.com/enpl/fieldops-console/pkg/util"
)

// TasksHandler exposes task CRUD endpoints.
type TasksHandler struct {
	tasks *service.TaskService
}

// NewTasksHandler constructs handler.
func NewTasksHandler(taskService *service.TaskService) *TasksHandler {
	return &TasksHandler{tasks: taskService}
}

// Create handles POST /tasks.
func (h *TasksHandler) Create(c *fiber.Ctx) error {
	var req dto.TaskRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	input, err := taskInput(req)
	if err != nil {
		return err
	}

	task, err := h.tasks.Create(c.Context(), input)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewTaskResponse(task)})
}

// List handles GET /tasks.
func (h *TasksHandler) List(c *fiber.Ctx) error {
	tasks, err := h.tasks.ListAll(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTaskResponses(tasks)})
}

// Get handles GET /tasks/:id.
func (h *TasksHandler) Get(c *fiber.Ctx) error {
	id, err := parsePathID(c)
	if err != nil {
		return err
	}

	task, err := h.tasks.Get(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTaskResponse(task)})
}

// Update handles PATCH /tasks/:id.
func (h *TasksHandler) Update(c *fiber.Ctx) error {
	id, err := parsePathID(c)
	if err != nil {
		return err
	}

	var req dto.TaskRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	input, err := taskInput(req)
	if err != nil {
		return err
	}

	task, err := h.tasks.Update(c.Context(), id, input)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTaskResponse(task)})
}

// Delete handles DELETE /tasks/:id.
func (h *TasksHandler) Delete(c *fiber.Ctx) error {
	id, err := parsePathID(c)
	if err != nil {
		return err
	}

	if err := h.tasks.Delete(c.Context(), id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"message": "Task deleted successfully"}})
}

func taskInput(req dto.TaskRequest) (service.TaskInput, error) {
	input := service.TaskInput{
		CustomerName: req.CustomerName,
		SiteName:     req.SiteName,
		ServiceName:  req.ServiceName,
		Description:  req.Description,
		Remark:       req.Remark,
	}
	if req.ServiceType != nil {
		serviceType, err := domain.ParseServiceType(*req.ServiceType)
		if err != nil {
			return service.TaskInput{}, apperrors.NewValidationError(err.Error(), nil)
		}
		input.ServiceType = &serviceType
	}
	if req.Date != nil {
		date, err := parseTaskDate(*req.Date)
		if err != nil {
			return service.TaskInput{}, apperrors.NewValidationError("date must be YYYY-MM-DD or RFC 3339", nil)
		}
		input.Date = &date
	}
	return input, nil
}

func parseTaskDate(raw string) (time.Time, error) {
	if date, err := time.Parse(time.RFC3339, raw); err == nil {
		return date, nil
	}
	return time.Parse("2006-01-02", raw)
}
