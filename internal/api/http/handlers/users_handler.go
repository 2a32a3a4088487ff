package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/enpl/fieldops-console/internal/api/dto"
	"github.com/enpl/fieldops-console/internal/auth"
	"github.com/enpl/fieldops-console/internal/domain"
	"github.com/enpl/fieldops-console/internal/service"
	apperrors "github.com/enpl/fieldops-console/pkg/util"
)

// UsersHandler exposes account management endpoints.
type UsersHandler struct {
	users       *service.UserService
	authService *service.AuthService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(userService *service.UserService, authService *service.AuthService) *UsersHandler {
	return &UsersHandler{users: userService, authService: authService}
}

// Register handles POST /users/register.
func (h *UsersHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterUserRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Username == "" || req.Password == "" || req.Usertype == "" {
		return fiber.NewError(http.StatusBadRequest, "username, password, usertype required")
	}

	role, err := domain.ParseRole(req.Usertype)
	if err != nil {
		return apperrors.NewValidationError(err.Error(), nil)
	}

	account, err := h.users.Register(c.Context(), service.RegisterInput{
		Username:  req.Username,
		Password:  req.Password,
		Role:      role,
		ManagerID: req.ManagerID,
		AdminID:   req.AdminID,
	})
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewUserResponse(account)})
}

// List handles GET /users.
func (h *UsersHandler) List(c *fiber.Ctx) error {
	users, err := h.users.ListAll(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewUserResponses(users)})
}

// ListScoped handles GET /users/all: the accounts visible to the caller.
func (h *UsersHandler) ListScoped(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	users, err := h.users.ScopeFor(c.Context(), principal.Account.ID, principal.Account.Role)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewUserResponses(users)})
}

// Managers handles GET /users/managers?adminId=<id>.
func (h *UsersHandler) Managers(c *fiber.Ctx) error {
	adminID, err := parseQueryID(c, "adminId")
	if err != nil {
		return err
	}

	managers, err := h.users.ListManagersForAdmin(c.Context(), adminID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewUserResponses(managers)})
}

// Executives handles GET /users/executives?managerId=<id>.
func (h *UsersHandler) Executives(c *fiber.Ctx) error {
	managerID, err := parseQueryID(c, "managerId")
	if err != nil {
		return err
	}

	executives, err := h.users.ListExecutivesForManager(c.Context(), managerID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewUserResponses(executives)})
}

// Get handles GET /users/:id.
func (h *UsersHandler) Get(c *fiber.Ctx) error {
	id, err := parsePathID(c)
	if err != nil {
		return err
	}

	account, err := h.users.Get(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewUserResponse(account)})
}

// Update handles PATCH /users/:id.
func (h *UsersHandler) Update(c *fiber.Ctx) error {
	id, err := parsePathID(c)
	if err != nil {
		return err
	}

	var req dto.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	input := service.UpdateInput{
		Username:  req.Username,
		Password:  req.Password,
		ManagerID: req.ManagerID,
		AdminID:   req.AdminID,
	}
	if req.Usertype != nil {
		role, err := domain.ParseRole(*req.Usertype)
		if err != nil {
			return apperrors.NewValidationError(err.Error(), nil)
		}
		input.Role = &role
	}

	account, err := h.users.Update(c.Context(), id, input)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewUserResponse(account)})
}

// Delete handles DELETE /users/:id.
func (h *UsersHandler) Delete(c *fiber.Ctx) error {
	id, err := parsePathID(c)
	if err != nil {
		return err
	}

	if err := h.users.Delete(c.Context(), id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"message": "User deleted successfully"}})
}

// ChangePassword handles PATCH /users/:id/change-password.
func (h *UsersHandler) ChangePassword(c *fiber.Ctx) error {
	id, err := parsePathID(c)
	if err != nil {
		return err
	}

	var req dto.ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	if err := h.authService.ChangePassword(c.Context(), id, req.NewPassword, req.ConfirmPassword); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"message": "Password updated successfully"}})
}

func parsePathID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return 0, apperrors.NewValidationError("Invalid ID format", nil)
	}
	return id, nil
}

func parseQueryID(c *fiber.Ctx, name string) (int64, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, apperrors.NewValidationError(name+" is required", nil)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError(name+" must be a positive number", nil)
	}
	return id, nil
}
