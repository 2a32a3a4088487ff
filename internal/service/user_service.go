package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/enpl/fieldops-console/internal/auth"
	"github.com/enpl/fieldops-console/internal/config"
	"github.com/enpl/fieldops-console/internal/domain"
	"github.com/enpl/fieldops-console/internal/events"
	"github.com/enpl/fieldops-console/internal/repository"
	apperrors "github.com/enpl/fieldops-console/pkg/util"
)

// UserService manages the account lifecycle and resolves hierarchy scopes.
type UserService struct {
	users             repository.UserRepository
	cache             ScopeCache
	dispatcher        events.Dispatcher
	bcryptCost        int
	bootstrapUsername string
}

// NewUserService builds the service.
func NewUserService(cfg config.Config, users repository.UserRepository, cache ScopeCache, dispatcher events.Dispatcher) *UserService {
	if cache == nil {
		cache = NewNoopScopeCache()
	}
	return &UserService{
		users:             users,
		cache:             cache,
		dispatcher:        dispatcher,
		bcryptCost:        cfg.Auth.BcryptCost,
		bootstrapUsername: cfg.Auth.BootstrapUsername,
	}
}

// RegisterInput describes account creation parameters. ManagerID is required
// for executives; AdminID records which admin the account belongs to.
type RegisterInput struct {
	Username  string
	Password  string
	Role      domain.Role
	ManagerID *int64
	AdminID   *int64
}

// UpdateInput carries partial account updates; nil fields retain the stored value.
type UpdateInput struct {
	Username  *string
	Password  *string
	Role      *domain.Role
	ManagerID *int64
	AdminID   *int64
}

// Register creates an account with its role-dependent associations connected
// at creation time.
func (s *UserService) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	if input.Username == "" || input.Password == "" {
		return nil, apperrors.NewValidationError("username and password required", nil)
	}
	if input.Role == domain.RoleExecutive && input.ManagerID == nil {
		return nil, apperrors.NewValidationError("managerId is required for EXECUTIVE user type", nil)
	}

	if _, err := s.users.GetByUsername(ctx, input.Username); err == nil {
		return nil, apperrors.NewConflict("Username already exists", nil)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.MapError(err)
	}

	if input.ManagerID != nil {
		if err := s.ensureRole(ctx, *input.ManagerID, domain.RoleManager, "managerId"); err != nil {
			return nil, err
		}
	}
	if input.AdminID != nil {
		if err := s.ensureRole(ctx, *input.AdminID, domain.RoleAdmin, "adminId"); err != nil {
			return nil, err
		}
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	account := &domain.User{
		Username:     input.Username,
		PasswordHash: hash,
		Role:         input.Role,
		ManagerID:    input.ManagerID,
		AdminID:      input.AdminID,
	}
	if err := s.users.Create(ctx, account); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.cache.Invalidate(ctx)
	s.publishAccount(ctx, events.EventAccountCreated, account)
	return account, nil
}

// Update applies a partial update; the password, if present, is re-hashed.
// Username uniqueness is not re-checked here; the database unique index is
// the only backstop on this path.
func (s *UserService) Update(ctx context.Context, id int64, input UpdateInput) (*domain.User, error) {
	account, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundMessage(fmt.Sprintf("User with ID %d not found", id))
		}
		return nil, apperrors.MapError(err)
	}

	if input.Username != nil {
		account.Username = *input.Username
	}
	if input.Role != nil {
		account.Role = *input.Role
	}
	if input.Password != nil && *input.Password != "" {
		hash, err := auth.HashPassword(*input.Password, s.bcryptCost)
		if err != nil {
			return nil, apperrors.MapError(err)
		}
		account.PasswordHash = hash
	}
	if input.ManagerID != nil {
		if *input.ManagerID == id {
			return nil, apperrors.NewValidationError("account cannot be its own manager", nil)
		}
		if err := s.ensureRole(ctx, *input.ManagerID, domain.RoleManager, "managerId"); err != nil {
			return nil, err
		}
		account.ManagerID = input.ManagerID
	}
	if input.AdminID != nil {
		if *input.AdminID == id {
			return nil, apperrors.NewValidationError("account cannot be its own admin", nil)
		}
		if err := s.ensureRole(ctx, *input.AdminID, domain.RoleAdmin, "adminId"); err != nil {
			return nil, err
		}
		account.AdminID = input.AdminID
	}

	if err := s.users.Update(ctx, account); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.cache.Invalidate(ctx)
	s.publishAccount(ctx, events.EventAccountUpdated, account)
	return account, nil
}

// Delete removes an account unless other accounts still reference it as
// their manager, or it is the seeded bootstrap account.
func (s *UserService) Delete(ctx context.Context, id int64) error {
	account, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFoundMessage(fmt.Sprintf("User with ID %d not found", id))
		}
		return apperrors.MapError(err)
	}

	if account.Username == s.bootstrapUsername {
		return apperrors.NewForbidden("bootstrap account cannot be deleted")
	}

	subordinates, err := s.users.CountSubordinates(ctx, id)
	if err != nil {
		return apperrors.MapError(err)
	}
	if subordinates > 0 {
		return apperrors.NewConflict("has associated users", map[string]any{"subordinates": subordinates})
	}

	if err := s.users.Delete(ctx, id); err != nil {
		return apperrors.MapError(err)
	}

	s.cache.Invalidate(ctx)
	s.publishAccount(ctx, events.EventAccountDeleted, account)
	return nil
}

// Get returns a single account.
func (s *UserService) Get(ctx context.Context, id int64) (*domain.User, error) {
	account, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundMessage(fmt.Sprintf("User with ID %d not found", id))
		}
		return nil, apperrors.MapError(err)
	}
	return account, nil
}

// ListAll returns every account. Reserved for superadmins at the route layer.
func (s *UserService) ListAll(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.ListAll(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return users, nil
}

// ScopeFor computes the visibility scope for an account: superadmins see
// everyone, admins see the accounts carrying their admin id, managers see
// their executives, executives see only themselves.
func (s *UserService) ScopeFor(ctx context.Context, accountID int64, role domain.Role) ([]domain.User, error) {
	switch role {
	case domain.RoleSuperadmin:
		return s.ListAll(ctx)
	case domain.RoleAdmin:
		return s.cachedList(ctx, fmt.Sprintf("admin-scope:%d", accountID), func() ([]domain.User, error) {
			return s.users.ListByAdminID(ctx, accountID)
		})
	case domain.RoleManager:
		return s.cachedList(ctx, fmt.Sprintf("executives:%d", accountID), func() ([]domain.User, error) {
			return s.users.ListExecutivesByManagerID(ctx, accountID)
		})
	case domain.RoleExecutive:
		account, err := s.Get(ctx, accountID)
		if err != nil {
			return nil, err
		}
		return []domain.User{*account}, nil
	default:
		return nil, apperrors.NewValidationError(fmt.Sprintf("unknown role %q", role), nil)
	}
}

// ListManagersForAdmin returns the managers created by the given admin.
func (s *UserService) ListManagersForAdmin(ctx context.Context, adminID int64) ([]domain.User, error) {
	return s.cachedList(ctx, fmt.Sprintf("managers:%d", adminID), func() ([]domain.User, error) {
		return s.users.ListManagersByAdminID(ctx, adminID)
	})
}

// ListExecutivesForManager returns the executives reporting to the manager.
func (s *UserService) ListExecutivesForManager(ctx context.Context, managerID int64) ([]domain.User, error) {
	return s.cachedList(ctx, fmt.Sprintf("executives:%d", managerID), func() ([]domain.User, error) {
		return s.users.ListExecutivesByManagerID(ctx, managerID)
	})
}

func (s *UserService) cachedList(ctx context.Context, key string, load func() ([]domain.User, error)) ([]domain.User, error) {
	if users, ok := s.cache.Get(ctx, key); ok {
		return users, nil
	}
	users, err := load()
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	s.cache.Set(ctx, key, users)
	return users, nil
}

func (s *UserService) ensureRole(ctx context.Context, id int64, want domain.Role, field string) error {
	ref, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewValidationError(fmt.Sprintf("%s %d does not reference an existing account", field, id), nil)
		}
		return apperrors.MapError(err)
	}
	if ref.Role != want {
		return apperrors.NewValidationError(fmt.Sprintf("%s must reference a %s account", field, want), nil)
	}
	return nil
}

func (s *UserService) publishAccount(ctx context.Context, eventType events.EventType, account *domain.User) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now(),
		Payload: events.AccountPayload{
			AccountID: account.ID,
			Username:  account.Username,
			Role:      account.Role,
		},
	})
}
