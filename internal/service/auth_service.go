package service

import (
	"context"
	"errors"
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

// AuthService issues session tokens and manages password changes.
type AuthService struct {
	users      repository.UserRepository
	tokenMgr   *auth.TokenManager
	dispatcher events.Dispatcher
	bcryptCost int
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, users repository.UserRepository, dispatcher events.Dispatcher) *AuthService {
	return &AuthService{
		users:      users,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
		dispatcher: dispatcher,
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// Login validates credentials and issues a signed session token. Both a
// missing account and a hash mismatch return the same error so the endpoint
// cannot be used to enumerate usernames.
func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.User, string, time.Time, error) {
	account, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", time.Time{}, apperrors.NewUnauthorized("Invalid credentials")
		}
		return nil, "", time.Time{}, apperrors.MapError(err)
	}
	if err := auth.ComparePassword(account.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, apperrors.NewUnauthorized("Invalid credentials")
	}

	token, exp, err := s.tokenMgr.GenerateToken(account.ID, account.Username, account.Role)
	if err != nil {
		return nil, "", time.Time{}, apperrors.MapError(err)
	}
	return account, token, exp, nil
}

// ChangePassword re-hashes and persists a new password after confirming both
// inputs match.
func (s *AuthService) ChangePassword(ctx context.Context, accountID int64, newPassword, confirmPassword string) error {
	if newPassword == "" || newPassword != confirmPassword {
		return apperrors.NewValidationError("Passwords do not match", nil)
	}

	account, err := s.users.GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFoundMessage("User not found")
		}
		return apperrors.MapError(err)
	}

	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return apperrors.MapError(err)
	}

	account.PasswordHash = hash
	if err := s.users.Update(ctx, account); err != nil {
		return apperrors.MapError(err)
	}

	s.publish(ctx, events.EventPasswordChanged, events.AccountPayload{
		AccountID: account.ID,
		Username:  account.Username,
		Role:      account.Role,
	})
	return nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func (s *AuthService) publish(ctx context.Context, eventType events.EventType, payload any) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now(),
		Payload:   payload,
	})
}
