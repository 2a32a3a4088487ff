package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/enpl/fieldops-console/internal/domain"
	"github.com/enpl/fieldops-console/internal/repository"
	apperrors "github.com/enpl/fieldops-console/pkg/util"
)

const serviceSequenceKind = "service"

// CatalogService manages the service catalog, including the generated
// ENPL-SR-NN business identifiers.
type CatalogService struct {
	services  repository.ServiceRepository
	sequences repository.SequenceRepository
}

// NewCatalogService builds the service.
func NewCatalogService(services repository.ServiceRepository, sequences repository.SequenceRepository) *CatalogService {
	return &CatalogService{services: services, sequences: sequences}
}

// ServiceInput carries catalog fields for create and update.
type ServiceInput struct {
	ServiceName *string
	Description *string
}

// Create assigns the next ENPL-SR business ID and inserts the record. The ID
// comes from an atomic counter, so concurrent creates never collide.
func (s *CatalogService) Create(ctx context.Context, input ServiceInput) (*domain.Service, error) {
	if input.ServiceName == nil || *input.ServiceName == "" {
		return nil, apperrors.NewValidationError("serviceName is required", nil)
	}
	if input.Description == nil || *input.Description == "" {
		return nil, apperrors.NewValidationError("description is required", nil)
	}

	seq, err := s.sequences.Next(ctx, serviceSequenceKind)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	service := &domain.Service{
		ServiceID:   fmt.Sprintf("ENPL-SR-%02d", seq),
		ServiceName: *input.ServiceName,
		Description: *input.Description,
	}
	if err := s.services.Create(ctx, service); err != nil {
		return nil, apperrors.MapError(err)
	}
	return service, nil
}

// Get returns a catalog entry by id.
func (s *CatalogService) Get(ctx context.Context, id int64) (*domain.Service, error) {
	service, err := s.services.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundMessage(fmt.Sprintf("Service with ID %d not found", id))
		}
		return nil, apperrors.MapError(err)
	}
	return service, nil
}

// ListAll returns all catalog entries.
func (s *CatalogService) ListAll(ctx context.Context) ([]domain.Service, error) {
	services, err := s.services.ListAll(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return services, nil
}

// Update merges supplied fields. The business ID is immutable.
func (s *CatalogService) Update(ctx context.Context, id int64, input ServiceInput) (*domain.Service, error) {
	service, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.ServiceName != nil {
		service.ServiceName = *input.ServiceName
	}
	if input.Description != nil {
		service.Description = *input.Description
	}

	if err := s.services.Update(ctx, service); err != nil {
		return nil, apperrors.MapError(err)
	}
	return service, nil
}

// Delete removes a catalog entry unconditionally; tasks referencing it are
// not checked.
func (s *CatalogService) Delete(ctx context.Context, id int64) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.services.Delete(ctx, id); err != nil {
		return apperrors.MapError(err)
	}
	return nil
}
