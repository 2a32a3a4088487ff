package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/enpl/fieldops-console/internal/domain"
	"github.com/enpl/fieldops-console/internal/events"
	"github.com/enpl/fieldops-console/internal/repository"
	apperrors "github.com/enpl/fieldops-console/pkg/util"
)

// SiteService manages customer sites and their dependent tasks.
type SiteService struct {
	sites      repository.SiteRepository
	tasks      repository.TaskRepository
	customers  repository.CustomerRepository
	dispatcher events.Dispatcher
}

// SiteDependencies bundles repositories for the site service.
type SiteDependencies struct {
	SiteRepo     repository.SiteRepository
	TaskRepo     repository.TaskRepository
	CustomerRepo repository.CustomerRepository
	Dispatcher   events.Dispatcher
}

// NewSiteService builds the service.
func NewSiteService(deps SiteDependencies) *SiteService {
	return &SiteService{
		sites:      deps.SiteRepo,
		tasks:      deps.TaskRepo,
		customers:  deps.CustomerRepo,
		dispatcher: deps.Dispatcher,
	}
}

// SiteInput carries site fields for create and update. On update, nil fields
// retain the stored value.
type SiteInput struct {
	CustomerID    *int64
	SiteName      *string
	SiteAddress   *string
	ContactName   *string
	ContactNumber *string
	ContactEmail  *string
}

// Create validates the referenced customer and inserts the site.
func (s *SiteService) Create(ctx context.Context, input SiteInput) (*domain.Site, error) {
	if input.CustomerID == nil {
		return nil, apperrors.NewValidationError("customerId is required", nil)
	}
	required := map[string]*string{
		"siteName":      input.SiteName,
		"siteAddress":   input.SiteAddress,
		"contactName":   input.ContactName,
		"contactNumber": input.ContactNumber,
		"contactEmail":  input.ContactEmail,
	}
	for field, value := range required {
		if value == nil || *value == "" {
			return nil, apperrors.NewValidationError(fmt.Sprintf("%s is required", field), nil)
		}
	}

	if err := s.ensureCustomer(ctx, *input.CustomerID); err != nil {
		return nil, err
	}

	site := &domain.Site{
		CustomerID:    *input.CustomerID,
		SiteName:      *input.SiteName,
		SiteAddress:   *input.SiteAddress,
		ContactName:   *input.ContactName,
		ContactNumber: *input.ContactNumber,
		ContactEmail:  *input.ContactEmail,
	}
	if err := s.sites.Create(ctx, site); err != nil {
		return nil, apperrors.MapError(err)
	}
	return site, nil
}

// Get returns a site by id.
func (s *SiteService) Get(ctx context.Context, id int64) (*domain.Site, error) {
	site, err := s.sites.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundMessage(fmt.Sprintf("Site with ID %d not found", id))
		}
		return nil, apperrors.MapError(err)
	}
	return site, nil
}

// ListAll returns all sites.
func (s *SiteService) ListAll(ctx context.Context) ([]domain.Site, error) {
	sites, err := s.sites.ListAll(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return sites, nil
}

// Update merges supplied fields, re-validating the customer reference when
// it changes.
func (s *SiteService) Update(ctx context.Context, id int64, input SiteInput) (*domain.Site, error) {
	site, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.CustomerID != nil {
		if err := s.ensureCustomer(ctx, *input.CustomerID); err != nil {
			return nil, err
		}
		site.CustomerID = *input.CustomerID
	}
	if input.SiteName != nil {
		site.SiteName = *input.SiteName
	}
	if input.SiteAddress != nil {
		site.SiteAddress = *input.SiteAddress
	}
	if input.ContactName != nil {
		site.ContactName = *input.ContactName
	}
	if input.ContactNumber != nil {
		site.ContactNumber = *input.ContactNumber
	}
	if input.ContactEmail != nil {
		site.ContactEmail = *input.ContactEmail
	}

	if err := s.sites.Update(ctx, site); err != nil {
		return nil, apperrors.MapError(err)
	}
	return site, nil
}

// Delete removes a site after explicitly deleting its dependent tasks.
func (s *SiteService) Delete(ctx context.Context, id int64) error {
	site, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	cascaded, err := s.tasks.DeleteBySiteID(ctx, id)
	if err != nil {
		return apperrors.MapError(err)
	}
	if err := s.sites.Delete(ctx, id); err != nil {
		return apperrors.MapError(err)
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventSiteDeleted,
			Timestamp: time.Now(),
			Payload: events.SiteDeletedPayload{
				SiteID:        site.ID,
				SiteName:      site.SiteName,
				CascadedTasks: cascaded,
			},
		})
	}
	return nil
}

func (s *SiteService) ensureCustomer(ctx context.Context, customerID int64) error {
	if _, err := s.customers.GetByID(ctx, customerID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFoundMessage(fmt.Sprintf("Customer with ID %d does not exist", customerID))
		}
		return apperrors.MapError(err)
	}
	return nil
}
