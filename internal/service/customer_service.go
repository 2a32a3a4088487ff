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

// CustomerService manages customer records.
type CustomerService struct {
	customers repository.CustomerRepository
}

// NewCustomerService builds the service.
func NewCustomerService(customers repository.CustomerRepository) *CustomerService {
	return &CustomerService{customers: customers}
}

// CustomerInput carries customer fields for create and update. On update,
// nil fields retain the stored value.
type CustomerInput struct {
	CustomerName    *string
	CustomerAddress *string
	GSTNumber       *string
	ContactName     *string
	ContactNumber   *string
	Email           *string
}

// Create validates required fields and inserts the customer.
func (s *CustomerService) Create(ctx context.Context, input CustomerInput) (*domain.Customer, error) {
	required := map[string]*string{
		"customerName":    input.CustomerName,
		"customerAddress": input.CustomerAddress,
		"gstNumber":       input.GSTNumber,
		"contactName":     input.ContactName,
		"contactNumber":   input.ContactNumber,
		"email":           input.Email,
	}
	for field, value := range required {
		if value == nil || *value == "" {
			return nil, apperrors.NewValidationError(fmt.Sprintf("%s is required", field), nil)
		}
	}

	customer := &domain.Customer{
		CustomerName:    *input.CustomerName,
		CustomerAddress: *input.CustomerAddress,
		GSTNumber:       *input.GSTNumber,
		ContactName:     *input.ContactName,
		ContactNumber:   *input.ContactNumber,
		Email:           *input.Email,
	}
	if err := s.customers.Create(ctx, customer); err != nil {
		return nil, apperrors.MapError(err)
	}
	return customer, nil
}

// Get returns a customer by id.
func (s *CustomerService) Get(ctx context.Context, id int64) (*domain.Customer, error) {
	customer, err := s.customers.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundMessage(fmt.Sprintf("Customer with ID %d not found", id))
		}
		return nil, apperrors.MapError(err)
	}
	return customer, nil
}

// ListAll returns all customers.
func (s *CustomerService) ListAll(ctx context.Context) ([]domain.Customer, error) {
	customers, err := s.customers.ListAll(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return customers, nil
}

// Update merges the supplied fields into the stored record.
func (s *CustomerService) Update(ctx context.Context, id int64, input CustomerInput) (*domain.Customer, error) {
	customer, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.CustomerName != nil {
		customer.CustomerName = *input.CustomerName
	}
	if input.CustomerAddress != nil {
		customer.CustomerAddress = *input.CustomerAddress
	}
	if input.GSTNumber != nil {
		customer.GSTNumber = *input.GSTNumber
	}
	if input.ContactName != nil {
		customer.ContactName = *input.ContactName
	}
	if input.ContactNumber != nil {
		customer.ContactNumber = *input.ContactNumber
	}
	if input.Email != nil {
		customer.Email = *input.Email
	}

	if err := s.customers.Update(ctx, customer); err != nil {
		return nil, apperrors.MapError(err)
	}
	return customer, nil
}

// Delete removes a customer unconditionally. Dependent sites and tasks are
// not checked; see the site cascade for the guarded path.
func (s *CustomerService) Delete(ctx context.Context, id int64) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.customers.Delete(ctx, id); err != nil {
		return apperrors.MapError(err)
	}
	return nil
}
