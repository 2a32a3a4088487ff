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

// TaskService manages tasks, resolving their customer, site, and service
// references by human-readable name.
type TaskService struct {
	tasks      repository.TaskRepository
	customers  repository.CustomerRepository
	sites      repository.SiteRepository
	services   repository.ServiceRepository
	dispatcher events.Dispatcher
}

// TaskDependencies bundles repositories for the task service.
type TaskDependencies struct {
	TaskRepo     repository.TaskRepository
	CustomerRepo repository.CustomerRepository
	SiteRepo     repository.SiteRepository
	ServiceRepo  repository.ServiceRepository
	Dispatcher   events.Dispatcher
}

// NewTaskService builds the service.
func NewTaskService(deps TaskDependencies) *TaskService {
	return &TaskService{
		tasks:      deps.TaskRepo,
		customers:  deps.CustomerRepo,
		sites:      deps.SiteRepo,
		services:   deps.ServiceRepo,
		dispatcher: deps.Dispatcher,
	}
}

// TaskInput carries task fields for create and update. References are by
// name; on update, nil fields retain the stored value.
type TaskInput struct {
	CustomerName *string
	SiteName     *string
	ServiceName  *string
	Description  *string
	Remark       *string
	ServiceType  *domain.ServiceType
	Date         *time.Time
}

// Create resolves the three name references and inserts the task. A miss on
// any of them fails the whole operation.
func (s *TaskService) Create(ctx context.Context, input TaskInput) (*domain.Task, error) {
	required := map[string]*string{
		"customerName": input.CustomerName,
		"siteName":     input.SiteName,
		"serviceName":  input.ServiceName,
		"description":  input.Description,
		"remark":       input.Remark,
	}
	for field, value := range required {
		if value == nil || *value == "" {
			return nil, apperrors.NewValidationError(fmt.Sprintf("%s is required", field), nil)
		}
	}
	if input.ServiceType == nil {
		return nil, apperrors.NewValidationError("serviceType is required", nil)
	}
	if input.Date == nil {
		return nil, apperrors.NewValidationError("date is required", nil)
	}

	customer, site, service, err := s.resolveNames(ctx, *input.CustomerName, *input.SiteName, *input.ServiceName)
	if err != nil {
		return nil, err
	}

	task := &domain.Task{
		CustomerID:   customer.ID,
		SiteID:       site.ID,
		ServiceID:    service.ID,
		Description:  *input.Description,
		Remark:       *input.Remark,
		ServiceType:  *input.ServiceType,
		Date:         *input.Date,
		CustomerName: customer.CustomerName,
		SiteName:     site.SiteName,
		ServiceName:  service.ServiceName,
	}
	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, apperrors.MapError(err)
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventTaskCreated,
			Timestamp: time.Now(),
			Payload: events.TaskCreatedPayload{
				TaskID:      task.ID,
				ServiceType: task.ServiceType,
				Customer:    task.CustomerName,
				Site:        task.SiteName,
				Service:     task.ServiceName,
			},
		})
	}
	return task, nil
}

// Get returns a task with its resolved names.
func (s *TaskService) Get(ctx context.Context, id int64) (*domain.Task, error) {
	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundMessage(fmt.Sprintf("Task with ID %d not found", id))
		}
		return nil, apperrors.MapError(err)
	}
	return task, nil
}

// ListAll returns all tasks with resolved names.
func (s *TaskService) ListAll(ctx context.Context) ([]domain.Task, error) {
	tasks, err := s.tasks.ListAll(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return tasks, nil
}

// Update merges supplied fields, re-resolving any name reference that changes.
func (s *TaskService) Update(ctx context.Context, id int64, input TaskInput) (*domain.Task, error) {
	task, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.CustomerName != nil {
		customer, err := s.customers.GetByName(ctx, *input.CustomerName)
		if err != nil {
			return nil, mapNameLookupErr(err)
		}
		task.CustomerID = customer.ID
		task.CustomerName = customer.CustomerName
	}
	if input.SiteName != nil {
		site, err := s.sites.GetByName(ctx, *input.SiteName)
		if err != nil {
			return nil, mapNameLookupErr(err)
		}
		task.SiteID = site.ID
		task.SiteName = site.SiteName
	}
	if input.ServiceName != nil {
		service, err := s.services.GetByName(ctx, *input.ServiceName)
		if err != nil {
			return nil, mapNameLookupErr(err)
		}
		task.ServiceID = service.ID
		task.ServiceName = service.ServiceName
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.Remark != nil {
		task.Remark = *input.Remark
	}
	if input.ServiceType != nil {
		task.ServiceType = *input.ServiceType
	}
	if input.Date != nil {
		task.Date = *input.Date
	}

	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, apperrors.MapError(err)
	}
	return task, nil
}

// Delete removes a task.
func (s *TaskService) Delete(ctx context.Context, id int64) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.tasks.Delete(ctx, id); err != nil {
		return apperrors.MapError(err)
	}
	return nil
}

func (s *TaskService) resolveNames(ctx context.Context, customerName, siteName, serviceName string) (*domain.Customer, *domain.Site, *domain.Service, error) {
	customer, err := s.customers.GetByName(ctx, customerName)
	if err != nil {
		return nil, nil, nil, mapNameLookupErr(err)
	}
	site, err := s.sites.GetByName(ctx, siteName)
	if err != nil {
		return nil, nil, nil, mapNameLookupErr(err)
	}
	service, err := s.services.GetByName(ctx, serviceName)
	if err != nil {
		return nil, nil, nil, mapNameLookupErr(err)
	}
	return customer, site, service, nil
}

func mapNameLookupErr(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NewNotFoundMessage("Invalid customer, site, or service name")
	}
	return apperrors.MapError(err)
}
