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

const deviceSequenceKind = "device"

// DeviceService manages devices, including the generated gateway-NN
// business identifiers.
type DeviceService struct {
	devices   repository.DeviceRepository
	sequences repository.SequenceRepository
}

// NewDeviceService builds the service.
func NewDeviceService(devices repository.DeviceRepository, sequences repository.SequenceRepository) *DeviceService {
	return &DeviceService{devices: devices, sequences: sequences}
}

// DeviceInput carries device fields for create and update.
type DeviceInput struct {
	DeviceName     *string
	DeviceType     *string
	DeviceIP       *string
	DevicePort     *string
	DeviceUsername *string
	DevicePassword *string
}

// Create assigns the next gateway business ID and inserts the record.
func (s *DeviceService) Create(ctx context.Context, input DeviceInput) (*domain.Device, error) {
	required := map[string]*string{
		"deviceName":     input.DeviceName,
		"deviceType":     input.DeviceType,
		"deviceIp":       input.DeviceIP,
		"devicePort":     input.DevicePort,
		"deviceUsername": input.DeviceUsername,
		"devicePassword": input.DevicePassword,
	}
	for field, value := range required {
		if value == nil || *value == "" {
			return nil, apperrors.NewValidationError(fmt.Sprintf("%s is required", field), nil)
		}
	}

	seq, err := s.sequences.Next(ctx, deviceSequenceKind)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	device := &domain.Device{
		DeviceID:       fmt.Sprintf("gateway-%02d", seq),
		DeviceName:     *input.DeviceName,
		DeviceType:     *input.DeviceType,
		DeviceIP:       *input.DeviceIP,
		DevicePort:     *input.DevicePort,
		DeviceUsername: *input.DeviceUsername,
		DevicePassword: *input.DevicePassword,
	}
	if err := s.devices.Create(ctx, device); err != nil {
		return nil, apperrors.MapError(err)
	}
	return device, nil
}

// Get returns a device by id.
func (s *DeviceService) Get(ctx context.Context, id int64) (*domain.Device, error) {
	device, err := s.devices.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundMessage(fmt.Sprintf("Device with ID %d not found", id))
		}
		return nil, apperrors.MapError(err)
	}
	return device, nil
}

// ListAll returns all devices.
func (s *DeviceService) ListAll(ctx context.Context) ([]domain.Device, error) {
	devices, err := s.devices.ListAll(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return devices, nil
}

// Update merges supplied fields. The business ID is immutable.
func (s *DeviceService) Update(ctx context.Context, id int64, input DeviceInput) (*domain.Device, error) {
	device, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.DeviceName != nil {
		device.DeviceName = *input.DeviceName
	}
	if input.DeviceType != nil {
		device.DeviceType = *input.DeviceType
	}
	if input.DeviceIP != nil {
		device.DeviceIP = *input.DeviceIP
	}
	if input.DevicePort != nil {
		device.DevicePort = *input.DevicePort
	}
	if input.DeviceUsername != nil {
		device.DeviceUsername = *input.DeviceUsername
	}
	if input.DevicePassword != nil {
		device.DevicePassword = *input.DevicePassword
	}

	if err := s.devices.Update(ctx, device); err != nil {
		return nil, apperrors.MapError(err)
	}
	return device, nil
}

// Delete removes a device unconditionally.
func (s *DeviceService) Delete(ctx context.Context, id int64) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.devices.Delete(ctx, id); err != nil {
		return apperrors.MapError(err)
	}
	return nil
}
