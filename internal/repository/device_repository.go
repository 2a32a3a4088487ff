package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/enpl/fieldops-console/internal/domain"
)

// DeviceRepository defines persistence access for devices.
type DeviceRepository interface {
	Create(ctx context.Context, device *domain.Device) error
	Update(ctx context.Context, device *domain.Device) error
	GetByID(ctx context.Context, id int64) (*domain.Device, error)
	Delete(ctx context.Context, id int64) error
	ListAll(ctx context.Context) ([]domain.Device, error)
}

type deviceRepository struct {
	pool *pgxpool.Pool
}

// NewDeviceRepository returns a Postgres-backed implementation.
func NewDeviceRepository(pool *pgxpool.Pool) DeviceRepository {
	return &deviceRepository{pool: pool}
}

const deviceColumns = `id, device_id, device_name, device_type, device_ip, device_port, device_username, device_password, created_at, updated_at`

func (r *deviceRepository) Create(ctx context.Context, device *domain.Device) error {
	const query = `
        INSERT INTO devices (device_id, device_name, device_type, device_ip, device_port, device_username, device_password)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		device.DeviceID,
		device.DeviceName,
		device.DeviceType,
		device.DeviceIP,
		device.DevicePort,
		device.DeviceUsername,
		device.DevicePassword,
	).Scan(&device.ID, &device.CreatedAt, &device.UpdatedAt)
}

func (r *deviceRepository) Update(ctx context.Context, device *domain.Device) error {
	const query = `
        UPDATE devices SET device_name=$1, device_type=$2, device_ip=$3, device_port=$4,
            device_username=$5, device_password=$6, updated_at=NOW()
        WHERE id=$7`

	cmd, err := r.pool.Exec(ctx, query,
		device.DeviceName,
		device.DeviceType,
		device.DeviceIP,
		device.DevicePort,
		device.DeviceUsername,
		device.DevicePassword,
		device.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *deviceRepository) GetByID(ctx context.Context, id int64) (*domain.Device, error) {
	var device domain.Device
	if err := scanDevice(r.pool.QueryRow(ctx, `SELECT `+deviceColumns+` FROM devices WHERE id=$1`, id), &device); err != nil {
		return nil, err
	}
	return &device, nil
}

func (r *deviceRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM devices WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *deviceRepository) ListAll(ctx context.Context) ([]domain.Device, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+deviceColumns+` FROM devices ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	devices := []domain.Device{}
	for rows.Next() {
		var device domain.Device
		if err := scanDevice(rows, &device); err != nil {
			return nil, err
		}
		devices = append(devices, device)
	}
	return devices, rows.Err()
}

func scanDevice(row pgx.Row, device *domain.Device) error {
	return row.Scan(
		&device.ID,
		&device.DeviceID,
		&device.DeviceName,
		&device.DeviceType,
		&device.DeviceIP,
		&device.DevicePort,
		&device.DeviceUsername,
		&device.DevicePassword,
		&device.CreatedAt,
		&device.UpdatedAt,
	)
}
