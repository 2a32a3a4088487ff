package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/enpl/fieldops-console/internal/domain"
)

// ServiceRepository defines persistence access for catalog services.
type ServiceRepository interface {
	Create(ctx context.Context, service *domain.Service) error
	Update(ctx context.Context, service *domain.Service) error
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
	GetByName(ctx context.Context, name string) (*domain.Service, error)
	Delete(ctx context.Context, id int64) error
	ListAll(ctx context.Context) ([]domain.Service, error)
}

type serviceRepository struct {
	pool *pgxpool.Pool
}

// NewServiceRepository returns a Postgres-backed implementation.
func NewServiceRepository(pool *pgxpool.Pool) ServiceRepository {
	return &serviceRepository{pool: pool}
}

const serviceColumns = `id, service_id, service_name, description, created_at, updated_at`

func (r *serviceRepository) Create(ctx context.Context, service *domain.Service) error {
	const query = `
        INSERT INTO services (service_id, service_name, description)
        VALUES ($1, $2, $3)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		service.ServiceID,
		service.ServiceName,
		service.Description,
	).Scan(&service.ID, &service.CreatedAt, &service.UpdatedAt)
}

func (r *serviceRepository) Update(ctx context.Context, service *domain.Service) error {
	const query = `
        UPDATE services SET service_name=$1, description=$2, updated_at=NOW()
        WHERE id=$3`

	cmd, err := r.pool.Exec(ctx, query, service.ServiceName, service.Description, service.ID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *serviceRepository) GetByID(ctx context.Context, id int64) (*domain.Service, error) {
	const query = `SELECT ` + serviceColumns + ` FROM services WHERE id=$1`
	return r.fetchSingle(ctx, query, id)
}

func (r *serviceRepository) GetByName(ctx context.Context, name string) (*domain.Service, error) {
	const query = `SELECT ` + serviceColumns + ` FROM services WHERE service_name=$1`
	return r.fetchSingle(ctx, query, name)
}

func (r *serviceRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM services WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *serviceRepository) ListAll(ctx context.Context) ([]domain.Service, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+serviceColumns+` FROM services ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	services := []domain.Service{}
	for rows.Next() {
		var service domain.Service
		if err := scanService(rows, &service); err != nil {
			return nil, err
		}
		services = append(services, service)
	}
	return services, rows.Err()
}

func (r *serviceRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Service, error) {
	var service domain.Service
	if err := scanService(r.pool.QueryRow(ctx, query, arg), &service); err != nil {
		return nil, err
	}
	return &service, nil
}

func scanService(row pgx.Row, service *domain.Service) error {
	return row.Scan(
		&service.ID,
		&service.ServiceID,
		&service.ServiceName,
		&service.Description,
		&service.CreatedAt,
		&service.UpdatedAt,
	)
}
