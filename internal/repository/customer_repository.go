package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/enpl/fieldops-console/internal/domain"
)

// CustomerRepository defines persistence access for customers.
type CustomerRepository interface {
	Create(ctx context.Context, customer *domain.Customer) error
	Update(ctx context.Context, customer *domain.Customer) error
	GetByID(ctx context.Context, id int64) (*domain.Customer, error)
	GetByName(ctx context.Context, name string) (*domain.Customer, error)
	Delete(ctx context.Context, id int64) error
	ListAll(ctx context.Context) ([]domain.Customer, error)
}

type customerRepository struct {
	pool *pgxpool.Pool
}

// NewCustomerRepository returns a Postgres-backed implementation.
func NewCustomerRepository(pool *pgxpool.Pool) CustomerRepository {
	return &customerRepository{pool: pool}
}

const customerColumns = `id, customer_name, customer_address, gst_number, contact_name, contact_number, email, created_at, updated_at`

func (r *customerRepository) Create(ctx context.Context, customer *domain.Customer) error {
	const query = `
        INSERT INTO customers (customer_name, customer_address, gst_number, contact_name, contact_number, email)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		customer.CustomerName,
		customer.CustomerAddress,
		customer.GSTNumber,
		customer.ContactName,
		customer.ContactNumber,
		customer.Email,
	).Scan(&customer.ID, &customer.CreatedAt, &customer.UpdatedAt)
}

func (r *customerRepository) Update(ctx context.Context, customer *domain.Customer) error {
	const query = `
        UPDATE customers SET customer_name=$1, customer_address=$2, gst_number=$3, contact_name=$4,
            contact_number=$5, email=$6, updated_at=NOW()
        WHERE id=$7`

	cmd, err := r.pool.Exec(ctx, query,
		customer.CustomerName,
		customer.CustomerAddress,
		customer.GSTNumber,
		customer.ContactName,
		customer.ContactNumber,
		customer.Email,
		customer.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *customerRepository) GetByID(ctx context.Context, id int64) (*domain.Customer, error) {
	const query = `SELECT ` + customerColumns + ` FROM customers WHERE id=$1`
	return r.fetchSingle(ctx, query, id)
}

func (r *customerRepository) GetByName(ctx context.Context, name string) (*domain.Customer, error) {
	const query = `SELECT ` + customerColumns + ` FROM customers WHERE customer_name=$1`
	return r.fetchSingle(ctx, query, name)
}

func (r *customerRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM customers WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *customerRepository) ListAll(ctx context.Context) ([]domain.Customer, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+customerColumns+` FROM customers ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	customers := []domain.Customer{}
	for rows.Next() {
		var customer domain.Customer
		if err := scanCustomer(rows, &customer); err != nil {
			return nil, err
		}
		customers = append(customers, customer)
	}
	return customers, rows.Err()
}

func (r *customerRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Customer, error) {
	var customer domain.Customer
	if err := scanCustomer(r.pool.QueryRow(ctx, query, arg), &customer); err != nil {
		return nil, err
	}
	return &customer, nil
}

func scanCustomer(row pgx.Row, customer *domain.Customer) error {
	return row.Scan(
		&customer.ID,
		&customer.CustomerName,
		&customer.CustomerAddress,
		&customer.GSTNumber,
		&customer.ContactName,
		&customer.ContactNumber,
		&customer.Email,
		&customer.CreatedAt,
		&customer.UpdatedAt,
	)
}
