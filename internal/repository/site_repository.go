package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/enpl/fieldops-console/internal/domain"
)

// SiteRepository defines persistence access for sites.
type SiteRepository interface {
	Create(ctx context.Context, site *domain.Site) error
	Update(ctx context.Context, site *domain.Site) error
	GetByID(ctx context.Context, id int64) (*domain.Site, error)
	GetByName(ctx context.Context, name string) (*domain.Site, error)
	Delete(ctx context.Context, id int64) error
	ListAll(ctx context.Context) ([]domain.Site, error)
}

type siteRepository struct {
	pool *pgxpool.Pool
}

// NewSiteRepository returns a Postgres-backed implementation.
func NewSiteRepository(pool *pgxpool.Pool) SiteRepository {
	return &siteRepository{pool: pool}
}

const siteColumns = `id, customer_id, site_name, site_address, contact_name, contact_number, contact_email, created_at, updated_at`

func (r *siteRepository) Create(ctx context.Context, site *domain.Site) error {
	const query = `
        INSERT INTO sites (customer_id, site_name, site_address, contact_name, contact_number, contact_email)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		site.CustomerID,
		site.SiteName,
		site.SiteAddress,
		site.ContactName,
		site.ContactNumber,
		site.ContactEmail,
	).Scan(&site.ID, &site.CreatedAt, &site.UpdatedAt)
}

func (r *siteRepository) Update(ctx context.Context, site *domain.Site) error {
	const query = `
        UPDATE sites SET customer_id=$1, site_name=$2, site_address=$3, contact_name=$4,
            contact_number=$5, contact_email=$6, updated_at=NOW()
        WHERE id=$7`

	cmd, err := r.pool.Exec(ctx, query,
		site.CustomerID,
		site.SiteName,
		site.SiteAddress,
		site.ContactName,
		site.ContactNumber,
		site.ContactEmail,
		site.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *siteRepository) GetByID(ctx context.Context, id int64) (*domain.Site, error) {
	const query = `SELECT ` + siteColumns + ` FROM sites WHERE id=$1`
	return r.fetchSingle(ctx, query, id)
}

// GetByName returns the first site with the given name. Site names are not
// unique, matching the original lookup semantics for task creation.
func (r *siteRepository) GetByName(ctx context.Context, name string) (*domain.Site, error) {
	const query = `SELECT ` + siteColumns + ` FROM sites WHERE site_name=$1 ORDER BY id LIMIT 1`
	return r.fetchSingle(ctx, query, name)
}

func (r *siteRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM sites WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *siteRepository) ListAll(ctx context.Context) ([]domain.Site, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+siteColumns+` FROM sites ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sites := []domain.Site{}
	for rows.Next() {
		var site domain.Site
		if err := scanSite(rows, &site); err != nil {
			return nil, err
		}
		sites = append(sites, site)
	}
	return sites, rows.Err()
}

func (r *siteRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Site, error) {
	var site domain.Site
	if err := scanSite(r.pool.QueryRow(ctx, query, arg), &site); err != nil {
		return nil, err
	}
	return &site, nil
}

func scanSite(row pgx.Row, site *domain.Site) error {
	return row.Scan(
		&site.ID,
		&site.CustomerID,
		&site.SiteName,
		&site.SiteAddress,
		&site.ContactName,
		&site.ContactNumber,
		&site.ContactEmail,
		&site.CreatedAt,
		&site.UpdatedAt,
	)
}
