package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/enpl/fieldops-console/internal/domain"
)

// TaskRepository defines persistence access for tasks.
type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) error
	Update(ctx context.Context, task *domain.Task) error
	GetByID(ctx context.Context, id int64) (*domain.Task, error)
	Delete(ctx context.Context, id int64) error
	DeleteBySiteID(ctx context.Context, siteID int64) (int64, error)
	ListAll(ctx context.Context) ([]domain.Task, error)
}

type taskRepository struct {
	pool *pgxpool.Pool
}

// NewTaskRepository returns a Postgres-backed implementation.
func NewTaskRepository(pool *pgxpool.Pool) TaskRepository {
	return &taskRepository{pool: pool}
}

// Task reads join customer/site/service so list and get responses carry the
// resolved names without further lookups.
const taskSelect = `
        SELECT t.id, t.customer_id, t.site_id, t.service_id, t.description, t.remark,
               t.service_type, t.date, t.created_at, t.updated_at,
               c.customer_name, s.site_name, sv.service_name
        FROM tasks t
        JOIN customers c ON c.id = t.customer_id
        JOIN sites s ON s.id = t.site_id
        JOIN services sv ON sv.id = t.service_id`

func (r *taskRepository) Create(ctx context.Context, task *domain.Task) error {
	const query = `
        INSERT INTO tasks (customer_id, site_id, service_id, description, remark, service_type, date)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		task.CustomerID,
		task.SiteID,
		task.ServiceID,
		task.Description,
		task.Remark,
		task.ServiceType,
		task.Date,
	).Scan(&task.ID, &task.CreatedAt, &task.UpdatedAt)
}

func (r *taskRepository) Update(ctx context.Context, task *domain.Task) error {
	const query = `
        UPDATE tasks SET customer_id=$1, site_id=$2, service_id=$3, description=$4,
            remark=$5, service_type=$6, date=$7, updated_at=NOW()
        WHERE id=$8`

	cmd, err := r.pool.Exec(ctx, query,
		task.CustomerID,
		task.SiteID,
		task.ServiceID,
		task.Description,
		task.Remark,
		task.ServiceType,
		task.Date,
		task.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *taskRepository) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	var task domain.Task
	if err := scanTask(r.pool.QueryRow(ctx, taskSelect+` WHERE t.id=$1`, id), &task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *taskRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM tasks WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// DeleteBySiteID removes all tasks attached to a site and reports how many
// rows went away. Used by the site cascade delete.
func (r *taskRepository) DeleteBySiteID(ctx context.Context, siteID int64) (int64, error) {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM tasks WHERE site_id=$1`, siteID)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}

func (r *taskRepository) ListAll(ctx context.Context) ([]domain.Task, error) {
	rows, err := r.pool.Query(ctx, taskSelect+` ORDER BY t.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := []domain.Task{}
	for rows.Next() {
		var task domain.Task
		if err := scanTask(rows, &task); err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}

func scanTask(row pgx.Row, task *domain.Task) error {
	return row.Scan(
		&task.ID,
		&task.CustomerID,
		&task.SiteID,
		&task.ServiceID,
		&task.Description,
		&task.Remark,
		&task.ServiceType,
		&task.Date,
		&task.CreatedAt,
		&task.UpdatedAt,
		&task.CustomerName,
		&task.SiteName,
		&task.ServiceName,
	)
}
