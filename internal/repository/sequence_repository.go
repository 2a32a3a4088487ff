package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// SequenceRepository hands out monotonically increasing counters that back
// human-readable business IDs (ENPL-SR-NN, gateway-NN).
type SequenceRepository interface {
	Next(ctx context.Context, kind string) (int64, error)
}

type sequenceRepository struct {
	pool *pgxpool.Pool
}

// NewSequenceRepository returns a Postgres-backed implementation.
func NewSequenceRepository(pool *pgxpool.Pool) SequenceRepository {
	return &sequenceRepository{pool: pool}
}

// Next increments and returns the counter for kind in a single statement, so
// two concurrent creates can never observe the same value.
func (r *sequenceRepository) Next(ctx context.Context, kind string) (int64, error) {
	const query = `
        INSERT INTO business_sequences (kind, value) VALUES ($1, 1)
        ON CONFLICT (kind) DO UPDATE SET value = business_sequences.value + 1
        RETURNING value`

	var value int64
	if err := r.pool.QueryRow(ctx, query, kind).Scan(&value); err != nil {
		return 0, err
	}
	return value, nil
}
