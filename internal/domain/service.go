package domain

import "time"

// Service is a catalog entry for offered service types.
// ServiceID is the human-readable business identifier (ENPL-SR-NN), distinct
// from the database primary key.
type Service struct {
	ID          int64
	ServiceID   string
	ServiceName string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
