package domain

import "time"

// Customer is a billed organization that owns sites and tasks.
type Customer struct {
	ID              int64
	CustomerName    string
	CustomerAddress string
	GSTNumber       string
	ContactName     string
	ContactNumber   string
	Email           string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
