package domain

import "time"

// Site is a customer location where tasks are carried out.
type Site struct {
	ID            int64
	CustomerID    int64
	SiteName      string
	SiteAddress   string
	ContactName   string
	ContactNumber string
	ContactEmail  string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
