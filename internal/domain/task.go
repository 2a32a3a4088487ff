package domain

import (
	"fmt"
	"time"
)

// ServiceType classifies a task engagement.
type ServiceType string

const (
	ServiceTypeAMC             ServiceType = "AMC"
	ServiceTypeNewInstallation ServiceType = "NewInstallation"
	ServiceTypeOnDemandSupport ServiceType = "OnDemandSupport"
)

// ParseServiceType validates a raw service type string.
func ParseServiceType(raw string) (ServiceType, error) {
	switch ServiceType(raw) {
	case ServiceTypeAMC, ServiceTypeNewInstallation, ServiceTypeOnDemandSupport:
		return ServiceType(raw), nil
	default:
		return "", fmt.Errorf("unknown service type %q", raw)
	}
}

// Task ties a service engagement to a customer and site on a given date.
// Customer/site/service are resolved by name at creation time; the resolved
// names are carried alongside the foreign keys for listing.
type Task struct {
	ID          int64
	CustomerID  int64
	SiteID      int64
	ServiceID   int64
	Description string
	Remark      string
	ServiceType ServiceType
	Date        time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Denormalized for read paths; not persisted on the tasks table.
	CustomerName string
	SiteName     string
	ServiceName  string
}
