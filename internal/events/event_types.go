package events

import (
	"time"

	"github.com/enpl/fieldops-console/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventAccountCreated  EventType = "account_created"
	EventAccountUpdated  EventType = "account_updated"
	EventAccountDeleted  EventType = "account_deleted"
	EventPasswordChanged EventType = "password_changed"
	EventSiteDeleted     EventType = "site_deleted"
	EventTaskCreated     EventType = "task_created"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// AccountPayload payload for account lifecycle events.
type AccountPayload struct {
	AccountID int64       `json:"account_id"`
	Username  string      `json:"username"`
	Role      domain.Role `json:"usertype"`
}

// SiteDeletedPayload payload. CascadedTasks counts the task rows removed
// before the site itself was deleted.
type SiteDeletedPayload struct {
	SiteID        int64  `json:"site_id"`
	SiteName      string `json:"site_name"`
	CascadedTasks int64  `json:"cascaded_tasks"`
}

// TaskCreatedPayload payload.
type TaskCreatedPayload struct {
	TaskID      int64              `json:"task_id"`
	ServiceType domain.ServiceType `json:"service_type"`
	Customer    string             `json:"customer"`
	Site        string             `json:"site"`
	Service     string             `json:"service"`
}
