package dto

import (
	"time"

	"github.com/enpl/fieldops-console/internal/domain"
)

// TaskRequest payload for task create/update. References are by name; nil
// fields are left unchanged on update.
type TaskRequest struct {
	CustomerName *string `json:"customerName,omitempty"`
	SiteName     *string `json:"siteName,omitempty"`
	ServiceName  *string `json:"serviceName,omitempty"`
	Description  *string `json:"description,omitempty"`
	Remark       *string `json:"remark,omitempty"`
	ServiceType  *string `json:"serviceType,omitempty"`
	Date         *string `json:"date,omitempty"`
}

// TaskResponse is the public shape of a task, names resolved.
type TaskResponse struct {
	ID           int64     `json:"id"`
	CustomerName string    `json:"customerName"`
	SiteName     string    `json:"siteName"`
	ServiceName  string    `json:"serviceName"`
	Description  string    `json:"description"`
	Remark       string    `json:"remark"`
	ServiceType  string    `json:"serviceType"`
	Date         time.Time `json:"date"`
}

// NewTaskResponse maps a domain task.
func NewTaskResponse(task *domain.Task) TaskResponse {
	return TaskResponse{
		ID:           task.ID,
		CustomerName: task.CustomerName,
		SiteName:     task.SiteName,
		ServiceName:  task.ServiceName,
		Description:  task.Description,
		Remark:       task.Remark,
		ServiceType:  string(task.ServiceType),
		Date:         task.Date,
	}
}

// NewTaskResponses maps a slice of tasks.
func NewTaskResponses(tasks []domain.Task) []TaskResponse {
	out := make([]TaskResponse, 0, len(tasks))
	for i := range tasks {
		out = append(out, NewTaskResponse(&tasks[i]))
	}
	return out
}
