package dto

import "github.com/enpl/fieldops-console/internal/domain"

// ServiceRequest payload for catalog create/update. Nil fields are left
// unchanged on update.
type ServiceRequest struct {
	ServiceName *string `json:"serviceName,omitempty"`
	Description *string `json:"description,omitempty"`
}

// ServiceResponse is the public shape of a catalog entry.
type ServiceResponse struct {
	ID          int64  `json:"id"`
	ServiceID   string `json:"serviceId"`
	ServiceName string `json:"serviceName"`
	Description string `json:"description"`
}

// NewServiceResponse maps a domain service.
func NewServiceResponse(service *domain.Service) ServiceResponse {
	return ServiceResponse{
		ID:          service.ID,
		ServiceID:   service.ServiceID,
		ServiceName: service.ServiceName,
		Description: service.Description,
	}
}

// NewServiceResponses maps a slice of services.
func NewServiceResponses(services []domain.Service) []ServiceResponse {
	out := make([]ServiceResponse, 0, len(services))
	for i := range services {
		out = append(out, NewServiceResponse(&services[i]))
	}
	return out
}
