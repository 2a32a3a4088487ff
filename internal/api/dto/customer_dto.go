package dto

import "github.com/enpl/fieldops-console/internal/domain"

// CustomerRequest payload for customer create/update. Nil fields are left
// unchanged on update.
type CustomerRequest struct {
	CustomerName    *string `json:"customerName,omitempty"`
	CustomerAddress *string `json:"customerAddress,omitempty"`
	GSTNumber       *string `json:"gstNumber,omitempty"`
	ContactName     *string `json:"contactName,omitempty"`
	ContactNumber   *string `json:"contactNumber,omitempty"`
	Email           *string `json:"email,omitempty"`
}

// CustomerResponse is the public shape of a customer.
type CustomerResponse struct {
	ID              int64  `json:"id"`
	CustomerName    string `json:"customerName"`
	CustomerAddress string `json:"customerAddress"`
	GSTNumber       string `json:"gstNumber"`
	ContactName     string `json:"contactName"`
	ContactNumber   string `json:"contactNumber"`
	Email           string `json:"email"`
}

// NewCustomerResponse maps a domain customer.
func NewCustomerResponse(customer *domain.Customer) CustomerResponse {
	return CustomerResponse{
		ID:              customer.ID,
		CustomerName:    customer.CustomerName,
		CustomerAddress: customer.CustomerAddress,
		GSTNumber:       customer.GSTNumber,
		ContactName:     customer.ContactName,
		ContactNumber:   customer.ContactNumber,
		Email:           customer.Email,
	}
}

// NewCustomerResponses maps a slice of customers.
func NewCustomerResponses(customers []domain.Customer) []CustomerResponse {
	out := make([]CustomerResponse, 0, len(customers))
	for i := range customers {
		out = append(out, NewCustomerResponse(&customers[i]))
	}
	return out
}
