package partner

import (
	"time"

	"github.com/crm/backend/internal/domain/partner"
)

// =============================================================================
// Customer DTOs
// =============================================================================

// CreateCustomerRequest represents a request to create a new customer.
// All fields are checked by the business validation path, not the binding
// layer, so blank or malformed values surface in the mutation error list
// instead of a transport error.
type CreateCustomerRequest struct {
	Name  string `json:"name" example:"Alice"`
	Email string `json:"email" example:"alice@example.com"`
	Phone string `json:"phone" example:"+1234567890"`
}

// BulkCreateCustomersRequest carries the ordered batch for bulk creation
type BulkCreateCustomersRequest struct {
	Input []CreateCustomerRequest `json:"input" binding:"required"`
}

// CustomerResponse represents customer data returned to callers
type CustomerResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateCustomerResult is the mutation result shape: the created entity
// (or null), a human message and a flat list of error strings.
type CreateCustomerResult struct {
	Customer *CustomerResponse `json:"customer"`
	Message  string            `json:"message"`
	Errors   []string          `json:"errors"`
}

// BulkCreateCustomersResult reports partial success: created customers in
// input order plus one indexed error string per failed element.
type BulkCreateCustomersResult struct {
	Customers []CustomerResponse `json:"customers"`
	Errors    []string           `json:"errors"`
}

// ListCustomersQuery holds the optional filter and sort parameters for
// customer list queries. Timestamps arrive as RFC 3339 strings.
type ListCustomersQuery struct {
	Name            string `form:"name"`
	Email           string `form:"email"`
	CreatedAtGte    string `form:"created_at_gte"`
	CreatedAtLte    string `form:"created_at_lte"`
	PhoneStartsWith string `form:"phone_starts_with"`
	OrderBy         string `form:"order_by"`
	OrderDir        string `form:"order_dir"`
}

func toCustomerResponse(customer *partner.Customer) CustomerResponse {
	return CustomerResponse{
		ID:        customer.ID.String(),
		Name:      customer.Name,
		Email:     customer.Email,
		Phone:     customer.Phone,
		CreatedAt: customer.CreatedAt,
	}
}
