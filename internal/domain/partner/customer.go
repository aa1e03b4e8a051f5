package partner

import (
	"regexp"
	"strings"

	"github.com/crm/backend/internal/domain/shared"
)

// Customer represents a CRM customer aggregate root.
// Customers are created via the single or bulk mutation and are never
// updated or deleted through this service.
type Customer struct {
	shared.BaseAggregateRoot
	Name  string
	Email string
	Phone string // optional, empty when not provided
}

// NewCustomer creates a new customer after running full field validation.
// On failure it returns the complete ordered list of field errors (name,
// then email, then phone) rather than just the first one, so callers can
// report every problem in a single response.
func NewCustomer(name, email, phone string) (*Customer, []shared.FieldError) {
	if errs := ValidateNewCustomer(name, email, phone); len(errs) > 0 {
		return nil, errs
	}

	customer := &Customer{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Email:             email,
		Phone:             phone,
	}

	customer.AddDomainEvent(NewCustomerCreatedEvent(customer))
	return customer, nil
}

// ValidateNewCustomer checks the proposed field values and returns field
// errors in a deterministic order: name, email, phone. Email uniqueness is
// not checked here; that is the repository's concern and runs before this.
func ValidateNewCustomer(name, email, phone string) []shared.FieldError {
	var errs []shared.FieldError

	if strings.TrimSpace(name) == "" {
		errs = append(errs, shared.FieldError{Field: "name", Message: "Name cannot be blank"})
	}
	if !emailRegex.MatchString(email) {
		errs = append(errs, shared.FieldError{Field: "email", Message: "Enter a valid email address"})
	}
	if phone != "" && !phoneRegex.MatchString(phone) {
		errs = append(errs, shared.FieldError{Field: "phone", Message: "Enter a valid phone number (e.g. +1234567890 or 123-456-7890)"})
	}

	return errs
}

// NormalizeEmail lowercases an email for case-insensitive comparison.
// Stored emails keep their original casing; only comparisons normalize.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	// Accepted phone forms: international "+<digits>" or dashed "ddd-ddd-dddd".
	phoneRegex = regexp.MustCompile(`^(\+\d{7,15}|\d{3}-\d{3}-\d{4})$`)
)
