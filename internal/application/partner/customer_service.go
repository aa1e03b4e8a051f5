package partner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/crm/backend/internal/domain/partner"
	"github.com/crm/backend/internal/domain/shared"
)

// Messages returned by the customer mutations
const (
	msgCustomerCreated  = "Customer created"
	msgFailed           = "Failed"
	errEmailExists      = "Email already exists"
	errEmailExistsIndex = "[%d] Email already exists: %s"
)

// CustomerService provides application-level customer operations
type CustomerService struct {
	customerRepo   partner.CustomerRepository
	eventPublisher shared.EventPublisher
}

// NewCustomerService creates a new CustomerService
func NewCustomerService(customerRepo partner.CustomerRepository) *CustomerService {
	return &CustomerService{customerRepo: customerRepo}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *CustomerService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create creates a single customer. Business failures (duplicate email,
// field validation) are reported in the result's error list, never as a
// returned error; only store faults surface as errors.
func (s *CustomerService) Create(ctx context.Context, req CreateCustomerRequest) (*CreateCustomerResult, error) {
	// Uniqueness gate runs first and short-circuits all other checks.
	exists, err := s.customerRepo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return &CreateCustomerResult{Message: msgFailed, Errors: []string{errEmailExists}}, nil
	}

	customer, fieldErrs := partner.NewCustomer(req.Name, req.Email, req.Phone)
	if len(fieldErrs) > 0 {
		return &CreateCustomerResult{Message: msgFailed, Errors: shared.FormatFieldErrors(fieldErrs)}, nil
	}

	if err := s.customerRepo.Save(ctx, customer); err != nil {
		// A concurrent create with the same email loses the store's
		// uniqueness race; report it exactly like the pre-check.
		if errors.Is(err, shared.ErrAlreadyExists) {
			return &CreateCustomerResult{Message: msgFailed, Errors: []string{errEmailExists}}, nil
		}
		return nil, err
	}

	s.publishEvents(ctx, customer)

	resp := toCustomerResponse(customer)
	return &CreateCustomerResult{Customer: &resp, Message: msgCustomerCreated, Errors: []string{}}, nil
}

// BulkCreate creates customers with partial-success semantics: every
// element is validated and persisted in its own commit scope, so one
// element's failure never rolls back or blocks another's success.
// Failures are reported as "[<index>] <reason>" in input order.
func (s *CustomerService) BulkCreate(ctx context.Context, req BulkCreateCustomersRequest) (*BulkCreateCustomersResult, error) {
	created := make([]CustomerResponse, 0, len(req.Input))
	errs := make([]string, 0)

	for idx, row := range req.Input {
		exists, err := s.customerRepo.ExistsByEmail(ctx, row.Email)
		if err != nil {
			return nil, err
		}
		if exists {
			errs = append(errs, fmt.Sprintf(errEmailExistsIndex, idx, row.Email))
			continue
		}

		customer, fieldErrs := partner.NewCustomer(row.Name, row.Email, row.Phone)
		if len(fieldErrs) > 0 {
			for _, fe := range fieldErrs {
				errs = append(errs, fmt.Sprintf("[%d] %s", idx, fe.String()))
			}
			continue
		}

		if err := s.customerRepo.Save(ctx, customer); err != nil {
			if errors.Is(err, shared.ErrAlreadyExists) {
				errs = append(errs, fmt.Sprintf(errEmailExistsIndex, idx, row.Email))
				continue
			}
			return nil, err
		}

		s.publishEvents(ctx, customer)
		created = append(created, toCustomerResponse(customer))
	}

	return &BulkCreateCustomersResult{Customers: created, Errors: errs}, nil
}

// List returns customers matching the query's filter, ordered by its
// sort key when that key is in the customer allow-list.
func (s *CustomerService) List(ctx context.Context, query ListCustomersQuery) ([]CustomerResponse, error) {
	filter, err := buildCustomerFilter(query)
	if err != nil {
		return nil, err
	}

	customers, err := s.customerRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]CustomerResponse, len(customers))
	for i := range customers {
		responses[i] = toCustomerResponse(&customers[i])
	}
	return responses, nil
}

// Count returns the total number of customers
func (s *CustomerService) Count(ctx context.Context) (int64, error) {
	return s.customerRepo.Count(ctx)
}

func buildCustomerFilter(query ListCustomersQuery) (partner.CustomerFilter, error) {
	filter := partner.CustomerFilter{
		Sort: shared.NewSort(query.OrderBy, query.OrderDir),
	}

	if query.Name != "" {
		filter.NameContains = &query.Name
	}
	if query.Email != "" {
		filter.EmailContains = &query.Email
	}
	if query.PhoneStartsWith != "" {
		filter.PhoneStartsWith = &query.PhoneStartsWith
	}
	if query.CreatedAtGte != "" {
		t, err := time.Parse(time.RFC3339, query.CreatedAtGte)
		if err != nil {
			return filter, shared.NewDomainErrorf("INVALID_INPUT", "created_at_gte must be an RFC 3339 timestamp: %s", query.CreatedAtGte)
		}
		filter.CreatedAtGte = &t
	}
	if query.CreatedAtLte != "" {
		t, err := time.Parse(time.RFC3339, query.CreatedAtLte)
		if err != nil {
			return filter, shared.NewDomainErrorf("INVALID_INPUT", "created_at_lte must be an RFC 3339 timestamp: %s", query.CreatedAtLte)
		}
		filter.CreatedAtLte = &t
	}

	return filter, nil
}

func (s *CustomerService) publishEvents(ctx context.Context, customer *partner.Customer) {
	if s.eventPublisher == nil {
		return
	}
	for _, event := range customer.GetDomainEvents() {
		// Event delivery is best-effort; a failed publish must not fail
		// the already-committed mutation.
		_ = s.eventPublisher.Publish(ctx, event)
	}
	customer.ClearDomainEvents()
}
