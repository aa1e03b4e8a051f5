package partner

import (
	"context"
	"time"

	"github.com/crm/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// CustomerFilter holds the optional predicates for customer list queries.
// Nil fields impose no constraint; set fields are combined with AND.
type CustomerFilter struct {
	NameContains    *string    // case-insensitive substring on name
	EmailContains   *string    // case-insensitive substring on email
	CreatedAtGte    *time.Time // created_at >= value
	CreatedAtLte    *time.Time // created_at <= value
	PhoneStartsWith *string    // phone prefix match
	Sort            shared.Sort
}

// CustomerSortKeys is the allow-list of sort keys for customer queries.
// Keys outside this set are silently ignored.
var CustomerSortKeys = map[string]struct{}{
	"name":       {},
	"email":      {},
	"created_at": {},
}

// CustomerRepository defines persistence operations for customers.
// Email lookups compare case-insensitively. Save must surface the store's
// unique-email violation as shared.ErrAlreadyExists so concurrent creates
// with the same email resolve to exactly one success.
type CustomerRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Customer, error)
	FindByEmail(ctx context.Context, email string) (*Customer, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	FindAll(ctx context.Context, filter CustomerFilter) ([]Customer, error)
	Save(ctx context.Context, customer *Customer) error
	Count(ctx context.Context) (int64, error)
}
