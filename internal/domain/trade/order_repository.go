package trade

import (
	"context"
	"time"

	"github.com/crm/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderFilter holds the optional predicates for order list queries.
// Nil fields impose no constraint; set fields are combined with AND.
// Predicates that match through the product link (ProductNameContains,
// ProductID) must deduplicate orders matched via multiple products.
type OrderFilter struct {
	TotalAmountGte       *decimal.Decimal // total_amount >= value
	TotalAmountLte       *decimal.Decimal // total_amount <= value
	OrderDateGte         *time.Time       // order_date >= value
	OrderDateLte         *time.Time       // order_date <= value
	CustomerNameContains *string          // case-insensitive, via linked customer
	ProductNameContains  *string          // case-insensitive, via any linked product
	ProductID            *uuid.UUID       // matches orders linking this product
	Sort                 shared.Sort
}

// OrderSortKeys is the allow-list of sort keys for order queries.
// Keys outside this set are silently ignored.
var OrderSortKeys = map[string]struct{}{
	"order_date":   {},
	"total_amount": {},
	"created_at":   {},
}

// OrderRepository defines persistence operations for orders.
type OrderRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)
	FindAll(ctx context.Context, filter OrderFilter) ([]Order, error)
	// Create persists the order row, its product links and the computed
	// total in a single transaction. No concurrent reader may observe the
	// order without its links or total.
	Create(ctx context.Context, order *Order) error
	Count(ctx context.Context) (int64, error)
	// SumTotalAmount returns the exact decimal sum of all order totals.
	SumTotalAmount(ctx context.Context) (decimal.Decimal, error)
}
