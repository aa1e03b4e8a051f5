package catalog

import (
	"context"

	"github.com/crm/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductFilter holds the optional predicates for product list queries.
// Nil fields impose no constraint; set fields are combined with AND.
type ProductFilter struct {
	NameContains *string          // case-insensitive substring on name
	PriceGte     *decimal.Decimal // price >= value
	PriceLte     *decimal.Decimal // price <= value
	StockGte     *int             // stock >= value
	StockLte     *int             // stock <= value
	LowStock     *bool            // when true, stock < LowStockThreshold
	Sort         shared.Sort
}

// ProductSortKeys is the allow-list of sort keys for product queries.
// Keys outside this set are silently ignored.
var ProductSortKeys = map[string]struct{}{
	"name":       {},
	"price":      {},
	"stock":      {},
	"created_at": {},
}

// ProductRepository defines persistence operations for products.
type ProductRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	// FindByIDs returns the products that exist among the given ids;
	// missing ids are simply absent from the result, not an error.
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Product, error)
	FindAll(ctx context.Context, filter ProductFilter) ([]Product, error)
	Save(ctx context.Context, product *Product) error
	Count(ctx context.Context) (int64, error)
}
