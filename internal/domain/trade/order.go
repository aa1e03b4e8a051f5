package trade

import (
	"time"

	"github.com/crm/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderProduct is a product linked to an order, hydrated from the catalog
// at read time. The link is many-to-many: one order references many
// products and a product can appear on many orders.
type OrderProduct struct {
	ProductID uuid.UUID
	Name      string
	Price     decimal.Decimal
}

// Order represents a customer order aggregate root. The total amount is
// derived: it always equals the exact decimal sum of the linked product
// prices at creation time.
type Order struct {
	shared.BaseAggregateRoot
	CustomerID    uuid.UUID
	CustomerName  string // hydrated from the linked customer
	CustomerEmail string // hydrated from the linked customer
	OrderDate     time.Time
	TotalAmount   decimal.Decimal
	Products      []OrderProduct
}

// NewOrder creates a new order linking the given customer and products.
// The caller has already resolved both against the store; this constructor
// enforces the structural invariants and computes the total. A zero
// orderDate defaults to the current time.
func NewOrder(customerID uuid.UUID, customerName, customerEmail string, products []OrderProduct, orderDate time.Time) (*Order, error) {
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}
	if len(products) == 0 {
		return nil, shared.NewDomainError("EMPTY_SELECTION", "At least one product must be selected")
	}
	if orderDate.IsZero() {
		orderDate = time.Now()
	}

	order := &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		CustomerID:        customerID,
		CustomerName:      customerName,
		CustomerEmail:     customerEmail,
		OrderDate:         orderDate,
		TotalAmount:       ComputeTotal(products),
		Products:          products,
	}

	order.AddDomainEvent(NewOrderCreatedEvent(order))
	return order, nil
}

// ComputeTotal sums the linked product prices in exact decimal arithmetic.
// Decimal addition is associative and commutative at this precision, so
// the iteration order never affects the result.
func ComputeTotal(products []OrderProduct) decimal.Decimal {
	total := decimal.RequireFromString("0.00")
	for _, p := range products {
		total = total.Add(p.Price)
	}
	return total
}

// ProductIDs returns the ids of all linked products.
func (o *Order) ProductIDs() []uuid.UUID {
	ids := make([]uuid.UUID, len(o.Products))
	for i, p := range o.Products {
		ids[i] = p.ProductID
	}
	return ids
}
