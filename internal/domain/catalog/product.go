package catalog

import (
	"strings"

	"github.com/crm/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// LowStockThreshold is the stock level below which a product counts as
// low stock, both for the low_stock list filter and the restock trigger.
const LowStockThreshold = 10

// Product represents a sellable product aggregate root.
type Product struct {
	shared.BaseAggregateRoot
	Name  string
	Price decimal.Decimal // strictly positive, two decimal places
	Stock int             // never negative
}

// NewProduct creates a new product after validating its invariants.
// On failure it returns the complete ordered list of field errors
// (name, price, stock).
func NewProduct(name string, price decimal.Decimal, stock int) (*Product, []shared.FieldError) {
	if errs := ValidateNewProduct(name, price, stock); len(errs) > 0 {
		return nil, errs
	}

	product := &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Price:             price.Round(2),
		Stock:             stock,
	}

	product.AddDomainEvent(NewProductCreatedEvent(product))
	return product, nil
}

// ValidateNewProduct checks the proposed field values in a deterministic
// order: name, price, stock.
func ValidateNewProduct(name string, price decimal.Decimal, stock int) []shared.FieldError {
	var errs []shared.FieldError

	if strings.TrimSpace(name) == "" {
		errs = append(errs, shared.FieldError{Field: "name", Message: "Name cannot be blank"})
	}
	if !price.IsPositive() {
		errs = append(errs, shared.FieldError{Field: "price", Message: "Price must be greater than zero"})
	}
	if stock < 0 {
		errs = append(errs, shared.FieldError{Field: "stock", Message: "Stock cannot be negative"})
	}

	return errs
}

// IsLowStock reports whether the product is below the low-stock threshold.
func (p *Product) IsLowStock() bool {
	return p.Stock < LowStockThreshold
}

// Restock increases the stock level by the given amount.
func (p *Product) Restock(amount int) error {
	if amount <= 0 {
		return shared.NewDomainError("INVALID_RESTOCK_AMOUNT", "Restock amount must be positive")
	}

	oldStock := p.Stock
	p.Stock += amount
	p.IncrementVersion()
	p.AddDomainEvent(NewProductRestockedEvent(p, oldStock))
	return nil
}
