package catalog

import (
	"time"

	"github.com/crm/backend/internal/domain/catalog"
)

// =============================================================================
// Product DTOs
// =============================================================================

// CreateProductRequest represents a request to create a new product.
// Price travels as a string so the boundary stays decimal-preserving;
// parsing and range checks happen in the service, which reports problems
// in the mutation error list instead of a transport error.
type CreateProductRequest struct {
	Name  string `json:"name" example:"Laptop"`
	Price string `json:"price" example:"999.99"`
	Stock *int   `json:"stock" example:"10"`
}

// ProductResponse represents product data returned to callers. Price is
// serialized as a decimal string, never a binary float.
type ProductResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Price     string    `json:"price"`
	Stock     int       `json:"stock"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateProductResult is the mutation result shape: the created entity
// (or null) and a flat list of error strings.
type CreateProductResult struct {
	Product *ProductResponse `json:"product"`
	Errors  []string         `json:"errors"`
}

// ListProductsQuery holds the optional filter and sort parameters for
// product list queries. Decimal bounds arrive as strings.
type ListProductsQuery struct {
	Name     string `form:"name"`
	PriceGte string `form:"price_gte"`
	PriceLte string `form:"price_lte"`
	StockGte *int   `form:"stock_gte"`
	StockLte *int   `form:"stock_lte"`
	LowStock *bool  `form:"low_stock"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir"`
}

// RestockLowStockRequest configures the restock trigger. A zero or
// omitted amount falls back to the default increment.
type RestockLowStockRequest struct {
	Amount int `json:"amount" example:"10"`
}

// RestockLowStockResult reports which products were restocked.
type RestockLowStockResult struct {
	Products []ProductResponse `json:"products"`
	Message  string            `json:"message"`
}

func toProductResponse(product *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:        product.ID.String(),
		Name:      product.Name,
		Price:     product.Price.StringFixed(2),
		Stock:     product.Stock,
		CreatedAt: product.CreatedAt,
	}
}
