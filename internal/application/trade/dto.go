package trade

import (
	"time"

	"github.com/crm/backend/internal/domain/trade"
)

// =============================================================================
// Order DTOs
// =============================================================================

// CreateOrderRequest represents a request to create a new order.
// Identifiers are opaque strings validated by the service, so a blank or
// unknown customer ID is reported in the mutation error list. An omitted
// order date defaults to the creation time.
type CreateOrderRequest struct {
	CustomerID string   `json:"customer_id"`
	ProductIDs []string `json:"product_ids"`
	OrderDate  string   `json:"order_date"` // RFC 3339, optional
}

// OrderProductResponse is a product linked to an order.
type OrderProductResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Price string `json:"price"`
}

// OrderCustomerResponse is the customer summary embedded in an order.
type OrderCustomerResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// OrderResponse represents order data returned to callers. TotalAmount is
// serialized as a decimal string, never a binary float.
type OrderResponse struct {
	ID          string                 `json:"id"`
	Customer    OrderCustomerResponse  `json:"customer"`
	Products    []OrderProductResponse `json:"products"`
	TotalAmount string                 `json:"total_amount"`
	OrderDate   time.Time              `json:"order_date"`
	CreatedAt   time.Time              `json:"created_at"`
}

// CreateOrderResult is the mutation result shape: the created entity
// (or null) and a flat list of error strings.
type CreateOrderResult struct {
	Order  *OrderResponse `json:"order"`
	Errors []string       `json:"errors"`
}

// ListOrdersQuery holds the optional filter and sort parameters for order
// list queries. Decimal bounds and timestamps arrive as strings.
type ListOrdersQuery struct {
	TotalAmountGte string `form:"total_amount_gte"`
	TotalAmountLte string `form:"total_amount_lte"`
	OrderDateGte   string `form:"order_date_gte"`
	OrderDateLte   string `form:"order_date_lte"`
	CustomerName   string `form:"customer_name"`
	ProductName    string `form:"product_name"`
	ProductID      string `form:"product_id"`
	OrderBy        string `form:"order_by"`
	OrderDir       string `form:"order_dir"`
}

func toOrderResponse(order *trade.Order) OrderResponse {
	products := make([]OrderProductResponse, len(order.Products))
	for i, p := range order.Products {
		products[i] = OrderProductResponse{
			ID:    p.ProductID.String(),
			Name:  p.Name,
			Price: p.Price.StringFixed(2),
		}
	}
	return OrderResponse{
		ID: order.ID.String(),
		Customer: OrderCustomerResponse{
			ID:    order.CustomerID.String(),
			Name:  order.CustomerName,
			Email: order.CustomerEmail,
		},
		Products:    products,
		TotalAmount: order.TotalAmount.StringFixed(2),
		OrderDate:   order.OrderDate,
		CreatedAt:   order.CreatedAt,
	}
}
