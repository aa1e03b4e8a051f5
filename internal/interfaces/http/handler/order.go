package handler

import (
	tradeapp "github.com/crm/backend/internal/application/trade"
	"github.com/gin-gonic/gin"
)

// OrderHandler handles order-related API endpoints
type OrderHandler struct {
	BaseHandler
	orderService *tradeapp.OrderService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orderService *tradeapp.OrderService) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
	}
}

// CreateOrder godoc
// @ID           createOrder
// @Summary      Create an order
// @Description  Creates an order linking a customer to products. Reference failures (unknown customer, invalid product IDs, empty product list) are reported in the result's errors list.
// @Tags         order
// @Accept       json
// @Produce      json
// @Param        request body tradeapp.CreateOrderRequest true "Order data"
// @Success      200 {object} APIResponse[tradeapp.CreateOrderResult]
// @Failure      400 {object} ErrorResponse
// @Router       /crm/orders [post]
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req tradeapp.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	result, err := h.orderService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// ListOrders godoc
// @ID           listOrders
// @Summary      List orders
// @Description  Lists orders with optional filters (total range, date window, customer name, product name or id) and allow-listed sorting. Each order embeds its customer summary and linked products.
// @Tags         order
// @Produce      json
// @Param        total_amount_gte query string false "Total lower bound (decimal string)"
// @Param        total_amount_lte query string false "Total upper bound (decimal string)"
// @Param        order_date_gte query string false "Order date lower bound (RFC 3339)"
// @Param        order_date_lte query string false "Order date upper bound (RFC 3339)"
// @Param        customer_name query string false "Customer name substring filter"
// @Param        product_name query string false "Linked product name substring filter"
// @Param        product_id query string false "Linked product id filter"
// @Param        order_by query string false "Sort field (unknown fields are ignored)"
// @Param        order_dir query string false "Sort direction" Enums(asc, desc)
// @Success      200 {object} APIResponse[[]tradeapp.OrderResponse]
// @Failure      400 {object} ErrorResponse
// @Router       /crm/orders [get]
func (h *OrderHandler) ListOrders(c *gin.Context) {
	var query tradeapp.ListOrdersQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BadRequest(c, "Invalid query parameters: "+err.Error())
		return
	}

	orders, err := h.orderService.List(c.Request.Context(), query)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, orders)
}
