package handler

import (
	partnerapp "github.com/crm/backend/internal/application/partner"
	"github.com/gin-gonic/gin"
)

// CustomerHandler handles customer-related API endpoints
type CustomerHandler struct {
	BaseHandler
	customerService *partnerapp.CustomerService
}

// NewCustomerHandler creates a new CustomerHandler
func NewCustomerHandler(customerService *partnerapp.CustomerService) *CustomerHandler {
	return &CustomerHandler{
		customerService: customerService,
	}
}

// CreateCustomer godoc
// @ID           createCustomer
// @Summary      Create a customer
// @Description  Creates a customer. Business validation failures are reported in the result's errors list, not as HTTP faults.
// @Tags         customer
// @Accept       json
// @Produce      json
// @Param        request body partnerapp.CreateCustomerRequest true "Customer data"
// @Success      200 {object} APIResponse[partnerapp.CreateCustomerResult]
// @Failure      400 {object} ErrorResponse
// @Router       /crm/customers [post]
func (h *CustomerHandler) CreateCustomer(c *gin.Context) {
	var req partnerapp.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	result, err := h.customerService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// BulkCreateCustomers godoc
// @ID           bulkCreateCustomers
// @Summary      Create customers in bulk
// @Description  Creates a batch of customers with partial success: valid entries are persisted, failures are reported per index.
// @Tags         customer
// @Accept       json
// @Produce      json
// @Param        request body partnerapp.BulkCreateCustomersRequest true "Customer batch"
// @Success      200 {object} APIResponse[partnerapp.BulkCreateCustomersResult]
// @Failure      400 {object} ErrorResponse
// @Router       /crm/customers/bulk [post]
func (h *CustomerHandler) BulkCreateCustomers(c *gin.Context) {
	var req partnerapp.BulkCreateCustomersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	result, err := h.customerService.BulkCreate(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// ListCustomers godoc
// @ID           listCustomers
// @Summary      List customers
// @Description  Lists customers with optional filters (name, email, creation window, phone prefix) and allow-listed sorting.
// @Tags         customer
// @Produce      json
// @Param        name query string false "Name substring filter (case-insensitive)"
// @Param        email query string false "Email substring filter (case-insensitive)"
// @Param        created_at_gte query string false "Created at lower bound (RFC 3339)"
// @Param        created_at_lte query string false "Created at upper bound (RFC 3339)"
// @Param        phone_starts_with query string false "Phone prefix filter"
// @Param        order_by query string false "Sort field (unknown fields are ignored)"
// @Param        order_dir query string false "Sort direction" Enums(asc, desc)
// @Success      200 {object} APIResponse[[]partnerapp.CustomerResponse]
// @Failure      400 {object} ErrorResponse
// @Router       /crm/customers [get]
func (h *CustomerHandler) ListCustomers(c *gin.Context) {
	var query partnerapp.ListCustomersQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BadRequest(c, "Invalid query parameters: "+err.Error())
		return
	}

	customers, err := h.customerService.List(c.Request.Context(), query)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, customers)
}
