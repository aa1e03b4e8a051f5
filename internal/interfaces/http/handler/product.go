package handler

import (
	catalogapp "github.com/crm/backend/internal/application/catalog"
	"github.com/gin-gonic/gin"
)

// ProductHandler handles product-related API endpoints
type ProductHandler struct {
	BaseHandler
	productService *catalogapp.ProductService
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(productService *catalogapp.ProductService) *ProductHandler {
	return &ProductHandler{
		productService: productService,
	}
}

// CreateProduct godoc
// @ID           createProduct
// @Summary      Create a product
// @Description  Creates a product. Price and stock violations are all collected into the result's errors list.
// @Tags         product
// @Accept       json
// @Produce      json
// @Param        request body catalogapp.CreateProductRequest true "Product data"
// @Success      200 {object} APIResponse[catalogapp.CreateProductResult]
// @Failure      400 {object} ErrorResponse
// @Router       /crm/products [post]
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req catalogapp.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	result, err := h.productService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// ListProducts godoc
// @ID           listProducts
// @Summary      List products
// @Description  Lists products with optional filters (name, price range, stock range, low-stock flag) and allow-listed sorting.
// @Tags         product
// @Produce      json
// @Param        name query string false "Name substring filter (case-insensitive)"
// @Param        price_gte query string false "Price lower bound (decimal string)"
// @Param        price_lte query string false "Price upper bound (decimal string)"
// @Param        stock_gte query int false "Stock lower bound"
// @Param        stock_lte query int false "Stock upper bound"
// @Param        low_stock query bool false "Only products with stock below 10"
// @Param        order_by query string false "Sort field (unknown fields are ignored)"
// @Param        order_dir query string false "Sort direction" Enums(asc, desc)
// @Success      200 {object} APIResponse[[]catalogapp.ProductResponse]
// @Failure      400 {object} ErrorResponse
// @Router       /crm/products [get]
func (h *ProductHandler) ListProducts(c *gin.Context) {
	var query catalogapp.ListProductsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BadRequest(c, "Invalid query parameters: "+err.Error())
		return
	}

	products, err := h.productService.List(c.Request.Context(), query)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, products)
}

// RestockLowStock godoc
// @ID           restockLowStockProducts
// @Summary      Restock low-stock products
// @Description  Increments the stock of every product below the low-stock threshold and reports the updated products.
// @Tags         product
// @Accept       json
// @Produce      json
// @Param        request body catalogapp.RestockLowStockRequest false "Restock amount (defaults to 10)"
// @Success      200 {object} APIResponse[catalogapp.RestockLowStockResult]
// @Failure      400 {object} ErrorResponse
// @Router       /crm/products/restock-low-stock [post]
func (h *ProductHandler) RestockLowStock(c *gin.Context) {
	var req catalogapp.RestockLowStockRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.BadRequest(c, "Invalid request body: "+err.Error())
			return
		}
	}

	result, err := h.productService.RestockLowStock(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}
