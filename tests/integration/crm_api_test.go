package integration

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	catalogapp "github.com/crm/backend/internal/application/catalog"
	partnerapp "github.com/crm/backend/internal/application/partner"
	reportapp "github.com/crm/backend/internal/application/report"
	tradeapp "github.com/crm/backend/internal/application/trade"
	"github.com/crm/backend/internal/infrastructure/cache"
	"github.com/crm/backend/internal/infrastructure/persistence"
	"github.com/crm/backend/internal/interfaces/http/handler"
	"github.com/crm/backend/internal/interfaces/http/middleware"
	"github.com/crm/backend/internal/interfaces/http/router"
	"github.com/crm/backend/tests/testutil"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// setupAPIServer wires the full HTTP stack against a real database,
// mirroring the production route layout.
func setupAPIServer(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()

	customerRepo := persistence.NewGormCustomerRepository(db)
	productRepo := persistence.NewGormProductRepository(db)
	orderRepo := persistence.NewGormOrderRepository(db)

	customerService := partnerapp.NewCustomerService(customerRepo)
	productService := catalogapp.NewProductService(productRepo)
	orderService := tradeapp.NewOrderService(orderRepo, customerRepo, productRepo)
	reportService := reportapp.NewReportService(customerRepo, orderRepo, cache.NewInMemoryReportCache(), time.Minute)

	customerHandler := handler.NewCustomerHandler(customerService)
	productHandler := handler.NewProductHandler(productService)
	orderHandler := handler.NewOrderHandler(orderService)
	reportHandler := handler.NewReportHandler(reportService)
	systemHandler := handler.NewSystemHandler()

	engine := gin.New()
	engine.Use(middleware.RequestID())
	engine.GET("/api/v1/hello", systemHandler.Hello)

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	crmRoutes := router.NewDomainGroup("crm", "/crm")
	crmRoutes.POST("/customers", customerHandler.CreateCustomer)
	crmRoutes.POST("/customers/bulk", customerHandler.BulkCreateCustomers)
	crmRoutes.GET("/customers", customerHandler.ListCustomers)
	crmRoutes.POST("/products", productHandler.CreateProduct)
	crmRoutes.GET("/products", productHandler.ListProducts)
	crmRoutes.POST("/products/restock-low-stock", productHandler.RestockLowStock)
	crmRoutes.POST("/orders", orderHandler.CreateOrder)
	crmRoutes.GET("/orders", orderHandler.ListOrders)
	crmRoutes.GET("/report/weekly", reportHandler.WeeklyReport)
	r.Register(crmRoutes)
	r.Setup()

	return engine
}

type apiEnvelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
}

func doJSON(t *testing.T, engine *gin.Engine, method, path string, body any) (*httptest.ResponseRecorder, apiEnvelope) {
	t.Helper()

	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, path, testutil.ToJSONReader(t, body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	var envelope apiEnvelope
	if len(w.Body.Bytes()) > 0 {
		_ = json.Unmarshal(w.Body.Bytes(), &envelope)
	}
	return w, envelope
}

// TestCRMAPI_EndToEnd drives the complete customer -> product -> order ->
// report flow over HTTP against a real PostgreSQL database.
func TestCRMAPI_EndToEnd(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	testDB := NewTestDB(t)
	engine := setupAPIServer(testDB.DB)

	t.Run("hello is not wrapped in the envelope", func(t *testing.T) {
		w, _ := doJSON(t, engine, http.MethodGet, "/api/v1/hello", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"message": "Hello, CRM!"}`, w.Body.String())
	})

	var customerID string

	t.Run("create customer", func(t *testing.T) {
		w, env := doJSON(t, engine, http.MethodPost, "/api/v1/crm/customers", map[string]any{
			"name":  "Alice",
			"email": "alice@example.com",
			"phone": "+1234567890",
		})
		require.Equal(t, http.StatusOK, w.Code)
		require.True(t, env.Success)

		var result partnerapp.CreateCustomerResult
		require.NoError(t, json.Unmarshal(env.Data, &result))
		require.NotNil(t, result.Customer)
		assert.Equal(t, "Alice", result.Customer.Name)
		assert.Empty(t, result.Errors)
		customerID = result.Customer.ID
	})

	t.Run("duplicate email reports error with null customer", func(t *testing.T) {
		w, env := doJSON(t, engine, http.MethodPost, "/api/v1/crm/customers", map[string]any{
			"name":  "Alice Clone",
			"email": "ALICE@example.com",
		})
		require.Equal(t, http.StatusOK, w.Code)

		var result partnerapp.CreateCustomerResult
		require.NoError(t, json.Unmarshal(env.Data, &result))
		assert.Nil(t, result.Customer)
		assert.Contains(t, result.Errors, "Email already exists")
	})

	t.Run("bulk create reports partial success", func(t *testing.T) {
		w, env := doJSON(t, engine, http.MethodPost, "/api/v1/crm/customers/bulk", map[string]any{
			"input": []map[string]any{
				{"name": "Bob", "email": "bob@example.com"},
				{"name": "Dupe", "email": "alice@example.com"},
				{"name": "", "email": "blank@example.com"},
			},
		})
		require.Equal(t, http.StatusOK, w.Code)

		var result partnerapp.BulkCreateCustomersResult
		require.NoError(t, json.Unmarshal(env.Data, &result))
		assert.Len(t, result.Customers, 1)
		assert.Len(t, result.Errors, 2)
		assert.Contains(t, result.Errors[0], "[1]")
		assert.Contains(t, result.Errors[1], "[2]")
	})

	var laptopID, mouseID string

	t.Run("create products", func(t *testing.T) {
		for _, p := range []map[string]any{
			{"name": "Laptop", "price": "999.99", "stock": 10},
			{"name": "Mouse", "price": "25.50", "stock": 3},
		} {
			w, env := doJSON(t, engine, http.MethodPost, "/api/v1/crm/products", p)
			require.Equal(t, http.StatusOK, w.Code)

			var result catalogapp.CreateProductResult
			require.NoError(t, json.Unmarshal(env.Data, &result))
			require.NotNil(t, result.Product, "errors: %v", result.Errors)
			switch result.Product.Name {
			case "Laptop":
				laptopID = result.Product.ID
			case "Mouse":
				mouseID = result.Product.ID
			}
		}
	})

	t.Run("negative price is rejected in the error list", func(t *testing.T) {
		w, env := doJSON(t, engine, http.MethodPost, "/api/v1/crm/products", map[string]any{
			"name":  "Broken",
			"price": "-10.00",
		})
		require.Equal(t, http.StatusOK, w.Code)

		var result catalogapp.CreateProductResult
		require.NoError(t, json.Unmarshal(env.Data, &result))
		assert.Nil(t, result.Product)
		assert.NotEmpty(t, result.Errors)
	})

	t.Run("create order computes exact total", func(t *testing.T) {
		w, env := doJSON(t, engine, http.MethodPost, "/api/v1/crm/orders", map[string]any{
			"customer_id": customerID,
			"product_ids": []string{laptopID, mouseID},
			"order_date":  "2024-05-01T10:00:00Z",
		})
		require.Equal(t, http.StatusOK, w.Code)

		var result tradeapp.CreateOrderResult
		require.NoError(t, json.Unmarshal(env.Data, &result))
		require.NotNil(t, result.Order, "errors: %v", result.Errors)
		assert.Equal(t, "1025.49", result.Order.TotalAmount)
		assert.Equal(t, "Alice", result.Order.Customer.Name)
		assert.Len(t, result.Order.Products, 2)
	})

	t.Run("order with unknown customer fails without creating", func(t *testing.T) {
		w, env := doJSON(t, engine, http.MethodPost, "/api/v1/crm/orders", map[string]any{
			"customer_id": "00000000-0000-0000-0000-000000000001",
			"product_ids": []string{laptopID},
		})
		require.Equal(t, http.StatusOK, w.Code)

		var result tradeapp.CreateOrderResult
		require.NoError(t, json.Unmarshal(env.Data, &result))
		assert.Nil(t, result.Order)
		require.NotEmpty(t, result.Errors)
		assert.Contains(t, result.Errors[0], "Invalid customer ID")
	})

	t.Run("list orders filtered by customer name", func(t *testing.T) {
		w, env := doJSON(t, engine, http.MethodGet, "/api/v1/crm/orders?customer_name=ali&order_by=total_amount&order_dir=desc", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var orders []tradeapp.OrderResponse
		require.NoError(t, json.Unmarshal(env.Data, &orders))
		require.Len(t, orders, 1)
		assert.Equal(t, "1025.49", orders[0].TotalAmount)
	})

	t.Run("invalid amount bound is a 400", func(t *testing.T) {
		w, _ := doJSON(t, engine, http.MethodGet, "/api/v1/crm/orders?total_amount_gte=lots", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("restock tops up low-stock products", func(t *testing.T) {
		w, env := doJSON(t, engine, http.MethodPost, "/api/v1/crm/products/restock-low-stock", map[string]any{})
		require.Equal(t, http.StatusOK, w.Code)

		var result catalogapp.RestockLowStockResult
		require.NoError(t, json.Unmarshal(env.Data, &result))
		require.Len(t, result.Products, 1)
		assert.Equal(t, "Mouse", result.Products[0].Name)
		assert.Equal(t, 13, result.Products[0].Stock)
	})

	t.Run("weekly report aggregates totals", func(t *testing.T) {
		w, env := doJSON(t, engine, http.MethodGet, "/api/v1/crm/report/weekly", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var report reportapp.WeeklyReportResponse
		require.NoError(t, json.Unmarshal(env.Data, &report))
		assert.Equal(t, int64(2), report.TotalCustomers) // Alice + Bob
		assert.Equal(t, int64(1), report.TotalOrders)
		assert.Equal(t, "1025.49", report.TotalRevenue)
		assert.False(t, report.GeneratedAt.IsZero())
	})

	t.Run("malformed json body is a 400", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/crm/customers", testutil.ToJSONReader(t, "not-an-object"))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
