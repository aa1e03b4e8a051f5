package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	partnerapp "github.com/crm/backend/internal/application/partner"
	"github.com/crm/backend/internal/domain/partner"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockCustomerRepository implements partner.CustomerRepository for testing
type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindByEmail(ctx context.Context, email string) (*partner.Customer, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockCustomerRepository) FindAll(ctx context.Context, filter partner.CustomerFilter) ([]partner.Customer, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) Save(ctx context.Context, customer *partner.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func setupCustomerHandler(repo *MockCustomerRepository) *CustomerHandler {
	return NewCustomerHandler(partnerapp.NewCustomerService(repo))
}

func createTestCustomer(name, email string) *partner.Customer {
	customer, _ := partner.NewCustomer(name, email, "")
	return customer
}

// createCustomerEnvelope is the wire shape of a customer mutation response.
type createCustomerEnvelope struct {
	Success bool                            `json:"success"`
	Data    partnerapp.CreateCustomerResult `json:"data"`
}

// Tests

func TestCustomerHandler_Create_Success(t *testing.T) {
	repo := new(MockCustomerRepository)
	handler := setupCustomerHandler(repo)

	repo.On("ExistsByEmail", mock.Anything, "alice@example.com").Return(false, nil)
	repo.On("Save", mock.Anything, mock.AnythingOfType("*partner.Customer")).Return(nil)

	router := setupTestRouter()
	router.POST("/crm/customers", handler.CreateCustomer)

	body, _ := json.Marshal(partnerapp.CreateCustomerRequest{
		Name:  "Alice",
		Email: "alice@example.com",
		Phone: "+1234567890",
	})

	req := httptest.NewRequest(http.MethodPost, "/crm/customers", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp createCustomerEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	require.NotNil(t, resp.Data.Customer)
	assert.Equal(t, "Alice", resp.Data.Customer.Name)
	assert.Equal(t, "Customer created", resp.Data.Message)
	assert.Empty(t, resp.Data.Errors)
	repo.AssertExpectations(t)
}

func TestCustomerHandler_Create_DuplicateEmail(t *testing.T) {
	repo := new(MockCustomerRepository)
	handler := setupCustomerHandler(repo)

	repo.On("ExistsByEmail", mock.Anything, "alice@example.com").Return(true, nil)

	router := setupTestRouter()
	router.POST("/crm/customers", handler.CreateCustomer)

	body, _ := json.Marshal(partnerapp.CreateCustomerRequest{
		Name:  "Alice",
		Email: "alice@example.com",
	})

	req := httptest.NewRequest(http.MethodPost, "/crm/customers", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	// Business failures ride inside a 200 result, never as an HTTP fault.
	assert.Equal(t, http.StatusOK, w.Code)

	var resp createCustomerEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Nil(t, resp.Data.Customer)
	assert.Equal(t, "Failed", resp.Data.Message)
	assert.Equal(t, []string{"Email already exists"}, resp.Data.Errors)
	repo.AssertExpectations(t)
}

func TestCustomerHandler_Create_BlankName(t *testing.T) {
	repo := new(MockCustomerRepository)
	handler := setupCustomerHandler(repo)

	repo.On("ExistsByEmail", mock.Anything, "blank@example.com").Return(false, nil)

	router := setupTestRouter()
	router.POST("/crm/customers", handler.CreateCustomer)

	body, _ := json.Marshal(partnerapp.CreateCustomerRequest{
		Name:  "",
		Email: "blank@example.com",
	})

	req := httptest.NewRequest(http.MethodPost, "/crm/customers", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	// A blank field is a business validation failure, reported in the
	// result error list exactly like the bulk path reports it.
	assert.Equal(t, http.StatusOK, w.Code)

	var resp createCustomerEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Nil(t, resp.Data.Customer)
	assert.Equal(t, "Failed", resp.Data.Message)
	assert.Equal(t, []string{"name: Name cannot be blank"}, resp.Data.Errors)
	repo.AssertExpectations(t)
}

func TestCustomerHandler_Create_InvalidJSON(t *testing.T) {
	repo := new(MockCustomerRepository)
	handler := setupCustomerHandler(repo)

	router := setupTestRouter()
	router.POST("/crm/customers", handler.CreateCustomer)

	req := httptest.NewRequest(http.MethodPost, "/crm/customers", bytes.NewBufferString("not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "ERR_BAD_REQUEST")
}

func TestCustomerHandler_Create_StoreFault(t *testing.T) {
	repo := new(MockCustomerRepository)
	handler := setupCustomerHandler(repo)

	repo.On("ExistsByEmail", mock.Anything, "alice@example.com").
		Return(false, errors.New("connection refused"))

	router := setupTestRouter()
	router.POST("/crm/customers", handler.CreateCustomer)

	body, _ := json.Marshal(partnerapp.CreateCustomerRequest{
		Name:  "Alice",
		Email: "alice@example.com",
	})

	req := httptest.NewRequest(http.MethodPost, "/crm/customers", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	repo.AssertExpectations(t)
}

func TestCustomerHandler_BulkCreate_PartialSuccess(t *testing.T) {
	repo := new(MockCustomerRepository)
	handler := setupCustomerHandler(repo)

	repo.On("ExistsByEmail", mock.Anything, "alice@example.com").Return(false, nil)
	repo.On("ExistsByEmail", mock.Anything, "taken@example.com").Return(true, nil)
	repo.On("Save", mock.Anything, mock.AnythingOfType("*partner.Customer")).Return(nil)

	router := setupTestRouter()
	router.POST("/crm/customers/bulk", handler.BulkCreateCustomers)

	body, _ := json.Marshal(partnerapp.BulkCreateCustomersRequest{
		Input: []partnerapp.CreateCustomerRequest{
			{Name: "Alice", Email: "alice@example.com"},
			{Name: "Bob", Email: "taken@example.com"},
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/crm/customers/bulk", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool                                 `json:"success"`
		Data    partnerapp.BulkCreateCustomersResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	require.Len(t, resp.Data.Customers, 1)
	assert.Equal(t, "Alice", resp.Data.Customers[0].Name)
	assert.Equal(t, []string{"[1] Email already exists: taken@example.com"}, resp.Data.Errors)
	repo.AssertExpectations(t)
}

func TestCustomerHandler_List_Success(t *testing.T) {
	repo := new(MockCustomerRepository)
	handler := setupCustomerHandler(repo)

	customers := []partner.Customer{
		*createTestCustomer("Alice", "alice@example.com"),
		*createTestCustomer("Bob", "bob@example.com"),
	}
	repo.On("FindAll", mock.Anything, mock.AnythingOfType("partner.CustomerFilter")).
		Return(customers, nil)

	router := setupTestRouter()
	router.GET("/crm/customers", handler.ListCustomers)

	req := httptest.NewRequest(http.MethodGet, "/crm/customers?name=ali&order_by=name&order_dir=asc", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool                          `json:"success"`
		Data    []partnerapp.CustomerResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Len(t, resp.Data, 2)
	repo.AssertExpectations(t)
}
