package catalog

import (
	"context"
	"testing"

	"github.com/crm/backend/internal/domain/catalog"
	"github.com/crm/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockProductRepository is a mock implementation of ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.Product, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, filter catalog.ProductFilter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func newTestProduct(t *testing.T, name, price string, stock int) catalog.Product {
	t.Helper()
	product, errs := catalog.NewProduct(name, decimal.RequireFromString(price), stock)
	require.Empty(t, errs)
	return *product
}

func TestProductService_Create_Success(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := NewProductService(mockRepo)
	ctx := context.Background()

	mockRepo.On("Save", ctx, mock.AnythingOfType("*catalog.Product")).Return(nil)

	result, err := service.Create(ctx, CreateProductRequest{
		Name:  "Laptop",
		Price: "999.99",
	})

	require.NoError(t, err)
	require.NotNil(t, result.Product)
	assert.Empty(t, result.Errors)
	assert.Equal(t, "Laptop", result.Product.Name)
	assert.Equal(t, "999.99", result.Product.Price)
	assert.Equal(t, 0, result.Product.Stock) // stock defaults to 0 when omitted
	mockRepo.AssertExpectations(t)
}

func TestProductService_Create_CollectsAllNumericErrors(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := NewProductService(mockRepo)
	ctx := context.Background()

	stock := -3
	result, err := service.Create(ctx, CreateProductRequest{
		Name:  "Broken",
		Price: "-5",
		Stock: &stock,
	})

	require.NoError(t, err)
	assert.Nil(t, result.Product)
	// Both problems are reported together, price first.
	assert.Equal(t, []string{"price must be > 0", "stock must be >= 0"}, result.Errors)
	mockRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestProductService_Create_NonNumericPrice(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := NewProductService(mockRepo)
	ctx := context.Background()

	result, err := service.Create(ctx, CreateProductRequest{
		Name:  "Widget",
		Price: "abc",
	})

	require.NoError(t, err)
	assert.Nil(t, result.Product)
	assert.Equal(t, []string{"price must be a valid number"}, result.Errors)
	mockRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestProductService_Create_BlankName(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := NewProductService(mockRepo)
	ctx := context.Background()

	result, err := service.Create(ctx, CreateProductRequest{
		Name:  "   ",
		Price: "10.00",
	})

	require.NoError(t, err)
	assert.Nil(t, result.Product)
	assert.Equal(t, []string{"name: Name cannot be blank"}, result.Errors)
	mockRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestProductService_List_LowStockFilter(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := NewProductService(mockRepo)
	ctx := context.Background()

	lowStock := true
	name := "top"
	expected := catalog.ProductFilter{
		NameContains: &name,
		LowStock:     &lowStock,
		Sort:         shared.NewSort("", ""),
	}
	mockRepo.On("FindAll", ctx, expected).Return([]catalog.Product{
		newTestProduct(t, "Laptop", "999.99", 5),
	}, nil)

	responses, err := service.List(ctx, ListProductsQuery{Name: "top", LowStock: &lowStock})

	require.NoError(t, err)
	require.Len(t, responses, 1)
	assert.Equal(t, "Laptop", responses[0].Name)
	mockRepo.AssertExpectations(t)
}

func TestProductService_List_InvalidPriceBound(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := NewProductService(mockRepo)
	ctx := context.Background()

	_, err := service.List(ctx, ListProductsQuery{PriceGte: "not-a-number"})
	assert.Error(t, err)
}

func TestProductService_RestockLowStock(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := NewProductService(mockRepo)
	ctx := context.Background()

	low := newTestProduct(t, "Mouse", "25.50", 3)
	lowStock := true
	mockRepo.On("FindAll", ctx, catalog.ProductFilter{LowStock: &lowStock}).
		Return([]catalog.Product{low}, nil)
	mockRepo.On("Save", ctx, mock.AnythingOfType("*catalog.Product")).Return(nil)

	result, err := service.RestockLowStock(ctx, RestockLowStockRequest{})

	require.NoError(t, err)
	require.Len(t, result.Products, 1)
	assert.Equal(t, 13, result.Products[0].Stock) // 3 + default amount 10
	assert.Equal(t, "Low-stock products restocked", result.Message)
	mockRepo.AssertExpectations(t)
}

func TestProductService_RestockLowStock_NothingToDo(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := NewProductService(mockRepo)
	ctx := context.Background()

	lowStock := true
	mockRepo.On("FindAll", ctx, catalog.ProductFilter{LowStock: &lowStock}).
		Return([]catalog.Product{}, nil)

	result, err := service.RestockLowStock(ctx, RestockLowStockRequest{Amount: 5})

	require.NoError(t, err)
	assert.Empty(t, result.Products)
	assert.Equal(t, "No products needed restocking", result.Message)
	mockRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}
