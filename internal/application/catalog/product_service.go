package catalog

import (
	"context"

	"github.com/crm/backend/internal/domain/catalog"
	"github.com/crm/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Error strings returned by the product mutation. Callers match on them,
// so they are fixed.
const (
	errPriceNotNumber = "price must be a valid number"
	errPriceNotPos    = "price must be > 0"
	errStockNegative  = "stock must be >= 0"

	// DefaultRestockAmount is added to each low-stock product when the
	// restock trigger runs without an explicit amount.
	DefaultRestockAmount = 10
)

// ProductService provides application-level product operations
type ProductService struct {
	productRepo    catalog.ProductRepository
	eventPublisher shared.EventPublisher
}

// NewProductService creates a new ProductService
func NewProductService(productRepo catalog.ProductRepository) *ProductService {
	return &ProductService{productRepo: productRepo}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *ProductService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create creates a single product. All numeric problems are collected
// before any write: an invalid price and a negative stock are reported
// together, and nothing is persisted while the error list is non-empty.
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*CreateProductResult, error) {
	var problems []string

	price, err := decimal.NewFromString(req.Price)
	switch {
	case err != nil:
		problems = append(problems, errPriceNotNumber)
	case !price.IsPositive():
		problems = append(problems, errPriceNotPos)
	}

	stock := 0
	if req.Stock != nil {
		stock = *req.Stock
	}
	if stock < 0 {
		problems = append(problems, errStockNegative)
	}

	if len(problems) > 0 {
		return &CreateProductResult{Errors: problems}, nil
	}

	product, fieldErrs := catalog.NewProduct(req.Name, price, stock)
	if len(fieldErrs) > 0 {
		return &CreateProductResult{Errors: shared.FormatFieldErrors(fieldErrs)}, nil
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, product)

	resp := toProductResponse(product)
	return &CreateProductResult{Product: &resp, Errors: []string{}}, nil
}

// List returns products matching the query's filter, ordered by its sort
// key when that key is in the product allow-list.
func (s *ProductService) List(ctx context.Context, query ListProductsQuery) ([]ProductResponse, error) {
	filter, err := buildProductFilter(query)
	if err != nil {
		return nil, err
	}

	products, err := s.productRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]ProductResponse, len(products))
	for i := range products {
		responses[i] = toProductResponse(&products[i])
	}
	return responses, nil
}

// RestockLowStock finds every product below the low-stock threshold and
// increments its stock by the requested amount (default 10). Each product
// is saved individually; the updated set is returned so the caller can
// log per-product outcomes.
func (s *ProductService) RestockLowStock(ctx context.Context, req RestockLowStockRequest) (*RestockLowStockResult, error) {
	amount := req.Amount
	if amount <= 0 {
		amount = DefaultRestockAmount
	}

	lowStock := true
	products, err := s.productRepo.FindAll(ctx, catalog.ProductFilter{LowStock: &lowStock})
	if err != nil {
		return nil, err
	}

	updated := make([]ProductResponse, 0, len(products))
	for i := range products {
		product := &products[i]
		if err := product.Restock(amount); err != nil {
			return nil, err
		}
		if err := s.productRepo.Save(ctx, product); err != nil {
			return nil, err
		}
		s.publishEvents(ctx, product)
		updated = append(updated, toProductResponse(product))
	}

	message := "No products needed restocking"
	if len(updated) > 0 {
		message = "Low-stock products restocked"
	}
	return &RestockLowStockResult{Products: updated, Message: message}, nil
}

// Count returns the total number of products
func (s *ProductService) Count(ctx context.Context) (int64, error) {
	return s.productRepo.Count(ctx)
}

func buildProductFilter(query ListProductsQuery) (catalog.ProductFilter, error) {
	filter := catalog.ProductFilter{
		StockGte: query.StockGte,
		StockLte: query.StockLte,
		LowStock: query.LowStock,
		Sort:     shared.NewSort(query.OrderBy, query.OrderDir),
	}

	if query.Name != "" {
		filter.NameContains = &query.Name
	}
	if query.PriceGte != "" {
		d, err := decimal.NewFromString(query.PriceGte)
		if err != nil {
			return filter, shared.NewDomainErrorf("INVALID_INPUT", "price_gte must be a decimal number: %s", query.PriceGte)
		}
		filter.PriceGte = &d
	}
	if query.PriceLte != "" {
		d, err := decimal.NewFromString(query.PriceLte)
		if err != nil {
			return filter, shared.NewDomainErrorf("INVALID_INPUT", "price_lte must be a decimal number: %s", query.PriceLte)
		}
		filter.PriceLte = &d
	}

	return filter, nil
}

func (s *ProductService) publishEvents(ctx context.Context, product *catalog.Product) {
	if s.eventPublisher == nil {
		return
	}
	for _, event := range product.GetDomainEvents() {
		// Event delivery is best-effort; a failed publish must not fail
		// the already-committed mutation.
		_ = s.eventPublisher.Publish(ctx, event)
	}
	product.ClearDomainEvents()
}
