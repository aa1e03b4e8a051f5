package trade

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/crm/backend/internal/domain/catalog"
	"github.com/crm/backend/internal/domain/partner"
	"github.com/crm/backend/internal/domain/shared"
	"github.com/crm/backend/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderService provides application-level order operations
type OrderService struct {
	orderRepo      trade.OrderRepository
	customerRepo   partner.CustomerRepository
	productRepo    catalog.ProductRepository
	eventPublisher shared.EventPublisher
}

// NewOrderService creates a new OrderService
func NewOrderService(orderRepo trade.OrderRepository, customerRepo partner.CustomerRepository, productRepo catalog.ProductRepository) *OrderService {
	return &OrderService{
		orderRepo:    orderRepo,
		customerRepo: customerRepo,
		productRepo:  productRepo,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *OrderService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create creates an order after three short-circuiting gates: the
// customer must exist, the product selection must be non-empty, and every
// selected product must exist. Only then is the order persisted, with the
// order row, product links and computed total written in one transaction
// so no reader ever observes a partially created order.
func (s *OrderService) Create(ctx context.Context, req CreateOrderRequest) (*CreateOrderResult, error) {
	customer, err := s.resolveCustomer(ctx, req.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return &CreateOrderResult{Errors: []string{fmt.Sprintf("Invalid customer ID: %s", req.CustomerID)}}, nil
	}

	if len(req.ProductIDs) == 0 {
		return &CreateOrderResult{Errors: []string{"At least one product must be selected"}}, nil
	}

	products, missing, err := s.resolveProducts(ctx, req.ProductIDs)
	if err != nil {
		return nil, err
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return &CreateOrderResult{Errors: []string{fmt.Sprintf("Invalid product ID(s): %s", strings.Join(missing, ", "))}}, nil
	}

	var orderDate time.Time
	if req.OrderDate != "" {
		orderDate, err = time.Parse(time.RFC3339, req.OrderDate)
		if err != nil {
			return nil, shared.NewDomainErrorf("INVALID_INPUT", "order_date must be an RFC 3339 timestamp: %s", req.OrderDate)
		}
	}

	linked := make([]trade.OrderProduct, len(products))
	for i, p := range products {
		linked[i] = trade.OrderProduct{ProductID: p.ID, Name: p.Name, Price: p.Price}
	}

	order, err := trade.NewOrder(customer.ID, customer.Name, customer.Email, linked, orderDate)
	if err != nil {
		return nil, err
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, order)

	resp := toOrderResponse(order)
	return &CreateOrderResult{Order: &resp, Errors: []string{}}, nil
}

// List returns orders matching the query's filter, ordered by its sort
// key when that key is in the order allow-list.
func (s *OrderService) List(ctx context.Context, query ListOrdersQuery) ([]OrderResponse, error) {
	filter, err := buildOrderFilter(query)
	if err != nil {
		return nil, err
	}

	orders, err := s.orderRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]OrderResponse, len(orders))
	for i := range orders {
		responses[i] = toOrderResponse(&orders[i])
	}
	return responses, nil
}

// Count returns the total number of orders
func (s *OrderService) Count(ctx context.Context) (int64, error) {
	return s.orderRepo.Count(ctx)
}

// TotalRevenue returns the exact decimal sum of all order totals.
func (s *OrderService) TotalRevenue(ctx context.Context) (decimal.Decimal, error) {
	return s.orderRepo.SumTotalAmount(ctx)
}

// resolveCustomer looks up the customer behind an opaque id string.
// A malformed id and an unknown id are indistinguishable to the caller:
// both mean the customer does not exist.
func (s *OrderService) resolveCustomer(ctx context.Context, rawID string) (*partner.Customer, error) {
	id, err := uuid.Parse(rawID)
	if err != nil {
		return nil, nil
	}
	customer, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return customer, nil
}

// resolveProducts resolves the requested product ids, deduplicating the
// selection, and reports the ids that did not resolve. Malformed ids
// count as missing.
func (s *OrderService) resolveProducts(ctx context.Context, rawIDs []string) ([]catalog.Product, []string, error) {
	seen := make(map[string]struct{}, len(rawIDs))
	ids := make([]uuid.UUID, 0, len(rawIDs))
	var missing []string

	for _, raw := range rawIDs {
		if _, dup := seen[raw]; dup {
			continue
		}
		seen[raw] = struct{}{}

		id, err := uuid.Parse(raw)
		if err != nil {
			missing = append(missing, raw)
			continue
		}
		ids = append(ids, id)
	}

	products, err := s.productRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, nil, err
	}

	found := make(map[uuid.UUID]struct{}, len(products))
	for _, p := range products {
		found[p.ID] = struct{}{}
	}
	for _, id := range ids {
		if _, ok := found[id]; !ok {
			missing = append(missing, id.String())
		}
	}

	return products, missing, nil
}

func buildOrderFilter(query ListOrdersQuery) (trade.OrderFilter, error) {
	filter := trade.OrderFilter{
		Sort: shared.NewSort(query.OrderBy, query.OrderDir),
	}

	if query.CustomerName != "" {
		filter.CustomerNameContains = &query.CustomerName
	}
	if query.ProductName != "" {
		filter.ProductNameContains = &query.ProductName
	}
	if query.ProductID != "" {
		id, err := uuid.Parse(query.ProductID)
		if err != nil {
			return filter, shared.NewDomainErrorf("INVALID_INPUT", "product_id must be a valid id: %s", query.ProductID)
		}
		filter.ProductID = &id
	}
	if query.TotalAmountGte != "" {
		d, err := decimal.NewFromString(query.TotalAmountGte)
		if err != nil {
			return filter, shared.NewDomainErrorf("INVALID_INPUT", "total_amount_gte must be a decimal number: %s", query.TotalAmountGte)
		}
		filter.TotalAmountGte = &d
	}
	if query.TotalAmountLte != "" {
		d, err := decimal.NewFromString(query.TotalAmountLte)
		if err != nil {
			return filter, shared.NewDomainErrorf("INVALID_INPUT", "total_amount_lte must be a decimal number: %s", query.TotalAmountLte)
		}
		filter.TotalAmountLte = &d
	}
	if query.OrderDateGte != "" {
		t, err := time.Parse(time.RFC3339, query.OrderDateGte)
		if err != nil {
			return filter, shared.NewDomainErrorf("INVALID_INPUT", "order_date_gte must be an RFC 3339 timestamp: %s", query.OrderDateGte)
		}
		filter.OrderDateGte = &t
	}
	if query.OrderDateLte != "" {
		t, err := time.Parse(time.RFC3339, query.OrderDateLte)
		if err != nil {
			return filter, shared.NewDomainErrorf("INVALID_INPUT", "order_date_lte must be an RFC 3339 timestamp: %s", query.OrderDateLte)
		}
		filter.OrderDateLte = &t
	}

	return filter, nil
}

func (s *OrderService) publishEvents(ctx context.Context, order *trade.Order) {
	if s.eventPublisher == nil {
		return
	}
	for _, event := range order.GetDomainEvents() {
		// Event delivery is best-effort; a failed publish must not fail
		// the already-committed mutation.
		_ = s.eventPublisher.Publish(ctx, event)
	}
	order.ClearDomainEvents()
}
