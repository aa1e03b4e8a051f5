package persistence

import (
	"context"
	"errors"

	"github.com/crm/backend/internal/domain/shared"
	"github.com/crm/backend/internal/domain/trade"
	"github.com/crm/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormOrderRepository implements OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// FindByID finds an order by its ID, with customer and products loaded.
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.Order, error) {
	var model models.OrderModel
	if err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Products").
		First(&model, "orders.id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all orders matching the filter, with customer and
// products loaded.
func (r *GormOrderRepository) FindAll(ctx context.Context, filter trade.OrderFilter) ([]trade.Order, error) {
	var orderModels []models.OrderModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.OrderModel{}), filter).
		Preload("Customer").
		Preload("Products")

	if err := query.Find(&orderModels).Error; err != nil {
		return nil, err
	}

	orders := make([]trade.Order, len(orderModels))
	for i := range orderModels {
		orders[i] = *orderModels[i].ToDomain()
	}
	return orders, nil
}

// Create persists the order row, its product links and the computed total
// inside one transaction, so no concurrent reader observes an order
// without its links or total.
func (r *GormOrderRepository) Create(ctx context.Context, order *trade.Order) error {
	var model models.OrderModel
	model.FromDomain(order)

	links := make([]models.OrderProductModel, len(order.Products))
	for i, p := range order.Products {
		links[i] = models.OrderProductModel{OrderID: order.ID, ProductID: p.ProductID}
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Customer", "Products").Create(&model).Error; err != nil {
			return err
		}
		if err := tx.Create(&links).Error; err != nil {
			return err
		}
		return nil
	})
}

// Count returns the total number of orders
func (r *GormOrderRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.OrderModel{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// SumTotalAmount returns the exact decimal sum of all order totals.
func (r *GormOrderRepository) SumTotalAmount(ctx context.Context) (decimal.Decimal, error) {
	var total decimal.Decimal
	row := r.db.WithContext(ctx).
		Model(&models.OrderModel{}).
		Select("COALESCE(SUM(total_amount), 0)").
		Row()
	if err := row.Scan(&total); err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

// applyFilter translates the optional order predicates into WHERE clauses.
// Predicates that match through the product link join order_products and
// select DISTINCT order rows, so an order matching via several products
// appears once.
func (r *GormOrderRepository) applyFilter(query *gorm.DB, filter trade.OrderFilter) *gorm.DB {
	if filter.TotalAmountGte != nil {
		query = query.Where("orders.total_amount >= ?", *filter.TotalAmountGte)
	}
	if filter.TotalAmountLte != nil {
		query = query.Where("orders.total_amount <= ?", *filter.TotalAmountLte)
	}
	if filter.OrderDateGte != nil {
		query = query.Where("orders.order_date >= ?", *filter.OrderDateGte)
	}
	if filter.OrderDateLte != nil {
		query = query.Where("orders.order_date <= ?", *filter.OrderDateLte)
	}
	if filter.CustomerNameContains != nil {
		query = query.
			Joins("JOIN customers ON customers.id = orders.customer_id").
			Where("customers.name ILIKE ?", "%"+*filter.CustomerNameContains+"%")
	}
	if filter.ProductNameContains != nil {
		query = query.
			Joins("JOIN order_products ON order_products.order_id = orders.id").
			Joins("JOIN products ON products.id = order_products.product_id").
			Where("products.name ILIKE ?", "%"+*filter.ProductNameContains+"%").
			Distinct("orders.*")
	}
	if filter.ProductID != nil {
		query = query.
			Joins("JOIN order_products op_id ON op_id.order_id = orders.id").
			Where("op_id.product_id = ?", *filter.ProductID).
			Distinct("orders.*")
	}

	return applySort(query, filter.Sort, trade.OrderSortKeys)
}
