package models

import (
	"time"

	"github.com/crm/backend/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderModel is the persistence model for the Order aggregate root.
// Products are linked through the order_products join table; the customer
// association is preloaded so list responses can embed the owning
// customer's name and email without a second query.
type OrderModel struct {
	AggregateModel
	CustomerID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	Customer    CustomerModel   `gorm:"foreignKey:CustomerID;references:ID"`
	Products    []ProductModel  `gorm:"many2many:order_products;joinForeignKey:OrderID;joinReferences:ProductID"`
	TotalAmount decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	OrderDate   time.Time       `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (OrderModel) TableName() string {
	return "orders"
}

// OrderProductModel is the order/product link row. GORM manages it through
// the many2many association; it exists as a named model so migrations and
// raw joins can reference it.
type OrderProductModel struct {
	OrderID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProductID uuid.UUID `gorm:"type:uuid;primaryKey"`
}

// TableName returns the table name for GORM
func (OrderProductModel) TableName() string {
	return "order_products"
}

// ToDomain converts the persistence model to a domain Order entity.
// The linked customer and products must have been preloaded.
func (m *OrderModel) ToDomain() *trade.Order {
	order := &trade.Order{
		CustomerID:    m.CustomerID,
		CustomerName:  m.Customer.Name,
		CustomerEmail: m.Customer.Email,
		OrderDate:     m.OrderDate,
		TotalAmount:   m.TotalAmount,
		Products:      make([]trade.OrderProduct, len(m.Products)),
	}
	for i, p := range m.Products {
		order.Products[i] = trade.OrderProduct{
			ProductID: p.ID,
			Name:      p.Name,
			Price:     p.Price,
		}
	}
	m.PopulateAggregateRoot(&order.BaseAggregateRoot)
	return order
}

// FromDomain populates the persistence model from a domain Order entity.
// Associations are written separately by the repository inside the create
// transaction, so only scalar columns are mapped here.
func (m *OrderModel) FromDomain(order *trade.Order) {
	m.FromDomainAggregateRoot(order.BaseAggregateRoot)
	m.CustomerID = order.CustomerID
	m.TotalAmount = order.TotalAmount
	m.OrderDate = order.OrderDate
}
