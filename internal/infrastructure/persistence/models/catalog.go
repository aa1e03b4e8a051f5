package models

import (
	"github.com/crm/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// ProductModel is the persistence model for the Product domain entity.
type ProductModel struct {
	AggregateModel
	Name  string          `gorm:"type:varchar(200);not null"`
	Price decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Stock int             `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts the persistence model to a domain Product entity.
func (m *ProductModel) ToDomain() *catalog.Product {
	product := &catalog.Product{
		Name:  m.Name,
		Price: m.Price,
		Stock: m.Stock,
	}
	m.PopulateAggregateRoot(&product.BaseAggregateRoot)
	return product
}

// FromDomain populates the persistence model from a domain Product entity.
func (m *ProductModel) FromDomain(product *catalog.Product) {
	m.FromDomainAggregateRoot(product.BaseAggregateRoot)
	m.Name = product.Name
	m.Price = product.Price
	m.Stock = product.Stock
}
