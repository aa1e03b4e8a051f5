package models

import (
	"github.com/crm/backend/internal/domain/partner"
)

// CustomerModel is the persistence model for the Customer domain entity.
// The migration adds a unique index on LOWER(email), which enforces the
// case-insensitive email invariant against concurrent creates.
type CustomerModel struct {
	AggregateModel
	Name  string `gorm:"type:varchar(200);not null"`
	Email string `gorm:"type:varchar(200);not null;index"`
	Phone string `gorm:"type:varchar(50)"`
}

// TableName returns the table name for GORM
func (CustomerModel) TableName() string {
	return "customers"
}

// ToDomain converts the persistence model to a domain Customer entity.
func (m *CustomerModel) ToDomain() *partner.Customer {
	customer := &partner.Customer{
		Name:  m.Name,
		Email: m.Email,
		Phone: m.Phone,
	}
	m.PopulateAggregateRoot(&customer.BaseAggregateRoot)
	return customer
}

// FromDomain populates the persistence model from a domain Customer entity.
func (m *CustomerModel) FromDomain(customer *partner.Customer) {
	m.FromDomainAggregateRoot(customer.BaseAggregateRoot)
	m.Name = customer.Name
	m.Email = customer.Email
	m.Phone = customer.Phone
}
