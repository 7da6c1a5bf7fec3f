package models

import "github.com/freshmart/backend/internal/domain/partner"

// CustomerModel is the persistence model for partner.Customer.
type CustomerModel struct {
	BaseModel
	Name        string `gorm:"type:varchar(100);not null"`
	Email       string `gorm:"type:varchar(255);not null;uniqueIndex"`
	PhoneNumber string `gorm:"type:varchar(50)"`
	Address     string `gorm:"type:varchar(255)"`
	City        string `gorm:"type:varchar(100)"`
}

func (CustomerModel) TableName() string {
	return "customers"
}

func (m *CustomerModel) ToDomain() *partner.Customer {
	return &partner.Customer{
		BaseEntity:  m.toEntity(),
		Name:        m.Name,
		Email:       m.Email,
		PhoneNumber: m.PhoneNumber,
		Address:     m.Address,
		City:        m.City,
	}
}

func (m *CustomerModel) FromDomain(c *partner.Customer) {
	m.fromEntity(c.BaseEntity)
	m.Name = c.Name
	m.Email = c.Email
	m.PhoneNumber = c.PhoneNumber
	m.Address = c.Address
	m.City = c.City
}
