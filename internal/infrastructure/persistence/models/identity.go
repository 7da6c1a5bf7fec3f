package models

import (
	"github.com/freshmart/backend/internal/domain/identity"
)

// UserModel is the persistence model for identity.User.
type UserModel struct {
	BaseModel
	Name         string `gorm:"type:varchar(100);not null"`
	Email        string `gorm:"type:varchar(255);not null;uniqueIndex"`
	PhoneNumber  string `gorm:"type:varchar(50)"`
	PasswordHash string `gorm:"type:varchar(255);not null"`
	Role         string `gorm:"type:varchar(20);not null;default:'customer'"`
}

func (UserModel) TableName() string {
	return "users"
}

func (m *UserModel) ToDomain() *identity.User {
	return &identity.User{
		BaseEntity:   m.toEntity(),
		Name:         m.Name,
		Email:        m.Email,
		PhoneNumber:  m.PhoneNumber,
		PasswordHash: m.PasswordHash,
		Role:         identity.Role(m.Role),
	}
}

func (m *UserModel) FromDomain(u *identity.User) {
	m.fromEntity(u.BaseEntity)
	m.Name = u.Name
	m.Email = u.Email
	m.PhoneNumber = u.PhoneNumber
	m.PasswordHash = u.PasswordHash
	m.Role = string(u.Role)
}

// FarmerModel is the persistence model for identity.Farmer.
type FarmerModel struct {
	BaseModel
	Name         string `gorm:"type:varchar(100);not null"`
	Email        string `gorm:"type:varchar(255);not null;uniqueIndex"`
	PasswordHash string `gorm:"type:varchar(255);not null"`
	Location     string `gorm:"type:varchar(255);not null"`
	PhoneNumber  string `gorm:"type:varchar(50);not null;uniqueIndex"`
	Bio          string `gorm:"type:varchar(500)"`
}

func (FarmerModel) TableName() string {
	return "farmers"
}

func (m *FarmerModel) ToDomain() *identity.Farmer {
	return &identity.Farmer{
		BaseEntity:   m.toEntity(),
		Name:         m.Name,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		Location:     m.Location,
		PhoneNumber:  m.PhoneNumber,
		Bio:          m.Bio,
	}
}

func (m *FarmerModel) FromDomain(f *identity.Farmer) {
	m.fromEntity(f.BaseEntity)
	m.Name = f.Name
	m.Email = f.Email
	m.PasswordHash = f.PasswordHash
	m.Location = f.Location
	m.PhoneNumber = f.PhoneNumber
	m.Bio = f.Bio
}
