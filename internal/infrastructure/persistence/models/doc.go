// Package models holds the GORM persistence models. Domain entities carry no
// ORM tags; every model maps to and from its entity with ToDomain/FromDomain.
package models

// All returns every model in dependency order for AutoMigrate.
func All() []any {
	return []any{
		&UserModel{},
		&FarmerModel{},
		&CategoryModel{},
		&ProductModel{},
		&CustomerModel{},
		&OrderModel{},
		&OrderItemModel{},
		&SaleModel{},
		&PaymentModel{},
		&MessageModel{},
	}
}
