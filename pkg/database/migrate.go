package database

import (
	"go-order-desk/internal/model"

	"gorm.io/gorm"
)

// Migrate creates or updates the customers, products, orders, order_items
// and operators tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Operator{},
		&model.Customer{},
		&model.Product{},
		&model.Order{},
		&model.OrderItem{},
	)
}
