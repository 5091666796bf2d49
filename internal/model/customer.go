package model

import "strings"

// Customer places orders. A customer referenced by any order cannot be deleted.
type Customer struct {
	BaseModel
	FirstName string `gorm:"type:varchar(100);not null" json:"first_name"`
	LastName  string `gorm:"type:varchar(100);not null" json:"last_name"`
	Email     string `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Phone     string `gorm:"type:varchar(20)" json:"phone"`
	Address   string `gorm:"type:text" json:"address"`
}

func (Customer) TableName() string {
	return "customers"
}

// FullName is the "Last First" form used in customer pickers
func (c *Customer) FullName() string {
	return strings.TrimSpace(c.LastName + " " + c.FirstName)
}
