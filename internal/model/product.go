package model

import "github.com/shopspring/decimal"

type Category string

const (
	CategoryElectronics Category = "electronics"
	CategoryClothing    Category = "clothing"
	CategoryBooks       Category = "books"
	CategoryFood        Category = "food"
	CategoryOther       Category = "other"
)

var Categories = []Category{
	CategoryElectronics,
	CategoryClothing,
	CategoryBooks,
	CategoryFood,
	CategoryOther,
}

func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

type Product struct {
	BaseModel
	Name        string          `gorm:"type:varchar(200);not null" json:"name"`
	Description string          `gorm:"type:text" json:"description"`
	Category    Category        `gorm:"type:varchar(50);not null;default:other;index" json:"category"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Quantity    int             `gorm:"not null;default:0" json:"quantity"` // on hand
	SKU         string          `gorm:"type:varchar(50);uniqueIndex;not null" json:"sku"`
	IsActive    bool            `gorm:"not null;index" json:"is_active"`
}

func (Product) TableName() string {
	return "products"
}

// Available reports whether the product can be offered in a new order
func (p *Product) Available() bool {
	return p.IsActive && p.Quantity > 0
}
