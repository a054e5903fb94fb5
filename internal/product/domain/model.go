package domain

import "github.com/shopspring/decimal"

// Category is the fixed product taxonomy for the legal document catalog.
type Category string

const (
	CategoryRealEstate           Category = "Real Estate"
	CategoryBusiness             Category = "Business"
	CategoryPersonal             Category = "Personal"
	CategoryIntellectualProperty Category = "Intellectual Property"
)

type Product struct {
	ID       int64           `json:"product_id" gorm:"column:product_id;primaryKey"`
	Name     string          `json:"product_name" gorm:"column:product_name;type:text;not null"`
	Category Category        `json:"category" gorm:"type:text;not null"`
	Price    decimal.Decimal `json:"price" gorm:"type:numeric(12,2)"`
}

func (Product) TableName() string { return "products" }
