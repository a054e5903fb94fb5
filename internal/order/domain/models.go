package domain

import "github.com/shopspring/decimal"

// Order is a source record. TotalAmount is the stated order total and is
// informational only; revenue is always derived from line items.
//
// OrderDate is carried as raw stored text; see customer.Customer for why.
type Order struct {
	ID          int64           `json:"order_id" gorm:"column:order_id;primaryKey"`
	CustomerID  int64           `json:"customer_id" gorm:"not null;index"`
	OrderDate   string          `json:"order_date" gorm:"type:text;not null"`
	TotalAmount decimal.Decimal `json:"total_amount" gorm:"type:numeric(12,2)"`
}

func (Order) TableName() string { return "orders" }

// OrderItem is a single order line: one product, a positive quantity and a
// non-negative unit price.
type OrderItem struct {
	ID        int64           `json:"order_item_id" gorm:"column:order_item_id;primaryKey"`
	OrderID   int64           `json:"order_id" gorm:"not null;index"`
	ProductID int64           `json:"product_id" gorm:"not null;index"`
	Quantity  int64           `json:"quantity" gorm:"not null"`
	UnitPrice decimal.Decimal `json:"unit_price" gorm:"type:numeric(12,2);not null"`
}

func (OrderItem) TableName() string { return "order_items" }
