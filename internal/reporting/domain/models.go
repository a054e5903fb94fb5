package domain

import (
	"time"

	productdomain "github.com/legaldesk/analytics/internal/product/domain"
	"github.com/shopspring/decimal"
)

// KPIVector is the fixed scalar summary of the whole fact table.
//
// Revenue figures are rounded to whole currency units; ratios carry two
// decimal places. Every order-level figure counts distinct order ids, never
// fact rows.
type KPIVector struct {
	TotalCustomers    int64   `json:"total_customers"`
	TotalOrders       int64   `json:"total_orders"`
	TotalRevenue      int64   `json:"total_revenue"`
	AvgOrderValue     int64   `json:"avg_order_value"`
	OrdersPerCustomer float64 `json:"orders_per_customer"`
	AvgItemsPerOrder  float64 `json:"avg_items_per_order"`
}

// PeriodOrders is one observed calendar bucket and its distinct order count.
// Buckets with no orders are never synthesized.
type PeriodOrders struct {
	PeriodStart time.Time `json:"period_start"`
	Orders      int64     `json:"orders"`
}

// ProductFrequency ranks a product by the number of distinct orders it
// appears in.
type ProductFrequency struct {
	ProductName string `json:"product_name"`
	Orders      int64  `json:"orders"`
}

// CustomerValue aggregates one customer's spend across the fact table.
type CustomerValue struct {
	CustomerID    int64           `json:"customer_id"`
	CustomerName  string          `json:"customer_name"`
	TotalRevenue  decimal.Decimal `json:"total_revenue"`
	Orders        int64           `json:"orders"`
	TotalQuantity int64           `json:"total_quantity"`
}

// CategoryPerformance aggregates revenue, quantity and distinct orders per
// product category. Only categories present in at least one fact row appear.
type CategoryPerformance struct {
	Category      productdomain.Category `json:"category"`
	TotalRevenue  decimal.Decimal        `json:"total_revenue"`
	TotalQuantity int64                  `json:"total_quantity"`
	Orders        int64                  `json:"orders"`
}

// ProductRevenue aggregates revenue and quantity per (product, category).
type ProductRevenue struct {
	ProductName   string                 `json:"product_name"`
	Category      productdomain.Category `json:"category"`
	TotalRevenue  decimal.Decimal        `json:"total_revenue"`
	TotalQuantity int64                  `json:"total_quantity"`
}

// Overview describes the loaded dataset: source record counts, fact row
// count and the observed order date range.
type Overview struct {
	CustomerCount  int        `json:"customer_count"`
	OrderCount     int        `json:"order_count"`
	ItemCount      int        `json:"item_count"`
	ProductCount   int        `json:"product_count"`
	FactRowCount   int        `json:"fact_row_count"`
	FirstOrderDate *time.Time `json:"first_order_date,omitempty"`
	LastOrderDate  *time.Time `json:"last_order_date,omitempty"`
	BuiltAt        time.Time  `json:"built_at"`
}
