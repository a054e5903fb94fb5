// Package domain contains the denormalized fact model and result shapes for
// the reporting pipeline.
package domain

import (
	"fmt"
	"strings"
	"time"

	productdomain "github.com/legaldesk/analytics/internal/product/domain"
	"github.com/shopspring/decimal"
)

// FactRow is one denormalized record per order line: the inner join of the
// line with its order, the order's customer and the line's product, enriched
// with derived revenue and calendar bucket keys.
type FactRow struct {
	OrderItemID int64 `json:"order_item_id"`

	OrderID     int64           `json:"order_id"`
	OrderDate   time.Time       `json:"order_date"`
	TotalAmount decimal.Decimal `json:"total_amount"`

	CustomerID       int64     `json:"customer_id"`
	FirstName        string    `json:"first_name"`
	LastName         string    `json:"last_name"`
	RegistrationDate time.Time `json:"registration_date"`

	ProductID   int64                  `json:"product_id"`
	ProductName string                 `json:"product_name"`
	Category    productdomain.Category `json:"category"`
	ListPrice   decimal.Decimal        `json:"price"`

	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`

	// ItemRevenue = Quantity * UnitPrice.
	ItemRevenue decimal.Decimal `json:"item_revenue"`

	// WeekStart is the Monday on or before OrderDate, at midnight UTC.
	WeekStart time.Time `json:"week_start"`
	// MonthStart is the first day of OrderDate's month, at midnight UTC.
	MonthStart time.Time `json:"month_start"`
}

// CustomerName joins given and family name with a single space.
func (f FactRow) CustomerName() string {
	return f.FirstName + " " + f.LastName
}

// Snapshot is the immutable fact table built from one full read of the
// source tables. It is rebuilt wholesale per load and never mutated; query
// operations are pure reads, so concurrent consumers need no locking.
type Snapshot struct {
	Facts   []FactRow
	BuiltAt time.Time

	CustomerCount int
	OrderCount    int
	ItemCount     int
	ProductCount  int

	// FirstOrderDate and LastOrderDate are zero when no facts exist.
	FirstOrderDate time.Time
	LastOrderDate  time.Time
}

// DataFormatError reports an unparseable source timestamp. The fact builder
// fails fast on these; they are never silently recovered.
type DataFormatError struct {
	Field string
	Value string
}

func (e *DataFormatError) Error() string {
	return fmt.Sprintf("invalid_timestamp: %s %q", e.Field, e.Value)
}

// timestampLayouts are the accepted source formats, most specific first.
// The source store keeps timestamps as text in one of these shapes.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTimestamp parses a raw source timestamp into UTC. An empty or
// malformed value yields a *DataFormatError naming the offending field.
func ParseTimestamp(field, value string) (time.Time, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return time.Time{}, &DataFormatError{Field: field, Value: value}
	}
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, trimmed); err == nil {
			return parsed.UTC(), nil
		}
	}
	return time.Time{}, &DataFormatError{Field: field, Value: value}
}
