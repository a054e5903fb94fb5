// Package facts materializes the denormalized fact table from the four
// normalized source record sets.
package facts

import (
	"time"

	customerdomain "github.com/legaldesk/analytics/internal/customer/domain"
	orderdomain "github.com/legaldesk/analytics/internal/order/domain"
	productdomain "github.com/legaldesk/analytics/internal/product/domain"
	"github.com/legaldesk/analytics/internal/reporting/domain"
	"github.com/shopspring/decimal"
)

// Build inner-joins order items with their order, the order's customer and
// the item's product, emitting one FactRow per order item in source item
// order.
//
// Dangling foreign keys drop the affected row without error; the join never
// duplicates rows because each key resolves to at most one parent. An
// unparseable order or registration timestamp aborts the build with a
// *domain.DataFormatError.
func Build(
	customers []customerdomain.Customer,
	orders []orderdomain.Order,
	items []orderdomain.OrderItem,
	products []productdomain.Product,
) ([]domain.FactRow, error) {
	customersByID := make(map[int64]customerdomain.Customer, len(customers))
	for _, c := range customers {
		customersByID[c.ID] = c
	}
	ordersByID := make(map[int64]orderdomain.Order, len(orders))
	for _, o := range orders {
		ordersByID[o.ID] = o
	}
	productsByID := make(map[int64]productdomain.Product, len(products))
	for _, p := range products {
		productsByID[p.ID] = p
	}

	// Timestamps are parsed once per order/customer that actually joins.
	orderDates := make(map[int64]time.Time, len(orders))
	registrationDates := make(map[int64]time.Time, len(customers))

	rows := make([]domain.FactRow, 0, len(items))
	for _, item := range items {
		order, ok := ordersByID[item.OrderID]
		if !ok {
			continue
		}
		customer, ok := customersByID[order.CustomerID]
		if !ok {
			continue
		}
		product, ok := productsByID[item.ProductID]
		if !ok {
			continue
		}

		orderDate, ok := orderDates[order.ID]
		if !ok {
			parsed, err := domain.ParseTimestamp("order_date", order.OrderDate)
			if err != nil {
				return nil, err
			}
			orderDate = parsed
			orderDates[order.ID] = parsed
		}

		registrationDate, ok := registrationDates[customer.ID]
		if !ok {
			parsed, err := domain.ParseTimestamp("registration_date", customer.RegistrationDate)
			if err != nil {
				return nil, err
			}
			registrationDate = parsed
			registrationDates[customer.ID] = parsed
		}

		rows = append(rows, domain.FactRow{
			OrderItemID:      item.ID,
			OrderID:          order.ID,
			OrderDate:        orderDate,
			TotalAmount:      order.TotalAmount,
			CustomerID:       customer.ID,
			FirstName:        customer.FirstName,
			LastName:         customer.LastName,
			RegistrationDate: registrationDate,
			ProductID:        product.ID,
			ProductName:      product.Name,
			Category:         product.Category,
			ListPrice:        product.Price,
			Quantity:         item.Quantity,
			UnitPrice:        item.UnitPrice,
			ItemRevenue:      item.UnitPrice.Mul(decimal.NewFromInt(item.Quantity)),
			WeekStart:        domain.WeekStart(orderDate),
			MonthStart:       domain.MonthStart(orderDate),
		})
	}

	return rows, nil
}
