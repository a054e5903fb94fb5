// Package metrics computes the dashboard KPIs and grouped aggregates over a
// fact table. Every function is a pure read: no state, no mutation, and a
// total sort order so identical inputs produce identical outputs.
package metrics

import (
	"math"
	"sort"
	"time"

	productdomain "github.com/legaldesk/analytics/internal/product/domain"
	"github.com/legaldesk/analytics/internal/reporting/domain"
	"github.com/shopspring/decimal"
)

// ComputeKPIs derives the six scalar KPIs. Order-level figures count
// distinct order ids; AvgOrderValue averages per-order revenue sums, not
// rows. An empty fact table yields an all-zero vector.
func ComputeKPIs(facts []domain.FactRow) domain.KPIVector {
	if len(facts) == 0 {
		return domain.KPIVector{}
	}

	customers := make(map[int64]struct{})
	orderRevenue := make(map[int64]decimal.Decimal)
	totalRevenue := decimal.Zero
	for _, f := range facts {
		customers[f.CustomerID] = struct{}{}
		orderRevenue[f.OrderID] = orderRevenue[f.OrderID].Add(f.ItemRevenue)
		totalRevenue = totalRevenue.Add(f.ItemRevenue)
	}

	totalOrders := int64(len(orderRevenue))
	totalCustomers := int64(len(customers))

	kpis := domain.KPIVector{
		TotalCustomers: totalCustomers,
		TotalOrders:    totalOrders,
		TotalRevenue:   totalRevenue.Round(0).IntPart(),
		AvgOrderValue: totalRevenue.
			DivRound(decimal.NewFromInt(totalOrders), 0).
			IntPart(),
		AvgItemsPerOrder: round2(float64(len(facts)) / float64(totalOrders)),
	}
	if totalCustomers > 0 {
		kpis.OrdersPerCustomer = round2(float64(totalOrders) / float64(totalCustomers))
	}
	return kpis
}

// OrdersByPeriod counts distinct orders per observed calendar bucket,
// ascending by period start. Buckets with no orders never appear.
func OrdersByPeriod(facts []domain.FactRow, bucket domain.Bucket) ([]domain.PeriodOrders, error) {
	var key func(domain.FactRow) time.Time
	switch bucket {
	case domain.BucketWeek:
		key = func(f domain.FactRow) time.Time { return f.WeekStart }
	case domain.BucketMonth:
		key = func(f domain.FactRow) time.Time { return f.MonthStart }
	default:
		return nil, domain.ErrInvalidBucket
	}

	periods := make(map[time.Time]map[int64]struct{})
	for _, f := range facts {
		start := key(f)
		orders, ok := periods[start]
		if !ok {
			orders = make(map[int64]struct{})
			periods[start] = orders
		}
		orders[f.OrderID] = struct{}{}
	}

	out := make([]domain.PeriodOrders, 0, len(periods))
	for start, orders := range periods {
		out = append(out, domain.PeriodOrders{
			PeriodStart: start,
			Orders:      int64(len(orders)),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].PeriodStart.Before(out[j].PeriodStart)
	})
	return out, nil
}

// ProductFrequency ranks products by the number of distinct orders they
// appear in, descending, ties broken by ascending product name, truncated to
// the top n. n below 1 is rejected, never clamped.
func ProductFrequency(facts []domain.FactRow, n int) ([]domain.ProductFrequency, error) {
	if n < 1 {
		return nil, domain.ErrInvalidTopN
	}

	orders := make(map[string]map[int64]struct{})
	for _, f := range facts {
		set, ok := orders[f.ProductName]
		if !ok {
			set = make(map[int64]struct{})
			orders[f.ProductName] = set
		}
		set[f.OrderID] = struct{}{}
	}

	out := make([]domain.ProductFrequency, 0, len(orders))
	for name, set := range orders {
		out = append(out, domain.ProductFrequency{
			ProductName: name,
			Orders:      int64(len(set)),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Orders != out[j].Orders {
			return out[i].Orders > out[j].Orders
		}
		return out[i].ProductName < out[j].ProductName
	})
	if n < len(out) {
		out = out[:n]
	}
	return out, nil
}

type customerAgg struct {
	name     string
	revenue  decimal.Decimal
	orders   map[int64]struct{}
	quantity int64
}

// CustomerValue aggregates revenue, distinct orders and quantity per
// customer, descending by revenue, ties broken by ascending customer id.
func CustomerValue(facts []domain.FactRow) []domain.CustomerValue {
	aggs := make(map[int64]*customerAgg)
	for _, f := range facts {
		agg, ok := aggs[f.CustomerID]
		if !ok {
			agg = &customerAgg{
				name:   f.CustomerName(),
				orders: make(map[int64]struct{}),
			}
			aggs[f.CustomerID] = agg
		}
		agg.revenue = agg.revenue.Add(f.ItemRevenue)
		agg.orders[f.OrderID] = struct{}{}
		agg.quantity += f.Quantity
	}

	out := make([]domain.CustomerValue, 0, len(aggs))
	for id, agg := range aggs {
		out = append(out, domain.CustomerValue{
			CustomerID:    id,
			CustomerName:  agg.name,
			TotalRevenue:  agg.revenue,
			Orders:        int64(len(agg.orders)),
			TotalQuantity: agg.quantity,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if cmp := out[i].TotalRevenue.Cmp(out[j].TotalRevenue); cmp != 0 {
			return cmp > 0
		}
		return out[i].CustomerID < out[j].CustomerID
	})
	return out
}

type categoryAgg struct {
	revenue  decimal.Decimal
	quantity int64
	orders   map[int64]struct{}
}

// CategoryPerformance aggregates revenue, quantity and distinct orders per
// category, descending by revenue, ties broken by ascending category name.
// Categories never ordered are absent by construction of the inner join.
func CategoryPerformance(facts []domain.FactRow) []domain.CategoryPerformance {
	aggs := make(map[productdomain.Category]*categoryAgg)
	for _, f := range facts {
		agg, ok := aggs[f.Category]
		if !ok {
			agg = &categoryAgg{orders: make(map[int64]struct{})}
			aggs[f.Category] = agg
		}
		agg.revenue = agg.revenue.Add(f.ItemRevenue)
		agg.quantity += f.Quantity
		agg.orders[f.OrderID] = struct{}{}
	}

	out := make([]domain.CategoryPerformance, 0, len(aggs))
	for category, agg := range aggs {
		out = append(out, domain.CategoryPerformance{
			Category:      category,
			TotalRevenue:  agg.revenue,
			TotalQuantity: agg.quantity,
			Orders:        int64(len(agg.orders)),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if cmp := out[i].TotalRevenue.Cmp(out[j].TotalRevenue); cmp != 0 {
			return cmp > 0
		}
		return out[i].Category < out[j].Category
	})
	return out
}

type productKey struct {
	name     string
	category productdomain.Category
}

type productAgg struct {
	revenue  decimal.Decimal
	quantity int64
}

// TopProductsByRevenue aggregates revenue and quantity per (product,
// category), descending by revenue, ties broken by ascending product name,
// truncated to the top n. n below 1 is rejected, never clamped.
func TopProductsByRevenue(facts []domain.FactRow, n int) ([]domain.ProductRevenue, error) {
	if n < 1 {
		return nil, domain.ErrInvalidTopN
	}

	aggs := make(map[productKey]*productAgg)
	for _, f := range facts {
		key := productKey{name: f.ProductName, category: f.Category}
		agg, ok := aggs[key]
		if !ok {
			agg = &productAgg{}
			aggs[key] = agg
		}
		agg.revenue = agg.revenue.Add(f.ItemRevenue)
		agg.quantity += f.Quantity
	}

	out := make([]domain.ProductRevenue, 0, len(aggs))
	for key, agg := range aggs {
		out = append(out, domain.ProductRevenue{
			ProductName:   key.name,
			Category:      key.category,
			TotalRevenue:  agg.revenue,
			TotalQuantity: agg.quantity,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if cmp := out[i].TotalRevenue.Cmp(out[j].TotalRevenue); cmp != 0 {
			return cmp > 0
		}
		if out[i].ProductName != out[j].ProductName {
			return out[i].ProductName < out[j].ProductName
		}
		return out[i].Category < out[j].Category
	})
	if n < len(out) {
		out = out[:n]
	}
	return out, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
