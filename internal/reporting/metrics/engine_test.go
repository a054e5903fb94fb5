package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	productdomain "github.com/legaldesk/analytics/internal/product/domain"
	"github.com/legaldesk/analytics/internal/reporting/domain"
)

func factRow(orderID, customerID int64, name string, category productdomain.Category, qty int64, unitPrice int64, orderDate time.Time) domain.FactRow {
	price := decimal.NewFromInt(unitPrice)
	return domain.FactRow{
		OrderID:     orderID,
		OrderDate:   orderDate,
		CustomerID:  customerID,
		FirstName:   "Test",
		LastName:    "Customer",
		ProductName: name,
		Category:    category,
		Quantity:    qty,
		UnitPrice:   price,
		ItemRevenue: price.Mul(decimal.NewFromInt(qty)),
		WeekStart:   domain.WeekStart(orderDate),
		MonthStart:  domain.MonthStart(orderDate),
	}
}

func TestComputeKPIsSingleOrder(t *testing.T) {
	day := time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC)
	facts := []domain.FactRow{
		factRow(1, 1, "NDA Agreement", productdomain.CategoryBusiness, 2, 10, day),
		factRow(1, 1, "Lease Agreement", productdomain.CategoryRealEstate, 1, 5, day),
	}

	kpis := ComputeKPIs(facts)
	assert.Equal(t, int64(1), kpis.TotalCustomers)
	assert.Equal(t, int64(1), kpis.TotalOrders)
	assert.Equal(t, int64(25), kpis.TotalRevenue)
	assert.Equal(t, int64(25), kpis.AvgOrderValue)
	assert.Equal(t, 1.0, kpis.OrdersPerCustomer)
	assert.Equal(t, 2.0, kpis.AvgItemsPerOrder)
}

func TestComputeKPIsEmptyFactsAllZero(t *testing.T) {
	assert.Equal(t, domain.KPIVector{}, ComputeKPIs(nil))
}

func TestComputeKPIsCountsDistinctOrders(t *testing.T) {
	day := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	facts := []domain.FactRow{
		factRow(1, 1, "NDA Agreement", productdomain.CategoryBusiness, 1, 100, day),
		factRow(1, 1, "Lease Agreement", productdomain.CategoryRealEstate, 1, 50, day),
		factRow(2, 1, "NDA Agreement", productdomain.CategoryBusiness, 1, 30, day),
		factRow(3, 2, "Patent Filing", productdomain.CategoryIntellectualProperty, 1, 20, day),
	}

	kpis := ComputeKPIs(facts)
	assert.Equal(t, int64(2), kpis.TotalCustomers)
	assert.Equal(t, int64(3), kpis.TotalOrders)
	assert.Equal(t, int64(200), kpis.TotalRevenue)
	// 200 / 3 orders, rounded to a whole unit.
	assert.Equal(t, int64(67), kpis.AvgOrderValue)
	assert.Equal(t, 1.5, kpis.OrdersPerCustomer)
	assert.Equal(t, 1.33, kpis.AvgItemsPerOrder)
}

func TestOrdersByPeriodWeekPartitionsDistinctOrders(t *testing.T) {
	week1 := time.Date(2024, 3, 5, 12, 0, 0, 0, time.UTC)  // week of Mar 4
	week2 := time.Date(2024, 3, 12, 12, 0, 0, 0, time.UTC) // week of Mar 11
	facts := []domain.FactRow{
		factRow(1, 1, "NDA Agreement", productdomain.CategoryBusiness, 1, 10, week1),
		factRow(1, 1, "Lease Agreement", productdomain.CategoryRealEstate, 1, 10, week1),
		factRow(2, 2, "NDA Agreement", productdomain.CategoryBusiness, 1, 10, week1),
		factRow(3, 1, "NDA Agreement", productdomain.CategoryBusiness, 1, 10, week2),
	}

	periods, err := OrdersByPeriod(facts, domain.BucketWeek)
	assert.NoError(t, err)
	assert.Equal(t, []domain.PeriodOrders{
		{PeriodStart: time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC), Orders: 2},
		{PeriodStart: time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC), Orders: 1},
	}, periods)

	// Every order lands in exactly one bucket.
	var total int64
	for _, p := range periods {
		total += p.Orders
	}
	assert.Equal(t, int64(3), total)
}

func TestOrdersByPeriodMonthOmitsEmptyBuckets(t *testing.T) {
	facts := []domain.FactRow{
		factRow(1, 1, "NDA Agreement", productdomain.CategoryBusiness, 1, 10, time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)),
		factRow(2, 1, "NDA Agreement", productdomain.CategoryBusiness, 1, 10, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)),
	}

	periods, err := OrdersByPeriod(facts, domain.BucketMonth)
	assert.NoError(t, err)
	// February never appears.
	assert.Equal(t, []domain.PeriodOrders{
		{PeriodStart: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), Orders: 1},
		{PeriodStart: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), Orders: 1},
	}, periods)
}

func TestOrdersByPeriodRejectsUnknownBucket(t *testing.T) {
	_, err := OrdersByPeriod(nil, domain.Bucket("quarter"))
	assert.True(t, errors.Is(err, domain.ErrInvalidBucket))
}

func TestProductFrequencyRanksAndTruncates(t *testing.T) {
	day := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	facts := []domain.FactRow{
		factRow(1, 1, "NDA Agreement", productdomain.CategoryBusiness, 5, 10, day),
		factRow(2, 1, "NDA Agreement", productdomain.CategoryBusiness, 1, 10, day),
		factRow(2, 1, "NDA Agreement", productdomain.CategoryBusiness, 1, 10, day), // same order twice
		factRow(3, 2, "Lease Agreement", productdomain.CategoryRealEstate, 1, 10, day),
		factRow(4, 2, "Patent Filing", productdomain.CategoryIntellectualProperty, 1, 10, day),
	}

	top, err := ProductFrequency(facts, 2)
	assert.NoError(t, err)
	assert.Equal(t, []domain.ProductFrequency{
		{ProductName: "NDA Agreement", Orders: 2},
		{ProductName: "Lease Agreement", Orders: 1},
	}, top)
}

func TestProductFrequencyTiesBreakByName(t *testing.T) {
	day := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	facts := []domain.FactRow{
		factRow(1, 1, "Lease Agreement", productdomain.CategoryRealEstate, 1, 10, day),
		factRow(2, 1, "Deed of Trust", productdomain.CategoryRealEstate, 1, 10, day),
	}

	top, err := ProductFrequency(facts, 10)
	assert.NoError(t, err)
	assert.Equal(t, "Deed of Trust", top[0].ProductName)
	assert.Equal(t, "Lease Agreement", top[1].ProductName)
}

func TestProductFrequencyLargeNReturnsAll(t *testing.T) {
	day := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	facts := []domain.FactRow{
		factRow(1, 1, "NDA Agreement", productdomain.CategoryBusiness, 1, 10, day),
		factRow(2, 1, "Lease Agreement", productdomain.CategoryRealEstate, 1, 10, day),
		factRow(3, 2, "Patent Filing", productdomain.CategoryIntellectualProperty, 1, 10, day),
	}

	top, err := ProductFrequency(facts, 100)
	assert.NoError(t, err)
	assert.Len(t, top, 3)
}

func TestProductFrequencyRejectsNonPositiveN(t *testing.T) {
	for _, n := range []int{0, -1} {
		_, err := ProductFrequency(nil, n)
		assert.True(t, errors.Is(err, domain.ErrInvalidTopN))
	}
}

func TestCustomerValueAggregates(t *testing.T) {
	day := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	facts := []domain.FactRow{
		factRow(1, 1, "NDA Agreement", productdomain.CategoryBusiness, 2, 100, day),
		factRow(2, 1, "Lease Agreement", productdomain.CategoryRealEstate, 1, 50, day),
		factRow(3, 2, "Patent Filing", productdomain.CategoryIntellectualProperty, 3, 20, day),
	}

	customers := CustomerValue(facts)
	assert.Len(t, customers, 2)

	assert.Equal(t, int64(1), customers[0].CustomerID)
	assert.True(t, customers[0].TotalRevenue.Equal(decimal.NewFromInt(250)))
	assert.Equal(t, int64(2), customers[0].Orders)
	assert.Equal(t, int64(3), customers[0].TotalQuantity)

	assert.Equal(t, int64(2), customers[1].CustomerID)
	assert.True(t, customers[1].TotalRevenue.Equal(decimal.NewFromInt(60)))
}

func TestCustomerValueTiesBreakByID(t *testing.T) {
	day := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	facts := []domain.FactRow{
		factRow(1, 7, "NDA Agreement", productdomain.CategoryBusiness, 1, 50, day),
		factRow(2, 3, "NDA Agreement", productdomain.CategoryBusiness, 1, 50, day),
	}

	customers := CustomerValue(facts)
	assert.Equal(t, int64(3), customers[0].CustomerID)
	assert.Equal(t, int64(7), customers[1].CustomerID)
}

func TestCategoryPerformanceAggregates(t *testing.T) {
	day := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	facts := []domain.FactRow{
		factRow(1, 1, "NDA Agreement", productdomain.CategoryBusiness, 2, 100, day),
		factRow(2, 1, "Employment Contract", productdomain.CategoryBusiness, 1, 50, day),
		factRow(2, 1, "Lease Agreement", productdomain.CategoryRealEstate, 1, 40, day),
	}

	categories := CategoryPerformance(facts)
	assert.Len(t, categories, 2)

	assert.Equal(t, productdomain.CategoryBusiness, categories[0].Category)
	assert.True(t, categories[0].TotalRevenue.Equal(decimal.NewFromInt(250)))
	assert.Equal(t, int64(3), categories[0].TotalQuantity)
	assert.Equal(t, int64(2), categories[0].Orders)

	assert.Equal(t, productdomain.CategoryRealEstate, categories[1].Category)
	assert.Equal(t, int64(1), categories[1].Orders)
}

func TestTopProductsByRevenueRanksAndTruncates(t *testing.T) {
	day := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	facts := []domain.FactRow{
		factRow(1, 1, "Patent Filing", productdomain.CategoryIntellectualProperty, 1, 299, day),
		factRow(2, 1, "NDA Agreement", productdomain.CategoryBusiness, 2, 49, day),
		factRow(3, 2, "Lease Agreement", productdomain.CategoryRealEstate, 1, 59, day),
	}

	top, err := TopProductsByRevenue(facts, 2)
	assert.NoError(t, err)
	assert.Len(t, top, 2)
	assert.Equal(t, "Patent Filing", top[0].ProductName)
	assert.True(t, top[0].TotalRevenue.Equal(decimal.NewFromInt(299)))
	assert.Equal(t, "NDA Agreement", top[1].ProductName)
	assert.True(t, top[1].TotalRevenue.Equal(decimal.NewFromInt(98)))
}

func TestTopProductsByRevenueRejectsNonPositiveN(t *testing.T) {
	_, err := TopProductsByRevenue(nil, 0)
	assert.True(t, errors.Is(err, domain.ErrInvalidTopN))
}

func TestAvgOrderValueReconstruction(t *testing.T) {
	// AvgOrderValue is the per-order mean, so it must sit between the
	// cheapest and most expensive order totals.
	day := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	facts := []domain.FactRow{
		factRow(1, 1, "NDA Agreement", productdomain.CategoryBusiness, 1, 10, day),
		factRow(2, 1, "Patent Filing", productdomain.CategoryIntellectualProperty, 1, 290, day),
	}

	kpis := ComputeKPIs(facts)
	assert.Equal(t, int64(150), kpis.AvgOrderValue)
	assert.GreaterOrEqual(t, kpis.AvgOrderValue, int64(10))
	assert.LessOrEqual(t, kpis.AvgOrderValue, int64(290))
}
