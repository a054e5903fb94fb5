package seed

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	customerdomain "github.com/legaldesk/analytics/internal/customer/domain"
	orderdomain "github.com/legaldesk/analytics/internal/order/domain"
	productdomain "github.com/legaldesk/analytics/internal/product/domain"
)

const (
	seedCustomers  = 40
	seedOrders     = 220
	seedMaxItems   = 4
	seedDateLayout = "2006-01-02 15:04:05"
)

var catalog = []productdomain.Product{
	{Name: "NDA Agreement", Category: productdomain.CategoryBusiness, Price: decimal.NewFromInt(49)},
	{Name: "Employment Contract", Category: productdomain.CategoryBusiness, Price: decimal.NewFromInt(79)},
	{Name: "Purchase Agreement", Category: productdomain.CategoryBusiness, Price: decimal.NewFromInt(99)},
	{Name: "Deed of Trust", Category: productdomain.CategoryRealEstate, Price: decimal.NewFromInt(149)},
	{Name: "Lease Agreement", Category: productdomain.CategoryRealEstate, Price: decimal.NewFromInt(59)},
	{Name: "Property Disclosure Statement", Category: productdomain.CategoryRealEstate, Price: decimal.NewFromInt(39)},
	{Name: "Last Will and Testament", Category: productdomain.CategoryPersonal, Price: decimal.NewFromInt(89)},
	{Name: "Power of Attorney", Category: productdomain.CategoryPersonal, Price: decimal.NewFromInt(45)},
	{Name: "Prenuptial Agreement", Category: productdomain.CategoryPersonal, Price: decimal.NewFromInt(129)},
	{Name: "Trademark Application", Category: productdomain.CategoryIntellectualProperty, Price: decimal.NewFromInt(199)},
	{Name: "Patent Filing", Category: productdomain.CategoryIntellectualProperty, Price: decimal.NewFromInt(299)},
	{Name: "Copyright Registration", Category: productdomain.CategoryIntellectualProperty, Price: decimal.NewFromInt(69)},
}

var firstNames = []string{
	"Ava", "Ben", "Clara", "Diego", "Elena", "Felix", "Grace", "Hugo",
	"Iris", "Jonas", "Kara", "Liam", "Mara", "Noah", "Olive", "Pablo",
	"Quinn", "Rosa", "Sam", "Tara",
}

var lastNames = []string{
	"Alvarez", "Becker", "Chen", "Dawson", "Egan", "Fischer", "Gupta",
	"Hansen", "Ito", "Jensen", "Klein", "Lopez", "Meyer", "Nguyen",
	"Olsen", "Park", "Quintero", "Rossi", "Silva", "Turner",
}

// EnsureSampleData populates the source tables with a deterministic sample
// dataset. It is a no-op when the tables already hold data.
func EnsureSampleData(db *gorm.DB) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&customerdomain.Customer{}).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}

		rng := rand.New(rand.NewSource(1))
		end := time.Now().UTC().Truncate(24 * time.Hour)
		start := end.AddDate(-1, 0, 0)

		products := make([]productdomain.Product, len(catalog))
		copy(products, catalog)
		for i := range products {
			products[i].ID = node.Generate().Int64()
		}
		if err := tx.Create(&products).Error; err != nil {
			return err
		}

		customers := make([]customerdomain.Customer, 0, seedCustomers)
		for i := 0; i < seedCustomers; i++ {
			registered := start.AddDate(0, 0, -rng.Intn(365))
			customers = append(customers, customerdomain.Customer{
				ID:               node.Generate().Int64(),
				FirstName:        firstNames[i%len(firstNames)],
				LastName:         lastNames[(i/len(firstNames)+i)%len(lastNames)],
				RegistrationDate: registered.Format(seedDateLayout),
			})
		}
		if err := tx.Create(&customers).Error; err != nil {
			return err
		}

		span := int(end.Sub(start) / time.Second)
		orders := make([]orderdomain.Order, 0, seedOrders)
		items := make([]orderdomain.OrderItem, 0, seedOrders*2)
		for i := 0; i < seedOrders; i++ {
			placed := start.Add(time.Duration(rng.Intn(span)) * time.Second)
			order := orderdomain.Order{
				ID:         node.Generate().Int64(),
				CustomerID: customers[rng.Intn(len(customers))].ID,
				OrderDate:  placed.Format(seedDateLayout),
			}

			total := decimal.Zero
			for n := 1 + rng.Intn(seedMaxItems); n > 0; n-- {
				product := products[rng.Intn(len(products))]
				qty := int64(1 + rng.Intn(3))
				items = append(items, orderdomain.OrderItem{
					ID:        node.Generate().Int64(),
					OrderID:   order.ID,
					ProductID: product.ID,
					Quantity:  qty,
					UnitPrice: product.Price,
				})
				total = total.Add(product.Price.Mul(decimal.NewFromInt(qty)))
			}
			order.TotalAmount = total
			orders = append(orders, order)
		}
		if err := tx.Create(&orders).Error; err != nil {
			return err
		}
		return tx.CreateInBatches(&items, 200).Error
	})
}
