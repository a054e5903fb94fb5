package migration

import (
	customerdomain "github.com/legaldesk/analytics/internal/customer/domain"
	orderdomain "github.com/legaldesk/analytics/internal/order/domain"
	productdomain "github.com/legaldesk/analytics/internal/product/domain"

	"github.com/legaldesk/analytics/internal/config"
	"github.com/legaldesk/analytics/internal/seed"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
		if cfg.DBType == "postgres" {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			if err := RunMigrations(sqlDB); err != nil {
				return err
			}
		} else {
			// The versioned migrations target Postgres; other dialects get
			// the schema derived from the models.
			if err := conn.AutoMigrate(
				&customerdomain.Customer{},
				&productdomain.Product{},
				&orderdomain.Order{},
				&orderdomain.OrderItem{},
			); err != nil {
				return err
			}
		}

		if cfg.SeedSampleData {
			return seed.EnsureSampleData(conn)
		}
		return nil
	}),
)
