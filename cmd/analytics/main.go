package main

import (
	"go.uber.org/fx"

	"github.com/legaldesk/analytics/internal/clock"
	"github.com/legaldesk/analytics/internal/config"
	"github.com/legaldesk/analytics/internal/customer"
	"github.com/legaldesk/analytics/internal/logger"
	"github.com/legaldesk/analytics/internal/migration"
	"github.com/legaldesk/analytics/internal/observability"
	"github.com/legaldesk/analytics/internal/order"
	"github.com/legaldesk/analytics/internal/product"
	"github.com/legaldesk/analytics/internal/reporting"
	"github.com/legaldesk/analytics/internal/server"
	"github.com/legaldesk/analytics/pkg/db"
)

func main() {
	app := fx.New(
		// Core infrastructure
		config.Module,
		logger.Module,
		observability.Module,
		db.Module,
		clock.Module,
		migration.Module,

		// Source data and aggregation
		customer.Module,
		order.Module,
		product.Module,
		reporting.Module,

		// HTTP surface
		server.Module,
	)

	app.Run()
}
