package service

import (
	"context"
	"sync"
	"time"

	"github.com/legaldesk/analytics/internal/cache"
	"github.com/legaldesk/analytics/internal/clock"
	"github.com/legaldesk/analytics/internal/config"
	customerdomain "github.com/legaldesk/analytics/internal/customer/domain"
	obsmetrics "github.com/legaldesk/analytics/internal/observability/metrics"
	orderdomain "github.com/legaldesk/analytics/internal/order/domain"
	productdomain "github.com/legaldesk/analytics/internal/product/domain"
	"github.com/legaldesk/analytics/internal/reporting/domain"
	"github.com/legaldesk/analytics/internal/reporting/facts"
	"github.com/legaldesk/analytics/internal/reporting/metrics"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const snapshotCacheKey = "facts"

type Params struct {
	fx.In

	DB        *gorm.DB
	Log       *zap.Logger
	Clock     clock.Clock
	Config    config.Config
	Customers customerdomain.Repository
	Orders    orderdomain.Repository
	Products  productdomain.Repository
	Snapshots cache.Cache[string, *domain.Snapshot]
	Pipeline  *obsmetrics.PipelineMetrics `optional:"true"`
}

type Service struct {
	db        *gorm.DB
	log       *zap.Logger
	clock     clock.Clock
	customers customerdomain.Repository
	orders    orderdomain.Repository
	products  productdomain.Repository
	snapshots cache.Cache[string, *domain.Snapshot]
	pipeline  *obsmetrics.PipelineMetrics
	ttl       time.Duration

	// buildMu serializes snapshot rebuilds so concurrent readers never
	// trigger duplicate loads.
	buildMu sync.Mutex
}

func New(p Params) domain.Service {
	return &Service{
		db:        p.DB,
		log:       p.Log.Named("reporting.service"),
		clock:     p.Clock,
		customers: p.Customers,
		orders:    p.Orders,
		products:  p.Products,
		snapshots: p.Snapshots,
		pipeline:  p.Pipeline,
		ttl:       p.Config.SnapshotTTL,
	}
}

func (s *Service) Overview(ctx context.Context) (domain.Overview, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return domain.Overview{}, err
	}
	overview := domain.Overview{
		CustomerCount: snap.CustomerCount,
		OrderCount:    snap.OrderCount,
		ItemCount:     snap.ItemCount,
		ProductCount:  snap.ProductCount,
		FactRowCount:  len(snap.Facts),
		BuiltAt:       snap.BuiltAt,
	}
	if !snap.FirstOrderDate.IsZero() {
		first := snap.FirstOrderDate
		last := snap.LastOrderDate
		overview.FirstOrderDate = &first
		overview.LastOrderDate = &last
	}
	return overview, nil
}

func (s *Service) KPIs(ctx context.Context) (domain.KPIVector, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return domain.KPIVector{}, err
	}
	return metrics.ComputeKPIs(snap.Facts), nil
}

func (s *Service) OrdersByPeriod(ctx context.Context, bucket domain.Bucket) ([]domain.PeriodOrders, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return metrics.OrdersByPeriod(snap.Facts, bucket)
}

func (s *Service) ProductFrequency(ctx context.Context, topN int) ([]domain.ProductFrequency, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return metrics.ProductFrequency(snap.Facts, topN)
}

func (s *Service) CustomerValue(ctx context.Context) ([]domain.CustomerValue, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return metrics.CustomerValue(snap.Facts), nil
}

func (s *Service) CategoryPerformance(ctx context.Context) ([]domain.CategoryPerformance, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return metrics.CategoryPerformance(snap.Facts), nil
}

func (s *Service) TopProductsByRevenue(ctx context.Context, topN int) ([]domain.ProductRevenue, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return metrics.TopProductsByRevenue(snap.Facts, topN)
}

// Refresh invalidates the cached snapshot and rebuilds it from the source
// tables. This is the only path that replaces a live snapshot.
func (s *Service) Refresh(ctx context.Context) error {
	s.buildMu.Lock()
	defer s.buildMu.Unlock()

	snap, err := s.build(ctx)
	if err != nil {
		return err
	}
	s.snapshots.Set(snapshotCacheKey, snap, s.ttl)
	return nil
}

func (s *Service) snapshot(ctx context.Context) (*domain.Snapshot, error) {
	if snap, ok := s.snapshots.Get(snapshotCacheKey); ok {
		return snap, nil
	}

	s.buildMu.Lock()
	defer s.buildMu.Unlock()
	if snap, ok := s.snapshots.Get(snapshotCacheKey); ok {
		return snap, nil
	}

	snap, err := s.build(ctx)
	if err != nil {
		return nil, err
	}
	s.snapshots.Set(snapshotCacheKey, snap, s.ttl)
	return snap, nil
}

// build performs the single bulk read of the four source tables and
// materializes the fact snapshot.
func (s *Service) build(ctx context.Context) (*domain.Snapshot, error) {
	started := time.Now()

	customers, err := s.customers.FindAll(ctx, s.db)
	if err != nil {
		return nil, err
	}
	orders, err := s.orders.FindAllOrders(ctx, s.db)
	if err != nil {
		return nil, err
	}
	items, err := s.orders.FindAllItems(ctx, s.db)
	if err != nil {
		return nil, err
	}
	products, err := s.products.FindAll(ctx, s.db)
	if err != nil {
		return nil, err
	}

	rows, err := facts.Build(customers, orders, items, products)
	if err != nil {
		return nil, err
	}

	snap := &domain.Snapshot{
		Facts:         rows,
		BuiltAt:       s.clock.Now(),
		CustomerCount: len(customers),
		OrderCount:    len(orders),
		ItemCount:     len(items),
		ProductCount:  len(products),
	}
	for _, row := range rows {
		if snap.FirstOrderDate.IsZero() || row.OrderDate.Before(snap.FirstOrderDate) {
			snap.FirstOrderDate = row.OrderDate
		}
		if row.OrderDate.After(snap.LastOrderDate) {
			snap.LastOrderDate = row.OrderDate
		}
	}

	elapsed := time.Since(started)
	s.pipeline.ObserveRebuild(elapsed, len(rows))
	s.log.Info("fact snapshot built",
		zap.Int("fact_rows", len(rows)),
		zap.Int("customers", len(customers)),
		zap.Int("orders", len(orders)),
		zap.Int("order_items", len(items)),
		zap.Int("products", len(products)),
		zap.Int64("duration_ms", elapsed.Milliseconds()),
	)

	return snap, nil
}
