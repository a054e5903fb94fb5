package domain

import (
	"context"
	"errors"
)

// Service exposes the dashboard's read-only query operations over the cached
// fact snapshot. All operations are deterministic pure reads; the snapshot
// only changes on an explicit Refresh.
type Service interface {
	Overview(ctx context.Context) (Overview, error)
	KPIs(ctx context.Context) (KPIVector, error)
	OrdersByPeriod(ctx context.Context, bucket Bucket) ([]PeriodOrders, error)
	ProductFrequency(ctx context.Context, topN int) ([]ProductFrequency, error)
	CustomerValue(ctx context.Context) ([]CustomerValue, error)
	CategoryPerformance(ctx context.Context) ([]CategoryPerformance, error)
	TopProductsByRevenue(ctx context.Context, topN int) ([]ProductRevenue, error)
	Refresh(ctx context.Context) error
}

var (
	ErrInvalidTopN   = errors.New("invalid_top_n")
	ErrInvalidBucket = errors.New("invalid_bucket")
)
