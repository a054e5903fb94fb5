package reporting

import (
	"github.com/legaldesk/analytics/internal/cache"
	"github.com/legaldesk/analytics/internal/reporting/domain"
	"github.com/legaldesk/analytics/internal/reporting/service"
	"go.uber.org/fx"
)

var Module = fx.Module("reporting",
	fx.Provide(func() cache.Cache[string, *domain.Snapshot] {
		return cache.NewTTLCache[string, *domain.Snapshot]()
	}),
	fx.Provide(service.New),
)
