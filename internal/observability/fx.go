package observability

import (
	"github.com/legaldesk/analytics/internal/observability/metrics"
	"go.uber.org/fx"
)

var Module = fx.Module("observability",
	fx.Provide(metrics.NewHTTPMetrics),
	fx.Provide(metrics.NewPipelineMetrics),
)
