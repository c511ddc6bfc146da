package observability

import (
	"github.com/smallbiznis/railpos/internal/observability/logger"
	"github.com/smallbiznis/railpos/internal/observability/metrics"
	"github.com/smallbiznis/railpos/internal/observability/tracing"
	"go.uber.org/fx"
)

var Module = fx.Module("observability",
	logger.Module,
	tracing.Module,
	metrics.Module,
)
