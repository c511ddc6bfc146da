package logger

import (
	"context"
	"strings"

	"github.com/smallbiznis/railpos/internal/config"
	obsctx "github.com/smallbiznis/railpos/internal/observability/context"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var Module = fx.Module("logger",
	fx.Provide(New),
	fx.Invoke(registerGlobal),
)

// New builds the root logger from configuration.
func New(cfg config.Config) (*zap.Logger, error) {
	var zcfg zap.Config
	if strings.EqualFold(cfg.LogFormat, "console") {
		zcfg = zap.NewDevelopmentConfig()
	} else {
		zcfg = zap.NewProductionConfig()
		zcfg.EncoderConfig.TimeKey = "ts"
		zcfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}

	level, err := zapcore.ParseLevel(strings.TrimSpace(cfg.LogLevel))
	if err != nil {
		level = zapcore.InfoLevel
	}
	zcfg.Level = zap.NewAtomicLevelAt(level)

	log, err := zcfg.Build()
	if err != nil {
		return nil, err
	}
	return log.With(
		zap.String("service", cfg.AppName),
		zap.String("env", cfg.Environment),
		zap.String("version", cfg.Version),
	), nil
}

func registerGlobal(lc fx.Lifecycle, log *zap.Logger) {
	restore := zap.ReplaceGlobals(log)
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			_ = log.Sync()
			restore()
			return nil
		},
	})
}

// FromContext returns the global logger enriched with trace and request
// identifiers found in ctx.
func FromContext(ctx context.Context) *zap.Logger {
	return With(ctx, zap.L())
}

// With enriches base with trace and request identifiers found in ctx.
func With(ctx context.Context, base *zap.Logger) *zap.Logger {
	if base == nil {
		base = zap.L()
	}
	if ctx == nil {
		return base
	}

	fields := make([]zap.Field, 0, 6)
	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		fields = append(fields,
			zap.String("trace_id", sc.TraceID().String()),
			zap.String("span_id", sc.SpanID().String()),
		)
	}
	if requestID := obsctx.RequestIDFromContext(ctx); requestID != "" {
		fields = append(fields, zap.String("request_id", requestID))
	}
	if actorType, actorID := obsctx.ActorFromContext(ctx); actorType != "" {
		fields = append(fields, zap.String("actor_type", actorType), zap.String("actor_id", actorID))
	}
	if terminal := obsctx.TerminalFromContext(ctx); terminal != "" {
		fields = append(fields, zap.String("terminal", terminal))
	}
	if len(fields) == 0 {
		return base
	}
	return base.With(fields...)
}
