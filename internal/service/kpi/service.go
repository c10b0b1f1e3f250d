// Package kpi implements KPI resolution: the static warehouse dispatch table,
// the synthetic-dataset fallback resolver and the orchestrator tying them
// together.
package kpi

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/seu-repo/gastro-bi/internal/domain"
	"github.com/seu-repo/gastro-bi/internal/observability/telemetry"
	"github.com/seu-repo/gastro-bi/internal/ports"
)

// WeatherForecastFunction routes to the weather special path instead of the
// warehouse or the synthetic datasets.
const WeatherForecastFunction = "weather_forecast"

// Service resolves (function, params) requests. The warehouse is
// authoritative; the synthetic datasets are a last-resort substitute, never a
// cache.
type Service struct {
	warehouse ports.WarehouseGateway
	fallback  *FallbackResolver
	weather   ports.WeatherService
	log       *zap.Logger
}

func NewService(warehouse ports.WarehouseGateway, fallback *FallbackResolver, weather ports.WeatherService, log *zap.Logger) *Service {
	return &Service{
		warehouse: warehouse,
		fallback:  fallback,
		weather:   weather,
		log:       log,
	}
}

// Resolve runs the per-request state machine:
//
//  1. "weather_forecast" delegates to the weather path and returns directly.
//  2. A name missing from the dispatch table goes straight to the fallback.
//  3. A dispatched name calls the warehouse; empty results and warehouse
//     failures both fall back (failures are logged and counted first).
func (s *Service) Resolve(ctx context.Context, function string, params map[string]interface{}) domain.Envelope {
	ctx, span := otel.Tracer("kpi").Start(ctx, "kpi.resolve")
	span.SetAttributes(attribute.String("kpi.function", function))
	defer span.End()

	if function == WeatherForecastFunction {
		env := s.weather.Forecast(ctx, params)
		telemetry.KPIResolutionsTotal.WithLabelValues(function, telemetry.SourceWeather, env.Result).Inc()
		return env
	}

	orderedParams, dispatched := Lookup(function)
	if !dispatched {
		s.log.Info("Function not in dispatch table, using fallback",
			zap.String("function", function),
		)
		return s.resolveFallback(function, params)
	}

	if s.warehouse == nil {
		s.log.Info("No warehouse configured, using fallback",
			zap.String("function", function),
		)
		return s.resolveFallback(function, params)
	}

	args := make([]interface{}, len(orderedParams))
	for i, name := range orderedParams {
		args[i] = params[name] // absent params stay nil
	}

	rows, err := s.warehouse.Call(ctx, function, args)
	if err != nil {
		s.log.Warn("Warehouse unavailable, using fallback",
			zap.String("function", function),
			zap.Error(err),
		)
		return s.resolveFallback(function, params)
	}
	if len(rows) > 0 {
		telemetry.KPIResolutionsTotal.WithLabelValues(function, telemetry.SourceWarehouse, domain.ResultSuccess).Inc()
		return domain.SuccessEnvelope(rows)
	}

	s.log.Info("No warehouse data, using fallback",
		zap.String("function", function),
	)
	return s.resolveFallback(function, params)
}

func (s *Service) resolveFallback(function string, params map[string]interface{}) domain.Envelope {
	env := s.fallback.Resolve(function, params)

	source := telemetry.SourceFallback
	if !s.fallback.Knows(function) {
		source = telemetry.SourceNone
	}
	telemetry.KPIResolutionsTotal.WithLabelValues(function, source, env.Result).Inc()
	return env
}
