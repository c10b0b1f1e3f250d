package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// KPI resolution metrics
	KPIResolutionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gastrobi_kpi_resolutions_total",
		Help: "KPI resolutions by function, serving source and outcome",
	}, []string{"function", "source", "result"})

	WarehouseLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "gastrobi_warehouse_latency_seconds",
		Help:    "Latency of warehouse function calls",
		Buckets: prometheus.DefBuckets,
	})

	// Weather pipeline metrics
	WeatherFetchesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gastrobi_weather_fetches_total",
		Help: "Calls to the external weather provider by outcome",
	}, []string{"status"})

	WeatherRowsUpserted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gastrobi_weather_rows_upserted_total",
		Help: "Rows written into the daily weather table",
	})

	// Report metrics
	ReportsGeneratedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gastrobi_daily_reports_total",
		Help: "Daily reports assembled by outcome",
	}, []string{"result"})
)

// Sources for KPIResolutionsTotal.
const (
	SourceWarehouse = "warehouse"
	SourceFallback  = "fallback"
	SourceWeather   = "weather"
	SourceNone      = "none"
)
