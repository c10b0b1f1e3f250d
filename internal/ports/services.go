package ports

import (
	"context"

	"github.com/seu-repo/gastro-bi/internal/domain"
)

// KPIResolver answers a logical KPI request: warehouse first, synthetic
// fallback second, weather_forecast as a special path.
type KPIResolver interface {
	Resolve(ctx context.Context, function string, params map[string]interface{}) domain.Envelope
}

// WeatherProvider is the external forecast client:
// fetch(city, start_date, end_date) -> one row per day, inclusive range.
type WeatherProvider interface {
	Fetch(ctx context.Context, city, startDate, endDate string) ([]domain.WeatherDay, error)
}

// WeatherService covers the weather special path and the persisted table.
type WeatherService interface {
	// Forecast handles the "weather_forecast" KPI: fetches [start,end] for the
	// requested city and persists every returned day.
	Forecast(ctx context.Context, params map[string]interface{}) domain.Envelope
	// Search reads the persisted weather table (city substring match, exact date).
	Search(city, date string) ([]domain.Row, error)
	// IngestOne fetches and persists a single city+date. Used by the daily
	// report's lookup-miss retry.
	IngestOne(ctx context.Context, city, date string) error
}

// IngestRunner executes a bulk daily-weather ingest over a set of venues.
type IngestRunner interface {
	Run(ctx context.Context, venues []string, startDate, endDate string) domain.Row
}

// EventsService answers date (and optionally city) scoped event lookups.
type EventsService interface {
	// ForDay returns city-specific events when city is non-empty, national
	// events (empty city column) otherwise.
	ForDay(date, city string) ([]domain.Row, error)
}

// MotivationService picks the deterministic phrase of the day.
type MotivationService interface {
	PhraseOfTheDay(date, lang, tone string) (domain.Row, error)
}

// ReportService assembles the composite daily report for a venue and date.
type ReportService interface {
	DailyReport(ctx context.Context, venue, date, lang, tone string) (*domain.DailyReport, error)
}
