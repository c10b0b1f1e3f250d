// Package weather implements the weather special path: forecast fetches that
// bypass the warehouse entirely and persist into the daily weather table.
package weather

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/seu-repo/gastro-bi/internal/domain"
	"github.com/seu-repo/gastro-bi/internal/observability/telemetry"
	"github.com/seu-repo/gastro-bi/internal/ports"
)

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

type Service struct {
	provider ports.WeatherProvider
	store    ports.WeatherStore
	now      func() time.Time
	log      *zap.Logger
}

func NewService(provider ports.WeatherProvider, store ports.WeatherStore, log *zap.Logger) *Service {
	return &Service{
		provider: provider,
		store:    store,
		now:      time.Now,
		log:      log,
	}
}

// Forecast handles the "weather_forecast" KPI. It needs a city (p_venue_name
// or p_city); a missing start date defaults both ends of the range to today,
// a missing end date collapses the range to the start date. Every fetched day
// is upserted into the weather table before the rows are returned.
func (s *Service) Forecast(ctx context.Context, params map[string]interface{}) domain.Envelope {
	city := strings.TrimSpace(stringParam(params, "p_venue_name"))
	if city == "" {
		city = strings.TrimSpace(stringParam(params, "p_city"))
	}
	if city == "" {
		return domain.ErrorEnvelope(
			fmt.Sprintf("%v: p_venue_name/p_city", domain.ErrMissingParameter))
	}

	start := strings.TrimSpace(stringParam(params, "p_start_date"))
	end := strings.TrimSpace(stringParam(params, "p_end_date"))
	if start == "" {
		today := s.now().Format("2006-01-02")
		start, end = today, today
	} else if end == "" {
		end = start
	}

	startISO, err := normalizeDate(start)
	if err != nil {
		return domain.ErrorEnvelope(err.Error())
	}
	endISO, err := normalizeDate(end)
	if err != nil {
		return domain.ErrorEnvelope(err.Error())
	}

	days, err := s.provider.Fetch(ctx, city, startISO, endISO)
	if err != nil {
		s.log.Warn("Weather forecast fetch failed",
			zap.String("city", city),
			zap.Error(err),
		)
		return domain.ErrorEnvelope(err.Error())
	}

	rows := make([]domain.Row, 0, len(days))
	for _, day := range days {
		if err := s.store.Upsert(day); err != nil {
			s.log.Error("Failed to persist weather row",
				zap.String("city", day.City),
				zap.String("date", day.Date),
				zap.Error(err),
			)
			return domain.ErrorEnvelope(err.Error())
		}
		telemetry.WeatherRowsUpserted.Inc()
		rows = append(rows, day.Row())
	}
	return domain.SuccessEnvelope(rows)
}

// Search reads the persisted weather table.
func (s *Service) Search(city, date string) ([]domain.Row, error) {
	return s.store.Search(city, date)
}

// IngestOne fetches and persists a single city+date. Used by the daily
// report when its weather lookup misses.
func (s *Service) IngestOne(ctx context.Context, city, date string) error {
	days, err := s.provider.Fetch(ctx, city, date, date)
	if err != nil {
		return err
	}
	if len(days) == 0 {
		return fmt.Errorf("no weather data returned for %s %s", city, date)
	}
	for _, day := range days {
		if err := s.store.Upsert(day); err != nil {
			return err
		}
		telemetry.WeatherRowsUpserted.Inc()
	}
	return nil
}

func stringParam(params map[string]interface{}, key string) string {
	v, ok := params[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

func normalizeDate(value string) (string, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.Format("2006-01-02"), nil
		}
	}
	return "", fmt.Errorf("invalid date %q, expected YYYY-MM-DD", value)
}
