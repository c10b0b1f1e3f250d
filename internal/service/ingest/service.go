// Package ingest implements the bulk daily-weather ingest across the
// configured venue list.
package ingest

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/seu-repo/gastro-bi/internal/domain"
	"github.com/seu-repo/gastro-bi/internal/observability/telemetry"
	"github.com/seu-repo/gastro-bi/internal/ports"
)

type Service struct {
	provider      ports.WeatherProvider
	store         ports.WeatherStore
	defaultVenues []string
	now           func() time.Time
	log           *zap.Logger
}

func NewService(provider ports.WeatherProvider, store ports.WeatherStore, defaultVenues []string, log *zap.Logger) *Service {
	return &Service{
		provider:      provider,
		store:         store,
		defaultVenues: defaultVenues,
		now:           time.Now,
		log:           log,
	}
}

// Run fetches and upserts the weather for every venue over [startDate,
// endDate]. Venues defaults to the configured list, dates default to today.
// Per-venue failures are recorded in the summary and never abort the run.
func (s *Service) Run(ctx context.Context, venues []string, startDate, endDate string) domain.Row {
	if len(venues) == 0 {
		venues = s.defaultVenues
	}
	if startDate == "" {
		startDate = s.now().Format("2006-01-02")
	}
	if endDate == "" {
		endDate = startDate
	}

	runID := uuid.NewString()
	s.log.Info("Starting daily weather ingest",
		zap.String("run_id", runID),
		zap.Strings("venues", venues),
		zap.String("start_date", startDate),
		zap.String("end_date", endDate),
	)

	totalRows := 0
	summary := make([]domain.Row, 0, len(venues))
	for _, venue := range venues {
		entry := domain.Row{"city": venue, "days": 0}

		days, err := s.provider.Fetch(ctx, venue, startDate, endDate)
		if err != nil {
			entry["error"] = err.Error()
			summary = append(summary, entry)
			s.log.Warn("Weather ingest failed for venue",
				zap.String("run_id", runID),
				zap.String("city", venue),
				zap.Error(err),
			)
			continue
		}

		upserted := 0
		for _, day := range days {
			if err := s.store.Upsert(day); err != nil {
				entry["error"] = err.Error()
				break
			}
			telemetry.WeatherRowsUpserted.Inc()
			upserted++
		}
		entry["days"] = upserted
		totalRows += upserted
		summary = append(summary, entry)
	}

	s.log.Info("Daily weather ingest finished",
		zap.String("run_id", runID),
		zap.Int("total_rows", totalRows),
	)
	return domain.Row{
		"result":     domain.ResultSuccess,
		"run_id":     runID,
		"start_date": startDate,
		"end_date":   endDate,
		"total_rows": totalRows,
		"venues":     summary,
	}
}
