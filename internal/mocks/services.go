package mocks

import (
	"context"

	"github.com/seu-repo/gastro-bi/internal/domain"
)

// MockKPIResolver is a mock implementation of KPIResolver
type MockKPIResolver struct {
	ResolveFunc func(ctx context.Context, function string, params map[string]interface{}) domain.Envelope
}

func (m *MockKPIResolver) Resolve(ctx context.Context, function string, params map[string]interface{}) domain.Envelope {
	if m.ResolveFunc != nil {
		return m.ResolveFunc(ctx, function, params)
	}
	return domain.SuccessEnvelope(nil)
}

// MockWeatherProvider is a mock implementation of WeatherProvider
type MockWeatherProvider struct {
	FetchFunc func(ctx context.Context, city, startDate, endDate string) ([]domain.WeatherDay, error)
}

func (m *MockWeatherProvider) Fetch(ctx context.Context, city, startDate, endDate string) ([]domain.WeatherDay, error) {
	if m.FetchFunc != nil {
		return m.FetchFunc(ctx, city, startDate, endDate)
	}
	return []domain.WeatherDay{}, nil
}

// MockWeatherService is a mock implementation of WeatherService
type MockWeatherService struct {
	ForecastFunc  func(ctx context.Context, params map[string]interface{}) domain.Envelope
	SearchFunc    func(city, date string) ([]domain.Row, error)
	IngestOneFunc func(ctx context.Context, city, date string) error
}

func (m *MockWeatherService) Forecast(ctx context.Context, params map[string]interface{}) domain.Envelope {
	if m.ForecastFunc != nil {
		return m.ForecastFunc(ctx, params)
	}
	return domain.SuccessEnvelope(nil)
}

func (m *MockWeatherService) Search(city, date string) ([]domain.Row, error) {
	if m.SearchFunc != nil {
		return m.SearchFunc(city, date)
	}
	return []domain.Row{}, nil
}

func (m *MockWeatherService) IngestOne(ctx context.Context, city, date string) error {
	if m.IngestOneFunc != nil {
		return m.IngestOneFunc(ctx, city, date)
	}
	return nil
}

// MockEventsService is a mock implementation of EventsService
type MockEventsService struct {
	ForDayFunc func(date, city string) ([]domain.Row, error)
}

func (m *MockEventsService) ForDay(date, city string) ([]domain.Row, error) {
	if m.ForDayFunc != nil {
		return m.ForDayFunc(date, city)
	}
	return []domain.Row{}, nil
}

// MockMotivationService is a mock implementation of MotivationService
type MockMotivationService struct {
	PhraseOfTheDayFunc func(date, lang, tone string) (domain.Row, error)
}

func (m *MockMotivationService) PhraseOfTheDay(date, lang, tone string) (domain.Row, error) {
	if m.PhraseOfTheDayFunc != nil {
		return m.PhraseOfTheDayFunc(date, lang, tone)
	}
	return domain.Row{}, nil
}

// MockReportService is a mock implementation of ReportService
type MockReportService struct {
	DailyReportFunc func(ctx context.Context, venue, date, lang, tone string) (*domain.DailyReport, error)
}

func (m *MockReportService) DailyReport(ctx context.Context, venue, date, lang, tone string) (*domain.DailyReport, error) {
	if m.DailyReportFunc != nil {
		return m.DailyReportFunc(ctx, venue, date, lang, tone)
	}
	return &domain.DailyReport{Result: domain.ResultSuccess}, nil
}
