package ingest

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/seu-repo/gastro-bi/internal/domain"
	"github.com/seu-repo/gastro-bi/internal/mocks"
)

func newTestLogger() *zap.Logger {
	logger, _ := zap.NewDevelopment()
	return logger
}

func TestService_Run_DefaultsVenuesAndDates(t *testing.T) {
	// Arrange
	var fetchedCities []string
	provider := &mocks.MockWeatherProvider{
		FetchFunc: func(ctx context.Context, city, startDate, endDate string) ([]domain.WeatherDay, error) {
			fetchedCities = append(fetchedCities, city)
			return []domain.WeatherDay{{City: city, Date: startDate}}, nil
		},
	}
	service := NewService(provider, &mocks.MockWeatherStore{}, []string{"PAMPLONA", "BILBAO"}, newTestLogger())

	// Act
	summary := service.Run(context.Background(), nil, "", "")

	// Assert
	if len(fetchedCities) != 2 {
		t.Fatalf("expected the 2 default venues fetched, got %v", fetchedCities)
	}
	if summary["result"] != domain.ResultSuccess {
		t.Errorf("expected success, got %v", summary["result"])
	}
	if summary["total_rows"] != 2 {
		t.Errorf("expected 2 upserted rows, got %v", summary["total_rows"])
	}
	if summary["run_id"] == "" {
		t.Error("expected a run_id")
	}
	if summary["start_date"] != summary["end_date"] {
		t.Errorf("expected end date to default to start, got %v..%v",
			summary["start_date"], summary["end_date"])
	}
}

func TestService_Run_VenueFailureDoesNotAbort(t *testing.T) {
	// Arrange
	provider := &mocks.MockWeatherProvider{
		FetchFunc: func(ctx context.Context, city, startDate, endDate string) ([]domain.WeatherDay, error) {
			if city == "BILBAO" {
				return nil, errors.New("provider timeout")
			}
			return []domain.WeatherDay{{City: city, Date: startDate}}, nil
		},
	}
	service := NewService(provider, &mocks.MockWeatherStore{}, nil, newTestLogger())

	// Act
	summary := service.Run(context.Background(),
		[]string{"BILBAO", "PAMPLONA"}, "2025-08-30", "2025-08-30")

	// Assert
	if summary["total_rows"] != 1 {
		t.Fatalf("expected 1 row despite the failure, got %v", summary["total_rows"])
	}
	venues, ok := summary["venues"].([]domain.Row)
	if !ok || len(venues) != 2 {
		t.Fatalf("expected 2 venue entries, got %v", summary["venues"])
	}
	if venues[0]["error"] == nil {
		t.Error("expected the failing venue to carry an error")
	}
	if venues[1]["days"] != 1 {
		t.Errorf("expected 1 day for the healthy venue, got %v", venues[1]["days"])
	}
}
