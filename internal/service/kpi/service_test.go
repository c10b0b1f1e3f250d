package kpi

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"go.uber.org/zap"

	"github.com/seu-repo/gastro-bi/internal/domain"
	"github.com/seu-repo/gastro-bi/internal/mocks"
)

func newTestLogger() *zap.Logger {
	logger, _ := zap.NewDevelopment()
	return logger
}

func emptyStore() *mocks.MockDatasetStore {
	return &mocks.MockDatasetStore{
		LoadFunc: func(table string) (*domain.Table, error) {
			return nil, fmt.Errorf("table %s: %w", table, domain.ErrDatasetUnavailable)
		},
	}
}

func TestService_Resolve_WarehouseSuccess(t *testing.T) {
	// Arrange
	warehouse := &mocks.MockWarehouseGateway{
		CallFunc: func(ctx context.Context, function string, args []interface{}) ([]domain.Row, error) {
			return []domain.Row{{"venue_name": "PAMPLONA", "income": 4120.0}}, nil
		},
	}
	fallback := NewFallbackResolver(emptyStore(), newTestLogger())
	service := NewService(warehouse, fallback, &mocks.MockWeatherService{}, newTestLogger())

	// Act
	env := service.Resolve(context.Background(), "fn_weekly_venues_income", map[string]interface{}{
		"p_company_name": "PALLAPIZZA",
		"p_week_number":  35,
		"p_year":         2025,
	})

	// Assert
	if env.Result != domain.ResultSuccess {
		t.Fatalf("expected success, got %s (%s)", env.Result, env.Message)
	}
	if len(env.Data) != 1 || env.Data[0]["venue_name"] != "PAMPLONA" {
		t.Fatalf("unexpected data %v", env.Data)
	}
}

func TestService_Resolve_ArgsArePositional(t *testing.T) {
	// Arrange
	var gotArgs []interface{}
	warehouse := &mocks.MockWarehouseGateway{
		CallFunc: func(ctx context.Context, function string, args []interface{}) ([]domain.Row, error) {
			gotArgs = args
			return []domain.Row{{"ok": 1.0}}, nil
		},
	}
	fallback := NewFallbackResolver(emptyStore(), newTestLogger())
	service := NewService(warehouse, fallback, &mocks.MockWeatherService{}, newTestLogger())

	// Act: p_week_number is absent and must travel as nil
	service.Resolve(context.Background(), "fn_weekly_venues_income", map[string]interface{}{
		"p_company_name": "PALLAPIZZA",
		"p_year":         2025,
	})

	// Assert: order is p_company_name, p_week_number, p_year, p_month_number
	if len(gotArgs) != 4 {
		t.Fatalf("expected 4 args, got %d", len(gotArgs))
	}
	if gotArgs[0] != "PALLAPIZZA" {
		t.Errorf("arg 0: expected company, got %v", gotArgs[0])
	}
	if gotArgs[1] != nil {
		t.Errorf("arg 1: expected nil for absent week, got %v", gotArgs[1])
	}
	if gotArgs[2] != 2025 {
		t.Errorf("arg 2: expected year, got %v", gotArgs[2])
	}
	if gotArgs[3] != nil {
		t.Errorf("arg 3: expected nil for absent month, got %v", gotArgs[3])
	}
}

func TestService_Resolve_EmptyWarehouseFallsBack(t *testing.T) {
	// Arrange: warehouse answers with zero rows, fallback has no dataset either
	warehouse := &mocks.MockWarehouseGateway{
		CallFunc: func(ctx context.Context, function string, args []interface{}) ([]domain.Row, error) {
			return []domain.Row{}, nil
		},
	}
	fallback := NewFallbackResolver(emptyStore(), newTestLogger())
	service := NewService(warehouse, fallback, &mocks.MockWeatherService{}, newTestLogger())

	// Act
	env := service.Resolve(context.Background(), "fn_weekly_venues_income", map[string]interface{}{})

	// Assert
	if env.Result != domain.ResultError {
		t.Fatalf("expected no-data envelope, got %s", env.Result)
	}
	if env.Message != "No data found for fn_weekly_venues_income" {
		t.Errorf("unexpected message %q", env.Message)
	}
}

func TestService_Resolve_WarehouseErrorFallsBack(t *testing.T) {
	// Arrange: warehouse fails, fallback serves from the cash-flow dataset
	warehouse := &mocks.MockWarehouseGateway{
		CallFunc: func(ctx context.Context, function string, args []interface{}) ([]domain.Row, error) {
			return nil, fmt.Errorf("connection refused: %w", domain.ErrWarehouseUnavailable)
		},
	}
	store := &mocks.MockDatasetStore{
		LoadFunc: func(table string) (*domain.Table, error) {
			return &domain.Table{
				Name:    table,
				Columns: []string{"p_venue_name", "p_year", "p_week_number", "friday_income_predicted"},
				Rows: []domain.Row{{
					"p_venue_name": "PAMPLONA", "p_year": 2025.0,
					"p_week_number": 35.0, "friday_income_predicted": 4230.75,
				}},
			}, nil
		},
	}
	fallback := NewFallbackResolver(store, newTestLogger())
	service := NewService(warehouse, fallback, &mocks.MockWeatherService{}, newTestLogger())

	// Act
	env := service.Resolve(context.Background(), "cash_flow_synthetic_by_week", map[string]interface{}{
		"p_year":        2025,
		"p_week_number": 35,
	})

	// Assert
	if env.Result != domain.ResultSuccess {
		t.Fatalf("expected success from fallback, got %s (%s)", env.Result, env.Message)
	}
	if len(env.Data) != 1 {
		t.Fatalf("expected 1 row, got %d", len(env.Data))
	}
}

func TestService_Resolve_UnknownFunction(t *testing.T) {
	// Arrange
	fallback := NewFallbackResolver(emptyStore(), newTestLogger())
	service := NewService(&mocks.MockWarehouseGateway{}, fallback, &mocks.MockWeatherService{}, newTestLogger())

	// Act
	env := service.Resolve(context.Background(), "ghost_kpi", map[string]interface{}{})

	// Assert
	if env.Result != domain.ResultError {
		t.Fatalf("expected no-data envelope, got %s", env.Result)
	}
	if env.Message != "No data found for ghost_kpi" {
		t.Errorf("unexpected message %q", env.Message)
	}
	if len(env.Data) != 0 {
		t.Errorf("expected empty data, got %v", env.Data)
	}
}

func TestService_Resolve_WeatherDelegation(t *testing.T) {
	// Arrange
	weatherCalled := false
	warehouse := &mocks.MockWarehouseGateway{
		CallFunc: func(ctx context.Context, function string, args []interface{}) ([]domain.Row, error) {
			t.Fatal("warehouse must not be called for weather_forecast")
			return nil, errors.New("unreachable")
		},
	}
	weather := &mocks.MockWeatherService{
		ForecastFunc: func(ctx context.Context, params map[string]interface{}) domain.Envelope {
			weatherCalled = true
			return domain.SuccessEnvelope([]domain.Row{{"temp": 24.0}})
		},
	}
	fallback := NewFallbackResolver(emptyStore(), newTestLogger())
	service := NewService(warehouse, fallback, weather, newTestLogger())

	// Act
	env := service.Resolve(context.Background(), WeatherForecastFunction, map[string]interface{}{
		"p_venue_name": "PAMPLONA",
	})

	// Assert
	if !weatherCalled {
		t.Fatal("expected weather service to be called")
	}
	if env.Result != domain.ResultSuccess {
		t.Fatalf("expected success, got %s", env.Result)
	}
}

func TestService_Resolve_NilWarehouseFallsBack(t *testing.T) {
	// Arrange: degraded startup without a warehouse connection
	fallback := NewFallbackResolver(emptyStore(), newTestLogger())
	service := NewService(nil, fallback, &mocks.MockWeatherService{}, newTestLogger())

	// Act
	env := service.Resolve(context.Background(), "fn_weekly_venues_income", map[string]interface{}{})

	// Assert
	if env.Result != domain.ResultError {
		t.Fatalf("expected no-data envelope, got %s", env.Result)
	}
	if env.Message != "No data found for fn_weekly_venues_income" {
		t.Errorf("unexpected message %q", env.Message)
	}
}
