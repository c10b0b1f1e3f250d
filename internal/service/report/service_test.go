package report

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/seu-repo/gastro-bi/internal/adapter/storage/csvstore"
	"github.com/seu-repo/gastro-bi/internal/domain"
	"github.com/seu-repo/gastro-bi/internal/mocks"
)

// 2025-08-30 is a Saturday in ISO week 35.
const testDate = "2025-08-30"

func newTestLogger() *zap.Logger {
	logger, _ := zap.NewDevelopment()
	return logger
}

func testKPIResolver(objective float64) *mocks.MockKPIResolver {
	return &mocks.MockKPIResolver{
		ResolveFunc: func(ctx context.Context, function string, params map[string]interface{}) domain.Envelope {
			switch function {
			case "fn_weekly_venues_income":
				return domain.SuccessEnvelope([]domain.Row{
					{"venue_name": "PAMPLONA", "last_year_saturday": objective},
					{"venue_name": "BILBAO", "last_year_saturday": 250.0},
				})
			case "fn_weekly_attendance_by_venue":
				return domain.SuccessEnvelope([]domain.Row{
					{"venue_name": "PAMPLONA", "sat_prev": 30.0},
				})
			default:
				return domain.ErrorEnvelope("unexpected function " + function)
			}
		},
	}
}

func testDatasetStore() *mocks.MockDatasetStore {
	return &mocks.MockDatasetStore{
		LoadFunc: func(table string) (*domain.Table, error) {
			switch table {
			case csvstore.TableReservas:
				return &domain.Table{Name: table, Rows: []domain.Row{
					{"p_company_name": "PALLAPIZZA", "p_venue_name": "PAMPLONA",
						"p_year": 2025.0, "p_week_number": 35.0, "weekday": 5.0,
						"reservations": 45.0},
					{"p_company_name": "PALLAPIZZA", "p_venue_name": "PAMPLONA",
						"p_year": 2025.0, "p_week_number": 35.0, "weekday": 4.0,
						"reservations": 99.0},
				}}, nil
			case csvstore.TableStock:
				return &domain.Table{Name: table, Rows: []domain.Row{
					stockRow("Mozzarella", 29, 100),
					stockRow("Harina 00", 30, 100),
					stockRow("Tomate", 59, 100),
					stockRow("Pepperoni", 60, 100),
				}}, nil
			case csvstore.TableCashFlow:
				return &domain.Table{Name: table, Rows: []domain.Row{
					{"p_venue_name": "PAMPLONA", "p_year": 2025.0,
						"p_week_number": 35.0, "saturday_income_predicted": 120.0},
				}}, nil
			default:
				return nil, fmt.Errorf("table %s: %w", table, domain.ErrDatasetUnavailable)
			}
		},
	}
}

func stockRow(product string, stock, capacity float64) domain.Row {
	return domain.Row{
		"p_company_name": "PALLAPIZZA", "p_venue_name": "PAMPLONA",
		"p_year": 2025.0, "p_week_number": 35.0,
		"product_name": product, "stock": stock, "capacity": capacity,
	}
}

func rainyWeather() *mocks.MockWeatherService {
	return &mocks.MockWeatherService{
		SearchFunc: func(city, date string) ([]domain.Row, error) {
			return []domain.Row{{
				"city": "Pamplona, Spain", "date": date,
				"temp": 18.5, "conditions": "Rain, Overcast",
			}}, nil
		},
	}
}

func testMotivation() *mocks.MockMotivationService {
	return &mocks.MockMotivationService{
		PhraseOfTheDayFunc: func(date, lang, tone string) (domain.Row, error) {
			return domain.Row{"text": "Hoy la masa sube sola. ¡A por todas!"}, nil
		},
	}
}

func testEvents() *mocks.MockEventsService {
	return &mocks.MockEventsService{
		ForDayFunc: func(date, city string) ([]domain.Row, error) {
			return []domain.Row{
				{"date": date, "city": city, "title": "Osasuna - Eibar", "has_football": "1"},
				{"date": date, "city": city, "title": "Concierto", "has_football": "0"},
			}, nil
		},
	}
}

func newTestService(kpi *mocks.MockKPIResolver, weather *mocks.MockWeatherService) *Service {
	return NewService(kpi, testDatasetStore(), weather, testMotivation(), testEvents(),
		"PALLAPIZZA", newTestLogger())
}

func TestService_DailyReport_HappyPath(t *testing.T) {
	// Arrange
	service := newTestService(testKPIResolver(100.0), rainyWeather())

	// Act
	report, err := service.DailyReport(context.Background(), "pamplona", testDate, "es", "funny")

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if report.Result != domain.ResultSuccess {
		t.Errorf("expected success result, got %s", report.Result)
	}
	if report.KPIData.Objective != 100.0 {
		t.Errorf("expected objective 100, got %v", report.KPIData.Objective)
	}
	if report.KPIData.Prediction == nil || *report.KPIData.Prediction != 120.0 {
		t.Errorf("expected prediction 120, got %v", report.KPIData.Prediction)
	}
	if report.KPIData.PredictionVar == nil || *report.KPIData.PredictionVar != 20.0 {
		t.Errorf("expected prediction variation 20.0, got %v", report.KPIData.PredictionVar)
	}
	if report.KPIData.AttendanceLast != 30.0 {
		t.Errorf("expected attendance_last 30, got %v", report.KPIData.AttendanceLast)
	}
	if report.KPIData.AttendanceVariation != 10.0 {
		t.Errorf("expected attendance variation 10%%, got %v", report.KPIData.AttendanceVariation)
	}
	if report.KPIData.NumReservas != 45 {
		t.Errorf("expected 45 reservations (weekday 5), got %d", report.KPIData.NumReservas)
	}
	if report.SyntheticData.FraseMotivacional != "Hoy la masa sube sola. ¡A por todas!" {
		t.Errorf("unexpected motivational phrase %q", report.SyntheticData.FraseMotivacional)
	}
	if !report.SyntheticData.HayFutbol {
		t.Error("expected hay_futbol true")
	}
	if len(report.SyntheticData.FechasImportantes) != 2 {
		t.Errorf("expected 2 event titles, got %v", report.SyntheticData.FechasImportantes)
	}
}

func TestService_DailyReport_StockBoundaries(t *testing.T) {
	// Arrange
	service := newTestService(testKPIResolver(100.0), rainyWeather())

	// Act
	report, err := service.DailyReport(context.Background(), "PAMPLONA", testDate, "es", "funny")

	// Assert: <0.3 low, [0.3,0.6) medium, >=0.6 unflagged
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	low := report.SyntheticData.ProductosBajoStock
	medium := report.SyntheticData.ProductosMedioStock
	if len(low) != 1 || low[0] != "Mozzarella" {
		t.Errorf("expected only Mozzarella (0.29) low, got %v", low)
	}
	if len(medium) != 2 || medium[0] != "Harina 00" || medium[1] != "Tomate" {
		t.Errorf("expected Harina 00 (0.30) and Tomate (0.59) medium, got %v", medium)
	}
}

func TestService_DailyReport_WeatherPhrase(t *testing.T) {
	// Arrange
	service := newTestService(testKPIResolver(100.0), rainyWeather())

	// Act
	report, err := service.DailyReport(context.Background(), "PAMPLONA", testDate, "es", "funny")

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if report.SyntheticData.Clima == nil || *report.SyntheticData.Clima != "rain, overcast" {
		t.Errorf("expected lowercased conditions, got %v", report.SyntheticData.Clima)
	}
	if report.SyntheticData.Temperatura == nil || *report.SyntheticData.Temperatura != 18.5 {
		t.Errorf("expected temperature 18.5, got %v", report.SyntheticData.Temperatura)
	}
	if !strings.Contains(report.SyntheticData.FraseClima, "lloverá") {
		t.Errorf("expected the rain phrase, got %q", report.SyntheticData.FraseClima)
	}
}

func TestService_DailyReport_VenueNotFound(t *testing.T) {
	// Arrange
	service := newTestService(testKPIResolver(100.0), rainyWeather())

	// Act
	_, err := service.DailyReport(context.Background(), "MADRID", testDate, "es", "funny")

	// Assert
	if !errors.Is(err, domain.ErrVenueNotFound) {
		t.Fatalf("expected ErrVenueNotFound, got %v", err)
	}
}

func TestService_DailyReport_ZeroObjectiveMeansNoVariation(t *testing.T) {
	// Arrange
	service := newTestService(testKPIResolver(0.0), rainyWeather())

	// Act
	report, err := service.DailyReport(context.Background(), "PAMPLONA", testDate, "es", "funny")

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if report.KPIData.Prediction == nil {
		t.Fatal("expected a prediction even without an objective")
	}
	if report.KPIData.PredictionVar != nil {
		t.Errorf("expected nil variation for zero objective, got %v", *report.KPIData.PredictionVar)
	}
}

func TestService_DailyReport_IngestOnMissRetriesOnce(t *testing.T) {
	// Arrange: first search misses, ingest succeeds, second search hits
	searches := 0
	ingests := 0
	weather := &mocks.MockWeatherService{
		SearchFunc: func(city, date string) ([]domain.Row, error) {
			searches++
			if searches == 1 {
				return []domain.Row{}, nil
			}
			return []domain.Row{{"temp": 24.0, "conditions": "Clear, Sunny"}}, nil
		},
		IngestOneFunc: func(ctx context.Context, city, date string) error {
			ingests++
			return nil
		},
	}
	service := newTestService(testKPIResolver(100.0), weather)

	// Act
	report, err := service.DailyReport(context.Background(), "PAMPLONA", testDate, "es", "funny")

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if ingests != 1 {
		t.Fatalf("expected exactly one ingest, got %d", ingests)
	}
	if searches != 2 {
		t.Fatalf("expected exactly two searches, got %d", searches)
	}
	if !strings.Contains(report.SyntheticData.FraseClima, "soleado") {
		t.Errorf("expected the sunny phrase after retry, got %q", report.SyntheticData.FraseClima)
	}
}

func TestService_DailyReport_FailedIngestDegradesWeather(t *testing.T) {
	// Arrange
	weather := &mocks.MockWeatherService{
		SearchFunc: func(city, date string) ([]domain.Row, error) {
			return []domain.Row{}, nil
		},
		IngestOneFunc: func(ctx context.Context, city, date string) error {
			return errors.New("provider down")
		},
	}
	service := newTestService(testKPIResolver(100.0), weather)

	// Act
	report, err := service.DailyReport(context.Background(), "PAMPLONA", testDate, "es", "funny")

	// Assert: the report still succeeds, the phrase carries the failure
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if report.SyntheticData.Clima != nil || report.SyntheticData.Temperatura != nil {
		t.Error("expected nil clima and temperatura after failed ingest")
	}
	if !strings.Contains(report.SyntheticData.FraseClima, "No se pudo ingestar clima") {
		t.Errorf("unexpected weather phrase %q", report.SyntheticData.FraseClima)
	}
}

func TestService_DailyReport_ObjectiveLookupFailure(t *testing.T) {
	// Arrange
	kpi := &mocks.MockKPIResolver{
		ResolveFunc: func(ctx context.Context, function string, params map[string]interface{}) domain.Envelope {
			return domain.ErrorEnvelope("warehouse down")
		},
	}
	service := newTestService(kpi, rainyWeather())

	// Act
	_, err := service.DailyReport(context.Background(), "PAMPLONA", testDate, "es", "funny")

	// Assert
	if err == nil || !strings.Contains(err.Error(), "weekly income lookup failed") {
		t.Fatalf("expected the lookup failure to surface, got %v", err)
	}
}

func TestService_DailyReport_InvalidDate(t *testing.T) {
	// Arrange
	service := newTestService(testKPIResolver(100.0), rainyWeather())

	// Act
	_, err := service.DailyReport(context.Background(), "PAMPLONA", "30-08-2025", "es", "funny")

	// Assert
	if err == nil {
		t.Fatal("expected an error for a malformed date")
	}
}
