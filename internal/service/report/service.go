// Package report assembles the composite daily report for a venue and date:
// KPI figures resolved through the regular resolution path plus the
// contextual signals (stock, reservations, events, weather, motivation).
package report

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/seu-repo/gastro-bi/internal/adapter/storage/csvstore"
	"github.com/seu-repo/gastro-bi/internal/domain"
	"github.com/seu-repo/gastro-bi/internal/observability/telemetry"
	"github.com/seu-repo/gastro-bi/internal/ports"
	"github.com/seu-repo/gastro-bi/internal/service/motivation"
)

const noWeatherPhrase = "No tengo información del clima para hoy."

type Service struct {
	kpi        ports.KPIResolver
	store      ports.DatasetStore
	weather    ports.WeatherService
	motivation ports.MotivationService
	events     ports.EventsService
	company    string
	log        *zap.Logger
}

func NewService(
	kpi ports.KPIResolver,
	store ports.DatasetStore,
	weather ports.WeatherService,
	motivationSvc ports.MotivationService,
	events ports.EventsService,
	company string,
	log *zap.Logger,
) *Service {
	return &Service{
		kpi:        kpi,
		store:      store,
		weather:    weather,
		motivation: motivationSvc,
		events:     events,
		company:    company,
		log:        log,
	}
}

// DailyReport builds the report for one venue and date. The weekly income
// lookup is mandatory: its failure, or a venue absent from its rows, aborts
// the report. Every other section degrades to a zero value when its source
// is unavailable.
func (s *Service) DailyReport(ctx context.Context, venue, date, lang, tone string) (*domain.DailyReport, error) {
	ctx, span := otel.Tracer("report").Start(ctx, "report.daily")
	span.SetAttributes(
		attribute.String("report.venue", venue),
		attribute.String("report.date", date),
	)
	defer span.End()

	target, err := parseDate(date)
	if err != nil {
		telemetry.ReportsGeneratedTotal.WithLabelValues(domain.ResultError).Inc()
		return nil, err
	}

	year := target.Year()
	_, week := target.ISOWeek()
	weekdayFull := strings.ToLower(target.Weekday().String())
	weekdayAbbr := weekdayFull[:3]
	weekdayNumber := (int(target.Weekday()) + 6) % 7 // 0 = Monday
	dateISO := target.Format("2006-01-02")

	objective, err := s.objective(ctx, venue, year, week, weekdayFull)
	if err != nil {
		telemetry.ReportsGeneratedTotal.WithLabelValues(domain.ResultError).Inc()
		return nil, err
	}

	attendanceLast, attendanceVariation := s.attendance(ctx, venue, year, week, weekdayAbbr)
	numReservas := s.reservations(venue, year, week, weekdayNumber)
	lowStock, mediumStock := s.stockAlerts(venue, year, week)
	phrase := s.motivationalPhrase(dateISO, lang, tone)
	eventTitles, hayFutbol := s.eventsForDay(dateISO, venue)
	clima, temperatura, fraseClima := s.weatherForDay(ctx, venue, dateISO)
	prediction, predictionVar := s.prediction(venue, year, week, weekdayFull, objective)

	telemetry.ReportsGeneratedTotal.WithLabelValues(domain.ResultSuccess).Inc()
	return &domain.DailyReport{
		Result: domain.ResultSuccess,
		KPIData: domain.KPIData{
			Objective:           objective,
			Prediction:          prediction,
			PredictionVar:       predictionVar,
			AttendanceLast:      attendanceLast,
			AttendanceVariation: attendanceVariation,
			NumReservas:         numReservas,
		},
		SyntheticData: domain.SyntheticData{
			ProductosBajoStock:  lowStock,
			ProductosMedioStock: mediumStock,
			FechasImportantes:   eventTitles,
			Clima:               clima,
			Temperatura:         temperatura,
			FraseClima:          fraseClima,
			FraseMotivacional:   phrase,
			HayFutbol:           hayFutbol,
		},
	}, nil
}

// objective reads last year's income for the report weekday from the weekly
// venues income KPI. This is the one lookup the report cannot do without.
func (s *Service) objective(ctx context.Context, venue string, year, week int, weekdayFull string) (float64, error) {
	env := s.kpi.Resolve(ctx, "fn_weekly_venues_income", map[string]interface{}{
		"p_company_name": s.company,
		"p_year":         float64(year),
		"p_week_number":  float64(week),
	})
	if env.Result != domain.ResultSuccess {
		return 0, fmt.Errorf("weekly income lookup failed: %s", env.Message)
	}

	venueRow := findVenueRow(env.Data, venue)
	if venueRow == nil {
		return 0, domain.ErrVenueNotFound
	}

	objective, _ := csvstore.NumValue(venueRow["last_year_"+weekdayFull])
	return objective, nil
}

// attendance estimates today's attendance from last year's weekday figure.
// Any failure along the way yields zeros.
func (s *Service) attendance(ctx context.Context, venue string, year, week int, weekdayAbbr string) (last, variation float64) {
	env := s.kpi.Resolve(ctx, "fn_weekly_attendance_by_venue", map[string]interface{}{
		"p_company_name": s.company,
		"p_year":         float64(year),
		"p_week_number":  float64(week),
	})
	if env.Result != domain.ResultSuccess {
		return 0, 0
	}

	row := findVenueRow(env.Data, venue)
	if row == nil {
		return 0, 0
	}

	last, _ = csvstore.NumValue(row[weekdayAbbr+"_prev"])
	current := math.Trunc(last * 1.1)
	if last > 0 {
		variation = ((current - last) / last) * 100
	}
	return last, variation
}

func (s *Service) reservations(venue string, year, week, weekdayNumber int) int {
	t, err := s.store.Load(csvstore.TableReservas)
	if err != nil {
		s.log.Warn("Reservations table unavailable for report", zap.Error(err))
		return 0
	}
	rows := csvstore.Filter(t.Rows,
		csvstore.Eq("p_company_name", s.company),
		csvstore.Eq("p_venue_name", venue),
		csvstore.Eq("p_year", float64(year)),
		csvstore.Eq("p_week_number", float64(week)),
		csvstore.Eq("weekday", float64(weekdayNumber)),
	)
	if len(rows) == 0 {
		return 0
	}
	n, _ := csvstore.NumValue(rows[0]["reservations"])
	return int(n)
}

// stockAlerts classifies the week's stock by fill ratio: below 0.3 is low,
// [0.3, 0.6) is medium. Rows with zero capacity are never flagged.
func (s *Service) stockAlerts(venue string, year, week int) (low, medium []string) {
	low, medium = []string{}, []string{}

	t, err := s.store.Load(csvstore.TableStock)
	if err != nil {
		s.log.Warn("Stock table unavailable for report", zap.Error(err))
		return low, medium
	}
	rows := csvstore.Filter(t.Rows,
		csvstore.Eq("p_company_name", s.company),
		csvstore.Eq("p_venue_name", venue),
		csvstore.Eq("p_year", float64(year)),
		csvstore.Eq("p_week_number", float64(week)),
	)

	for _, row := range rows {
		stock, _ := csvstore.NumValue(row["stock"])
		capacity, _ := csvstore.NumValue(row["capacity"])
		name, _ := row["product_name"].(string)

		ratio := stock / capacity
		switch {
		case ratio < 0.3:
			low = append(low, name)
		case ratio < 0.6:
			medium = append(medium, name)
		}
	}
	return low, medium
}

func (s *Service) motivationalPhrase(dateISO, lang, tone string) string {
	row, err := s.motivation.PhraseOfTheDay(dateISO, lang, tone)
	if err != nil {
		s.log.Warn("Motivational phrase unavailable, using default", zap.Error(err))
		return motivation.DefaultPhrase
	}
	text, _ := row["text"].(string)
	return text
}

func (s *Service) eventsForDay(dateISO, venue string) (titles []string, hayFutbol bool) {
	titles = []string{}

	rows, err := s.events.ForDay(dateISO, venue)
	if err != nil {
		s.log.Warn("Events table unavailable for report", zap.Error(err))
		return titles, false
	}
	for _, row := range rows {
		if title, ok := row["title"].(string); ok && title != "" {
			titles = append(titles, title)
		}
		if flag, ok := row["has_football"].(string); ok && flag == "1" {
			hayFutbol = true
		}
	}
	return titles, hayFutbol
}

// weatherForDay looks up the persisted weather for the venue and date. On a
// miss it triggers exactly one ingest for that day and retries the lookup
// once; a failed ingest surfaces in the weather phrase, never as a report
// error.
func (s *Service) weatherForDay(ctx context.Context, venue, dateISO string) (clima *string, temperatura *float64, fraseClima string) {
	rows, err := s.weather.Search(venue, dateISO)
	if err == nil && len(rows) > 0 {
		return weatherFromRow(rows[0])
	}
	if err != nil {
		s.log.Warn("Weather table lookup failed", zap.Error(err))
	}

	if err := s.weather.IngestOne(ctx, venue, dateISO); err != nil {
		s.log.Warn("Weather ingest-on-miss failed",
			zap.String("city", venue),
			zap.String("date", dateISO),
			zap.Error(err),
		)
		return nil, nil, fmt.Sprintf("No se pudo ingestar clima: %v", err)
	}

	rows, err = s.weather.Search(venue, dateISO)
	if err != nil || len(rows) == 0 {
		return nil, nil, noWeatherPhrase
	}
	return weatherFromRow(rows[0])
}

func weatherFromRow(row domain.Row) (*string, *float64, string) {
	conditions, _ := row["conditions"].(string)
	conditions = strings.ToLower(conditions)
	temp, _ := csvstore.NumValue(row["temp"])
	return &conditions, &temp, weatherPhrase(conditions)
}

// weatherPhrase maps the (lowercased) conditions text to the fixed advisory
// phrases shown in the report.
func weatherPhrase(conditions string) string {
	switch {
	case conditions == "":
		return noWeatherPhrase
	case strings.Contains(conditions, "rain") || strings.Contains(conditions, "lluvia"):
		return "Parece que lloverá ☔, tenlo en cuenta para las reservas."
	case strings.Contains(conditions, "sun") || strings.Contains(conditions, "despejado"):
		return "¡Día soleado! La terraza seguro que se llena. ☀️"
	case strings.Contains(conditions, "cloud") || strings.Contains(conditions, "nublado"):
		return "Día nublado, perfecto para comer algo caliente."
	default:
		return fmt.Sprintf("El clima de hoy es %s.", conditions)
	}
}

// prediction reads the predicted income for the report weekday from the
// cash-flow table and its variation against the objective. The variation is
// only defined for a positive objective.
func (s *Service) prediction(venue string, year, week int, weekdayFull string, objective float64) (*float64, *float64) {
	t, err := s.store.Load(csvstore.TableCashFlow)
	if err != nil {
		s.log.Warn("Cash-flow table unavailable for report", zap.Error(err))
		return nil, nil
	}
	rows := csvstore.Filter(t.Rows,
		csvstore.EqFold("p_venue_name", venue),
		csvstore.Eq("p_year", float64(year)),
		csvstore.Eq("p_week_number", float64(week)),
	)
	if len(rows) == 0 {
		return nil, nil
	}

	predicted, ok := csvstore.NumValue(rows[0][weekdayFull+"_income_predicted"])
	if !ok {
		return nil, nil
	}

	var variation *float64
	if objective > 0 {
		v := math.Round(((predicted-objective)/objective)*100*100) / 100
		variation = &v
	}
	return &predicted, variation
}

func findVenueRow(rows []domain.Row, venue string) domain.Row {
	for _, row := range rows {
		if name, ok := row["venue_name"].(string); ok && strings.EqualFold(name, venue) {
			return row
		}
	}
	return nil
}

func parseDate(value string) (time.Time, error) {
	layouts := []string{
		"2006-01-02",
		"2006-01-02T15:04:05Z07:00",
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", value)
}
