package kpi

import (
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/seu-repo/gastro-bi/internal/adapter/storage/csvstore"
	"github.com/seu-repo/gastro-bi/internal/domain"
	"github.com/seu-repo/gastro-bi/internal/ports"
)

// incomePredictedSuffix marks the per-weekday predicted income columns that
// the cash-flow strategies project.
const incomePredictedSuffix = "_income_predicted"

type strategy func(params map[string]interface{}) ([]domain.Row, error)

// FallbackResolver computes KPI results from the synthetic datasets when the
// warehouse has no answer. Its vocabulary is independent from the dispatch
// table; names present in neither are a normal "no data found" outcome.
type FallbackResolver struct {
	store      ports.DatasetStore
	log        *zap.Logger
	strategies map[string]strategy
}

func NewFallbackResolver(store ports.DatasetStore, log *zap.Logger) *FallbackResolver {
	r := &FallbackResolver{store: store, log: log}
	r.strategies = map[string]strategy{
		"cash_flow_synthetic_by_week":  r.cashFlowByWeek,
		"cash_flow_synthetic_by_venue": r.cashFlowByVenue,
		"cogs_synthetic_by_venue":      r.cogsByVenue,
		"cogs_synthetic_by_week":       r.cogsByWeek,
		"ebitda_synthetic_by_month":    r.ebitdaByMonth,
		"ebitda_synthetic_by_venue":    r.ebitdaByVenue,
		"reservas_synthetic_by_week":   r.reservasByWeek,
		"reservas_synthetic_by_venue":  r.reservasByVenue,
		"stock_synthetic_by_week":      r.stockByWeek,
		"stock_synthetic_by_venue":     r.stockByVenue,
	}
	return r
}

// Resolve runs the strategy registered for the given name. A missing strategy
// or a missing backing dataset both resolve to the "no data found" envelope.
func (r *FallbackResolver) Resolve(function string, params map[string]interface{}) domain.Envelope {
	strat, ok := r.strategies[function]
	if !ok {
		return domain.NoDataEnvelope(function)
	}

	rows, err := strat(params)
	if err != nil {
		if errors.Is(err, domain.ErrDatasetUnavailable) {
			r.log.Warn("Fallback dataset unavailable",
				zap.String("function", function),
				zap.Error(err),
			)
			return domain.NoDataEnvelope(function)
		}
		return domain.ErrorEnvelope(err.Error())
	}
	return domain.SuccessEnvelope(rows)
}

// Knows reports whether a fallback strategy is registered for the name.
func (r *FallbackResolver) Knows(function string) bool {
	_, ok := r.strategies[function]
	return ok
}

func (r *FallbackResolver) cashFlowByWeek(params map[string]interface{}) ([]domain.Row, error) {
	t, err := r.store.Load(csvstore.TableCashFlow)
	if err != nil {
		return nil, err
	}
	rows := csvstore.Filter(t.Rows,
		csvstore.Eq("p_year", params["p_year"]),
		csvstore.Eq("p_week_number", params["p_week_number"]),
	)
	return projectPredictedIncome(t, rows), nil
}

func (r *FallbackResolver) cashFlowByVenue(params map[string]interface{}) ([]domain.Row, error) {
	t, err := r.store.Load(csvstore.TableCashFlow)
	if err != nil {
		return nil, err
	}
	rows := csvstore.Filter(t.Rows,
		csvstore.Eq("p_venue_name", params["p_venue_name"]),
		csvstore.Eq("p_year", params["p_year"]),
		csvstore.Eq("p_week_number", params["p_week_number"]),
	)
	return projectPredictedIncome(t, rows), nil
}

func (r *FallbackResolver) cogsByVenue(params map[string]interface{}) ([]domain.Row, error) {
	t, err := r.store.Load(csvstore.TableSales)
	if err != nil {
		return nil, err
	}
	return csvstore.Filter(t.Rows,
		csvstore.Eq("p_company_name", params["p_company_name"]),
		csvstore.Eq("p_year", params["p_year"]),
		csvstore.Eq("p_venue_name", params["p_venue_name"]),
	), nil
}

func (r *FallbackResolver) cogsByWeek(params map[string]interface{}) ([]domain.Row, error) {
	t, err := r.store.Load(csvstore.TableSales)
	if err != nil {
		return nil, err
	}
	return csvstore.Filter(t.Rows,
		csvstore.Eq("p_company_name", params["p_company_name"]),
		csvstore.Eq("p_year", params["p_year"]),
		csvstore.Eq("p_week_number", params["p_week_number"]),
	), nil
}

func (r *FallbackResolver) ebitdaByMonth(params map[string]interface{}) ([]domain.Row, error) {
	t, err := r.store.Load(csvstore.TableEBITDA)
	if err != nil {
		return nil, err
	}
	return csvstore.Filter(t.Rows,
		csvstore.Eq("p_company_name", params["p_company_name"]),
		csvstore.Eq("p_year", params["p_year"]),
		csvstore.Eq("p_month_number", params["p_month_number"]),
	), nil
}

func (r *FallbackResolver) ebitdaByVenue(params map[string]interface{}) ([]domain.Row, error) {
	t, err := r.store.Load(csvstore.TableEBITDA)
	if err != nil {
		return nil, err
	}
	return csvstore.Filter(t.Rows,
		csvstore.Eq("p_company_name", params["p_company_name"]),
		csvstore.Eq("p_year", params["p_year"]),
		csvstore.Eq("p_venue_name", params["p_venue_name"]),
	), nil
}

func (r *FallbackResolver) reservasByWeek(params map[string]interface{}) ([]domain.Row, error) {
	t, err := r.store.Load(csvstore.TableReservas)
	if err != nil {
		return nil, err
	}
	base := csvstore.Filter(t.Rows,
		csvstore.Eq("p_company_name", params["p_company_name"]),
	)
	return weekRangeFromParams(base, params), nil
}

func (r *FallbackResolver) reservasByVenue(params map[string]interface{}) ([]domain.Row, error) {
	t, err := r.store.Load(csvstore.TableReservas)
	if err != nil {
		return nil, err
	}
	base := csvstore.Filter(t.Rows,
		csvstore.Eq("p_company_name", params["p_company_name"]),
		csvstore.Eq("p_venue_name", params["p_venue_name"]),
	)
	return weekRangeFromParams(base, params), nil
}

func (r *FallbackResolver) stockByWeek(params map[string]interface{}) ([]domain.Row, error) {
	t, err := r.store.Load(csvstore.TableStock)
	if err != nil {
		return nil, err
	}
	rows := csvstore.Filter(t.Rows,
		csvstore.Eq("p_company_name", params["p_company_name"]),
		csvstore.Eq("p_year", params["p_year"]),
	)
	return stockWeekWindow(rows, params), nil
}

func (r *FallbackResolver) stockByVenue(params map[string]interface{}) ([]domain.Row, error) {
	t, err := r.store.Load(csvstore.TableStock)
	if err != nil {
		return nil, err
	}
	rows := csvstore.Filter(t.Rows,
		csvstore.Eq("p_company_name", params["p_company_name"]),
		csvstore.Eq("p_venue_name", params["p_venue_name"]),
		csvstore.Eq("p_year", params["p_year"]),
	)
	return stockWeekWindow(rows, params), nil
}

// weekRangeFromParams applies the wraparound-aware week range using
// p_year / p_week_number / p_week_number_end.
func weekRangeFromParams(rows []domain.Row, params map[string]interface{}) []domain.Row {
	year, ok := numParam(params, "p_year")
	if !ok {
		return []domain.Row{}
	}
	weekStart := numParamPtr(params, "p_week_number")
	weekEnd := numParamPtr(params, "p_week_number_end")
	return csvstore.FilterWeekRange(rows, year, weekStart, weekEnd)
}

// stockWeekWindow narrows stock rows to an exact week, or to a plain
// [p_week_start, p_week_end] window when no exact week is requested.
func stockWeekWindow(rows []domain.Row, params map[string]interface{}) []domain.Row {
	if week, ok := numParam(params, "p_week_number"); ok {
		return csvstore.Filter(rows, csvstore.Eq("p_week_number", week))
	}
	start, startOK := numParam(params, "p_week_start")
	end, endOK := numParam(params, "p_week_end")
	if startOK && endOK {
		return csvstore.Filter(rows,
			csvstore.WeekAtLeast("p_week_number", start),
			csvstore.WeekAtMost("p_week_number", end),
		)
	}
	return rows
}

// projectPredictedIncome keeps the venue/year/week keys plus every
// *_income_predicted column, preserving the table's column order.
func projectPredictedIncome(t *domain.Table, rows []domain.Row) []domain.Row {
	cols := []string{"p_venue_name", "p_year", "p_week_number"}
	for _, c := range t.Columns {
		if strings.HasSuffix(c, incomePredictedSuffix) {
			cols = append(cols, c)
		}
	}

	out := make([]domain.Row, 0, len(rows))
	for _, row := range rows {
		projected := make(domain.Row, len(cols))
		for _, c := range cols {
			projected[c] = row[c]
		}
		out = append(out, projected)
	}
	return out
}

func numParam(params map[string]interface{}, key string) (float64, bool) {
	v, ok := params[key]
	if !ok || v == nil {
		return 0, false
	}
	return csvstore.NumValue(v)
}

func numParamPtr(params map[string]interface{}, key string) *float64 {
	if v, ok := numParam(params, key); ok {
		return &v
	}
	return nil
}
