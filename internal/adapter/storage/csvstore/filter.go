package csvstore

import (
	"strconv"
	"strings"

	"github.com/seu-repo/gastro-bi/internal/domain"
)

// Predicate decides whether a row matches.
type Predicate func(domain.Row) bool

// Filter returns the rows matching every predicate, in natural table order.
func Filter(rows []domain.Row, preds ...Predicate) []domain.Row {
	out := make([]domain.Row, 0, len(rows))
	for _, row := range rows {
		ok := true
		for _, p := range preds {
			if !p(row) {
				ok = false
				break
			}
		}
		if ok {
			out = append(out, row)
		}
	}
	return out
}

// Eq matches exact equality on a scalar column. Numeric values compare as
// numbers regardless of concrete type, so a JSON 2024 matches a CSV 2024.
func Eq(col string, want interface{}) Predicate {
	return func(row domain.Row) bool {
		return valueEq(row[col], want)
	}
}

// EqFold matches a string column case-insensitively.
func EqFold(col, want string) Predicate {
	return func(row domain.Row) bool {
		s, ok := row[col].(string)
		return ok && strings.EqualFold(s, want)
	}
}

// ContainsFold matches a case-insensitive substring on a string column.
func ContainsFold(col, substr string) Predicate {
	lower := strings.ToLower(substr)
	return func(row domain.Row) bool {
		s, ok := row[col].(string)
		return ok && strings.Contains(strings.ToLower(s), lower)
	}
}

// WeekAtLeast and WeekAtMost bound a numeric week column inclusively.
func WeekAtLeast(col string, min float64) Predicate {
	return func(row domain.Row) bool {
		v, ok := numValue(row[col])
		return ok && v >= min
	}
}

func WeekAtMost(col string, max float64) Predicate {
	return func(row domain.Row) bool {
		v, ok := numValue(row[col])
		return ok && v <= max
	}
}

// FilterWeekRange implements the week-range lookup over a year boundary:
//
//   - no weeks given: every row of year
//   - only weekStart: exact week match within year
//   - weekEnd >= weekStart: inclusive range within year
//   - weekEnd < weekStart: [weekStart..last week] of year, then
//     [1..weekEnd] of year+1, current-year rows first
//
// rows is expected to be pre-filtered by company/venue.
func FilterWeekRange(rows []domain.Row, year float64, weekStart, weekEnd *float64) []domain.Row {
	switch {
	case weekStart == nil:
		return Filter(rows, Eq("p_year", year))
	case weekEnd == nil:
		return Filter(rows, Eq("p_year", year), Eq("p_week_number", *weekStart))
	case *weekEnd >= *weekStart:
		return Filter(rows,
			Eq("p_year", year),
			WeekAtLeast("p_week_number", *weekStart),
			WeekAtMost("p_week_number", *weekEnd),
		)
	default:
		current := Filter(rows, Eq("p_year", year), WeekAtLeast("p_week_number", *weekStart))
		next := Filter(rows, Eq("p_year", year+1), WeekAtMost("p_week_number", *weekEnd))
		return append(current, next...)
	}
}

func valueEq(a, b interface{}) bool {
	if af, aok := numValue(a); aok {
		bf, bok := numValue(b)
		return bok && af == bf
	}
	as, aok := a.(string)
	bs, bok := b.(string)
	if aok && bok {
		return as == bs
	}
	return a == b
}

func numValue(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(n, 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// NumValue exposes the numeric coercion used by the filters, for callers that
// need to read a measure out of a row.
func NumValue(v interface{}) (float64, bool) {
	return numValue(v)
}
