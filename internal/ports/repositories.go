package ports

import (
	"context"

	"github.com/seu-repo/gastro-bi/internal/domain"
)

// WarehouseGateway executes a named analytical function against the data
// warehouse. Args are positional, in the order of the KPI dispatch descriptor;
// missing parameters are passed as nil. An empty result is not an error;
// connectivity and execution failures wrap domain.ErrWarehouseUnavailable.
type WarehouseGateway interface {
	Call(ctx context.Context, function string, args []interface{}) ([]domain.Row, error)
}

// DatasetStore loads synthetic flat tables on demand. Every call re-reads the
// backing file; there is no caching layer. A missing file wraps
// domain.ErrDatasetUnavailable. Load applies per-column numeric inference;
// LoadRaw keeps every cell a string, for tables whose flag columns must not
// be coerced.
type DatasetStore interface {
	Load(table string) (*domain.Table, error)
	LoadRaw(table string) (*domain.Table, error)
}

// WeatherStore is the persisted daily weather table. Upsert keys on
// (city, date), last write wins; implementations must serialize writes so
// concurrent report requests cannot interleave rows.
type WeatherStore interface {
	Search(city, date string) ([]domain.Row, error)
	Upsert(day domain.WeatherDay) error
}

// ReportStore appends generated daily reports to a persisted table, creating
// the header on first write.
type ReportStore interface {
	Append(report map[string]interface{}) error
}
