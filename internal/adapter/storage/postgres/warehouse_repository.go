package postgres

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/seu-repo/gastro-bi/internal/domain"
	"github.com/seu-repo/gastro-bi/internal/observability/telemetry"
	"github.com/seu-repo/gastro-bi/internal/ports"
	"github.com/seu-repo/gastro-bi/pkg/config"
)

// Function names come from the static dispatch table, but the identifier is
// interpolated into SQL, so it is validated anyway.
var identifierPattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// WarehouseRepository executes the warehouse's callable KPI functions:
// SELECT * FROM <schema>.<function>($1, ..., $n).
type WarehouseRepository struct {
	db           *gorm.DB
	schema       string
	queryTimeout time.Duration
	log          *zap.Logger
}

func NewWarehouseRepository(db *gorm.DB, cfg config.WarehouseConfig, log *zap.Logger) ports.WarehouseGateway {
	return &WarehouseRepository{
		db:           db,
		schema:       cfg.Schema,
		queryTimeout: cfg.QueryTimeout,
		log:          log,
	}
}

func (r *WarehouseRepository) Call(ctx context.Context, function string, args []interface{}) ([]domain.Row, error) {
	if !identifierPattern.MatchString(function) {
		return nil, fmt.Errorf("invalid warehouse function name %q: %w", function, domain.ErrWarehouseUnavailable)
	}

	if r.queryTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.queryTimeout)
		defer cancel()
	}

	placeholders := make([]string, len(args))
	for i := range args {
		placeholders[i] = "?"
	}
	query := fmt.Sprintf("SELECT * FROM %s.%s(%s)", r.schema, function, strings.Join(placeholders, ", "))

	start := time.Now()
	rows, err := r.db.WithContext(ctx).Raw(query, args...).Rows()
	telemetry.WarehouseLatency.Observe(time.Since(start).Seconds())
	if err != nil {
		r.log.Warn("Warehouse query failed",
			zap.String("function", function),
			zap.Error(err),
		)
		return nil, fmt.Errorf("call %s: %v: %w", function, err, domain.ErrWarehouseUnavailable)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("call %s: columns: %v: %w", function, err, domain.ErrWarehouseUnavailable)
	}

	var result []domain.Row
	for rows.Next() {
		values := make([]interface{}, len(columns))
		pointers := make([]interface{}, len(columns))
		for i := range values {
			pointers[i] = &values[i]
		}
		if err := rows.Scan(pointers...); err != nil {
			return nil, fmt.Errorf("call %s: scan: %v: %w", function, err, domain.ErrWarehouseUnavailable)
		}

		row := make(domain.Row, len(columns))
		for i, col := range columns {
			row[col] = normalizeValue(values[i])
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("call %s: rows: %v: %w", function, err, domain.ErrWarehouseUnavailable)
	}
	return result, nil
}

// normalizeValue maps driver types onto the JSON-friendly shapes the rest of
// the system works with.
func normalizeValue(v interface{}) interface{} {
	switch c := v.(type) {
	case []byte:
		return string(c)
	case int64:
		return float64(c)
	case float32:
		return float64(c)
	case time.Time:
		return c.Format("2006-01-02")
	default:
		return v
	}
}
