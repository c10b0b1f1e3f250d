// Package csvstore implements the synthetic dataset tables backing the KPI
// fallback path. Tables are flat CSV files re-read on every load; the
// warehouse stays authoritative and nothing here is a cache.
package csvstore

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"go.uber.org/zap"

	"github.com/seu-repo/gastro-bi/internal/domain"
)

// Well-known table identifiers (file name without extension).
const (
	TableSales      = "synthetic_sales_details"
	TableCashFlow   = "synthetic_cash_flow"
	TableEBITDA     = "synthetic_ebitda"
	TableReservas   = "synthetic_reservas"
	TableStock      = "synthetic_stock"
	TableEvents     = "daily_events"
	TableMotivation = "motivational_phrases"
)

// Store loads synthetic dataset tables from a directory.
type Store struct {
	dir string
	log *zap.Logger
}

func NewStore(dir string, log *zap.Logger) *Store {
	return &Store{dir: dir, log: log}
}

// Load reads a table with per-column type inference: a column whose non-empty
// cells all parse as numbers becomes float64, everything else stays string.
// Missing files wrap domain.ErrDatasetUnavailable.
func (s *Store) Load(table string) (*domain.Table, error) {
	header, records, err := s.read(table)
	if err != nil {
		return nil, err
	}
	numeric := inferNumericColumns(header, records)

	rows := make([]domain.Row, 0, len(records))
	for _, rec := range records {
		row := make(domain.Row, len(header))
		for i, col := range header {
			cell := ""
			if i < len(rec) {
				cell = rec[i]
			}
			if numeric[col] {
				if cell == "" {
					row[col] = nil
					continue
				}
				f, _ := strconv.ParseFloat(cell, 64)
				row[col] = f
			} else {
				row[col] = cell
			}
		}
		rows = append(rows, row)
	}
	return &domain.Table{Name: table, Columns: header, Rows: rows}, nil
}

// LoadRaw reads a table with every cell kept as a string and empty cells as
// "". Used for the event and motivation tables, whose flag columns must not
// be coerced to numbers.
func (s *Store) LoadRaw(table string) (*domain.Table, error) {
	header, records, err := s.read(table)
	if err != nil {
		return nil, err
	}
	rows := make([]domain.Row, 0, len(records))
	for _, rec := range records {
		row := make(domain.Row, len(header))
		for i, col := range header {
			if i < len(rec) {
				row[col] = rec[i]
			} else {
				row[col] = ""
			}
		}
		rows = append(rows, row)
	}
	return &domain.Table{Name: table, Columns: header, Rows: rows}, nil
}

func (s *Store) read(table string) ([]string, [][]string, error) {
	path := filepath.Join(s.dir, table+".csv")
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, fmt.Errorf("table %s: %w", table, domain.ErrDatasetUnavailable)
		}
		return nil, nil, fmt.Errorf("open table %s: %w", table, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	all, err := r.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("read table %s: %w", table, err)
	}
	if len(all) == 0 {
		return nil, nil, fmt.Errorf("table %s: empty file: %w", table, domain.ErrDatasetUnavailable)
	}
	return all[0], all[1:], nil
}

func inferNumericColumns(header []string, records [][]string) map[string]bool {
	numeric := make(map[string]bool, len(header))
	for i, col := range header {
		sawValue := false
		isNumeric := true
		for _, rec := range records {
			if i >= len(rec) || rec[i] == "" {
				continue
			}
			sawValue = true
			if _, err := strconv.ParseFloat(rec[i], 64); err != nil {
				isNumeric = false
				break
			}
		}
		numeric[col] = sawValue && isNumeric
	}
	return numeric
}
