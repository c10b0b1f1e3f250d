package csvstore

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"sync"

	"go.uber.org/zap"
)

// ReportFileStore appends generated daily reports to a persisted CSV table.
// The header is fixed when the file is first created; later rows are
// projected onto it, with absent keys left empty.
type ReportFileStore struct {
	path string
	log  *zap.Logger
	mu   sync.Mutex
}

func NewReportFileStore(dir string, log *zap.Logger) *ReportFileStore {
	return &ReportFileStore{
		path: filepath.Join(dir, "daily_reports.csv"),
		log:  log,
	}
}

func (s *ReportFileStore) Append(report map[string]interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	header, err := s.header()
	if err != nil {
		return err
	}

	created := false
	if header == nil {
		header = make([]string, 0, len(report))
		for k := range report {
			header = append(header, k)
		}
		// Map iteration order is unspecified, so the created header is sorted.
		sort.Strings(header)
		created = true
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create reports dir: %w", err)
	}
	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open reports table: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if created {
		if err := w.Write(header); err != nil {
			return err
		}
	}
	rec := make([]string, len(header))
	for i, col := range header {
		rec[i] = formatCell(report[col])
	}
	if err := w.Write(rec); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

func (s *ReportFileStore) header() ([]string, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("open reports table: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	header, err := r.Read()
	if err != nil {
		return nil, nil
	}
	return header, nil
}

func formatCell(v interface{}) string {
	switch c := v.(type) {
	case nil:
		return ""
	case string:
		return c
	case bool:
		return strconv.FormatBool(c)
	case float64:
		return strconv.FormatFloat(c, 'f', -1, 64)
	default:
		// Lists and nested objects are stored as JSON.
		b, err := json.Marshal(c)
		if err != nil {
			return fmt.Sprintf("%v", c)
		}
		return string(b)
	}
}
