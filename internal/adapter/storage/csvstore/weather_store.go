package csvstore

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/seu-repo/gastro-bi/internal/domain"
)

var weatherColumns = []string{
	"city", "date", "tempmax", "tempmin", "temp",
	"humidity", "precip", "windspeed", "conditions", "icon",
}

// WeatherFileStore persists the daily weather table. It is the only mutable
// shared state in the process: Upsert serializes behind a mutex and rewrites
// the file atomically so concurrent report requests cannot interleave rows.
type WeatherFileStore struct {
	path string
	log  *zap.Logger
	mu   sync.Mutex
}

func NewWeatherFileStore(dir string, log *zap.Logger) *WeatherFileStore {
	return &WeatherFileStore{
		path: filepath.Join(dir, "daily_weather.csv"),
		log:  log,
	}
}

// Search returns rows whose city contains the given city case-insensitively
// and whose date matches exactly. A missing file means no rows.
func (s *WeatherFileStore) Search(city, date string) ([]domain.Row, error) {
	s.mu.Lock()
	days, err := s.load()
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	city = strings.ToLower(strings.TrimSpace(city))
	date = strings.TrimSpace(date)

	matches := make([]domain.Row, 0)
	for _, d := range days {
		if strings.Contains(strings.ToLower(d.City), city) && d.Date == date {
			matches = append(matches, d.Row())
		}
	}
	return matches, nil
}

// Upsert inserts or replaces the row for (city, date); last write wins.
func (s *WeatherFileStore) Upsert(day domain.WeatherDay) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	days, err := s.load()
	if err != nil {
		return err
	}

	replaced := false
	for i, d := range days {
		if strings.EqualFold(d.City, day.City) && d.Date == day.Date {
			days[i] = day
			replaced = true
			break
		}
	}
	if !replaced {
		days = append(days, day)
	}

	return s.write(days)
}

func (s *WeatherFileStore) load() ([]domain.WeatherDay, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("open weather table: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read weather table: %w", err)
	}
	if len(records) < 2 {
		return nil, nil
	}

	idx := make(map[string]int, len(records[0]))
	for i, col := range records[0] {
		idx[col] = i
	}

	cell := func(rec []string, col string) string {
		i, ok := idx[col]
		if !ok || i >= len(rec) {
			return ""
		}
		return rec[i]
	}
	num := func(rec []string, col string) float64 {
		f, _ := strconv.ParseFloat(cell(rec, col), 64)
		return f
	}

	days := make([]domain.WeatherDay, 0, len(records)-1)
	for _, rec := range records[1:] {
		days = append(days, domain.WeatherDay{
			City:       cell(rec, "city"),
			Date:       cell(rec, "date"),
			TempMax:    num(rec, "tempmax"),
			TempMin:    num(rec, "tempmin"),
			Temp:       num(rec, "temp"),
			Humidity:   num(rec, "humidity"),
			Precip:     num(rec, "precip"),
			WindSpeed:  num(rec, "windspeed"),
			Conditions: cell(rec, "conditions"),
			Icon:       cell(rec, "icon"),
		})
	}
	return days, nil
}

func (s *WeatherFileStore) write(days []domain.WeatherDay) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create weather dir: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), "daily_weather-*.csv")
	if err != nil {
		return fmt.Errorf("create temp weather table: %w", err)
	}
	defer os.Remove(tmp.Name())

	w := csv.NewWriter(tmp)
	if err := w.Write(weatherColumns); err != nil {
		tmp.Close()
		return err
	}
	fmtNum := func(f float64) string {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	for _, d := range days {
		rec := []string{
			d.City, d.Date,
			fmtNum(d.TempMax), fmtNum(d.TempMin), fmtNum(d.Temp),
			fmtNum(d.Humidity), fmtNum(d.Precip), fmtNum(d.WindSpeed),
			d.Conditions, d.Icon,
		}
		if err := w.Write(rec); err != nil {
			tmp.Close()
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace weather table: %w", err)
	}
	return nil
}
