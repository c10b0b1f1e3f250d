// Package events answers date-scoped lookups over the daily events table.
package events

import (
	"strings"

	"go.uber.org/zap"

	"github.com/seu-repo/gastro-bi/internal/adapter/storage/csvstore"
	"github.com/seu-repo/gastro-bi/internal/domain"
	"github.com/seu-repo/gastro-bi/internal/ports"
)

type Service struct {
	store ports.DatasetStore
	log   *zap.Logger
}

func NewService(store ports.DatasetStore, log *zap.Logger) *Service {
	return &Service{store: store, log: log}
}

// ForDay returns the events of a date. A non-empty city narrows to that
// city (case-insensitive); an empty city returns the national events, which
// carry an empty city column.
func (s *Service) ForDay(date, city string) ([]domain.Row, error) {
	t, err := s.store.LoadRaw(csvstore.TableEvents)
	if err != nil {
		return nil, err
	}

	rows := csvstore.Filter(t.Rows, csvstore.Eq("date", date))
	city = strings.TrimSpace(city)
	if city != "" {
		rows = csvstore.Filter(rows, csvstore.EqFold("city", city))
	} else {
		rows = csvstore.Filter(rows, csvstore.Eq("city", ""))
	}
	return rows, nil
}
