package events

import (
	"errors"
	"fmt"
	"testing"

	"go.uber.org/zap"

	"github.com/seu-repo/gastro-bi/internal/domain"
	"github.com/seu-repo/gastro-bi/internal/mocks"
)

func newTestLogger() *zap.Logger {
	logger, _ := zap.NewDevelopment()
	return logger
}

func eventStore() *mocks.MockDatasetStore {
	return &mocks.MockDatasetStore{
		LoadRawFunc: func(table string) (*domain.Table, error) {
			return &domain.Table{
				Name: table,
				Rows: []domain.Row{
					{"date": "2025-08-29", "city": "BILBAO", "title": "Derbi", "has_football": "1"},
					{"date": "2025-08-29", "city": "", "title": "Festivo nacional", "has_football": "0"},
					{"date": "2025-08-30", "city": "BILBAO", "title": "Concierto", "has_football": "0"},
				},
			}, nil
		},
	}
}

func TestService_ForDay_CitySpecific(t *testing.T) {
	// Arrange
	service := NewService(eventStore(), newTestLogger())

	// Act
	rows, err := service.ForDay("2025-08-29", "bilbao")

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(rows) != 1 || rows[0]["title"] != "Derbi" {
		t.Fatalf("expected the BILBAO event, got %v", rows)
	}
}

func TestService_ForDay_NationalWhenNoCity(t *testing.T) {
	// Arrange
	service := NewService(eventStore(), newTestLogger())

	// Act
	rows, err := service.ForDay("2025-08-29", "")

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(rows) != 1 || rows[0]["title"] != "Festivo nacional" {
		t.Fatalf("expected the national event only, got %v", rows)
	}
}

func TestService_ForDay_MissingFile(t *testing.T) {
	// Arrange
	store := &mocks.MockDatasetStore{
		LoadRawFunc: func(table string) (*domain.Table, error) {
			return nil, fmt.Errorf("table %s: %w", table, domain.ErrDatasetUnavailable)
		},
	}
	service := NewService(store, newTestLogger())

	// Act
	_, err := service.ForDay("2025-08-29", "")

	// Assert
	if !errors.Is(err, domain.ErrDatasetUnavailable) {
		t.Fatalf("expected ErrDatasetUnavailable, got %v", err)
	}
}
