package mocks

import (
	"context"

	"github.com/seu-repo/gastro-bi/internal/domain"
)

// MockWarehouseGateway is a mock implementation of WarehouseGateway
type MockWarehouseGateway struct {
	CallFunc func(ctx context.Context, function string, args []interface{}) ([]domain.Row, error)
}

func (m *MockWarehouseGateway) Call(ctx context.Context, function string, args []interface{}) ([]domain.Row, error) {
	if m.CallFunc != nil {
		return m.CallFunc(ctx, function, args)
	}
	return []domain.Row{}, nil
}

// MockDatasetStore is a mock implementation of DatasetStore
type MockDatasetStore struct {
	LoadFunc    func(table string) (*domain.Table, error)
	LoadRawFunc func(table string) (*domain.Table, error)
}

func (m *MockDatasetStore) Load(table string) (*domain.Table, error) {
	if m.LoadFunc != nil {
		return m.LoadFunc(table)
	}
	return &domain.Table{Name: table}, nil
}

func (m *MockDatasetStore) LoadRaw(table string) (*domain.Table, error) {
	if m.LoadRawFunc != nil {
		return m.LoadRawFunc(table)
	}
	return &domain.Table{Name: table}, nil
}

// MockWeatherStore is a mock implementation of WeatherStore
type MockWeatherStore struct {
	SearchFunc func(city, date string) ([]domain.Row, error)
	UpsertFunc func(day domain.WeatherDay) error
}

func (m *MockWeatherStore) Search(city, date string) ([]domain.Row, error) {
	if m.SearchFunc != nil {
		return m.SearchFunc(city, date)
	}
	return []domain.Row{}, nil
}

func (m *MockWeatherStore) Upsert(day domain.WeatherDay) error {
	if m.UpsertFunc != nil {
		return m.UpsertFunc(day)
	}
	return nil
}

// MockReportStore is a mock implementation of ReportStore
type MockReportStore struct {
	AppendFunc func(report map[string]interface{}) error
}

func (m *MockReportStore) Append(report map[string]interface{}) error {
	if m.AppendFunc != nil {
		return m.AppendFunc(report)
	}
	return nil
}
