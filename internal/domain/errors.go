package domain

import "errors"

var (
	// ErrDatasetUnavailable means the backing CSV for a synthetic dataset does
	// not exist. Callers treat it as "no data", never as a fault.
	ErrDatasetUnavailable = errors.New("dataset unavailable")

	// ErrWarehouseUnavailable wraps connectivity or query-execution failures of
	// the data warehouse. The orchestrator logs it and falls back, same as an
	// empty result.
	ErrWarehouseUnavailable = errors.New("warehouse unavailable")

	// ErrUnknownFunction means a KPI name is in neither the dispatch table nor
	// the fallback vocabulary.
	ErrUnknownFunction = errors.New("unknown kpi function")

	// ErrMissingParameter is returned by the weather path when no venue/city
	// parameter is present.
	ErrMissingParameter = errors.New("missing required parameter")

	// ErrVenueNotFound aborts a daily report whose venue is absent from the
	// weekly income rows.
	ErrVenueNotFound = errors.New("venue not found")
)
