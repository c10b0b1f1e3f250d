package domain

import "fmt"

// Row is a single record returned by the warehouse or read from a synthetic
// dataset, keyed by column name.
type Row map[string]interface{}

// KPIRequest is the body of POST /query: a logical KPI name plus a parameter
// mapping using the fixed p_* vocabulary (p_company_name, p_venue_name,
// p_year, p_week_number, p_week_number_end, p_month_number, ...).
type KPIRequest struct {
	Function string                 `json:"function"`
	Params   map[string]interface{} `json:"params"`
}

// Envelope is the uniform result of a KPI resolution. Data is always present
// on the wire, empty included, so consumers can iterate it unconditionally.
type Envelope struct {
	Result  string `json:"result"`
	Data    []Row  `json:"data"`
	Message string `json:"message,omitempty"`
}

const (
	ResultSuccess = "success"
	ResultError   = "error"
)

func SuccessEnvelope(rows []Row) Envelope {
	if rows == nil {
		rows = []Row{}
	}
	return Envelope{Result: ResultSuccess, Data: rows}
}

func ErrorEnvelope(message string) Envelope {
	return Envelope{Result: ResultError, Data: []Row{}, Message: message}
}

// NoDataEnvelope is the envelope for a KPI name that neither the warehouse
// dispatch table nor the fallback resolver recognizes. This is an expected
// outcome, not a fault.
func NoDataEnvelope(function string) Envelope {
	return ErrorEnvelope(fmt.Sprintf("No data found for %s", function))
}
