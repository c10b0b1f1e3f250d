package domain

// KPIData carries the warehouse-derived figures of a daily report.
type KPIData struct {
	Objective           float64  `json:"objective"`
	Prediction          *float64 `json:"prediction"`
	PredictionVar       *float64 `json:"prediction_var"`
	AttendanceLast      float64  `json:"attendance_last"`
	AttendanceVariation float64  `json:"attendance_variation"`
	NumReservas         int      `json:"num_reservas"`
}

// SyntheticData carries the contextual signals of a daily report. The field
// names are the wire contract consumed by the report generator bot, so the
// Spanish keys stay as-is.
type SyntheticData struct {
	ProductosBajoStock  []string `json:"productos_bajo_stock"`
	ProductosMedioStock []string `json:"productos_medio_stock"`
	FechasImportantes   []string `json:"fechas_importantes"`
	Clima               *string  `json:"clima"`
	Temperatura         *float64 `json:"temperatura"`
	FraseClima          string   `json:"frase_clima"`
	FraseMotivacional   string   `json:"frase_motivacional"`
	HayFutbol           bool     `json:"hay_futbol"`
}

// DailyReport is the composite answer of GET /daily_report for one venue and
// date.
type DailyReport struct {
	Result        string        `json:"result"`
	KPIData       KPIData       `json:"kpi_data"`
	SyntheticData SyntheticData `json:"synthetic_data"`
}
