package domain

// WeatherDay is one day of weather for one city, as fetched from the provider
// and persisted in the daily weather table. Date is ISO (YYYY-MM-DD).
type WeatherDay struct {
	City       string  `json:"city"`
	Date       string  `json:"date"`
	TempMax    float64 `json:"tempmax"`
	TempMin    float64 `json:"tempmin"`
	Temp       float64 `json:"temp"`
	Humidity   float64 `json:"humidity"`
	Precip     float64 `json:"precip"`
	WindSpeed  float64 `json:"windspeed"`
	Conditions string  `json:"conditions"`
	Icon       string  `json:"icon"`
}

// Row converts the day to the generic row shape used by result envelopes.
func (w WeatherDay) Row() Row {
	return Row{
		"city":       w.City,
		"date":       w.Date,
		"tempmax":    w.TempMax,
		"tempmin":    w.TempMin,
		"temp":       w.Temp,
		"humidity":   w.Humidity,
		"precip":     w.Precip,
		"windspeed":  w.WindSpeed,
		"conditions": w.Conditions,
		"icon":       w.Icon,
	}
}
