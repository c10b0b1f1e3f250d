// Package weather implements the external forecast provider client against
// the Visual Crossing timeline API.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"github.com/seu-repo/gastro-bi/internal/domain"
	"github.com/seu-repo/gastro-bi/internal/observability/telemetry"
	"github.com/seu-repo/gastro-bi/internal/ports"
	"github.com/seu-repo/gastro-bi/pkg/config"
)

type VisualCrossingClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
	breaker *gobreaker.CircuitBreaker
	log     *zap.Logger
}

func NewVisualCrossingClient(cfg config.WeatherProviderConfig, log *zap.Logger) ports.WeatherProvider {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "weather-provider",
		MaxRequests: cfg.Breaker.MaxRequests,
		Interval:    cfg.Breaker.Interval,
		Timeout:     cfg.Breaker.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 3 && failureRatio >= 0.6
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			log.Warn("Weather provider circuit breaker state changed",
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})

	return &VisualCrossingClient{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		client:  &http.Client{Timeout: timeout},
		breaker: cb,
		log:     log,
	}
}

type timelineResponse struct {
	ResolvedAddress string        `json:"resolvedAddress"`
	Days            []timelineDay `json:"days"`
}

type timelineDay struct {
	Datetime   string  `json:"datetime"`
	TempMax    float64 `json:"tempmax"`
	TempMin    float64 `json:"tempmin"`
	Temp       float64 `json:"temp"`
	Humidity   float64 `json:"humidity"`
	Precip     float64 `json:"precip"`
	WindSpeed  float64 `json:"windspeed"`
	Conditions string  `json:"conditions"`
	Icon       string  `json:"icon"`
}

// Fetch returns one row per day in [startDate, endDate] for the given city.
func (c *VisualCrossingClient) Fetch(ctx context.Context, city, startDate, endDate string) ([]domain.WeatherDay, error) {
	result, err := c.breaker.Execute(func() (interface{}, error) {
		return c.fetch(ctx, city, startDate, endDate)
	})
	if err != nil {
		telemetry.WeatherFetchesTotal.WithLabelValues("error").Inc()
		return nil, err
	}
	telemetry.WeatherFetchesTotal.WithLabelValues("success").Inc()
	return result.([]domain.WeatherDay), nil
}

func (c *VisualCrossingClient) fetch(ctx context.Context, city, startDate, endDate string) ([]domain.WeatherDay, error) {
	endpoint := fmt.Sprintf("%s/%s/%s/%s", c.baseURL, url.PathEscape(city), startDate, endDate)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	q := req.URL.Query()
	q.Set("unitGroup", "metric")
	q.Set("include", "days")
	q.Set("contentType", "json")
	q.Set("key", c.apiKey)
	req.URL.RawQuery = q.Encode()

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("weather provider request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("weather provider returned %d: %s", resp.StatusCode, string(body))
	}

	var tl timelineResponse
	if err := json.NewDecoder(resp.Body).Decode(&tl); err != nil {
		return nil, fmt.Errorf("weather provider response decode failed: %w", err)
	}

	days := make([]domain.WeatherDay, 0, len(tl.Days))
	for _, d := range tl.Days {
		days = append(days, domain.WeatherDay{
			City:       city,
			Date:       d.Datetime,
			TempMax:    d.TempMax,
			TempMin:    d.TempMin,
			Temp:       d.Temp,
			Humidity:   d.Humidity,
			Precip:     d.Precip,
			WindSpeed:  d.WindSpeed,
			Conditions: d.Conditions,
			Icon:       d.Icon,
		})
	}

	c.log.Debug("Fetched weather from provider",
		zap.String("city", city),
		zap.String("start", startDate),
		zap.String("end", endDate),
		zap.Int("days", len(days)),
	)
	return days, nil
}
