package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/seu-repo/gastro-bi/internal/domain"
	"github.com/seu-repo/gastro-bi/internal/ports"
)

type WeatherHandler struct {
	weather ports.WeatherService
	ingest  ports.IngestRunner
	log     *zap.Logger
}

func NewWeatherHandler(weather ports.WeatherService, ingest ports.IngestRunner, log *zap.Logger) *WeatherHandler {
	return &WeatherHandler{
		weather: weather,
		ingest:  ingest,
		log:     log,
	}
}

// Search returns the persisted weather rows for a city and date.
func (h *WeatherHandler) Search(c *fiber.Ctx) error {
	city := c.Query("city")
	date := c.Query("date_str")
	if city == "" || date == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "city and date_str are required"})
	}

	rows, err := h.weather.Search(city, date)
	if err != nil {
		return c.JSON(domain.ErrorEnvelope("No weather data"))
	}
	return c.JSON(domain.SuccessEnvelope(rows))
}

type ingestRequest struct {
	Venues    []string `json:"venues"`
	StartDate string   `json:"start_date"`
	EndDate   string   `json:"end_date"`
}

// Ingest runs the bulk daily-weather ingest. An empty body falls back to the
// configured venue list and today's date.
func (h *WeatherHandler) Ingest(c *fiber.Ctx) error {
	var req ingestRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid body"})
		}
	}

	summary := h.ingest.Run(c.Context(), req.Venues, req.StartDate, req.EndDate)
	return c.JSON(summary)
}
