package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/seu-repo/gastro-bi/internal/domain"
	"github.com/seu-repo/gastro-bi/internal/ports"
)

type EventsHandler struct {
	events ports.EventsService
	log    *zap.Logger
}

func NewEventsHandler(events ports.EventsService, log *zap.Logger) *EventsHandler {
	return &EventsHandler{
		events: events,
		log:    log,
	}
}

// ForDay lists the events of a date: city-specific when a city is given,
// national otherwise.
func (h *EventsHandler) ForDay(c *fiber.Ctx) error {
	date := c.Query("date_str")
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return c.JSON(domain.ErrorEnvelope("date_str debe tener formato YYYY-MM-DD"))
	}

	rows, err := h.events.ForDay(date, c.Query("city"))
	if err != nil {
		if errors.Is(err, domain.ErrDatasetUnavailable) {
			return c.JSON(domain.ErrorEnvelope("No events data"))
		}
		return c.JSON(domain.ErrorEnvelope(err.Error()))
	}
	return c.JSON(domain.SuccessEnvelope(rows))
}
