package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/seu-repo/gastro-bi/internal/domain"
	"github.com/seu-repo/gastro-bi/internal/ports"
	"github.com/seu-repo/gastro-bi/internal/service/motivation"
)

type MotivationHandler struct {
	motivation  ports.MotivationService
	defaultLang string
	defaultTone string
	log         *zap.Logger
}

func NewMotivationHandler(motivationSvc ports.MotivationService, defaultLang, defaultTone string, log *zap.Logger) *MotivationHandler {
	return &MotivationHandler{
		motivation:  motivationSvc,
		defaultLang: defaultLang,
		defaultTone: defaultTone,
		log:         log,
	}
}

// PhraseOfTheDay returns the deterministic phrase for a date, language and
// tone.
func (h *MotivationHandler) PhraseOfTheDay(c *fiber.Ctx) error {
	date := c.Query("date_str")
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return c.JSON(domain.ErrorEnvelope("date_str debe tener formato YYYY-MM-DD"))
	}

	lang := c.Query("lang", h.defaultLang)
	tone := c.Query("tone", h.defaultTone)

	row, err := h.motivation.PhraseOfTheDay(date, lang, tone)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrDatasetUnavailable):
			return c.JSON(domain.ErrorEnvelope("No motivation data"))
		case errors.Is(err, motivation.ErrNoPhrases):
			return c.JSON(domain.ErrorEnvelope("No hay frases disponibles"))
		default:
			return c.JSON(domain.ErrorEnvelope(err.Error()))
		}
	}
	return c.JSON(domain.SuccessEnvelope([]domain.Row{row}))
}
