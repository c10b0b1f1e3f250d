package handlers

import (
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/seu-repo/gastro-bi/internal/domain"
	"github.com/seu-repo/gastro-bi/internal/ports"
)

type ReportHandler struct {
	reports     ports.ReportService
	store       ports.ReportStore
	defaultLang string
	defaultTone string
	log         *zap.Logger
}

func NewReportHandler(reports ports.ReportService, store ports.ReportStore, defaultLang, defaultTone string, log *zap.Logger) *ReportHandler {
	return &ReportHandler{
		reports:     reports,
		store:       store,
		defaultLang: defaultLang,
		defaultTone: defaultTone,
		log:         log,
	}
}

// Daily builds the composite report for a venue and date. The legacy `url`
// query parameter is accepted for caller compatibility and ignored: the KPI
// lookups run in-process.
func (h *ReportHandler) Daily(c *fiber.Ctx) error {
	venue := c.Query("venue_name")
	date := c.Query("date")
	if venue == "" || date == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "venue_name and date are required"})
	}

	lang := c.Query("lang", h.defaultLang)
	tone := c.Query("tone", h.defaultTone)

	report, err := h.reports.DailyReport(c.Context(), venue, date, lang, tone)
	if err != nil {
		if errors.Is(err, domain.ErrVenueNotFound) {
			return c.JSON(fiber.Map{"error": "Venue not found"})
		}
		h.log.Warn("Daily report failed",
			zap.String("venue", venue),
			zap.String("date", date),
			zap.Error(err),
		)
		return c.JSON(fiber.Map{"error": "API call failed", "details": err.Error()})
	}
	return c.JSON(report)
}

// Save appends an arbitrary flat report object to the persisted reports
// table.
func (h *ReportHandler) Save(c *fiber.Ctx) error {
	var report map[string]interface{}
	if err := json.Unmarshal(c.Body(), &report); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid body"})
	}
	if len(report) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Empty report"})
	}

	if err := h.store.Append(report); err != nil {
		h.log.Error("Failed to append report", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"result": domain.ResultSuccess})
}
