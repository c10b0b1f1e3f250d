package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/seu-repo/gastro-bi/internal/domain"
	"github.com/seu-repo/gastro-bi/internal/ports"
)

type KPIHandler struct {
	resolver ports.KPIResolver
	log      *zap.Logger
}

func NewKPIHandler(resolver ports.KPIResolver, log *zap.Logger) *KPIHandler {
	return &KPIHandler{
		resolver: resolver,
		log:      log,
	}
}

// Query resolves a logical KPI request. The envelope always comes back with
// HTTP 200; failures are reported inside it.
func (h *KPIHandler) Query(c *fiber.Ctx) error {
	var req domain.KPIRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid body"})
	}
	if req.Function == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "function is required"})
	}
	if req.Params == nil {
		req.Params = map[string]interface{}{}
	}

	h.log.Info("Resolving KPI request",
		zap.String("function", req.Function),
		zap.Any("request_id", c.Locals("request_id")),
	)
	env := h.resolver.Resolve(c.Context(), req.Function, req.Params)
	return c.JSON(env)
}
