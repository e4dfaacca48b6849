package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/stockflow-api/internal/application/analytics"
	"github.com/jhoicas/stockflow-api/pkg/logger"
)

// DashboardHandler maneja el endpoint del tablero.
type DashboardHandler struct {
	uc  *appanalytics.DashboardUseCase
	log *logger.Logger
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase, log *logger.Logger) *DashboardHandler {
	return &DashboardHandler{uc: uc, log: log}
}

// GetSummary devuelve valor del stock, unidades, entradas/salidas de 30 días,
// últimos 5 movimientos y la serie de 6 meses.
// GET /api/dashboard
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := h.uc.GetSummary(c.UserContext())
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(summary)
}
