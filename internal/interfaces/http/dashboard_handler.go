package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/estoque-eletronicos/internal/application/analytics"
)

// DashboardHandler maneja los endpoints del módulo de Dashboard.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
	errorMapper
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase, mapper errorMapper) *DashboardHandler {
	return &DashboardHandler{uc: uc, errorMapper: mapper}
}

// GetSummary devuelve las estadísticas del catálogo, recalculadas en cada llamada.
// GET /api/dashboard/summary
//
// Respuesta: DashboardSummaryDTO (total_products, low_stock_count, total_value,
// low_stock, recent_movements[5]).
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := h.uc.GetSummary(c.UserContext())
	if err != nil {
		return h.respond(c, err, "")
	}
	return c.JSON(summary)
}
