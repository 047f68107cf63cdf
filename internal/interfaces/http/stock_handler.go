package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/estoque-eletronicos/internal/application/dto"
	"github.com/jhoicas/estoque-eletronicos/internal/application/inventory"
)

// StockHandler maneja movimientos de stock y el panel de stock bajo (protegido).
type StockHandler struct {
	uc     *inventory.RegisterMovementUseCase
	ledger *inventory.LedgerUseCase
	errorMapper
}

// NewStockHandler construye el handler.
func NewStockHandler(uc *inventory.RegisterMovementUseCase, ledger *inventory.LedgerUseCase, mapper errorMapper) *StockHandler {
	return &StockHandler{uc: uc, ledger: ledger, errorMapper: mapper}
}

// RegisterMovement godoc
// @Summary      Registrar movimiento de stock
// @Description  Inserta el movimiento y ajusta current_stock en una sola transacción.
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterMovementRequest  true  "product_id, movement_type (entrada | saida), quantity, notes"
// @Success      201   {object}  dto.RegisterMovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock/movements [post]
func (h *StockHandler) RegisterMovement(c *fiber.Ctx) error {
	var in dto.RegisterMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.RegisterMovementFromRequest(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return h.respond(c, err, productNotFound)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListMovements godoc
// @Summary      Historial de movimientos
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        product_id     query  string  false  "Filtrar por producto"
// @Param        movement_type  query  string  false  "entrada | saida"
// @Param        from           query  string  false  "Desde (RFC3339 o AAAA-MM-DD)"
// @Param        to             query  string  false  "Hasta (RFC3339 o AAAA-MM-DD, inclusive)"
// @Param        limit          query  int     false  "Límite"  default(20)
// @Param        offset         query  int     false  "Offset"  default(0)
// @Success      200            {object}  dto.MovementListResponse
// @Failure      400            {object}  dto.ErrorResponse
// @Router       /api/stock/movements [get]
func (h *StockHandler) ListMovements(c *fiber.Ctx) error {
	q := dto.MovementListQuery{
		ProductID:    c.Query("product_id"),
		MovementType: c.Query("movement_type"),
		PageRequest:  dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)},
	}
	var ok bool
	if q.From, ok = parseDateParam(c.Query("from"), false); !ok {
		return invalidDate(c, "from")
	}
	if q.To, ok = parseDateParam(c.Query("to"), true); !ok {
		return invalidDate(c, "to")
	}
	out, err := h.ledger.ListMovements(c.UserContext(), q)
	if err != nil {
		return h.respond(c, err, productNotFound)
	}
	return c.JSON(out)
}

// LowStock godoc
// @Summary      Panel de stock bajo
// @Description  Productos con current_stock <= minimum_stock.
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.LowStockPanelResponse
// @Router       /api/stock/low-stock [get]
func (h *StockHandler) LowStock(c *fiber.Ctx) error {
	list, err := h.ledger.LowStockPanel(c.UserContext())
	if err != nil {
		return h.respond(c, err, "")
	}
	return c.JSON(dto.LowStockPanelResponse{Total: len(list), Items: list})
}

// parseDateParam acepta RFC3339 o una fecha AAAA-MM-DD; con endOfDay la fecha sola cubre el día completo.
func parseDateParam(raw string, endOfDay bool) (*time.Time, bool) {
	if raw == "" {
		return nil, true
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, true
	}
	t, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		return nil, false
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t, true
}

func invalidDate(c *fiber.Ctx, param string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Code:    "VALIDATION",
		Message: param + " debe ser RFC3339 o AAAA-MM-DD",
	})
}
