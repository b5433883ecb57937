package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/usecase"
)

// StockHandler maneja saldos y movimientos del libro de existencias (protegido).
type StockHandler struct {
	uc *usecase.StockUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(uc *usecase.StockUseCase) *StockHandler {
	return &StockHandler{uc: uc}
}

// parseDateQuery acepta fechas "2006-01-02" o RFC3339; nil si el parámetro falta.
func parseDateQuery(c *fiber.Ctx, name string) (*time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return &t, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Balance godoc
// @Summary      Saldo de un material en una ubicación
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        material_id  path  string  true  "ID del material"
// @Param        location_id  path  string  true  "ID de la ubicación"
// @Success      200  {object}  dto.StockBalance
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock/{material_id}/{location_id} [get]
func (h *StockHandler) Balance(c *fiber.Ctx) error {
	out, err := h.uc.Balance(c.Params("material_id"), c.Params("location_id"))
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "sin saldo para ese material y ubicación"})
	}
	return c.JSON(out)
}

// ListByLocation godoc
// @Summary      Saldos de una ubicación
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        location_id  path   string  true   "ID de la ubicación"
// @Param        limit        query  int     false  "Máx. resultados (def. 20)"
// @Param        offset       query  int     false  "Desplazamiento"
// @Success      200  {object}  dto.StockBalanceListResponse
// @Router       /api/stock/location/{location_id} [get]
func (h *StockHandler) ListByLocation(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "parámetros de página inválidos"})
	}
	page.DefaultPage()
	out, err := h.uc.ListByLocation(c.Params("location_id"), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Increase godoc
// @Summary      Entrada manual de stock
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdjustStockRequest  true  "Material, ubicación y cantidad"
// @Success      200   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/stock/increase [post]
func (h *StockHandler) Increase(c *fiber.Ctx) error {
	var in dto.AdjustStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.Increase(c.UserContext(), GetUserID(c), in); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "entrada registrada"})
}

// Decrease godoc
// @Summary      Salida manual de stock
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdjustStockRequest  true  "Material, ubicación y cantidad"
// @Success      200   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock/decrease [post]
func (h *StockHandler) Decrease(c *fiber.Ctx) error {
	var in dto.AdjustStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.Decrease(c.UserContext(), GetUserID(c), in); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "salida registrada"})
}

// DeleteBalance godoc
// @Summary      Eliminar un saldo en cero (limpieza administrativa)
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        material_id  path  string  true  "ID del material"
// @Param        location_id  path  string  true  "ID de la ubicación"
// @Success      200  {object}  dto.MessageResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/stock/{material_id}/{location_id} [delete]
func (h *StockHandler) DeleteBalance(c *fiber.Ctx) error {
	if err := h.uc.DeleteBalance(c.UserContext(), c.Params("material_id"), c.Params("location_id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "saldo eliminado"})
}

// MovementsByMaterial godoc
// @Summary      Movimientos de un material
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        material_id  path   string  true   "ID del material"
// @Param        from         query  string  false  "Desde (YYYY-MM-DD)"
// @Param        to           query  string  false  "Hasta (YYYY-MM-DD)"
// @Param        limit        query  int     false  "Máx. resultados (def. 20)"
// @Param        offset       query  int     false  "Desplazamiento"
// @Success      200  {object}  dto.StockMovementListResponse
// @Router       /api/stock/movements/material/{material_id} [get]
func (h *StockHandler) MovementsByMaterial(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "parámetros de página inválidos"})
	}
	page.DefaultPage()
	from, err := parseDateQuery(c, "from")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from inválido"})
	}
	to, err := parseDateQuery(c, "to")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to inválido"})
	}
	out, err := h.uc.MovementsByMaterial(c.Params("material_id"), from, to, page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// MovementsByLocation godoc
// @Summary      Movimientos de una ubicación
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        location_id  path   string  true   "ID de la ubicación"
// @Param        from         query  string  false  "Desde (YYYY-MM-DD)"
// @Param        to           query  string  false  "Hasta (YYYY-MM-DD)"
// @Param        limit        query  int     false  "Máx. resultados (def. 20)"
// @Param        offset       query  int     false  "Desplazamiento"
// @Success      200  {object}  dto.StockMovementListResponse
// @Router       /api/stock/movements/location/{location_id} [get]
func (h *StockHandler) MovementsByLocation(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "parámetros de página inválidos"})
	}
	page.DefaultPage()
	from, err := parseDateQuery(c, "from")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from inválido"})
	}
	to, err := parseDateQuery(c, "to")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to inválido"})
	}
	out, err := h.uc.MovementsByLocation(c.Params("location_id"), from, to, page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
