package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/usecase"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// ConsumptionHandler maneja consumos y bajas y su formulario 5 (protegido).
type ConsumptionHandler struct {
	uc  *usecase.ConsumptionUseCase
	pdf usecase.FormExporter
	xls usecase.SpreadsheetExporter
}

// NewConsumptionHandler construye el handler.
func NewConsumptionHandler(uc *usecase.ConsumptionUseCase, pdf usecase.FormExporter, xls usecase.SpreadsheetExporter) *ConsumptionHandler {
	return &ConsumptionHandler{uc: uc, pdf: pdf, xls: xls}
}

// Create godoc
// @Summary      Registrar renglón de consumo o baja
// @Description  El precio unitario original se congela al crear, calculado
// @Description  del promedio ponderado de las compras del material.
// @Tags         consumption
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateConsumptionRecordRequest  true  "Datos de la baja"
// @Success      201   {object}  dto.ConsumptionRecordResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/consumption [post]
func (h *ConsumptionHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateConsumptionRecordRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.InventoryRecordID == "" || in.Reason == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "inventory_record_id y reason son requeridos"})
	}
	out, err := h.uc.Create(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener renglón por ID
// @Tags         consumption
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del renglón"
// @Success      200  {object}  dto.ConsumptionRecordResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/consumption/{id} [get]
func (h *ConsumptionHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "renglón no encontrado"})
	}
	return c.JSON(out)
}

// Decide godoc
// @Summary      Registrar decisión del comité
// @Tags         consumption
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del renglón"
// @Param        body  body  dto.DecideConsumptionRequest  true  "Decisión"
// @Success      200   {object}  dto.ConsumptionRecordResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/consumption/{id}/decide [post]
func (h *ConsumptionHandler) Decide(c *fiber.Ctx) error {
	var in dto.DecideConsumptionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Decision == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "decision es requerida"})
	}
	out, err := h.uc.Decide(c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Dispose godoc
// @Summary      Cerrar la baja (desecho o venta)
// @Tags         consumption
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del renglón"
// @Param        body  body  dto.DisposeConsumptionRequest  false  "Datos del cierre"
// @Success      200   {object}  dto.ConsumptionRecordResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/consumption/{id}/dispose [post]
func (h *ConsumptionHandler) Dispose(c *fiber.Ctx) error {
	var in dto.DisposeConsumptionRequest
	if err := c.BodyParser(&in); err != nil && len(c.Body()) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Dispose(c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// DeductFromStock godoc
// @Summary      Descontar del stock la cantidad del renglón (una sola vez)
// @Tags         consumption
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del renglón"
// @Success      200  {object}  dto.MessageResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/consumption/{id}/deduct [post]
func (h *ConsumptionHandler) DeductFromStock(c *fiber.Ctx) error {
	if err := h.uc.DeductFromStock(c.UserContext(), c.Params("id"), GetUserID(c)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "stock descontado"})
}

// Delete godoc
// @Summary      Eliminar un renglón sin descuento de stock aplicado
// @Tags         consumption
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del renglón"
// @Success      200  {object}  dto.MessageResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/consumption/{id} [delete]
func (h *ConsumptionHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "renglón eliminado"})
}

// List godoc
// @Summary      Listar renglones de consumo y bajas
// @Tags         consumption
// @Security     Bearer
// @Produce      json
// @Param        year                 query  int     false  "Año del reporte"
// @Param        inventory_record_id  query  string  false  "Filtrar por renglón de inventario"
// @Param        reason               query  string  false  "normal_use|obsolescence|technical_failure|damage|expiry|loss"
// @Param        decision             query  string  false  "under_review|dispose|sell|repair|keep"
// @Param        limit                query  int     false  "Máx. resultados (def. 20)"
// @Param        offset               query  int     false  "Desplazamiento"
// @Success      200  {object}  dto.ConsumptionRecordListResponse
// @Router       /api/consumption [get]
func (h *ConsumptionHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "parámetros de página inválidos"})
	}
	page.DefaultPage()
	out, err := h.uc.List(repository.ConsumptionRecordFilter{
		Year:              c.QueryInt("year"),
		InventoryRecordID: c.Query("inventory_record_id"),
		Reason:            c.Query("reason"),
		Decision:          c.Query("decision"),
		Limit:             page.Limit,
		Offset:            page.Offset,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Form5 godoc
// @Summary      Formulario 5 en JSON (consumo y bajas)
// @Tags         consumption
// @Security     Bearer
// @Produce      json
// @Param        year  query  int  false  "Año (def. actual)"
// @Success      200  {object}  dto.Form5Data
// @Router       /api/consumption/form5 [get]
func (h *ConsumptionHandler) Form5(c *fiber.Ctx) error {
	out, err := h.uc.BuildForm5(c.QueryInt("year"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Form5PDF godoc
// @Summary      Formulario 5 en PDF
// @Tags         consumption
// @Security     Bearer
// @Produce      application/pdf
// @Param        year  query  int  false  "Año (def. actual)"
// @Success      200  {file}  file
// @Router       /api/consumption/form5/pdf [get]
func (h *ConsumptionHandler) Form5PDF(c *fiber.Ctx) error {
	data, err := h.uc.BuildForm5(c.QueryInt("year"))
	if err != nil {
		return respondError(c, err)
	}
	doc, err := h.pdf.Form5PDF(data)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="formulario5_%d.pdf"`, data.Year))
	return c.Send(doc)
}

// Form5Excel godoc
// @Summary      Formulario 5 en Excel
// @Tags         consumption
// @Security     Bearer
// @Produce      application/vnd.ms-excel
// @Param        year  query  int  false  "Año (def. actual)"
// @Success      200  {file}  file
// @Router       /api/consumption/form5/excel [get]
func (h *ConsumptionHandler) Form5Excel(c *fiber.Ctx) error {
	data, err := h.uc.BuildForm5(c.QueryInt("year"))
	if err != nil {
		return respondError(c, err)
	}
	doc, err := h.xls.Form5Spreadsheet(data)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/vnd.ms-excel")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="formulario5_%d.xls"`, data.Year))
	return c.Send(doc)
}
