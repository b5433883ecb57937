package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/usecase"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// InventoryHandler maneja el inventario físico anual y su formulario 2 (protegido).
type InventoryHandler struct {
	uc  *usecase.InventoryUseCase
	pdf usecase.FormExporter
	xls usecase.SpreadsheetExporter
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *usecase.InventoryUseCase, pdf usecase.FormExporter, xls usecase.SpreadsheetExporter) *InventoryHandler {
	return &InventoryHandler{uc: uc, pdf: pdf, xls: xls}
}

// Create godoc
// @Summary      Registrar renglón del inventario físico
// @Description  La cantidad registrada en libros se captura automáticamente
// @Description  del saldo vigente al momento del conteo.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateInventoryRecordRequest  true  "Datos del conteo"
// @Success      201   {object}  dto.InventoryRecordResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/inventory [post]
func (h *InventoryHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateInventoryRecordRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.MaterialID == "" || in.LocationID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "material_id y location_id son requeridos"})
	}
	out, err := h.uc.Create(GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener renglón por ID
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del renglón"
// @Success      200  {object}  dto.InventoryRecordResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/{id} [get]
func (h *InventoryHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "renglón no encontrado"})
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Corregir un renglón no aprobado
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del renglón"
// @Param        body  body  dto.UpdateInventoryRecordRequest  true  "Campos a corregir"
// @Success      200   {object}  dto.InventoryRecordResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/{id} [put]
func (h *InventoryHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateInventoryRecordRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Approve godoc
// @Summary      Aprobar renglón, con aplicación opcional al stock
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del renglón"
// @Param        body  body  dto.ApproveInventoryRecordRequest  false  "Aprobación"
// @Success      200   {object}  dto.MessageResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/{id}/approve [post]
func (h *InventoryHandler) Approve(c *fiber.Ctx) error {
	var in dto.ApproveInventoryRecordRequest
	if err := c.BodyParser(&in); err != nil && len(c.Body()) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.ApprovedBy == "" {
		in.ApprovedBy = GetUserID(c)
	}
	if err := h.uc.Approve(c.UserContext(), c.Params("id"), in); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "renglón aprobado"})
}

// ApplyToStock godoc
// @Summary      Aplicar al stock la diferencia de un renglón aprobado
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del renglón"
// @Success      200  {object}  dto.MessageResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/inventory/{id}/apply-to-stock [post]
func (h *InventoryHandler) ApplyToStock(c *fiber.Ctx) error {
	if err := h.uc.ApplyToStock(c.UserContext(), c.Params("id"), GetUserID(c)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "diferencia aplicada al stock"})
}

// Delete godoc
// @Summary      Eliminar un renglón no aprobado
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del renglón"
// @Success      200  {object}  dto.MessageResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/inventory/{id} [delete]
func (h *InventoryHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "renglón eliminado"})
}

// List godoc
// @Summary      Listar renglones del inventario físico
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        year         query  int     false  "Año del inventario"
// @Param        location_id  query  string  false  "Filtrar por ubicación"
// @Param        material_id  query  string  false  "Filtrar por material"
// @Param        approved     query  bool    false  "Solo aprobados"
// @Param        limit        query  int     false  "Máx. resultados (def. 20)"
// @Param        offset       query  int     false  "Desplazamiento"
// @Success      200  {object}  dto.InventoryRecordListResponse
// @Router       /api/inventory [get]
func (h *InventoryHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "parámetros de página inválidos"})
	}
	page.DefaultPage()
	out, err := h.uc.List(repository.InventoryRecordFilter{
		Year:         c.QueryInt("year"),
		LocationID:   c.Query("location_id"),
		MaterialID:   c.Query("material_id"),
		ApprovedOnly: c.QueryBool("approved"),
		Limit:        page.Limit,
		Offset:       page.Offset,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Form2 godoc
// @Summary      Formulario 2 en JSON (inventario físico anual)
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        year         query  int     false  "Año (def. actual)"
// @Param        location_id  query  string  false  "Limitar a una ubicación"
// @Success      200  {object}  dto.Form2Data
// @Router       /api/inventory/form2 [get]
func (h *InventoryHandler) Form2(c *fiber.Ctx) error {
	out, err := h.uc.BuildForm2(c.QueryInt("year"), c.Query("location_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Form2PDF godoc
// @Summary      Formulario 2 en PDF
// @Tags         inventory
// @Security     Bearer
// @Produce      application/pdf
// @Param        year         query  int     false  "Año (def. actual)"
// @Param        location_id  query  string  false  "Limitar a una ubicación"
// @Success      200  {file}  file
// @Router       /api/inventory/form2/pdf [get]
func (h *InventoryHandler) Form2PDF(c *fiber.Ctx) error {
	data, err := h.uc.BuildForm2(c.QueryInt("year"), c.Query("location_id"))
	if err != nil {
		return respondError(c, err)
	}
	doc, err := h.pdf.Form2PDF(data)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="formulario2_%d.pdf"`, data.Year))
	return c.Send(doc)
}

// Form2Excel godoc
// @Summary      Formulario 2 en Excel
// @Tags         inventory
// @Security     Bearer
// @Produce      application/vnd.ms-excel
// @Param        year         query  int     false  "Año (def. actual)"
// @Param        location_id  query  string  false  "Limitar a una ubicación"
// @Success      200  {file}  file
// @Router       /api/inventory/form2/excel [get]
func (h *InventoryHandler) Form2Excel(c *fiber.Ctx) error {
	data, err := h.uc.BuildForm2(c.QueryInt("year"), c.Query("location_id"))
	if err != nil {
		return respondError(c, err)
	}
	doc, err := h.xls.Form2Spreadsheet(data)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/vnd.ms-excel")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="formulario2_%d.xls"`, data.Year))
	return c.Send(doc)
}
