package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-api/internal/application/usecase"
)

// ReportHandler maneja reportes y el tablero (protegido).
type ReportHandler struct {
	uc  *usecase.ReportUseCase
	pdf usecase.FormExporter
	xls usecase.SpreadsheetExporter
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *usecase.ReportUseCase, pdf usecase.FormExporter, xls usecase.SpreadsheetExporter) *ReportHandler {
	return &ReportHandler{uc: uc, pdf: pdf, xls: xls}
}

// LowStock godoc
// @Summary      Materiales bajo su stock mínimo
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.LowStockItemDTO
// @Router       /api/reports/low-stock [get]
func (h *ReportHandler) LowStock(c *fiber.Ctx) error {
	out, err := h.uc.LowStock(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Expiring godoc
// @Summary      Lotes próximos a vencer
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        days  query  int  false  "Ventana en días (def. 90)"
// @Success      200  {array}  dto.ExpiringItemDTO
// @Router       /api/reports/expiring [get]
func (h *ReportHandler) Expiring(c *fiber.Ctx) error {
	out, err := h.uc.Expiring(c.UserContext(), c.QueryInt("days"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// LocationSummary godoc
// @Summary      Resumen de existencias de una ubicación
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la ubicación"
// @Success      200  {object}  dto.LocationSummaryDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/reports/location/{id} [get]
func (h *ReportHandler) LocationSummary(c *fiber.Ctx) error {
	out, err := h.uc.LocationSummary(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// YearlyPurchases godoc
// @Summary      Compras agregadas por material en un año
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        year  query  int  false  "Año (def. actual)"
// @Success      200  {object}  dto.YearlyPurchasesDTO
// @Router       /api/reports/purchases [get]
func (h *ReportHandler) YearlyPurchases(c *fiber.Ctx) error {
	out, err := h.uc.YearlyPurchases(c.UserContext(), c.QueryInt("year"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// YearlyPurchasesExcel godoc
// @Summary      Compras anuales en Excel
// @Tags         reports
// @Security     Bearer
// @Produce      application/vnd.ms-excel
// @Param        year  query  int  false  "Año (def. actual)"
// @Success      200  {file}  file
// @Router       /api/reports/purchases/excel [get]
func (h *ReportHandler) YearlyPurchasesExcel(c *fiber.Ctx) error {
	data, err := h.uc.YearlyPurchases(c.UserContext(), c.QueryInt("year"))
	if err != nil {
		return respondError(c, err)
	}
	doc, err := h.xls.YearlyPurchasesSpreadsheet(data)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/vnd.ms-excel")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="compras_%d.xls"`, data.Year))
	return c.Send(doc)
}

// YearlyPurchasesPDF godoc
// @Summary      Compras anuales en PDF
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Param        year  query  int  false  "Año (def. actual)"
// @Success      200  {file}  file
// @Router       /api/reports/purchases/pdf [get]
func (h *ReportHandler) YearlyPurchasesPDF(c *fiber.Ctx) error {
	data, err := h.uc.YearlyPurchases(c.UserContext(), c.QueryInt("year"))
	if err != nil {
		return respondError(c, err)
	}
	doc, err := h.pdf.YearlyPurchasesPDF(data)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="compras_%d.pdf"`, data.Year))
	return c.Send(doc)
}

// Dashboard godoc
// @Summary      Totales del tablero
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardDTO
// @Router       /api/reports/dashboard [get]
func (h *ReportHandler) Dashboard(c *fiber.Ctx) error {
	out, err := h.uc.Dashboard(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
