// Package excel exporta los formularios y reportes a SpreadsheetML 2003
// (XML Spreadsheet), un formato que Excel y LibreOffice abren directamente.
package excel

import (
	"fmt"
	"time"

	"github.com/beevik/etree"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/usecase"
)

// Namespaces de SpreadsheetML 2003.
const (
	nsSpreadsheet = "urn:schemas-microsoft-com:office:spreadsheet"
	nsOffice      = "urn:schemas-microsoft-com:office:office"
	nsExcel       = "urn:schemas-microsoft-com:office:excel"
)

var _ usecase.SpreadsheetExporter = (*SpreadsheetExporter)(nil)

// SpreadsheetExporter implementa usecase.SpreadsheetExporter con etree.
type SpreadsheetExporter struct{}

// NewSpreadsheetExporter construye el exportador.
func NewSpreadsheetExporter() *SpreadsheetExporter { return &SpreadsheetExporter{} }

// Form2Spreadsheet exporta el inventario físico anual.
func (e *SpreadsheetExporter) Form2Spreadsheet(data *dto.Form2Data) ([]byte, error) {
	b := newWorkbook()
	ws := b.addWorksheet(fmt.Sprintf("Inventario %d", data.Year))

	title := fmt.Sprintf("INVENTARIO FÍSICO ANUAL — Formulario N° %s", data.FormNumber)
	if data.LocationName != "" {
		title += " — " + data.LocationName
	}
	b.addTitleRow(ws, title, 9)
	b.addHeaderRow(ws, "N°", "Código", "Material", "Unidad", "Ubicación",
		"Registrado", "Contado", "Diferencia", "Condición")
	for _, r := range data.Rows {
		row := b.addRow(ws)
		b.numberCell(row, r.Sequence)
		b.stringCell(row, r.MaterialCode)
		b.stringCell(row, r.MaterialName)
		b.stringCell(row, r.Unit)
		b.stringCell(row, r.LocationName)
		b.numberCell(row, r.RecordedQuantity)
		b.numberCell(row, r.ActualQuantity)
		b.numberCell(row, r.Difference)
		b.stringCell(row, r.Condition)
	}
	b.addGeneratedRow(ws, data.GeneratedAt)
	return b.bytes()
}

// Form5Spreadsheet exporta el reporte de consumo y bajas.
func (e *SpreadsheetExporter) Form5Spreadsheet(data *dto.Form5Data) ([]byte, error) {
	b := newWorkbook()
	ws := b.addWorksheet(fmt.Sprintf("Consumo y Bajas %d", data.Year))

	b.addTitleRow(ws, fmt.Sprintf("REPORTE DE CONSUMO Y BAJAS — Formulario N° %s", data.FormNumber), 9)
	b.addHeaderRow(ws, "N°", "Código", "Material", "Cantidad", "Motivo",
		"Decisión", "V. Original", "V. Residual", "Pérdida")
	for _, r := range data.Rows {
		row := b.addRow(ws)
		b.numberCell(row, r.Sequence)
		b.stringCell(row, r.MaterialCode)
		b.stringCell(row, r.MaterialName)
		b.numberCell(row, r.ConsumedQuantity)
		b.stringCell(row, r.Reason)
		b.stringCell(row, r.Decision)
		b.decimalCell(row, r.OriginalValue)
		b.decimalCell(row, r.ResidualValue)
		b.decimalCell(row, r.LossValue)
	}
	totalRow := b.addRow(ws)
	for i := 0; i < 7; i++ {
		b.stringCell(totalRow, "")
	}
	b.styledStringCell(totalRow, "PÉRDIDA TOTAL", "sHeader")
	b.decimalCell(totalRow, data.TotalLoss)
	b.addGeneratedRow(ws, data.GeneratedAt)
	return b.bytes()
}

// YearlyPurchasesSpreadsheet exporta el reporte anual de compras.
func (e *SpreadsheetExporter) YearlyPurchasesSpreadsheet(data *dto.YearlyPurchasesDTO) ([]byte, error) {
	b := newWorkbook()
	ws := b.addWorksheet(fmt.Sprintf("Compras %d", data.Year))

	b.addTitleRow(ws, fmt.Sprintf("COMPRAS DEL AÑO %d", data.Year), 6)
	b.addHeaderRow(ws, "Código", "Material", "N° Compras", "Cantidad Total", "Valor Total")
	for _, r := range data.Rows {
		row := b.addRow(ws)
		b.stringCell(row, r.Code)
		b.stringCell(row, r.Name)
		b.numberCell(row, r.PurchaseCount)
		b.numberCell(row, r.TotalQuantity)
		b.decimalCell(row, r.TotalValue)
	}
	totalRow := b.addRow(ws)
	for i := 0; i < 3; i++ {
		b.stringCell(totalRow, "")
	}
	b.styledStringCell(totalRow, "TOTAL", "sHeader")
	b.decimalCell(totalRow, data.TotalValue)
	return b.bytes()
}

// ── Construcción del workbook ─────────────────────────────────────────────────

type workbook struct {
	doc  *etree.Document
	root *etree.Element
}

func newWorkbook() *workbook {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	doc.CreateProcInst("mso-application", `progid="Excel.Sheet"`)

	root := doc.CreateElement("Workbook")
	root.CreateAttr("xmlns", nsSpreadsheet)
	root.CreateAttr("xmlns:o", nsOffice)
	root.CreateAttr("xmlns:x", nsExcel)
	root.CreateAttr("xmlns:ss", nsSpreadsheet)

	styles := root.CreateElement("Styles")
	header := styles.CreateElement("Style")
	header.CreateAttr("ss:ID", "sHeader")
	font := header.CreateElement("Font")
	font.CreateAttr("ss:Bold", "1")
	interior := header.CreateElement("Interior")
	interior.CreateAttr("ss:Color", "#DCE6F1")
	interior.CreateAttr("ss:Pattern", "Solid")
	title := styles.CreateElement("Style")
	title.CreateAttr("ss:ID", "sTitle")
	titleFont := title.CreateElement("Font")
	titleFont.CreateAttr("ss:Bold", "1")
	titleFont.CreateAttr("ss:Size", "12")

	return &workbook{doc: doc, root: root}
}

func (b *workbook) addWorksheet(name string) *etree.Element {
	ws := b.root.CreateElement("Worksheet")
	ws.CreateAttr("ss:Name", name)
	return ws.CreateElement("Table")
}

func (b *workbook) addRow(table *etree.Element) *etree.Element {
	return table.CreateElement("Row")
}

func (b *workbook) addTitleRow(table *etree.Element, title string, span int) {
	row := b.addRow(table)
	cellEl := row.CreateElement("Cell")
	cellEl.CreateAttr("ss:StyleID", "sTitle")
	if span > 1 {
		cellEl.CreateAttr("ss:MergeAcross", fmt.Sprintf("%d", span-1))
	}
	data := cellEl.CreateElement("Data")
	data.CreateAttr("ss:Type", "String")
	data.SetText(title)
}

func (b *workbook) addHeaderRow(table *etree.Element, labels ...string) {
	row := b.addRow(table)
	for _, label := range labels {
		b.styledStringCell(row, label, "sHeader")
	}
}

func (b *workbook) addGeneratedRow(table *etree.Element, at time.Time) {
	row := b.addRow(table)
	b.stringCell(row, "Generado: "+at.Format("02/01/2006 15:04"))
}

func (b *workbook) stringCell(row *etree.Element, value string) {
	b.styledStringCell(row, value, "")
}

func (b *workbook) styledStringCell(row *etree.Element, value, styleID string) {
	cellEl := row.CreateElement("Cell")
	if styleID != "" {
		cellEl.CreateAttr("ss:StyleID", styleID)
	}
	data := cellEl.CreateElement("Data")
	data.CreateAttr("ss:Type", "String")
	data.SetText(value)
}

func (b *workbook) numberCell(row *etree.Element, value int) {
	cellEl := row.CreateElement("Cell")
	data := cellEl.CreateElement("Data")
	data.CreateAttr("ss:Type", "Number")
	data.SetText(fmt.Sprintf("%d", value))
}

// decimalCell escribe un valor decimal ya formateado como número.
func (b *workbook) decimalCell(row *etree.Element, value string) {
	cellEl := row.CreateElement("Cell")
	data := cellEl.CreateElement("Data")
	data.CreateAttr("ss:Type", "Number")
	data.SetText(value)
}

func (b *workbook) bytes() ([]byte, error) {
	b.doc.Indent(2)
	out, err := b.doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("excel: serializar workbook: %w", err)
	}
	return out, nil
}
