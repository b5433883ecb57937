// Package pdf implementa la generación de los formularios imprimibles del
// almacén con Maroto v2: formulario 2 (inventario físico anual) y
// formulario 5 (consumo y bajas).
//
// Layout de la página A4 apaisada:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título del formulario │ N° Formulario + Año        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: N° | Código | Material | ... | Diferencia/Pérdida   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  PIE: fecha de generación + espacio de firmas               │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/usecase"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ usecase.FormExporter = (*FormPDFGenerator)(nil)

// FormPDFGenerator implementa usecase.FormExporter usando Maroto v2.
type FormPDFGenerator struct{}

// NewFormPDFGenerator construye el generador.
func NewFormPDFGenerator() *FormPDFGenerator { return &FormPDFGenerator{} }

// Form2PDF genera el PDF del inventario físico anual y devuelve sus bytes.
func (g *FormPDFGenerator) Form2PDF(data *dto.Form2Data) ([]byte, error) {
	m := newDocument(fmt.Sprintf("Inventario Físico %d", data.Year))

	subtitle := fmt.Sprintf("Formulario N° %s", data.FormNumber)
	if data.LocationName != "" {
		subtitle += "   |   Ubicación: " + data.LocationName
	}
	m.AddRows(headerRow("INVENTARIO FÍSICO ANUAL", subtitle, data.Year))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(form2HeaderRow())
	for _, r := range data.Rows {
		m.AddRows(form2DetailRow(r))
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRows(data.GeneratedAt.Format("02/01/2006 15:04"))...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar formulario 2: %w", err)
	}
	return doc.GetBytes(), nil
}

// Form5PDF genera el PDF del reporte de consumo y bajas y devuelve sus bytes.
func (g *FormPDFGenerator) Form5PDF(data *dto.Form5Data) ([]byte, error) {
	m := newDocument(fmt.Sprintf("Consumo y Bajas %d", data.Year))

	m.AddRows(headerRow("REPORTE DE CONSUMO Y BAJAS",
		fmt.Sprintf("Formulario N° %s", data.FormNumber), data.Year))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(form5HeaderRow())
	for _, r := range data.Rows {
		m.AddRows(form5DetailRow(r))
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(row.New(8).Add(
		col.New(9).Add(text.New("PÉRDIDA TOTAL:", props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Top: 1, Right: 2,
		})),
		col.New(3).Add(text.New(data.TotalLoss, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Top: 1, Right: 1,
		})),
	))

	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRows(data.GeneratedAt.Format("02/01/2006 15:04"))...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar formulario 5: %w", err)
	}
	return doc.GetBytes(), nil
}

// YearlyPurchasesPDF genera el PDF del reporte anual de compras.
func (g *FormPDFGenerator) YearlyPurchasesPDF(data *dto.YearlyPurchasesDTO) ([]byte, error) {
	m := newDocument(fmt.Sprintf("Compras %d", data.Year))

	m.AddRows(headerRow("REPORTE ANUAL DE COMPRAS",
		fmt.Sprintf("%d materiales", len(data.Rows)), data.Year))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(row.New(8).Add(
		headerCell("Código", 2, align.Left),
		headerCell("Material", 5, align.Left),
		headerCell("Compras", 1, align.Right),
		headerCell("Cantidad", 2, align.Right),
		headerCell("Valor total", 2, align.Right),
	))
	for _, r := range data.Rows {
		m.AddRows(row.New(6).Add(
			cell(r.Code, 2, align.Left),
			cell(r.Name, 5, align.Left),
			cell(fmt.Sprintf("%d", r.PurchaseCount), 1, align.Right),
			cell(fmt.Sprintf("%d", r.TotalQuantity), 2, align.Right),
			cell(r.TotalValue, 2, align.Right),
		))
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(row.New(8).Add(
		col.New(10).Add(text.New("TOTAL:", props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Top: 1, Right: 2,
		})),
		col.New(2).Add(text.New(data.TotalValue, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Top: 1, Right: 1,
		})),
	))

	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRows(time.Now().Format("02/01/2006 15:04"))...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar reporte de compras: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func newDocument(title string) core.Maroto {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithOrientation(orientation.Horizontal).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 8}).
		WithTitle(title, true).
		Build()
	return maroto.New(cfg)
}

// headerRow: título del formulario (izq) y año (der).
func headerRow(title, subtitle string, year int) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New(title, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(subtitle, props.Text{Size: 8, Top: 9, Color: colorGray}),
		),
		col.New(4).Add(
			text.New(fmt.Sprintf("AÑO %d", year), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 3,
			}),
		),
	)
}

func headerCell(label string, size int, a align.Type) core.Col {
	return col.New(size).Add(text.New(label, props.Text{
		Style: fontstyle.Bold, Size: 7.5, Align: a,
		Color: colorPrimary, Top: 2, Left: 1, Right: 1,
	}))
}

func cell(value string, size int, a align.Type) core.Col {
	return col.New(size).Add(text.New(value, props.Text{
		Size: 7.5, Align: a, Top: 1, Left: 1, Right: 1,
	}))
}

func form2HeaderRow() core.Row {
	return row.New(8).Add(
		headerCell("N°", 1, align.Center),
		headerCell("Código", 1, align.Left),
		headerCell("Material", 3, align.Left),
		headerCell("Unidad", 1, align.Center),
		headerCell("Ubicación", 2, align.Left),
		headerCell("Registrado", 1, align.Right),
		headerCell("Contado", 1, align.Right),
		headerCell("Diferencia", 1, align.Right),
		headerCell("Condición", 1, align.Center),
	)
}

func form2DetailRow(r dto.Form2Row) core.Row {
	return row.New(6).Add(
		cell(fmt.Sprintf("%d", r.Sequence), 1, align.Center),
		cell(r.MaterialCode, 1, align.Left),
		cell(r.MaterialName, 3, align.Left),
		cell(r.Unit, 1, align.Center),
		cell(r.LocationName, 2, align.Left),
		cell(fmt.Sprintf("%d", r.RecordedQuantity), 1, align.Right),
		cell(fmt.Sprintf("%d", r.ActualQuantity), 1, align.Right),
		cell(fmt.Sprintf("%+d", r.Difference), 1, align.Right),
		cell(r.Condition, 1, align.Center),
	)
}

func form5HeaderRow() core.Row {
	return row.New(8).Add(
		headerCell("N°", 1, align.Center),
		headerCell("Código", 1, align.Left),
		headerCell("Material", 3, align.Left),
		headerCell("Cant.", 1, align.Right),
		headerCell("Motivo", 2, align.Left),
		headerCell("Decisión", 1, align.Center),
		headerCell("V. Original", 1, align.Right),
		headerCell("V. Residual", 1, align.Right),
		headerCell("Pérdida", 1, align.Right),
	)
}

func form5DetailRow(r dto.Form5Row) core.Row {
	return row.New(6).Add(
		cell(fmt.Sprintf("%d", r.Sequence), 1, align.Center),
		cell(r.MaterialCode, 1, align.Left),
		cell(r.MaterialName, 3, align.Left),
		cell(fmt.Sprintf("%d", r.ConsumedQuantity), 1, align.Right),
		cell(r.Reason, 2, align.Left),
		cell(r.Decision, 1, align.Center),
		cell(r.OriginalValue, 1, align.Right),
		cell(r.ResidualValue, 1, align.Right),
		cell(r.LossValue, 1, align.Right),
	)
}

// footerRows: fecha de generación y espacio de firmas del comité.
func footerRows(generatedAt string) []core.Row {
	return []core.Row{
		row.New(6).Add(col.New(12).Add(
			text.New("Generado: "+generatedAt, props.Text{
				Size: 7, Color: colorGray, Top: 1,
			}),
		)),
		row.New(18).Add(
			signatureCol("Elaboró"),
			signatureCol("Revisó"),
			signatureCol("Aprobó"),
		),
	}
}

func signatureCol(label string) core.Col {
	return col.New(4).Add(
		text.New("______________________", props.Text{
			Size: 8, Align: align.Center, Top: 10, Color: colorGray,
		}),
		text.New(label, props.Text{
			Size: 8, Align: align.Center, Top: 14,
		}),
	)
}
