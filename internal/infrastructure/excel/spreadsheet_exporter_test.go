package excel

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/application/dto"
)

func TestForm2Spreadsheet(t *testing.T) {
	data := &dto.Form2Data{
		Year:        2026,
		FormNumber:  "2/2026",
		GeneratedAt: time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC),
		Rows: []dto.Form2Row{
			{Sequence: 1, MaterialCode: "1/1/1", MaterialName: "Cable de cobre", Unit: "metro",
				LocationName: "Bodega Central", RecordedQuantity: 100, ActualQuantity: 97, Difference: -3, Condition: "buena"},
		},
	}

	out, err := NewSpreadsheetExporter().Form2Spreadsheet(data)
	require.NoError(t, err)

	xml := string(out)
	assert.Contains(t, xml, `progid="Excel.Sheet"`)
	assert.Contains(t, xml, "INVENTARIO FÍSICO ANUAL")
	assert.Contains(t, xml, "Cable de cobre")
	assert.Contains(t, xml, ">-3<")
	assert.Contains(t, xml, `ss:Name="Inventario 2026"`)
}

func TestForm5SpreadsheetTotalLoss(t *testing.T) {
	data := &dto.Form5Data{
		Year:        2026,
		FormNumber:  "5/2026",
		GeneratedAt: time.Now(),
		TotalLoss:   "1250.00",
		Rows: []dto.Form5Row{
			{Sequence: 1, MaterialCode: "2/1", MaterialName: "Taladro", ConsumedQuantity: 1,
				Reason: "technical_failure", Decision: "dispose",
				OriginalValue: "1500.00", ResidualValue: "250.00", LossValue: "1250.00"},
		},
	}

	out, err := NewSpreadsheetExporter().Form5Spreadsheet(data)
	require.NoError(t, err)

	xml := string(out)
	assert.Contains(t, xml, "PÉRDIDA TOTAL")
	assert.Contains(t, xml, "1250.00")
	// valores monetarios como celdas numéricas
	assert.True(t, strings.Contains(xml, `ss:Type="Number"`))
}

func TestYearlyPurchasesSpreadsheet(t *testing.T) {
	data := &dto.YearlyPurchasesDTO{
		Year:       2025,
		TotalValue: "98000.00",
		Rows: []dto.YearlyPurchaseRowDTO{
			{Code: "1/1/1", Name: "Cable de cobre", PurchaseCount: 3, TotalQuantity: 500, TotalValue: "98000.00"},
		},
	}

	out, err := NewSpreadsheetExporter().YearlyPurchasesSpreadsheet(data)
	require.NoError(t, err)

	xml := string(out)
	assert.Contains(t, xml, "COMPRAS DEL AÑO 2025")
	assert.Contains(t, xml, ">500<")
	assert.Contains(t, xml, "98000.00")
}
