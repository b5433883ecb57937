package usecase

import (
	"context"
	"time"

	"github.com/jhoicas/almacen-api/internal/application/dto"
)

// Cache puerto de caché clave/valor para respuestas de reportes. Una
// implementación deshabilitada devuelve siempre miss sin error.
type Cache interface {
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// FormExporter puerto de generación de PDFs imprimibles de formularios y reportes.
type FormExporter interface {
	Form2PDF(data *dto.Form2Data) ([]byte, error)
	Form5PDF(data *dto.Form5Data) ([]byte, error)
	YearlyPurchasesPDF(data *dto.YearlyPurchasesDTO) ([]byte, error)
}

// SpreadsheetExporter puerto de exportación a hoja de cálculo.
type SpreadsheetExporter interface {
	Form2Spreadsheet(data *dto.Form2Data) ([]byte, error)
	Form5Spreadsheet(data *dto.Form5Data) ([]byte, error)
	YearlyPurchasesSpreadsheet(data *dto.YearlyPurchasesDTO) ([]byte, error)
}
