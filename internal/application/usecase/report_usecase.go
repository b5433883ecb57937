package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
	"github.com/jhoicas/almacen-api/pkg/logger"
)

const (
	dashboardCacheKey = "reports:dashboard"
	dashboardCacheTTL = 60 * time.Second

	defaultExpiryDays = 90
)

// ReportUseCase consultas agregadas de solo lectura: stock bajo, vencimientos,
// resumen por ubicación, compras anuales y tablero. El tablero usa caché
// cache-aside con TTL corto; el resto consulta directo.
type ReportUseCase struct {
	reportRepo   repository.ReportRepository
	locationRepo repository.LocationRepository
	cache        Cache
	log          *logger.Logger
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(
	reportRepo repository.ReportRepository,
	locationRepo repository.LocationRepository,
	cache Cache,
	log *logger.Logger,
) *ReportUseCase {
	return &ReportUseCase{
		reportRepo:   reportRepo,
		locationRepo: locationRepo,
		cache:        cache,
		log:          log,
	}
}

// LowStock materiales activos en o bajo su mínimo.
func (uc *ReportUseCase) LowStock(ctx context.Context) ([]dto.LowStockItemDTO, error) {
	items, err := uc.reportRepo.LowStockItems(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.LowStockItemDTO, 0, len(items))
	for _, it := range items {
		out = append(out, dto.LowStockItemDTO{
			MaterialID:    it.MaterialID,
			Code:          it.Code,
			Name:          it.Name,
			Unit:          it.Unit,
			MinimumStock:  it.MinimumStock,
			TotalQuantity: it.TotalQuantity,
			Deficit:       it.MinimumStock - it.TotalQuantity,
		})
	}
	return out, nil
}

// Expiring saldos que vencen dentro de la ventana de días dada.
func (uc *ReportUseCase) Expiring(ctx context.Context, days int) ([]dto.ExpiringItemDTO, error) {
	if days <= 0 {
		days = defaultExpiryDays
	}
	items, err := uc.reportRepo.ExpiringItems(ctx, days)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	out := make([]dto.ExpiringItemDTO, 0, len(items))
	for _, it := range items {
		out = append(out, dto.ExpiringItemDTO{
			MaterialID:   it.MaterialID,
			Code:         it.Code,
			Name:         it.Name,
			LocationID:   it.LocationID,
			LocationName: it.LocationName,
			Quantity:     it.Quantity,
			BatchNumber:  it.BatchNumber,
			ExpiryDate:   it.ExpiryDate,
			DaysLeft:     int(it.ExpiryDate.Sub(now).Hours() / 24),
		})
	}
	return out, nil
}

// LocationSummary existencias de una ubicación, con totales.
func (uc *ReportUseCase) LocationSummary(ctx context.Context, locationID string) (*dto.LocationSummaryDTO, error) {
	loc, err := uc.locationRepo.GetByID(locationID)
	if err != nil {
		return nil, err
	}
	if loc == nil {
		return nil, domain.ErrNotFound
	}
	items, err := uc.reportRepo.LocationSummary(ctx, locationID)
	if err != nil {
		return nil, err
	}
	out := &dto.LocationSummaryDTO{
		LocationID:   locationID,
		LocationName: loc.Name,
		Items:        make([]dto.LocationSummaryItemDTO, 0, len(items)),
	}
	for _, it := range items {
		out.Items = append(out.Items, dto.LocationSummaryItemDTO{
			MaterialID:        it.MaterialID,
			Code:              it.Code,
			Name:              it.Name,
			Unit:              it.Unit,
			Quantity:          it.Quantity,
			ReservedQuantity:  it.ReservedQuantity,
			AvailableQuantity: it.Quantity - it.ReservedQuantity,
			Condition:         it.Condition,
		})
		out.TotalUnits += it.Quantity
	}
	return out, nil
}

// YearlyPurchases agregado anual de compras por material, en moneda local.
func (uc *ReportUseCase) YearlyPurchases(ctx context.Context, year int) (*dto.YearlyPurchasesDTO, error) {
	if year == 0 {
		year = time.Now().Year()
	}
	rows, err := uc.reportRepo.YearlyPurchases(ctx, year)
	if err != nil {
		return nil, err
	}
	out := &dto.YearlyPurchasesDTO{
		Year: year,
		Rows: make([]dto.YearlyPurchaseRowDTO, 0, len(rows)),
	}
	total := decimal.Zero
	for _, r := range rows {
		out.Rows = append(out.Rows, dto.YearlyPurchaseRowDTO{
			MaterialID:    r.MaterialID,
			Code:          r.Code,
			Name:          r.Name,
			PurchaseCount: r.PurchaseCount,
			TotalQuantity: r.TotalQuantity,
			TotalValue:    r.TotalValue.StringFixed(2),
		})
		total = total.Add(r.TotalValue)
	}
	out.TotalValue = total.StringFixed(2)
	return out, nil
}

// Dashboard totales del tablero, con caché de lectura de TTL corto. Un fallo
// del caché se registra y se sigue contra la BD.
func (uc *ReportUseCase) Dashboard(ctx context.Context) (*dto.DashboardDTO, error) {
	var cached dto.DashboardDTO
	hit, err := uc.cache.Get(ctx, dashboardCacheKey, &cached)
	if err != nil {
		uc.log.Warn().Err(err).Msg("caché de tablero no disponible")
	}
	if hit {
		return &cached, nil
	}
	stats, err := uc.reportRepo.DashboardStats(ctx, defaultExpiryDays)
	if err != nil {
		return nil, err
	}
	out := &dto.DashboardDTO{
		TotalMaterials:   stats.TotalMaterials,
		TotalLocations:   stats.TotalLocations,
		TotalStockUnits:  stats.TotalStockUnits,
		PendingTransfers: stats.PendingTransfers,
		LowStockCount:    stats.LowStockCount,
		ExpiringCount:    stats.ExpiringCount,
		InventoryValue:   stats.InventoryValue.StringFixed(2),
		GeneratedAt:      time.Now().Format(time.RFC3339),
	}
	if err := uc.cache.Set(ctx, dashboardCacheKey, out, dashboardCacheTTL); err != nil {
		uc.log.Warn().Err(err).Msg("no se pudo poblar caché de tablero")
	}
	return out, nil
}

// InvalidateDashboard expira el caché del tablero tras mutaciones grandes.
func (uc *ReportUseCase) InvalidateDashboard(ctx context.Context) {
	if err := uc.cache.Delete(ctx, dashboardCacheKey); err != nil {
		uc.log.Warn().Err(err).Msg("no se pudo invalidar caché de tablero")
	}
}
