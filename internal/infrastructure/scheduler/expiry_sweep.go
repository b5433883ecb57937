// Package scheduler tareas de fondo programadas con gocron.
package scheduler

import (
	"context"

	"github.com/go-co-op/gocron/v2"

	"github.com/jhoicas/almacen-api/internal/application/usecase"
	"github.com/jhoicas/almacen-api/pkg/config"
	"github.com/jhoicas/almacen-api/pkg/logger"
)

// ExpirySweep barrido periódico de lotes próximos a vencer y materiales bajo
// mínimo. Deja cada hallazgo en el log para que bodega lo revise y recalienta
// el caché del tablero; no muta stock.
type ExpirySweep struct {
	scheduler gocron.Scheduler
	reports   *usecase.ReportUseCase
	cfg       config.SchedulerConfig
	log       *logger.Logger
}

// NewExpirySweep construye el barrido sin iniciarlo.
func NewExpirySweep(reports *usecase.ReportUseCase, cfg config.SchedulerConfig, log *logger.Logger) (*ExpirySweep, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}
	return &ExpirySweep{scheduler: s, reports: reports, cfg: cfg, log: log}, nil
}

// Start registra el job con el cron configurado y arranca el scheduler.
func (e *ExpirySweep) Start() error {
	_, err := e.scheduler.NewJob(
		gocron.CronJob(e.cfg.ExpirySweepCron, false),
		gocron.NewTask(e.run),
	)
	if err != nil {
		return err
	}
	e.scheduler.Start()
	e.log.Info().
		Str("cron", e.cfg.ExpirySweepCron).
		Int("window_days", e.cfg.ExpiryWindowDays).
		Msg("barrido de vencimientos programado")
	return nil
}

func (e *ExpirySweep) run() {
	ctx := context.Background()
	items, err := e.reports.Expiring(ctx, e.cfg.ExpiryWindowDays)
	if err != nil {
		e.log.Error().Err(err).Msg("barrido de vencimientos falló")
		return
	}
	for _, it := range items {
		e.log.Warn().
			Str("material", it.Code).
			Str("location", it.LocationName).
			Str("batch", it.BatchNumber).
			Int("quantity", it.Quantity).
			Int("days_left", it.DaysLeft).
			Msg("lote próximo a vencer")
	}

	low, err := e.reports.LowStock(ctx)
	if err != nil {
		e.log.Error().Err(err).Msg("reporte de stock bajo falló durante el barrido")
	}
	for _, it := range low {
		e.log.Warn().
			Str("material", it.Code).
			Int("total", it.TotalQuantity).
			Int("minimum", it.MinimumStock).
			Int("deficit", it.Deficit).
			Msg("material bajo stock mínimo")
	}

	// Recalienta el tablero para que la primera consulta del día no pague
	// el agregado completo.
	e.reports.InvalidateDashboard(ctx)
	if _, err := e.reports.Dashboard(ctx); err != nil {
		e.log.Error().Err(err).Msg("no se pudo recalentar el caché del tablero")
	}

	e.log.Info().
		Int("expiring", len(items)).
		Int("low_stock", len(low)).
		Msg("barrido completado")
}

// Shutdown detiene el scheduler y espera los jobs en curso.
func (e *ExpirySweep) Shutdown() error {
	return e.scheduler.Shutdown()
}
