// Package analytics contiene los casos de uso del dashboard y del resumen periódico por correo.
package analytics

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/stockflow-api/internal/application/dto"
	"github.com/jhoicas/stockflow-api/internal/domain/entity"
	"github.com/jhoicas/stockflow-api/internal/domain/repository"
)

const (
	dashboardRecent = 5  // movimientos recientes en el dashboard
	dashboardMonths = 6  // meses de la serie mensual
	dashboardWindow = 30 // días para entradas/salidas
)

// DashboardUseCase genera el resumen de stock y movimientos.
//
// Fuente de datos: AnalyticsRepository (consultas read-only) y el libro de movimientos.
type DashboardUseCase struct {
	analyticsRepo repository.AnalyticsRepository
	movRepo       repository.MovementRepository
	now           func() time.Time
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(analyticsRepo repository.AnalyticsRepository, movRepo repository.MovementRepository) *DashboardUseCase {
	return &DashboardUseCase{analyticsRepo: analyticsRepo, movRepo: movRepo, now: time.Now}
}

// GetSummary construye el DashboardResponse.
//
// Cuatro consultas en paralelo:
//  1. GetStockTotals              → StockValue + TotalUnits
//  2. GetMovementTotals(30 días)  → Entries30d + Exits30d
//  3. movimientos recientes (5)
//  4. GetMonthlyMovements(6 meses)
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardResponse, error) {
	now := uc.now()
	windowStart := now.AddDate(0, 0, -dashboardWindow)
	// Los meses se cortan en UTC, igual que GetMonthlyMovements
	utc := now.UTC()
	firstMonth := time.Date(utc.Year(), utc.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -(dashboardMonths - 1), 0)

	var (
		totals  repository.StockTotals
		window  repository.MovementTotals
		recent  []*entity.Movement
		monthly []repository.MonthlyMovements
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		totals, err = uc.analyticsRepo.GetStockTotals(gctx)
		if err != nil {
			return fmt.Errorf("dashboard: totales de stock: %w", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		window, err = uc.analyticsRepo.GetMovementTotals(gctx, windowStart, now)
		if err != nil {
			return fmt.Errorf("dashboard: movimientos 30 días: %w", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		recent, err = uc.movRepo.List(gctx, repository.MovementFilter{Limit: dashboardRecent})
		if err != nil {
			return fmt.Errorf("dashboard: movimientos recientes: %w", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		monthly, err = uc.analyticsRepo.GetMonthlyMovements(gctx, firstMonth)
		if err != nil {
			return fmt.Errorf("dashboard: serie mensual: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &dto.DashboardResponse{
		StockValue:      totals.StockValue.Round(2),
		TotalUnits:      totals.TotalUnits,
		Entries30d:      window.Entries,
		Exits30d:        window.Exits,
		RecentMovements: dto.FromMovements(recent),
		Monthly:         fillMonths(firstMonth, dashboardMonths, monthly),
	}, nil
}

// fillMonths devuelve n meses consecutivos desde first (el más antiguo primero), con ceros
// en los meses sin movimientos.
func fillMonths(first time.Time, n int, rows []repository.MonthlyMovements) []dto.MonthlyPointDTO {
	type key struct {
		y int
		m time.Month
	}
	byMonth := make(map[key]repository.MonthlyMovements, len(rows))
	for _, r := range rows {
		m := r.Month.UTC()
		byMonth[key{m.Year(), m.Month()}] = r
	}
	out := make([]dto.MonthlyPointDTO, 0, n)
	for i := 0; i < n; i++ {
		m := first.AddDate(0, i, 0)
		r := byMonth[key{m.Year(), m.Month()}]
		out = append(out, dto.MonthlyPointDTO{
			Month:   monthLabel(m),
			Year:    m.Year(),
			Entries: r.Entries,
			Exits:   r.Exits,
		})
	}
	return out
}

// monthLabel abreviatura francesa del mes, ej: "févr.".
func monthLabel(t time.Time) string {
	months := [...]string{
		"janv.", "févr.", "mars", "avr.", "mai", "juin",
		"juil.", "août", "sept.", "oct.", "nov.", "déc.",
	}
	return months[t.Month()-1]
}
