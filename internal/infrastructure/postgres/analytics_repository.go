package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/stockflow-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas read-only para el dashboard.
type AnalyticsRepo struct {
	q Querier
}

// NewAnalyticsRepository construye el repositorio.
func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

// GetStockTotals valor del stock (Σ precio de venta × cantidad) y unidades totales.
// Productos sin precio de venta cuentan como 0 en el valor.
func (r *AnalyticsRepo) GetStockTotals(ctx context.Context) (repository.StockTotals, error) {
	const query = `
	SELECT
	    COALESCE(SUM(COALESCE(sale_price, 0) * quantity), 0) AS stock_value,
	    COALESCE(SUM(quantity), 0)                            AS total_units
	FROM products`

	var t repository.StockTotals
	if err := r.q.QueryRow(ctx, query).Scan(&t.StockValue, &t.TotalUnits); err != nil {
		return t, fmt.Errorf("analytics.GetStockTotals: %w", err)
	}
	return t, nil
}

// GetMovementTotals suma de cantidades de entradas y salidas entre from y to.
func (r *AnalyticsRepo) GetMovementTotals(ctx context.Context, from, to time.Time) (repository.MovementTotals, error) {
	const query = `
	SELECT
	    COALESCE(SUM(quantity) FILTER (WHERE type = 'ENTRY'), 0) AS entries,
	    COALESCE(SUM(quantity) FILTER (WHERE type = 'EXIT'),  0) AS exits
	FROM stock_movements
	WHERE date BETWEEN $1 AND $2`

	var t repository.MovementTotals
	if err := r.q.QueryRow(ctx, query, from, to).Scan(&t.Entries, &t.Exits); err != nil {
		return t, fmt.Errorf("analytics.GetMovementTotals: %w", err)
	}
	return t, nil
}

// GetMonthlyMovements entradas y salidas agrupadas por mes calendario (UTC) desde from.
// Solo devuelve meses con movimientos; el caso de uso completa los vacíos.
func (r *AnalyticsRepo) GetMonthlyMovements(ctx context.Context, from time.Time) ([]repository.MonthlyMovements, error) {
	const query = `
	SELECT
	    date_trunc('month', date AT TIME ZONE 'UTC') AT TIME ZONE 'UTC' AS month,
	    COALESCE(SUM(quantity) FILTER (WHERE type = 'ENTRY'), 0) AS entries,
	    COALESCE(SUM(quantity) FILTER (WHERE type = 'EXIT'),  0) AS exits
	FROM stock_movements
	WHERE date >= $1
	GROUP BY 1
	ORDER BY 1`

	rows, err := r.q.Query(ctx, query, from)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetMonthlyMovements: %w", err)
	}
	defer rows.Close()

	var out []repository.MonthlyMovements
	for rows.Next() {
		var m repository.MonthlyMovements
		if err := rows.Scan(&m.Month, &m.Entries, &m.Exits); err != nil {
			return nil, fmt.Errorf("analytics.GetMonthlyMovements: scan: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
