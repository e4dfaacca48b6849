package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// StockTotals totales del inventario actual.
type StockTotals struct {
	StockValue decimal.Decimal // Σ precio de venta × cantidad
	TotalUnits int64
}

// MovementTotals suma de cantidades por tipo en un rango.
type MovementTotals struct {
	Entries int64
	Exits   int64
}

// MonthlyMovements totales de un mes (Month = primer día del mes).
type MonthlyMovements struct {
	Month   time.Time
	Entries int64
	Exits   int64
}

// AnalyticsRepository consultas read-only para el dashboard.
type AnalyticsRepository interface {
	GetStockTotals(ctx context.Context) (StockTotals, error)
	GetMovementTotals(ctx context.Context, from, to time.Time) (MovementTotals, error)
	// GetMonthlyMovements agrupa por mes calendario desde from (inclusive).
	GetMonthlyMovements(ctx context.Context, from time.Time) ([]MonthlyMovements, error)
}
