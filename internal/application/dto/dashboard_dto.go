package dto

import "github.com/shopspring/decimal"

// DashboardResponse respuesta de GET /api/dashboard.
type DashboardResponse struct {
	StockValue      decimal.Decimal    `json:"stock_value"` // Σ precio de venta × cantidad
	TotalUnits      int64              `json:"total_units"`
	Entries30d      int64              `json:"entries_30d"`
	Exits30d        int64              `json:"exits_30d"`
	RecentMovements []MovementResponse `json:"recent_movements"` // 5 más recientes
	Monthly         []MonthlyPointDTO  `json:"monthly"`          // 6 meses, el más antiguo primero
}

// MonthlyPointDTO entradas/salidas de un mes.
type MonthlyPointDTO struct {
	Month   string `json:"month"` // "janv.", "févr.", ...
	Year    int    `json:"year"`
	Entries int64  `json:"entries"`
	Exits   int64  `json:"exits"`
}
