package report

import "github.com/jhoicas/stockflow-api/internal/domain/entity"

// VoucherGenerator genera el bon PDF de un movimiento.
type VoucherGenerator interface {
	MovementVoucher(m *entity.Movement, p *entity.Product) ([]byte, error)
}

// SpreadsheetGenerator genera libros XLSX.
type SpreadsheetGenerator interface {
	StockWorkbook(products []*entity.Product) ([]byte, error)
	MovementsWorkbook(movements []*entity.Movement) ([]byte, error)
}
