// Package report genera documentos descargables: bon PDF de un movimiento y exportaciones XLSX.
package report

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/stockflow-api/internal/domain"
	"github.com/jhoicas/stockflow-api/internal/domain/entity"
	"github.com/jhoicas/stockflow-api/internal/domain/repository"
	"github.com/jhoicas/stockflow-api/pkg/textutil"
)

// Document archivo generado listo para enviar.
type Document struct {
	Filename string
	Mime     string
	Data     []byte
}

const (
	mimePDF  = "application/pdf"
	mimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// ReportUseCase genera el bon PDF y las exportaciones de stock y movimientos.
type ReportUseCase struct {
	productRepo repository.ProductRepository
	movRepo     repository.MovementRepository
	voucher     VoucherGenerator
	sheets      SpreadsheetGenerator
	now         func() time.Time
}

// NewReportUseCase construye el caso de uso inyectando todas sus dependencias.
func NewReportUseCase(
	productRepo repository.ProductRepository,
	movRepo repository.MovementRepository,
	voucher VoucherGenerator,
	sheets SpreadsheetGenerator,
) *ReportUseCase {
	return &ReportUseCase{
		productRepo: productRepo,
		movRepo:     movRepo,
		voucher:     voucher,
		sheets:      sheets,
		now:         time.Now,
	}
}

// MovementVoucher genera el PDF de un movimiento.
//
// Retorna domain.ErrNotFound si el movimiento no existe.
func (uc *ReportUseCase) MovementVoucher(ctx context.Context, movementID string) (*Document, error) {
	m, err := uc.movRepo.GetByID(ctx, movementID)
	if err != nil {
		return nil, fmt.Errorf("voucher: obtener movimiento: %w", err)
	}
	if m == nil {
		return nil, domain.ErrNotFound
	}
	p, err := uc.productRepo.GetByID(ctx, m.ProductID)
	if err != nil {
		return nil, fmt.Errorf("voucher: obtener producto: %w", err)
	}
	data, err := uc.voucher.MovementVoucher(m, p)
	if err != nil {
		return nil, fmt.Errorf("voucher: generar pdf: %w", err)
	}
	prefix := "bon-entree"
	if m.Type == entity.MovementTypeExit {
		prefix = "bon-sortie"
	}
	name := fmt.Sprintf("%s-%s-%s.pdf", prefix, textutil.Slug(m.ProductName, "produit"), m.Date.Format("20060102"))
	return &Document{Filename: name, Mime: mimePDF, Data: data}, nil
}

// StockExport libro XLSX con el estado actual de todos los productos.
func (uc *ReportUseCase) StockExport(ctx context.Context) (*Document, error) {
	products, err := uc.productRepo.List(ctx, repository.ProductFilter{})
	if err != nil {
		return nil, fmt.Errorf("export stock: %w", err)
	}
	data, err := uc.sheets.StockWorkbook(products)
	if err != nil {
		return nil, fmt.Errorf("export stock: generar xlsx: %w", err)
	}
	return &Document{
		Filename: "stock-" + uc.now().Format("20060102") + ".xlsx",
		Mime:     mimeXLSX,
		Data:     data,
	}, nil
}

// MovementsExport libro XLSX del libro de movimientos filtrado.
func (uc *ReportUseCase) MovementsExport(ctx context.Context, filter repository.MovementFilter) (*Document, error) {
	filter.Limit, filter.Offset = 0, 0
	list, err := uc.movRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("export movimientos: %w", err)
	}
	data, err := uc.sheets.MovementsWorkbook(list)
	if err != nil {
		return nil, fmt.Errorf("export movimientos: generar xlsx: %w", err)
	}
	return &Document{
		Filename: "mouvements-" + uc.now().Format("20060102") + ".xlsx",
		Mime:     mimeXLSX,
		Data:     data,
	}, nil
}
