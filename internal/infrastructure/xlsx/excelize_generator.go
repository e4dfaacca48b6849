// Package xlsx genera las exportaciones de stock y movimientos con excelize.
package xlsx

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/stockflow-api/internal/application/report"
	"github.com/jhoicas/stockflow-api/internal/domain/entity"
)

var _ report.SpreadsheetGenerator = (*ExcelizeGenerator)(nil)

const (
	sheetStock     = "Stock"
	sheetMovements = "Mouvements"
	dateLayout     = "2006-01-02 15:04"
)

// ExcelizeGenerator implementa report.SpreadsheetGenerator.
type ExcelizeGenerator struct{}

// NewExcelizeGenerator construye el generador.
func NewExcelizeGenerator() *ExcelizeGenerator { return &ExcelizeGenerator{} }

var stockHeader = []any{
	"Nom", "SKU", "GTIN", "Marque", "Modèle", "Catégorie", "Emplacement",
	"Quantité", "Numéros de série", "Prix d'achat", "Frais logistiques", "Prix de vente", "Valeur",
}

// StockWorkbook una fila por producto con su valor (precio de venta × cantidad).
func (g *ExcelizeGenerator) StockWorkbook(products []*entity.Product) ([]byte, error) {
	rows := make([][]any, 0, len(products))
	for _, p := range products {
		value := decimal.Zero
		if p.SalePrice != nil {
			value = p.SalePrice.Mul(decimal.NewFromInt(int64(p.Quantity)))
		}
		rows = append(rows, []any{
			p.Name, p.SKU, p.GTIN,
			refName(p.Brand), refName(p.Model), refName(p.Category), refName(p.Location),
			p.Quantity, strings.Join(p.SerialNumbers, ", "),
			money(p.PurchasePrice), money(p.LogisticsCost), money(p.SalePrice), value.Round(2).InexactFloat64(),
		})
	}
	return build(sheetStock, stockHeader, rows)
}

var movementsHeader = []any{
	"Date", "Type", "Produit", "SKU", "Marque", "Modèle", "Quantité",
	"Numéros de série", "Utilisateur", "Fournisseur", "Demandeur", "Projet", "Destination",
}

// MovementsWorkbook una fila por movimiento, en el orden recibido.
func (g *ExcelizeGenerator) MovementsWorkbook(movements []*entity.Movement) ([]byte, error) {
	rows := make([][]any, 0, len(movements))
	for _, m := range movements {
		rows = append(rows, []any{
			m.Date.Format(dateLayout), typeLabel(m.Type), m.ProductName, m.ProductSKU, m.BrandName, m.ModelName,
			m.Quantity, strings.Join(m.SerialNumbers, ", "),
			m.UserName, m.SupplierName, m.RequesterName, m.ProjectName, m.Destination,
		})
	}
	return build(sheetMovements, movementsHeader, rows)
}

// build crea un libro de una hoja con encabezado fijo y autofiltro.
func build(sheet string, header []any, rows [][]any) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("xlsx: renombrar hoja: %w", err)
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("xlsx: encabezado: %w", err)
	}
	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheet, cell, &r); err != nil {
			return nil, fmt.Errorf("xlsx: fila %d: %w", i+2, err)
		}
	}

	lastCol, err := excelize.ColumnNumberToName(len(header))
	if err != nil {
		return nil, err
	}
	style, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#00467F"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("xlsx: estilo: %w", err)
	}
	if err := f.SetCellStyle(sheet, "A1", lastCol+"1", style); err != nil {
		return nil, fmt.Errorf("xlsx: estilo: %w", err)
	}
	if err := f.SetColWidth(sheet, "A", lastCol, 18); err != nil {
		return nil, fmt.Errorf("xlsx: ancho: %w", err)
	}
	if err := f.SetPanes(sheet, &excelize.Panes{
		Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft",
	}); err != nil {
		return nil, fmt.Errorf("xlsx: panes: %w", err)
	}
	if err := f.AutoFilter(sheet, "A1:"+lastCol+"1", nil); err != nil {
		return nil, fmt.Errorf("xlsx: autofiltro: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx: escribir: %w", err)
	}
	return buf.Bytes(), nil
}

func typeLabel(t entity.MovementType) string {
	if t == entity.MovementTypeExit {
		return "Sortie"
	}
	return "Entrée"
}

// money celda numérica; vacía si no hay valor.
func money(d *decimal.Decimal) any {
	if d == nil {
		return ""
	}
	return d.InexactFloat64()
}

func refName[T entity.Brand | entity.Model | entity.Category | entity.Location](ref *T) string {
	if ref == nil {
		return ""
	}
	switch v := any(ref).(type) {
	case *entity.Brand:
		return v.Name
	case *entity.Model:
		return v.Name
	case *entity.Category:
		return v.Name
	case *entity.Location:
		return v.Name
	}
	return ""
}
