// Package pdf genera el bon (entrada o salida) de un movimiento de stock.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: BON D'ENTRÉE / BON DE SORTIE  │  N° + Fecha        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  PRODUCTO: Nombre / SKU / Marca / Modelo                     │
//	│  REFERENCIAS: Usuario / Proveedor / Solicitante / Proyecto   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CANTIDAD + TABLA DE SERIALES (# | N° de serie)              │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: QR con el id del movimiento + firmas                │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"strconv"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/stockflow-api/internal/application/report"
	"github.com/jhoicas/stockflow-api/internal/domain/entity"
)

var _ report.VoucherGenerator = (*MarotoPDFGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorEntry   = &props.Color{Red: 22, Green: 128, Blue: 61}
	colorExit    = &props.Color{Red: 185, Green: 28, Blue: 28}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa report.VoucherGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	company string
}

// NewMarotoPDFGenerator construye el generador. company aparece como autor y en el encabezado.
func NewMarotoPDFGenerator(company string) *MarotoPDFGenerator {
	return &MarotoPDFGenerator{company: company}
}

// MovementVoucher genera el PDF del movimiento y devuelve sus bytes.
// p puede ser nil; se usan entonces los datos desnormalizados del movimiento.
func (g *MarotoPDFGenerator) MovementVoucher(m *entity.Movement, p *entity.Product) ([]byte, error) {
	if m == nil {
		return nil, fmt.Errorf("pdf: movimiento nil")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(voucherTitle(m.Type), true).
		WithAuthor(g.company, true).
		Build()

	mt := maroto.New(cfg)

	mt.AddRows(headerRow(g.company, m))
	mt.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	mt.AddRows(productRow(m, p))
	mt.AddRows(referencesRow(m))
	mt.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	mt.AddRows(quantityRow(m))
	if len(m.SerialNumbers) > 0 {
		mt.AddRows(serialHeaderRow())
		mt.AddRows(serialRows(m.SerialNumbers)...)
	}

	mt.AddRows(line.NewRow(3))
	mt.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	mt.AddRows(footerRow(m))

	doc, err := mt.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func voucherTitle(t entity.MovementType) string {
	if t == entity.MovementTypeExit {
		return "BON DE SORTIE"
	}
	return "BON D'ENTRÉE"
}

func typeColor(t entity.MovementType) *props.Color {
	if t == entity.MovementTypeExit {
		return colorExit
	}
	return colorEntry
}

// headerRow: empresa y título (izq); número corto y fecha (der).
func headerRow(company string, m *entity.Movement) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(nonEmpty(company, "StockFlow"), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(voucherTitle(m.Type), props.Text{
				Style: fontstyle.Bold, Size: 11, Top: 9, Color: typeColor(m.Type),
			}),
		),
		col.New(5).Add(
			text.New("N° "+shortID(m.ID), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 2,
			}),
			text.New("Date : "+m.Date.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 10, Color: colorGray,
			}),
		),
	)
}

// productRow: datos del producto movido.
func productRow(m *entity.Movement, p *entity.Product) core.Row {
	name, sku, brand, model := m.ProductName, m.ProductSKU, m.BrandName, m.ModelName
	if p != nil {
		name, sku = p.Name, p.SKU
		if p.Brand != nil {
			brand = p.Brand.Name
		}
		if p.Model != nil {
			model = p.Model.Name
		}
	}
	return row.New(16).Add(
		col.New(12).Add(
			text.New("PRODUIT", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(nonEmpty(name, "—"), props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("SKU : %s   |   Marque : %s   |   Modèle : %s",
				nonEmpty(sku, "—"), nonEmpty(brand, "—"), nonEmpty(model, "—"),
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

// referencesRow: quién registró y a quién/desde dónde va la mercancía.
func referencesRow(m *entity.Movement) core.Row {
	detail := "Fournisseur : " + nonEmpty(m.SupplierName, "—")
	if m.Type == entity.MovementTypeExit {
		detail = fmt.Sprintf("Demandeur : %s   |   Projet : %s   |   Destination : %s",
			nonEmpty(m.RequesterName, "—"),
			nonEmpty(m.ProjectName, "—"),
			nonEmpty(m.Destination, "—"),
		)
	}
	return row.New(14).Add(
		col.New(12).Add(
			text.New("RÉFÉRENCES", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New("Enregistré par : "+nonEmpty(m.UserName, "—"), props.Text{Size: 8, Top: 6}),
			text.New(detail, props.Text{Size: 8, Top: 10, Color: colorGray}),
		),
	)
}

func quantityRow(m *entity.Movement) core.Row {
	return row.New(12).Add(
		col.New(6).Add(text.New("Quantité", props.Text{
			Style: fontstyle.Bold, Size: 10, Top: 3,
		})),
		col.New(6).Add(text.New(strconv.Itoa(m.Quantity), props.Text{
			Style: fontstyle.Bold, Size: 14, Align: align.Right, Top: 2, Color: typeColor(m.Type),
		})),
	)
}

func serialHeaderRow() core.Row {
	return row.New(7).Add(
		col.New(2).Add(text.New("#", props.Text{
			Style: fontstyle.Bold, Size: 8, Align: align.Center, Top: 1, Color: colorPrimary,
		})),
		col.New(10).Add(text.New("Numéro de série", props.Text{
			Style: fontstyle.Bold, Size: 8, Top: 1, Left: 1, Color: colorPrimary,
		})),
	)
}

// serialRows: una fila por serial, en el orden enviado.
func serialRows(serials []string) []core.Row {
	rows := make([]core.Row, 0, len(serials))
	for i, s := range serials {
		rows = append(rows, row.New(6).Add(
			col.New(2).Add(text.New(strconv.Itoa(i+1), props.Text{
				Size: 8, Align: align.Center, Top: 1,
			})),
			col.New(10).Add(text.New(s, props.Text{Size: 8, Top: 1, Left: 1})),
		))
	}
	return rows
}

// footerRow: QR con el id completo y espacio para firmas.
func footerRow(m *entity.Movement) core.Row {
	return row.New(40).Add(
		col.New(3).Add(code.NewQr(m.ID, props.Rect{Percent: 90, Center: true})),
		col.New(9).Add(
			text.New("Signature magasinier", props.Text{Size: 8, Top: 4, Left: 3, Color: colorGray}),
			text.New("Signature "+signatureParty(m.Type), props.Text{
				Size: 8, Top: 4, Align: align.Right, Color: colorGray,
			}),
			text.New("Mouvement "+m.ID, props.Text{Size: 6.5, Top: 34, Left: 3, Color: colorGray}),
		),
	)
}

func signatureParty(t entity.MovementType) string {
	if t == entity.MovementTypeExit {
		return "demandeur"
	}
	return "livreur"
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// shortID primeros 8 caracteres del uuid, en mayúsculas.
func shortID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	b := []byte(id)
	for i, c := range b {
		if c >= 'a' && c <= 'z' {
			b[i] = c - 'a' + 'A'
		}
	}
	return string(b)
}
