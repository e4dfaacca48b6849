package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un artículo del catálogo con su stock disponible.
// Quantity y SerialNumbers solo se modifican a través de movimientos de stock.
type Product struct {
	ID            string
	Name          string
	Description   string
	SKU           string
	GTIN          string           // código GTIN/EAN
	Weight        *decimal.Decimal // kg
	Color         string
	PurchasePrice *decimal.Decimal
	LogisticsCost *decimal.Decimal
	SalePrice     *decimal.Decimal
	Quantity      int      // nunca negativo
	SerialNumbers []string // sin duplicados; no tiene que coincidir con Quantity
	BrandID       string
	ModelID       string
	CategoryID    string
	LocationID    string // vacío si no tiene emplacement
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// Relaciones cargadas en lecturas (pueden ser nil).
	Brand    *Brand
	Model    *Model
	Category *Category
	Location *Location
	Images   []ProductImage
}

// ProductImage foto de un producto. SortOrder define el orden de presentación.
type ProductImage struct {
	ID        string
	ProductID string
	Filename  string
	Mime      string
	Data      []byte
	SortOrder int
	CreatedAt time.Time
}
