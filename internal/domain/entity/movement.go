package entity

import (
	"strings"
	"time"
)

// MovementType tipo de movimiento de stock.
type MovementType string

// Tipos de movimiento.
const (
	MovementTypeEntry MovementType = "ENTRY" // entrada
	MovementTypeExit  MovementType = "EXIT"  // salida
)

// ParseMovementType normaliza el tipo recibido. Acepta también ENTREE/SORTIE del frontend original.
func ParseMovementType(s string) (MovementType, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "ENTRY", "ENTREE", "ENTRÉE":
		return MovementTypeEntry, true
	case "EXIT", "SORTIE":
		return MovementTypeExit, true
	}
	return "", false
}

// Movement es un registro inmutable del libro de movimientos (entrada o salida).
type Movement struct {
	ID            string
	Type          MovementType
	Quantity      int // siempre positivo
	Date          time.Time
	ProductID     string
	UserID        string
	RequesterID   string   // opcional (salidas)
	SupplierID    string   // opcional (entradas)
	Destination   string   // opcional (salidas)
	ProjectID     string   // opcional (salidas)
	SerialNumbers []string // seriales tal como se enviaron, en orden
	Document      *MovementDocument

	// Datos desnormalizados para listados (solo lectura).
	ProductName   string
	ProductSKU    string
	BrandName     string
	ModelName     string
	UserName      string
	RequesterName string
	SupplierName  string
	ProjectName   string
}

// MovementDocument justificativo adjunto a un movimiento.
// En listados Data viene vacío; se descarga por separado.
type MovementDocument struct {
	Filename string
	Mime     string
	Data     []byte
}
