// Package stock contiene la lógica pura del procesador de movimientos:
// cantidad disponible y conjunto de seriales de un producto frente a una entrada o salida.
package stock

import (
	"github.com/jhoicas/stockflow-api/internal/domain"
	"github.com/jhoicas/stockflow-api/internal/domain/entity"
)

// Level estado de stock de un producto: cantidad disponible y seriales rastreados.
type Level struct {
	Quantity int
	Serials  []string
}

// Request movimiento solicitado sobre un Level.
type Request struct {
	Type     entity.MovementType
	Quantity int
	Serials  []string
}

// Apply calcula el nuevo Level sin efectos secundarios. current no se modifica.
//
// ENTRY: suma la cantidad y une los seriales (los repetidos se ignoran).
// EXIT: exige cantidad suficiente; si hay seriales, todos deben existir y no pueden
// superar la cantidad retirada. Resta la cantidad y quita los seriales.
func Apply(current Level, req Request) (Level, error) {
	if req.Quantity < 1 {
		return current, domain.ErrInvalidInput
	}
	set := NewSerialSet(current.Serials)

	switch req.Type {
	case entity.MovementTypeEntry:
		set.Union(req.Serials)
		return Level{Quantity: current.Quantity + req.Quantity, Serials: set.Slice()}, nil

	case entity.MovementTypeExit:
		if current.Quantity < req.Quantity {
			return current, domain.ErrInsufficientStock
		}
		if len(req.Serials) > 0 {
			if missing := set.Missing(req.Serials); len(missing) > 0 {
				return current, &domain.SerialNotFoundError{Serials: missing}
			}
			if len(req.Serials) > req.Quantity {
				return current, domain.ErrTooManySerials
			}
			set.Difference(req.Serials)
		}
		return Level{Quantity: current.Quantity - req.Quantity, Serials: set.Slice()}, nil
	}
	return current, domain.ErrInvalidInput
}
