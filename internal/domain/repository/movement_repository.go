package repository

import (
	"context"
	"time"

	"github.com/jhoicas/stockflow-api/internal/domain/entity"
)

// MovementFilter filtros del libro de movimientos.
type MovementFilter struct {
	ProductID string
	Type      entity.MovementType
	From      *time.Time
	To        *time.Time
	Limit     int // 0 = sin límite
	Offset    int
}

// MovementRepository puerto del libro de movimientos. Solo inserción y lectura:
// un movimiento no se actualiza ni se borra.
type MovementRepository interface {
	Create(ctx context.Context, movement *entity.Movement) error
	// GetByID devuelve el movimiento con sus nombres relacionados, sin el binario del justificativo.
	GetByID(ctx context.Context, id string) (*entity.Movement, error)
	List(ctx context.Context, filter MovementFilter) ([]*entity.Movement, error)
	// GetDocument devuelve el justificativo completo o nil si no tiene.
	GetDocument(ctx context.Context, id string) (*entity.MovementDocument, error)
	CountByProduct(ctx context.Context, productID string) (int, error)
}
