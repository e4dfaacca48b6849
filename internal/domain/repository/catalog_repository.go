package repository

import "context"

// LookupRepository puerto genérico para las tablas de referencia
// (categorías, marcas, modelos, proveedores, emplacements, partners, proyectos).
type LookupRepository[T any] interface {
	// List devuelve todos los registros ordenados por nombre.
	List(ctx context.Context) ([]T, error)
	Create(ctx context.Context, item *T) error
	// Delete devuelve domain.ErrNotFound si no existe y domain.ErrConflict si está referenciado.
	Delete(ctx context.Context, id string) error
}
