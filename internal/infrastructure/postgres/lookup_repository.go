package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/jhoicas/stockflow-api/internal/domain"
	"github.com/jhoicas/stockflow-api/internal/domain/entity"
	"github.com/jhoicas/stockflow-api/internal/domain/repository"
)

var (
	_ repository.LookupRepository[entity.Category] = (*LookupRepo[entity.Category])(nil)
	_ repository.LookupRepository[entity.Model]    = (*LookupRepo[entity.Model])(nil)
	_ repository.LookupRepository[entity.Project]  = (*LookupRepo[entity.Project])(nil)
)

// LookupRepo repositorio genérico GORM para las tablas de referencia.
type LookupRepo[T any] struct {
	db       *gorm.DB
	preloads []string
}

// NewLookupRepository construye el repositorio. preloads son relaciones a cargar en List
// (ej. "Brand", "Category" para modelos).
func NewLookupRepository[T any](db *gorm.DB, preloads ...string) *LookupRepo[T] {
	return &LookupRepo[T]{db: db, preloads: preloads}
}

// List devuelve todos los registros ordenados por nombre.
func (r *LookupRepo[T]) List(ctx context.Context) ([]T, error) {
	q := r.db.WithContext(ctx).Order("name")
	for _, p := range r.preloads {
		q = q.Preload(p)
	}
	out := make([]T, 0)
	if err := q.Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list %T: %w", *new(T), err)
	}
	return out, nil
}

// Create inserta item. FK inexistente es ErrInvalidInput; duplicado es ErrDuplicate.
func (r *LookupRepo[T]) Create(ctx context.Context, item *T) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(item).Error
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return domain.ErrDuplicate
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return fmt.Errorf("%w: referencia inexistente", domain.ErrInvalidInput)
	}
	return fmt.Errorf("create %T: %w", *item, err)
}

// Delete elimina por id. ErrNotFound si no existe; ErrConflict si está referenciado.
func (r *LookupRepo[T]) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(new(T))
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrForeignKeyViolated) || isForeignKeyViolation(res.Error) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete %T: %w", *new(T), res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
