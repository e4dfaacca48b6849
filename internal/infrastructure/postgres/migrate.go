package postgres

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"gorm.io/gorm"

	"github.com/jhoicas/stockflow-api/internal/domain/entity"
)

//go:embed schema.sql
var schemaSQL string

// Migrate crea el esquema. Es idempotente: se ejecuta en cada arranque.
// Primero las tablas de referencia (GORM), luego el núcleo que las referencia.
func Migrate(ctx context.Context, db *gorm.DB, pool *pgxpool.Pool) error {
	err := db.WithContext(ctx).AutoMigrate(
		&entity.Category{},
		&entity.Brand{},
		&entity.Model{},
		&entity.Supplier{},
		&entity.Location{},
		&entity.Partner{},
		&entity.Project{},
	)
	if err != nil {
		return fmt.Errorf("automigrate: %w", err)
	}
	// Sin argumentos pgx usa el protocolo simple y acepta varias sentencias.
	if _, err := pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("schema.sql: %w", err)
	}
	return nil
}
