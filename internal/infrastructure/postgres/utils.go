package postgres

import (
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

// Códigos SQLSTATE usados para traducir errores del driver a errores de dominio.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeCheckViolation      = "23514"
)

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool { return pgCode(err) == codeUniqueViolation }

// isForeignKeyViolation verifica si un error es una violación de clave foránea (23503).
func isForeignKeyViolation(err error) bool { return pgCode(err) == codeForeignKeyViolation }

// isCheckViolation verifica si un error es una violación de CHECK (23514), ej. quantity >= 0.
func isCheckViolation(err error) bool { return pgCode(err) == codeCheckViolation }

// nullIfEmpty convierte "" en NULL para columnas uuid opcionales.
func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// nonNil evita escribir NULL en columnas text[] NOT NULL.
func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// parseUUIDs convierte ids de texto a uuid.UUID para parámetros uuid[] en formato binario.
func parseUUIDs(ids []string) ([]uuid.UUID, error) {
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		u, err := uuid.Parse(id)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, nil
}
