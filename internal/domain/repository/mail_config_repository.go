package repository

import (
	"context"

	"github.com/jhoicas/stockflow-api/internal/domain/entity"
)

// MailConfigRepository persiste el registro único de configuración SMTP.
type MailConfigRepository interface {
	// Get devuelve (nil, nil) si aún no se ha guardado.
	Get(ctx context.Context) (*entity.MailConfig, error)
	// Save crea o actualiza el registro. Si SMTPPass es vacío se conserva el anterior.
	Save(ctx context.Context, cfg *entity.MailConfig) error
}
