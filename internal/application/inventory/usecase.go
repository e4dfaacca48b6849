package inventory

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/stockflow-api/internal/application/dto"
	"github.com/jhoicas/stockflow-api/internal/domain"
	"github.com/jhoicas/stockflow-api/internal/domain/entity"
	"github.com/jhoicas/stockflow-api/internal/domain/repository"
	"github.com/jhoicas/stockflow-api/internal/domain/stock"
	"github.com/jhoicas/stockflow-api/pkg/validation"
)

// RegisterMovementUseCase registra entradas y salidas de stock de forma transaccional:
// bloquea la fila del producto (SELECT FOR UPDATE), aplica stock.Apply, guarda el producto
// y el movimiento, y hace Commit o Rollback.
type RegisterMovementUseCase struct {
	txRunner TxRunner
	now      func() time.Time
}

// NewRegisterMovementUseCase construye el caso de uso.
func NewRegisterMovementUseCase(txRunner TxRunner) *RegisterMovementUseCase {
	return &RegisterMovementUseCase{txRunner: txRunner, now: time.Now}
}

// MovementInput entrada del procesador de movimientos.
// UserID es el usuario autenticado; el resto viene del request.
type MovementInput struct {
	UserID      string       `json:"user_id" validate:"required"`
	ProductID   string       `json:"product_id" validate:"required,uuid"`
	Type        string       `json:"type" validate:"required"`
	Quantity    int          `json:"quantity" validate:"min=1"`
	Serials     []string     `json:"serial_numbers"`
	SupplierID  string       `json:"supplier_id" validate:"omitempty,uuid"`
	RequesterID string       `json:"requester_id" validate:"omitempty,uuid"`
	Destination string       `json:"destination"`
	ProjectID   string       `json:"project_id" validate:"omitempty,uuid"`
	Document    *dto.FileDTO `json:"document"`
}

// RegisterMovement aplica un movimiento y devuelve el producto actualizado y el movimiento creado.
// Errores de negocio: ErrInvalidInput, ErrNotFound, ErrInsufficientStock,
// *SerialNotFoundError (errors.Is ErrSerialNotFound) y ErrTooManySerials.
func (uc *RegisterMovementUseCase) RegisterMovement(ctx context.Context, input MovementInput) (*entity.Product, *entity.Movement, error) {
	// Referencias que no son UUID se rechazan antes de llegar a columnas uuid de la base
	if err := validation.Struct(input); err != nil {
		return nil, nil, err
	}
	movType, ok := entity.ParseMovementType(input.Type)
	if !ok || input.Quantity < 1 || strings.TrimSpace(input.ProductID) == "" || input.UserID == "" {
		return nil, nil, domain.ErrInvalidInput
	}
	serials, err := normalizeSerials(input.Serials)
	if err != nil {
		return nil, nil, err
	}
	var doc *entity.MovementDocument
	if input.Document != nil {
		data, err := input.Document.Decode()
		if err != nil {
			return nil, nil, err
		}
		doc = &entity.MovementDocument{
			Filename: strings.TrimSpace(input.Document.Filename),
			Mime:     strings.TrimSpace(input.Document.Mime),
			Data:     data,
		}
	}

	var (
		product  *entity.Product
		movement *entity.Movement
	)
	err = uc.txRunner.Run(ctx, func(productRepo repository.ProductRepository, movRepo repository.MovementRepository) error {
		// Bloquea la fila del producto hasta el Commit para serializar salidas concurrentes
		p, err := productRepo.GetForUpdate(ctx, input.ProductID)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrNotFound
		}
		level, err := stock.Apply(
			stock.Level{Quantity: p.Quantity, Serials: p.SerialNumbers},
			stock.Request{Type: movType, Quantity: input.Quantity, Serials: serials},
		)
		if err != nil {
			return err
		}
		if err := productRepo.UpdateStock(ctx, p.ID, level.Quantity, level.Serials); err != nil {
			return err
		}
		now := uc.now()
		p.Quantity = level.Quantity
		p.SerialNumbers = level.Serials
		p.UpdatedAt = now

		mov := &entity.Movement{
			ID:            uuid.New().String(),
			Type:          movType,
			Quantity:      input.Quantity,
			Date:          now,
			ProductID:     p.ID,
			UserID:        input.UserID,
			RequesterID:   input.RequesterID,
			SupplierID:    input.SupplierID,
			Destination:   strings.TrimSpace(input.Destination),
			ProjectID:     input.ProjectID,
			SerialNumbers: serials,
			Document:      doc,
			ProductName:   p.Name,
			ProductSKU:    p.SKU,
		}
		if err := movRepo.Create(ctx, mov); err != nil {
			return err
		}
		product, movement = p, mov
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return product, movement, nil
}

// RegisterMovementFromRequest adapta el request HTTP al caso de uso.
func (uc *RegisterMovementUseCase) RegisterMovementFromRequest(ctx context.Context, userID string, in dto.RegisterMovementRequest) (*dto.RegisterMovementResponse, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	product, movement, err := uc.RegisterMovement(ctx, MovementInput{
		UserID:      userID,
		ProductID:   in.ProductID,
		Type:        in.Type,
		Quantity:    in.Quantity,
		Serials:     in.SerialNumbers,
		SupplierID:  in.SupplierID,
		RequesterID: in.RequesterID,
		Destination: in.Destination,
		ProjectID:   in.ProjectID,
		Document:    in.Document,
	})
	if err != nil {
		return nil, err
	}
	return &dto.RegisterMovementResponse{
		Product:  dto.FromProduct(product, false),
		Movement: dto.FromMovement(movement),
	}, nil
}

// normalizeSerials recorta espacios y rechaza seriales vacíos. Conserva el orden.
func normalizeSerials(in []string) ([]string, error) {
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" {
			return nil, domain.ErrInvalidInput
		}
		out = append(out, s)
	}
	return out, nil
}
