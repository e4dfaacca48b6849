package inventory

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/stockflow-api/internal/application/dto"
	"github.com/jhoicas/stockflow-api/internal/domain"
	"github.com/jhoicas/stockflow-api/internal/domain/entity"
	"github.com/jhoicas/stockflow-api/internal/domain/repository"
	"github.com/jhoicas/stockflow-api/pkg/validation"
)

// MovementQueryUseCase lecturas del libro de movimientos.
type MovementQueryUseCase struct {
	movRepo      repository.MovementRepository
	productRepo  repository.ProductRepository
	userRepo     repository.UserRepository
	partnerRepo  repository.LookupRepository[entity.Partner]
	supplierRepo repository.LookupRepository[entity.Supplier]
}

// NewMovementQueryUseCase construye el caso de uso.
func NewMovementQueryUseCase(
	movRepo repository.MovementRepository,
	productRepo repository.ProductRepository,
	userRepo repository.UserRepository,
	partnerRepo repository.LookupRepository[entity.Partner],
	supplierRepo repository.LookupRepository[entity.Supplier],
) *MovementQueryUseCase {
	return &MovementQueryUseCase{
		movRepo:      movRepo,
		productRepo:  productRepo,
		userRepo:     userRepo,
		partnerRepo:  partnerRepo,
		supplierRepo: supplierRepo,
	}
}

// List devuelve movimientos del más reciente al más antiguo.
func (uc *MovementQueryUseCase) List(ctx context.Context, in dto.MovementListRequest) (*dto.MovementListResponse, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	in.DefaultPage()
	filter := repository.MovementFilter{
		ProductID: in.ProductID,
		From:      in.From,
		To:        in.To,
		Limit:     in.Limit,
		Offset:    in.Offset,
	}
	if in.Type != "" {
		t, ok := entity.ParseMovementType(in.Type)
		if !ok {
			return nil, domain.ErrInvalidInput
		}
		filter.Type = t
	}
	if in.From != nil && in.To != nil && in.To.Before(*in.From) {
		return nil, domain.ErrInvalidInput
	}
	list, err := uc.movRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &dto.MovementListResponse{
		Items: dto.FromMovements(list),
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset},
	}, nil
}

// GetByID devuelve un movimiento o ErrNotFound.
func (uc *MovementQueryUseCase) GetByID(ctx context.Context, id string) (*entity.Movement, error) {
	m, err := uc.movRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrNotFound
	}
	return m, nil
}

// GetDocument devuelve el justificativo del movimiento; ErrNotFound si no existe o no tiene.
func (uc *MovementQueryUseCase) GetDocument(ctx context.Context, id string) (*entity.MovementDocument, error) {
	doc, err := uc.movRepo.GetDocument(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, domain.ErrNotFound
	}
	return doc, nil
}

// FormData carga en paralelo productos, usuarios, partners y proveedores.
func (uc *MovementQueryUseCase) FormData(ctx context.Context) (*dto.MovementFormDataResponse, error) {
	var (
		products  []*entity.Product
		users     []*entity.User
		partners  []entity.Partner
		suppliers []entity.Supplier
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		products, err = uc.productRepo.List(gctx, repository.ProductFilter{})
		return err
	})
	g.Go(func() (err error) {
		users, err = uc.userRepo.List(gctx)
		return err
	})
	g.Go(func() (err error) {
		partners, err = uc.partnerRepo.List(gctx)
		return err
	})
	g.Go(func() (err error) {
		suppliers, err = uc.supplierRepo.List(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := &dto.MovementFormDataResponse{
		Products:  make([]dto.ProductResponse, 0, len(products)),
		Users:     make([]dto.UserResponse, 0, len(users)),
		Partners:  partners,
		Suppliers: suppliers,
	}
	for _, p := range products {
		out.Products = append(out.Products, dto.FromProduct(p, false))
	}
	for _, u := range users {
		out.Users = append(out.Users, dto.FromUser(u))
	}
	return out, nil
}
