package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/stockflow-api/internal/application/dto"
	"github.com/jhoicas/stockflow-api/internal/domain"
	"github.com/jhoicas/stockflow-api/internal/domain/entity"
	"github.com/jhoicas/stockflow-api/internal/domain/repository"
	"github.com/jhoicas/stockflow-api/internal/domain/stock"
	"github.com/jhoicas/stockflow-api/pkg/validation"
)

const maxProductImages = 6

// Tipos MIME aceptados para fotos de producto.
var allowedImageMimes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/webp": true,
	"image/gif":  true,
	"image/heic": true,
	"image/heif": true,
}

// CatalogTxRunner ejecuta escritura de producto + imágenes en una sola transacción.
type CatalogTxRunner interface {
	RunCatalog(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		imageRepo repository.ProductImageRepository,
	) error) error
}

// ProductUseCase casos de uso CRUD para productos. Cantidad y seriales se manejan vía movimientos.
type ProductUseCase struct {
	txRunner     CatalogTxRunner
	repo         repository.ProductRepository
	imageRepo    repository.ProductImageRepository
	movRepo      repository.MovementRepository
	brandRepo    repository.LookupRepository[entity.Brand]
	categoryRepo repository.LookupRepository[entity.Category]
	modelRepo    repository.LookupRepository[entity.Model]
	locationRepo repository.LookupRepository[entity.Location]
}

// ProductDeps dependencias de ProductUseCase.
type ProductDeps struct {
	TxRunner   CatalogTxRunner
	Products   repository.ProductRepository
	Images     repository.ProductImageRepository
	Movements  repository.MovementRepository
	Brands     repository.LookupRepository[entity.Brand]
	Categories repository.LookupRepository[entity.Category]
	Models     repository.LookupRepository[entity.Model]
	Locations  repository.LookupRepository[entity.Location]
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(d ProductDeps) *ProductUseCase {
	return &ProductUseCase{
		txRunner:     d.TxRunner,
		repo:         d.Products,
		imageRepo:    d.Images,
		movRepo:      d.Movements,
		brandRepo:    d.Brands,
		categoryRepo: d.Categories,
		modelRepo:    d.Models,
		locationRepo: d.Locations,
	}
}

// Create crea un producto con sus imágenes en una transacción.
// La cantidad inicial es opcional (0 por defecto); los seriales se deduplican.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.ProductRequest) (*dto.ProductResponse, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	images, err := decodeImages(in.Images)
	if err != nil {
		return nil, err
	}
	qty := 0
	if in.Quantity != nil {
		qty = *in.Quantity
	}
	serials := make([]string, 0, len(in.SerialNumbers))
	for _, s := range in.SerialNumbers {
		if s = strings.TrimSpace(s); s == "" {
			return nil, domain.ErrInvalidInput
		}
		serials = append(serials, s)
	}

	now := time.Now()
	product := &entity.Product{
		ID:            uuid.New().String(),
		Quantity:      qty,
		SerialNumbers: stock.NewSerialSet(serials).Slice(),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	applyProductFields(product, in)

	err = uc.txRunner.RunCatalog(ctx, func(productRepo repository.ProductRepository, imageRepo repository.ProductImageRepository) error {
		if err := productRepo.Create(ctx, product); err != nil {
			return err
		}
		return imageRepo.Replace(ctx, product.ID, images)
	})
	if err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, product.ID)
}

// GetByID obtiene un producto con relaciones e imágenes. ErrNotFound si no existe.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	product.Images, err = uc.imageRepo.ListByProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	out := dto.FromProduct(product, true)
	return &out, nil
}

// List lista productos ordenados por nombre; q filtra por nombre o SKU.
func (uc *ProductUseCase) List(ctx context.Context, q string, page dto.PageRequest) (*dto.ProductListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(ctx, repository.ProductFilter{
		Search: strings.TrimSpace(q),
		Limit:  page.Limit,
		Offset: page.Offset,
	})
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(list))
	for _, p := range list {
		ids = append(ids, p.ID)
	}
	images, err := uc.imageRepo.ListByProducts(ctx, ids)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		p.Images = images[p.ID]
		items = append(items, dto.FromProduct(p, true))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Update actualiza los campos descriptivos y reemplaza las imágenes.
// No modifica cantidad ni seriales (se manejan vía movimientos).
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.ProductRequest) (*dto.ProductResponse, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	images, err := decodeImages(in.Images)
	if err != nil {
		return nil, err
	}
	err = uc.txRunner.RunCatalog(ctx, func(productRepo repository.ProductRepository, imageRepo repository.ProductImageRepository) error {
		product, err := productRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		applyProductFields(product, in)
		product.UpdatedAt = time.Now()
		if err := productRepo.Update(ctx, product); err != nil {
			return err
		}
		return imageRepo.Replace(ctx, id, images)
	})
	if err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, id)
}

// Delete elimina un producto. ErrConflict si ya tiene movimientos.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	n, err := uc.movRepo.CountByProduct(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return domain.ErrConflict
	}
	return uc.repo.Delete(ctx, id)
}

// FormData listas para el formulario de producto, cargadas en paralelo.
func (uc *ProductUseCase) FormData(ctx context.Context) (*dto.ProductFormDataResponse, error) {
	var (
		brands     []entity.Brand
		categories []entity.Category
		models     []entity.Model
		locations  []entity.Location
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { brands, err = uc.brandRepo.List(gctx); return })
	g.Go(func() (err error) { categories, err = uc.categoryRepo.List(gctx); return })
	g.Go(func() (err error) { models, err = uc.modelRepo.List(gctx); return })
	g.Go(func() (err error) { locations, err = uc.locationRepo.List(gctx); return })
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &dto.ProductFormDataResponse{
		Brands:     brands,
		Categories: categories,
		Models:     models,
		Locations:  locations,
	}, nil
}

func applyProductFields(p *entity.Product, in dto.ProductRequest) {
	p.Name = strings.TrimSpace(in.Name)
	p.Description = in.Description
	p.SKU = strings.TrimSpace(in.SKU)
	p.GTIN = strings.TrimSpace(in.GTIN)
	p.Weight = in.Weight
	p.Color = in.Color
	p.PurchasePrice = in.PurchasePrice
	p.LogisticsCost = in.LogisticsCost
	p.SalePrice = in.SalePrice
	p.BrandID = in.BrandID
	p.ModelID = in.ModelID
	p.CategoryID = in.CategoryID
	p.LocationID = in.LocationID
}

// decodeImages valida MIME, tamaño y cantidad (1..6). SortOrder sigue el orden recibido.
func decodeImages(files []dto.FileDTO) ([]entity.ProductImage, error) {
	if len(files) == 0 || len(files) > maxProductImages {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	out := make([]entity.ProductImage, 0, len(files))
	for i, f := range files {
		mime := strings.ToLower(strings.TrimSpace(f.Mime))
		if !allowedImageMimes[mime] {
			return nil, domain.ErrInvalidInput
		}
		data, err := f.Decode()
		if err != nil {
			return nil, err
		}
		out = append(out, entity.ProductImage{
			ID:        uuid.New().String(),
			Filename:  strings.TrimSpace(f.Filename),
			Mime:      mime,
			Data:      data,
			SortOrder: i,
			CreatedAt: now,
		})
	}
	return out, nil
}
