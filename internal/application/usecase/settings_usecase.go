package usecase

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/stockflow-api/internal/application/dto"
	"github.com/jhoicas/stockflow-api/internal/domain"
	"github.com/jhoicas/stockflow-api/internal/domain/entity"
	"github.com/jhoicas/stockflow-api/internal/domain/repository"
	"github.com/jhoicas/stockflow-api/pkg/validation"
)

// Endpoints de Parámetros.
const (
	EndpointCategories = "categories"
	EndpointBrands     = "brands"
	EndpointModels     = "models"
	EndpointSuppliers  = "suppliers"
	EndpointLocations  = "locations"
	EndpointPartners   = "partners"
	EndpointProjects   = "projects"
	EndpointUsers      = "users"
)

// SettingsEndpoints lista de tablas gestionadas desde Parámetros.
var SettingsEndpoints = []string{
	EndpointCategories, EndpointBrands, EndpointModels, EndpointSuppliers,
	EndpointLocations, EndpointPartners, EndpointProjects, EndpointUsers,
}

// Lookups repositorios de las tablas de referencia.
type Lookups struct {
	Categories repository.LookupRepository[entity.Category]
	Brands     repository.LookupRepository[entity.Brand]
	Models     repository.LookupRepository[entity.Model]
	Suppliers  repository.LookupRepository[entity.Supplier]
	Locations  repository.LookupRepository[entity.Location]
	Partners   repository.LookupRepository[entity.Partner]
	Projects   repository.LookupRepository[entity.Project]
}

// SettingsUseCase CRUD genérico de Parámetros: tablas de referencia, usuarios y correo.
type SettingsUseCase struct {
	lookups Lookups
	users   *UserUseCase
	mail    *MailUseCase
}

// NewSettingsUseCase construye el caso de uso.
func NewSettingsUseCase(lookups Lookups, users *UserUseCase, mail *MailUseCase) *SettingsUseCase {
	return &SettingsUseCase{lookups: lookups, users: users, mail: mail}
}

// Overview carga en paralelo todas las tablas, los usuarios y la configuración de correo.
func (uc *SettingsUseCase) Overview(ctx context.Context) (*dto.SettingsResponse, error) {
	out := &dto.SettingsResponse{}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { out.Categories, err = uc.lookups.Categories.List(gctx); return })
	g.Go(func() (err error) { out.Brands, err = uc.lookups.Brands.List(gctx); return })
	g.Go(func() (err error) { out.Models, err = uc.lookups.Models.List(gctx); return })
	g.Go(func() (err error) { out.Suppliers, err = uc.lookups.Suppliers.List(gctx); return })
	g.Go(func() (err error) { out.Locations, err = uc.lookups.Locations.List(gctx); return })
	g.Go(func() (err error) { out.Partners, err = uc.lookups.Partners.List(gctx); return })
	g.Go(func() (err error) { out.Projects, err = uc.lookups.Projects.List(gctx); return })
	g.Go(func() (err error) { out.Users, err = uc.users.List(gctx); return })
	g.Go(func() (err error) { out.MailConfig, err = uc.mail.Get(gctx); return })
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// List devuelve los registros de un endpoint. ErrNotFound si el endpoint no existe.
func (uc *SettingsUseCase) List(ctx context.Context, endpoint string) (any, error) {
	switch endpoint {
	case EndpointCategories:
		return uc.lookups.Categories.List(ctx)
	case EndpointBrands:
		return uc.lookups.Brands.List(ctx)
	case EndpointModels:
		return uc.lookups.Models.List(ctx)
	case EndpointSuppliers:
		return uc.lookups.Suppliers.List(ctx)
	case EndpointLocations:
		return uc.lookups.Locations.List(ctx)
	case EndpointPartners:
		return uc.lookups.Partners.List(ctx)
	case EndpointProjects:
		return uc.lookups.Projects.List(ctx)
	case EndpointUsers:
		return uc.users.List(ctx)
	}
	return nil, domain.ErrNotFound
}

// Create decodifica el body con decode según el endpoint, valida y persiste.
func (uc *SettingsUseCase) Create(ctx context.Context, endpoint string, decode func(any) error) (any, error) {
	switch endpoint {
	case EndpointCategories:
		return createNamed(ctx, decode, uc.lookups.Categories, func(name string) *entity.Category {
			return &entity.Category{Name: name}
		})
	case EndpointBrands:
		return createNamed(ctx, decode, uc.lookups.Brands, func(name string) *entity.Brand {
			return &entity.Brand{Name: name}
		})
	case EndpointSuppliers:
		return createNamed(ctx, decode, uc.lookups.Suppliers, func(name string) *entity.Supplier {
			return &entity.Supplier{Name: name}
		})
	case EndpointLocations:
		return createNamed(ctx, decode, uc.lookups.Locations, func(name string) *entity.Location {
			return &entity.Location{Name: name}
		})
	case EndpointModels:
		var in dto.ModelRequest
		if err := decodeAndValidate(decode, &in); err != nil {
			return nil, err
		}
		m := &entity.Model{Name: strings.TrimSpace(in.Name), BrandID: in.BrandID, CategoryID: in.CategoryID}
		return m, uc.lookups.Models.Create(ctx, m)
	case EndpointPartners:
		var in dto.PartnerRequest
		if err := decodeAndValidate(decode, &in); err != nil {
			return nil, err
		}
		p := &entity.Partner{
			Name:        strings.TrimSpace(in.Name),
			ContactName: strings.TrimSpace(in.ContactName),
			Email:       strings.ToLower(strings.TrimSpace(in.Email)),
			Phone1:      strings.TrimSpace(in.Phone1),
			Phone2:      in.Phone2,
		}
		return p, uc.lookups.Partners.Create(ctx, p)
	case EndpointProjects:
		var in dto.ProjectRequest
		if err := decodeAndValidate(decode, &in); err != nil {
			return nil, err
		}
		p := &entity.Project{Name: strings.TrimSpace(in.Name), PartnerID: in.PartnerID, Description: in.Description}
		return p, uc.lookups.Projects.Create(ctx, p)
	case EndpointUsers:
		var in dto.CreateUserRequest
		if err := decode(&in); err != nil {
			return nil, domain.ErrInvalidInput
		}
		return uc.users.Create(ctx, in)
	}
	return nil, domain.ErrNotFound
}

// Delete elimina un registro. ErrConflict si otro registro lo referencia.
func (uc *SettingsUseCase) Delete(ctx context.Context, actorID, endpoint, id string) error {
	switch endpoint {
	case EndpointCategories:
		return uc.lookups.Categories.Delete(ctx, id)
	case EndpointBrands:
		return uc.lookups.Brands.Delete(ctx, id)
	case EndpointModels:
		return uc.lookups.Models.Delete(ctx, id)
	case EndpointSuppliers:
		return uc.lookups.Suppliers.Delete(ctx, id)
	case EndpointLocations:
		return uc.lookups.Locations.Delete(ctx, id)
	case EndpointPartners:
		return uc.lookups.Partners.Delete(ctx, id)
	case EndpointProjects:
		return uc.lookups.Projects.Delete(ctx, id)
	case EndpointUsers:
		return uc.users.Delete(ctx, actorID, id)
	}
	return domain.ErrNotFound
}

func decodeAndValidate(decode func(any) error, out any) error {
	if err := decode(out); err != nil {
		return domain.ErrInvalidInput
	}
	return validation.Struct(out)
}

func createNamed[T any](
	ctx context.Context,
	decode func(any) error,
	repo repository.LookupRepository[T],
	build func(name string) *T,
) (*T, error) {
	var in dto.NamedRequest
	if err := decodeAndValidate(decode, &in); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	item := build(name)
	if err := repo.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}
