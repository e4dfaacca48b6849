// seed carga las tablas de referencia (categorías, marcas, modelos, proveedores,
// emplacements, partners) desde un CSV separado por ';'.
//
// Uso: go run ./cmd/seed [ruta/catalogo.csv]
// Por defecto busca catalogo.csv en el directorio actual. Los nombres que ya existen
// (sin distinguir mayúsculas ni acentos) se omiten, así que puede ejecutarse varias veces.
package main

import (
	"context"
	"fmt"
	"os"

	"gorm.io/gorm"

	"github.com/jhoicas/stockflow-api/internal/domain/entity"
	"github.com/jhoicas/stockflow-api/internal/infrastructure/postgres"
	"github.com/jhoicas/stockflow-api/pkg/config"
	"github.com/jhoicas/stockflow-api/pkg/logger"
	"github.com/jhoicas/stockflow-api/pkg/textutil"
)

func main() {
	path := "catalogo.csv"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
		os.Exit(1)
	}
	records, err := parseCSV(data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer CSV: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()
	db, err := postgres.NewGorm(pool, log.Component("gorm").Zerolog())
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar gorm")
	}
	if err := postgres.Migrate(ctx, db, pool); err != nil {
		log.Fatal().Err(err).Msg("migrar esquema")
	}

	s := newSeeder(db)
	if err := s.load(ctx); err != nil {
		log.Fatal().Err(err).Msg("leer tablas existentes")
	}
	created, skipped := 0, 0
	for _, rec := range records {
		ok, err := s.apply(ctx, rec)
		if err != nil {
			log.Fatal().Err(err).Int("line", rec.Line).Str("name", rec.Name).Msg("insertar")
		}
		if ok {
			created++
		} else {
			skipped++
		}
	}
	fmt.Printf("Cargado %s: %d creados, %d ya existían\n", path, created, skipped)
}

// seeder inserta registros evitando duplicados por nombre.
type seeder struct {
	categories *postgres.LookupRepo[entity.Category]
	brands     *postgres.LookupRepo[entity.Brand]
	models     *postgres.LookupRepo[entity.Model]
	suppliers  *postgres.LookupRepo[entity.Supplier]
	locations  *postgres.LookupRepo[entity.Location]
	partners   *postgres.LookupRepo[entity.Partner]

	// ids por tipo y nombre plegado
	ids map[string]map[string]string
}

func newSeeder(db *gorm.DB) *seeder {
	return &seeder{
		categories: postgres.NewLookupRepository[entity.Category](db),
		brands:     postgres.NewLookupRepository[entity.Brand](db),
		models:     postgres.NewLookupRepository[entity.Model](db),
		suppliers:  postgres.NewLookupRepository[entity.Supplier](db),
		locations:  postgres.NewLookupRepository[entity.Location](db),
		partners:   postgres.NewLookupRepository[entity.Partner](db),
		ids:        make(map[string]map[string]string),
	}
}

func (s *seeder) remember(kind, name, id string) {
	if s.ids[kind] == nil {
		s.ids[kind] = make(map[string]string)
	}
	s.ids[kind][textutil.Fold(name)] = id
}

func (s *seeder) lookup(kind, name string) (string, bool) {
	id, ok := s.ids[kind][textutil.Fold(name)]
	return id, ok
}

// load registra los nombres ya presentes en la base.
func (s *seeder) load(ctx context.Context) error {
	cats, err := s.categories.List(ctx)
	if err != nil {
		return err
	}
	for _, c := range cats {
		s.remember(kindCategory, c.Name, c.ID)
	}
	brands, err := s.brands.List(ctx)
	if err != nil {
		return err
	}
	for _, b := range brands {
		s.remember(kindBrand, b.Name, b.ID)
	}
	models, err := s.models.List(ctx)
	if err != nil {
		return err
	}
	for _, m := range models {
		s.remember(kindModel, m.BrandID+"/"+m.Name, m.ID)
	}
	sups, err := s.suppliers.List(ctx)
	if err != nil {
		return err
	}
	for _, x := range sups {
		s.remember(kindSupplier, x.Name, x.ID)
	}
	locs, err := s.locations.List(ctx)
	if err != nil {
		return err
	}
	for _, l := range locs {
		s.remember(kindLocation, l.Name, l.ID)
	}
	partners, err := s.partners.List(ctx)
	if err != nil {
		return err
	}
	for _, p := range partners {
		s.remember(kindPartner, p.Name, p.ID)
	}
	return nil
}

// apply inserta rec si no existe. Devuelve false si ya existía.
func (s *seeder) apply(ctx context.Context, rec record) (bool, error) {
	key := rec.Name
	if rec.Kind == kindModel {
		brandID, ok := s.lookup(kindBrand, rec.Extras[0])
		if !ok {
			return false, fmt.Errorf("marca %q no existe (declárela antes del modelo)", rec.Extras[0])
		}
		key = brandID + "/" + rec.Name
	}
	if _, exists := s.lookup(rec.Kind, key); exists {
		return false, nil
	}

	id, err := s.create(ctx, rec)
	if err != nil {
		return false, err
	}
	s.remember(rec.Kind, key, id)
	return true, nil
}

func (s *seeder) create(ctx context.Context, rec record) (string, error) {
	switch rec.Kind {
	case kindCategory:
		c := &entity.Category{Name: rec.Name}
		if err := s.categories.Create(ctx, c); err != nil {
			return "", err
		}
		return c.ID, nil
	case kindBrand:
		b := &entity.Brand{Name: rec.Name}
		if err := s.brands.Create(ctx, b); err != nil {
			return "", err
		}
		return b.ID, nil
	case kindSupplier:
		x := &entity.Supplier{Name: rec.Name}
		if err := s.suppliers.Create(ctx, x); err != nil {
			return "", err
		}
		return x.ID, nil
	case kindLocation:
		l := &entity.Location{Name: rec.Name}
		if err := s.locations.Create(ctx, l); err != nil {
			return "", err
		}
		return l.ID, nil
	case kindPartner:
		p := &entity.Partner{Name: rec.Name, ContactName: rec.Extras[0], Email: rec.Extras[1], Phone1: rec.Extras[2]}
		if err := s.partners.Create(ctx, p); err != nil {
			return "", err
		}
		return p.ID, nil
	case kindModel:
		categoryID, ok := s.lookup(kindCategory, rec.Extras[1])
		if !ok {
			return "", fmt.Errorf("categoría %q no existe (declárela antes del modelo)", rec.Extras[1])
		}
		brandID, _ := s.lookup(kindBrand, rec.Extras[0])
		m := &entity.Model{Name: rec.Name, BrandID: brandID, CategoryID: categoryID}
		if err := s.models.Create(ctx, m); err != nil {
			return "", err
		}
		return m.ID, nil
	}
	return "", fmt.Errorf("tipo desconocido %q", rec.Kind)
}
