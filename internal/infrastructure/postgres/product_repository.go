package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/stockflow-api/internal/domain"
	"github.com/jhoicas/stockflow-api/internal/domain/entity"
	"github.com/jhoicas/stockflow-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `
	p.id, p.name, p.description, p.sku, p.gtin, p.weight, p.color,
	p.purchase_price, p.logistics_cost, p.sale_price, p.quantity, p.serial_numbers,
	p.brand_id, p.model_id, p.category_id, COALESCE(p.location_id::text, ''),
	p.created_at, p.updated_at`

const productSelect = `
	SELECT ` + productColumns + `,
		b.name, m.name, c.name, COALESCE(l.name, '')
	FROM products p
	JOIN brands b ON b.id = p.brand_id
	JOIN models m ON m.id = p.model_id
	JOIN categories c ON c.id = p.category_id
	LEFT JOIN locations l ON l.id = p.location_id`

// Create persiste un nuevo producto. Referencias inexistentes (marca, modelo...) son ErrInvalidInput.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	query := `
		INSERT INTO products (id, name, description, sku, gtin, weight, color,
			purchase_price, logistics_cost, sale_price, quantity, serial_numbers,
			brand_id, model_id, category_id, location_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.Name, p.Description, p.SKU, p.GTIN, p.Weight, p.Color,
		p.PurchasePrice, p.LogisticsCost, p.SalePrice, p.Quantity, nonNil(p.SerialNumbers),
		p.BrandID, p.ModelID, p.CategoryID, nullIfEmpty(p.LocationID), p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return productWriteError("insert product", err)
	}
	return nil
}

// GetByID obtiene un producto con marca, modelo, categoría y emplacement.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	p, err := scanProductWithRefs(r.q.QueryRow(ctx, productSelect+` WHERE p.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// GetForUpdate lee el producto bloqueando su fila (SELECT ... FOR UPDATE) hasta el fin de la transacción.
func (r *ProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products p WHERE p.id = $1 FOR UPDATE`
	var p entity.Product
	err := r.q.QueryRow(ctx, query, id).Scan(productDest(&p)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product for update: %w", err)
	}
	return &p, nil
}

// Update actualiza los campos descriptivos. No toca quantity ni serial_numbers.
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	query := `
		UPDATE products SET name = $2, description = $3, sku = $4, gtin = $5, weight = $6, color = $7,
			purchase_price = $8, logistics_cost = $9, sale_price = $10,
			brand_id = $11, model_id = $12, category_id = $13, location_id = $14, updated_at = $15
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		p.ID, p.Name, p.Description, p.SKU, p.GTIN, p.Weight, p.Color,
		p.PurchasePrice, p.LogisticsCost, p.SalePrice,
		p.BrandID, p.ModelID, p.CategoryID, nullIfEmpty(p.LocationID), p.UpdatedAt,
	)
	if err != nil {
		return productWriteError("update product", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateStock escribe cantidad y seriales (motor de movimientos).
func (r *ProductRepo) UpdateStock(ctx context.Context, id string, quantity int, serials []string) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE products SET quantity = $2, serial_numbers = $3, updated_at = NOW() WHERE id = $1`,
		id, quantity, nonNil(serials),
	)
	if err != nil {
		if isCheckViolation(err) {
			return domain.ErrInsufficientStock
		}
		return fmt.Errorf("update stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista productos ordenados por nombre. Search filtra por nombre o SKU (ILIKE).
func (r *ProductRepo) List(ctx context.Context, f repository.ProductFilter) ([]*entity.Product, error) {
	var (
		where []string
		args  []any
	)
	if s := strings.TrimSpace(f.Search); s != "" {
		args = append(args, "%"+escapeLike(s)+"%")
		where = append(where, fmt.Sprintf("(p.name ILIKE $%d OR p.sku ILIKE $%d)", len(args), len(args)))
	}
	query := productSelect
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY p.name, p.id"
	query += limitOffset(&args, f.Limit, f.Offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var list []*entity.Product
	for rows.Next() {
		p, err := scanProductWithRefs(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Delete elimina un producto. ErrConflict si tiene movimientos (FK).
func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func productDest(p *entity.Product) []any {
	return []any{
		&p.ID, &p.Name, &p.Description, &p.SKU, &p.GTIN, &p.Weight, &p.Color,
		&p.PurchasePrice, &p.LogisticsCost, &p.SalePrice, &p.Quantity, &p.SerialNumbers,
		&p.BrandID, &p.ModelID, &p.CategoryID, &p.LocationID,
		&p.CreatedAt, &p.UpdatedAt,
	}
}

func scanProductWithRefs(row pgx.Row) (*entity.Product, error) {
	var (
		p                                      entity.Product
		brandName, modelName, catName, locName string
	)
	dest := append(productDest(&p), &brandName, &modelName, &catName, &locName)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	p.Brand = &entity.Brand{ID: p.BrandID, Name: brandName}
	p.Model = &entity.Model{ID: p.ModelID, Name: modelName, BrandID: p.BrandID, CategoryID: p.CategoryID}
	p.Category = &entity.Category{ID: p.CategoryID, Name: catName}
	if p.LocationID != "" {
		p.Location = &entity.Location{ID: p.LocationID, Name: locName}
	}
	return &p, nil
}

func productWriteError(op string, err error) error {
	switch {
	case isUniqueViolation(err):
		return domain.ErrDuplicate
	case isForeignKeyViolation(err):
		return fmt.Errorf("%w: referencia inexistente", domain.ErrInvalidInput)
	case isCheckViolation(err):
		return domain.ErrInvalidInput
	}
	return fmt.Errorf("%s: %w", op, err)
}

// escapeLike escapa comodines de LIKE en texto del usuario.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// limitOffset agrega LIMIT/OFFSET parametrizados si limit > 0.
func limitOffset(args *[]any, limit, offset int) string {
	if limit <= 0 {
		return ""
	}
	*args = append(*args, limit, offset)
	return fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(*args)-1, len(*args))
}
