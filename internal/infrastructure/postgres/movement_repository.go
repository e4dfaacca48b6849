package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/stockflow-api/internal/domain/entity"
	"github.com/jhoicas/stockflow-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo libro de movimientos (stock_movements). Solo INSERT y SELECT; un trigger
// en la base rechaza UPDATE y DELETE.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el repositorio. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

const movementSelect = `
	SELECT mv.id, mv.type, mv.quantity, mv.date, mv.product_id, mv.user_id,
		COALESCE(mv.requester_id::text, ''), COALESCE(mv.supplier_id::text, ''),
		mv.destination, COALESCE(mv.project_id::text, ''), mv.serial_numbers,
		mv.document_filename, mv.document_mime,
		p.name, p.sku, b.name, m.name, u.name,
		COALESCE(rq.name, ''), COALESCE(s.name, ''), COALESCE(pr.name, '')
	FROM stock_movements mv
	JOIN products p ON p.id = mv.product_id
	JOIN brands b ON b.id = p.brand_id
	JOIN models m ON m.id = p.model_id
	JOIN users u ON u.id = mv.user_id
	LEFT JOIN users rq ON rq.id = mv.requester_id
	LEFT JOIN suppliers s ON s.id = mv.supplier_id
	LEFT JOIN projects pr ON pr.id = mv.project_id`

// Create inserta el movimiento con el snapshot de seriales y el justificativo.
// Un error de FK (ej. proveedor inexistente) no se traduce: aborta la transacción como error interno.
func (r *MovementRepo) Create(ctx context.Context, m *entity.Movement) error {
	var docName, docMime *string
	var docData []byte
	if m.Document != nil {
		docName, docMime, docData = &m.Document.Filename, &m.Document.Mime, m.Document.Data
	}
	query := `
		INSERT INTO stock_movements (id, type, quantity, date, product_id, user_id, requester_id,
			supplier_id, destination, project_id, serial_numbers,
			document_filename, document_mime, document_data)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(ctx, query,
		m.ID, string(m.Type), m.Quantity, m.Date, m.ProductID, m.UserID, nullIfEmpty(m.RequesterID),
		nullIfEmpty(m.SupplierID), m.Destination, nullIfEmpty(m.ProjectID), nonNil(m.SerialNumbers),
		docName, docMime, docData,
	)
	if err != nil {
		return fmt.Errorf("insert stock movement: %w", err)
	}
	return nil
}

// GetByID devuelve el movimiento con nombres relacionados; Document sin Data.
func (r *MovementRepo) GetByID(ctx context.Context, id string) (*entity.Movement, error) {
	m, err := scanMovement(r.q.QueryRow(ctx, movementSelect+` WHERE mv.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock movement: %w", err)
	}
	return m, nil
}

// List devuelve movimientos del más reciente al más antiguo.
func (r *MovementRepo) List(ctx context.Context, f repository.MovementFilter) ([]*entity.Movement, error) {
	var (
		where []string
		args  []any
	)
	add := func(cond string, v any) {
		args = append(args, v)
		where = append(where, fmt.Sprintf(cond, len(args)))
	}
	if f.ProductID != "" {
		add("mv.product_id = $%d", f.ProductID)
	}
	if f.Type != "" {
		add("mv.type = $%d", string(f.Type))
	}
	if f.From != nil {
		add("mv.date >= $%d", *f.From)
	}
	if f.To != nil {
		add("mv.date <= $%d", *f.To)
	}
	query := movementSelect
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY mv.date DESC, mv.id"
	query += limitOffset(&args, f.Limit, f.Offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()

	var list []*entity.Movement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// GetDocument devuelve el justificativo completo o nil si el movimiento no tiene.
func (r *MovementRepo) GetDocument(ctx context.Context, id string) (*entity.MovementDocument, error) {
	var (
		name, mime *string
		data       []byte
	)
	err := r.q.QueryRow(ctx,
		`SELECT document_filename, document_mime, document_data FROM stock_movements WHERE id = $1`, id,
	).Scan(&name, &mime, &data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement document: %w", err)
	}
	if name == nil || data == nil {
		return nil, nil
	}
	doc := &entity.MovementDocument{Filename: *name, Data: data}
	if mime != nil {
		doc.Mime = *mime
	}
	return doc, nil
}

// CountByProduct cantidad de movimientos de un producto.
func (r *MovementRepo) CountByProduct(ctx context.Context, productID string) (int, error) {
	var n int
	err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM stock_movements WHERE product_id = $1`, productID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count stock movements: %w", err)
	}
	return n, nil
}

func scanMovement(row pgx.Row) (*entity.Movement, error) {
	var (
		m             entity.Movement
		movType       string
		docName, mime *string
	)
	err := row.Scan(
		&m.ID, &movType, &m.Quantity, &m.Date, &m.ProductID, &m.UserID,
		&m.RequesterID, &m.SupplierID,
		&m.Destination, &m.ProjectID, &m.SerialNumbers,
		&docName, &mime,
		&m.ProductName, &m.ProductSKU, &m.BrandName, &m.ModelName, &m.UserName,
		&m.RequesterName, &m.SupplierName, &m.ProjectName,
	)
	if err != nil {
		return nil, err
	}
	m.Type = entity.MovementType(movType)
	if docName != nil {
		m.Document = &entity.MovementDocument{Filename: *docName}
		if mime != nil {
			m.Document.Mime = *mime
		}
	}
	return &m, nil
}
