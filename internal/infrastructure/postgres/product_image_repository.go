package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/stockflow-api/internal/domain/entity"
	"github.com/jhoicas/stockflow-api/internal/domain/repository"
)

var _ repository.ProductImageRepository = (*ProductImageRepo)(nil)

// ProductImageRepo fotos de producto (bytea) sobre PostgreSQL.
type ProductImageRepo struct {
	q Querier
}

// NewProductImageRepository construye el repositorio. Pasar pool o tx.
func NewProductImageRepository(q Querier) *ProductImageRepo {
	return &ProductImageRepo{q: q}
}

// Replace borra las imágenes del producto y copia las nuevas con COPY.
func (r *ProductImageRepo) Replace(ctx context.Context, productID string, images []entity.ProductImage) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM product_images WHERE product_id = $1`, productID); err != nil {
		return fmt.Errorf("delete product images: %w", err)
	}
	if len(images) == 0 {
		return nil
	}
	pid, err := uuid.Parse(productID)
	if err != nil {
		return fmt.Errorf("copy product images: product id: %w", err)
	}
	rows := make([][]any, 0, len(images))
	for i := range images {
		img := &images[i]
		id, err := uuid.Parse(img.ID)
		if err != nil {
			return fmt.Errorf("copy product images: image id: %w", err)
		}
		img.ProductID = productID
		img.SortOrder = i
		rows = append(rows, []any{id, pid, img.Filename, img.Mime, img.Data, int32(img.SortOrder), img.CreatedAt})
	}
	_, err = r.q.CopyFrom(ctx,
		pgx.Identifier{"product_images"},
		[]string{"id", "product_id", "filename", "mime", "data", "sort_order", "created_at"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return fmt.Errorf("copy product images: %w", err)
	}
	return nil
}

// ListByProduct imágenes de un producto por sort_order.
func (r *ProductImageRepo) ListByProduct(ctx context.Context, productID string) ([]entity.ProductImage, error) {
	byProduct, err := r.ListByProducts(ctx, []string{productID})
	if err != nil {
		return nil, err
	}
	return byProduct[productID], nil
}

// ListByProducts imágenes de varios productos en una sola consulta.
func (r *ProductImageRepo) ListByProducts(ctx context.Context, productIDs []string) (map[string][]entity.ProductImage, error) {
	out := make(map[string][]entity.ProductImage, len(productIDs))
	if len(productIDs) == 0 {
		return out, nil
	}
	ids, err := parseUUIDs(productIDs)
	if err != nil {
		return nil, fmt.Errorf("list product images: %w", err)
	}
	rows, err := r.q.Query(ctx, `
		SELECT id, product_id, filename, mime, data, sort_order, created_at
		FROM product_images
		WHERE product_id = ANY($1)
		ORDER BY product_id, sort_order`, ids)
	if err != nil {
		return nil, fmt.Errorf("list product images: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var img entity.ProductImage
		if err := rows.Scan(&img.ID, &img.ProductID, &img.Filename, &img.Mime, &img.Data, &img.SortOrder, &img.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan product image: %w", err)
		}
		out[img.ProductID] = append(out[img.ProductID], img)
	}
	return out, rows.Err()
}
