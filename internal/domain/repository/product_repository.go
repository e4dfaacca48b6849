package repository

import (
	"context"

	"github.com/jhoicas/stockflow-api/internal/domain/entity"
)

// ProductFilter filtros de listado de productos.
type ProductFilter struct {
	Search string // nombre o SKU, sin distinguir mayúsculas
	Limit  int    // 0 = sin límite
	Offset int
}

// ProductRepository define el puerto de persistencia para Product (DIP).
// GetByID y GetForUpdate devuelven (nil, nil) si el producto no existe.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// GetForUpdate lee cantidad y seriales bloqueando la fila hasta el fin de la transacción.
	GetForUpdate(ctx context.Context, id string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	// UpdateStock escribe solo cantidad y seriales (motor de movimientos).
	UpdateStock(ctx context.Context, id string, quantity int, serials []string) error
	List(ctx context.Context, filter ProductFilter) ([]*entity.Product, error)
	Delete(ctx context.Context, id string) error
}

// ProductImageRepository puerto para las fotos de productos.
type ProductImageRepository interface {
	// Replace borra las imágenes del producto y guarda las nuevas con SortOrder según su posición.
	Replace(ctx context.Context, productID string, images []entity.ProductImage) error
	ListByProduct(ctx context.Context, productID string) ([]entity.ProductImage, error)
	// ListByProducts agrupa por producto las imágenes de varios productos.
	ListByProducts(ctx context.Context, productIDs []string) (map[string][]entity.ProductImage, error)
}
