package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductRequest entrada para crear o editar un producto.
// Quantity y SerialNumbers solo se usan al crear; en la edición se ignoran.
type ProductRequest struct {
	Name          string           `json:"name" validate:"required,min=1,max=200"`
	ModelID       string           `json:"model_id" validate:"required,uuid"`
	BrandID       string           `json:"brand_id" validate:"required,uuid"`
	CategoryID    string           `json:"category_id" validate:"required,uuid"`
	Description   string           `json:"description"`
	SKU           string           `json:"sku" validate:"max=100"`
	GTIN          string           `json:"gtin" validate:"max=50"`
	Weight        *decimal.Decimal `json:"weight"`
	Color         string           `json:"color"`
	LocationID    string           `json:"location_id" validate:"omitempty,uuid"`
	PurchasePrice *decimal.Decimal `json:"purchase_price"`
	LogisticsCost *decimal.Decimal `json:"logistics_cost"`
	SalePrice     *decimal.Decimal `json:"sale_price"`
	Quantity      *int             `json:"quantity" validate:"omitempty,min=0"`
	SerialNumbers []string         `json:"serial_numbers" validate:"omitempty,dive,required"`
	Images        []FileDTO        `json:"images" validate:"required,min=1,max=6,dive"`
}

// ProductImageResponse imagen serializada (data en base64).
type ProductImageResponse struct {
	ID        string    `json:"id"`
	Filename  string    `json:"filename"`
	Mime      string    `json:"mime"`
	Data      *string   `json:"data"`
	Order     int       `json:"order"`
	CreatedAt time.Time `json:"created_at"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID            string                 `json:"id"`
	Name          string                 `json:"name"`
	Description   string                 `json:"description"`
	SKU           string                 `json:"sku"`
	GTIN          string                 `json:"gtin"`
	Weight        *decimal.Decimal       `json:"weight"`
	Color         string                 `json:"color"`
	PurchasePrice *decimal.Decimal       `json:"purchase_price"`
	LogisticsCost *decimal.Decimal       `json:"logistics_cost"`
	SalePrice     *decimal.Decimal       `json:"sale_price"`
	Quantity      int                    `json:"quantity"`
	SerialNumbers []string               `json:"serial_numbers"`
	BrandID       string                 `json:"brand_id"`
	ModelID       string                 `json:"model_id"`
	CategoryID    string                 `json:"category_id"`
	LocationID    string                 `json:"location_id,omitempty"`
	Brand         *RefDTO                `json:"brand,omitempty"`
	Model         *RefDTO                `json:"model,omitempty"`
	Category      *RefDTO                `json:"category,omitempty"`
	Location      *RefDTO                `json:"location,omitempty"`
	Images        []ProductImageResponse `json:"images,omitempty"`
	CreatedAt     time.Time              `json:"created_at"`
	UpdatedAt     time.Time              `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// ProductFormDataResponse datos para el formulario de productos.
type ProductFormDataResponse struct {
	Brands     any `json:"brands"`
	Categories any `json:"categories"`
	Models     any `json:"models"`
	Locations  any `json:"locations"`
}
