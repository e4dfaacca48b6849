package dto

import "time"

// RegisterMovementRequest body para POST /api/movements.
type RegisterMovementRequest struct {
	ProductID     string   `json:"product_id" validate:"required,uuid"`
	Type          string   `json:"type" validate:"required"`
	Quantity      int      `json:"quantity" validate:"required,min=1"`
	SerialNumbers []string `json:"serial_numbers" validate:"omitempty,dive,required"`
	SupplierID    string   `json:"supplier_id,omitempty" validate:"omitempty,uuid"`
	RequesterID   string   `json:"requester_id,omitempty" validate:"omitempty,uuid"`
	Destination   string   `json:"destination,omitempty"`
	ProjectID     string   `json:"project_id,omitempty" validate:"omitempty,uuid"`
	Document      *FileDTO `json:"document,omitempty"`
}

// MovementListRequest query de GET /api/movements.
type MovementListRequest struct {
	PageRequest
	ProductID string     `query:"product_id" validate:"omitempty,uuid"`
	Type      string     `query:"type"`
	From      *time.Time `query:"-"`
	To        *time.Time `query:"-"`
}

// RefDTO referencia ligera a otra entidad (id + nombre).
type RefDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// MovementProductDTO producto resumido dentro de un movimiento.
type MovementProductDTO struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	SKU   string `json:"sku"`
	Brand string `json:"brand,omitempty"`
	Model string `json:"model,omitempty"`
}

// DocumentInfoDTO metadatos del justificativo (el binario se descarga aparte).
type DocumentInfoDTO struct {
	Filename string `json:"filename"`
	Mime     string `json:"mime"`
	URL      string `json:"url"`
}

// MovementResponse salida de un movimiento del libro.
type MovementResponse struct {
	ID            string             `json:"id"`
	Type          string             `json:"type"`
	Quantity      int                `json:"quantity"`
	Date          time.Time          `json:"date"`
	Product       MovementProductDTO `json:"product"`
	User          RefDTO             `json:"user"`
	Requester     *RefDTO            `json:"requester,omitempty"`
	Supplier      *RefDTO            `json:"supplier,omitempty"`
	Project       *RefDTO            `json:"project,omitempty"`
	Destination   string             `json:"destination,omitempty"`
	SerialNumbers []string           `json:"serial_numbers"`
	Document      *DocumentInfoDTO   `json:"document,omitempty"`
}

// MovementListResponse lista paginada de movimientos.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// RegisterMovementResponse resultado del procesador: producto actualizado + movimiento creado.
type RegisterMovementResponse struct {
	Product  ProductResponse  `json:"product"`
	Movement MovementResponse `json:"movement"`
}

// MovementFormDataResponse datos para el formulario de movimientos.
type MovementFormDataResponse struct {
	Products  []ProductResponse `json:"products"`
	Users     []UserResponse    `json:"users"`
	Partners  any               `json:"partners"`
	Suppliers any               `json:"suppliers"`
}
