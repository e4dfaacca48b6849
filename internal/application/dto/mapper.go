package dto

import (
	"encoding/base64"
	"strings"

	"github.com/jhoicas/stockflow-api/internal/domain"
	"github.com/jhoicas/stockflow-api/internal/domain/entity"
)

// MaxFileSize tamaño máximo de un archivo adjunto ya decodificado (10 MiB).
const MaxFileSize = 10 << 20

// Decode valida nombre y MIME y devuelve el contenido decodificado.
// Acepta data URLs ("data:image/png;base64,...").
func (f FileDTO) Decode() ([]byte, error) {
	if strings.TrimSpace(f.Filename) == "" || strings.TrimSpace(f.Mime) == "" {
		return nil, domain.ErrInvalidInput
	}
	raw := f.Data
	if i := strings.Index(raw, ";base64,"); i >= 0 && strings.HasPrefix(raw, "data:") {
		raw = raw[i+len(";base64,"):]
	}
	if base64.StdEncoding.DecodedLen(len(raw)) > MaxFileSize+3 {
		return nil, domain.ErrInvalidInput
	}
	data, err := base64.StdEncoding.DecodeString(raw)
	if err != nil || len(data) == 0 || len(data) > MaxFileSize {
		return nil, domain.ErrInvalidInput
	}
	return data, nil
}

// FromProduct construye la respuesta de un producto. withImageData incluye el base64 de las fotos.
func FromProduct(p *entity.Product, withImageData bool) ProductResponse {
	out := ProductResponse{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		SKU:           p.SKU,
		GTIN:          p.GTIN,
		Weight:        p.Weight,
		Color:         p.Color,
		PurchasePrice: p.PurchasePrice,
		LogisticsCost: p.LogisticsCost,
		SalePrice:     p.SalePrice,
		Quantity:      p.Quantity,
		SerialNumbers: p.SerialNumbers,
		BrandID:       p.BrandID,
		ModelID:       p.ModelID,
		CategoryID:    p.CategoryID,
		LocationID:    p.LocationID,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
	if out.SerialNumbers == nil {
		out.SerialNumbers = []string{}
	}
	if p.Brand != nil {
		out.Brand = &RefDTO{ID: p.Brand.ID, Name: p.Brand.Name}
	}
	if p.Model != nil {
		out.Model = &RefDTO{ID: p.Model.ID, Name: p.Model.Name}
	}
	if p.Category != nil {
		out.Category = &RefDTO{ID: p.Category.ID, Name: p.Category.Name}
	}
	if p.Location != nil {
		out.Location = &RefDTO{ID: p.Location.ID, Name: p.Location.Name}
	}
	for _, img := range p.Images {
		r := ProductImageResponse{
			ID:        img.ID,
			Filename:  img.Filename,
			Mime:      img.Mime,
			Order:     img.SortOrder,
			CreatedAt: img.CreatedAt,
		}
		if withImageData && len(img.Data) > 0 {
			s := base64.StdEncoding.EncodeToString(img.Data)
			r.Data = &s
		}
		out.Images = append(out.Images, r)
	}
	return out
}

// FromMovement construye la respuesta de un movimiento.
func FromMovement(m *entity.Movement) MovementResponse {
	out := MovementResponse{
		ID:       m.ID,
		Type:     string(m.Type),
		Quantity: m.Quantity,
		Date:     m.Date,
		Product: MovementProductDTO{
			ID:    m.ProductID,
			Name:  m.ProductName,
			SKU:   m.ProductSKU,
			Brand: m.BrandName,
			Model: m.ModelName,
		},
		User:          RefDTO{ID: m.UserID, Name: m.UserName},
		Requester:     optionalRef(m.RequesterID, m.RequesterName),
		Supplier:      optionalRef(m.SupplierID, m.SupplierName),
		Project:       optionalRef(m.ProjectID, m.ProjectName),
		Destination:   m.Destination,
		SerialNumbers: m.SerialNumbers,
	}
	if out.SerialNumbers == nil {
		out.SerialNumbers = []string{}
	}
	if m.Document != nil {
		out.Document = &DocumentInfoDTO{
			Filename: m.Document.Filename,
			Mime:     m.Document.Mime,
			URL:      "/api/movements/" + m.ID + "/document",
		}
	}
	return out
}

// FromMovements mapea una lista de movimientos; nunca devuelve nil.
func FromMovements(list []*entity.Movement) []MovementResponse {
	items := make([]MovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, FromMovement(m))
	}
	return items
}

// FromUser construye la respuesta de un usuario sin el hash de password.
func FromUser(u *entity.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Username:  u.Username,
		Email:     u.Email,
		Role:      u.Role,
		AvatarURL: u.AvatarURL,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// FromMailConfig oculta la contraseña; nil si no hay configuración.
func FromMailConfig(c *entity.MailConfig) *MailConfigResponse {
	if c == nil {
		return nil
	}
	emails := c.NotificationEmails
	if emails == nil {
		emails = []string{}
	}
	return &MailConfigResponse{
		ID:                 c.ID,
		SMTPHost:           c.SMTPHost,
		SMTPPort:           c.SMTPPort,
		SMTPUser:           c.SMTPUser,
		HasPassword:        c.SMTPPass != "",
		NotificationEmails: emails,
		UpdatedAt:          c.UpdatedAt,
	}
}

func optionalRef(id, name string) *RefDTO {
	if id == "" {
		return nil
	}
	return &RefDTO{ID: id, Name: name}
}
