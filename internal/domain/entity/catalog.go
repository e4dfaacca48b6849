package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Tablas de referencia administradas desde Parámetros. Se persisten con GORM,
// por eso llevan tags de columna; las respuestas JSON salen directo de estas structs.

// Category categoría de productos.
type Category struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Brand marca.
type Brand struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Model modelo de una marca dentro de una categoría.
type Model struct {
	ID         string    `gorm:"type:uuid;primaryKey" json:"id"`
	Name       string    `gorm:"not null" json:"name"`
	BrandID    string    `gorm:"type:uuid;not null;index" json:"brand_id"`
	Brand      *Brand    `gorm:"constraint:OnDelete:RESTRICT" json:"brand,omitempty"`
	CategoryID string    `gorm:"type:uuid;not null;index" json:"category_id"`
	Category   *Category `gorm:"constraint:OnDelete:RESTRICT" json:"category,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Supplier proveedor (fournisseur) de las entradas.
type Supplier struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Location emplacement físico de almacenamiento.
type Location struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Partner socio comercial al que se asocian proyectos.
type Partner struct {
	ID          string    `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	ContactName string    `gorm:"not null" json:"contact_name"`
	Email       string    `gorm:"not null" json:"email"`
	Phone1      string    `gorm:"not null" json:"phone1"`
	Phone2      *string   `json:"phone2"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Project proyecto de un partner; destino posible de las salidas.
type Project struct {
	ID          string    `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	PartnerID   string    `gorm:"type:uuid;not null;index" json:"partner_id"`
	Partner     *Partner  `gorm:"constraint:OnDelete:RESTRICT" json:"partner,omitempty"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func newID(id *string) {
	if *id == "" {
		*id = uuid.New().String()
	}
}

func (c *Category) BeforeCreate(*gorm.DB) error { newID(&c.ID); return nil }
func (b *Brand) BeforeCreate(*gorm.DB) error    { newID(&b.ID); return nil }
func (m *Model) BeforeCreate(*gorm.DB) error    { newID(&m.ID); return nil }
func (s *Supplier) BeforeCreate(*gorm.DB) error { newID(&s.ID); return nil }
func (l *Location) BeforeCreate(*gorm.DB) error { newID(&l.ID); return nil }
func (p *Partner) BeforeCreate(*gorm.DB) error  { newID(&p.ID); return nil }
func (p *Project) BeforeCreate(*gorm.DB) error  { newID(&p.ID); return nil }
