package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin      = "admin"
	RoleMarketing  = "marketing"
	RoleTechnician = "technician"
)

// ValidRole indica si role es uno de los roles soportados.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleMarketing, RoleTechnician:
		return true
	}
	return false
}

// User representa un usuario de la aplicación.
type User struct {
	ID           string
	Name         string
	Username     string
	Email        string
	PasswordHash string // bcrypt; nunca se serializa
	Role         string // admin, marketing, technician
	AvatarURL    string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
