package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin   = "ADMIN"
	RoleManager = "MANAGER"
	RoleCounter = "COUNTER"
)

// ValidRole indica si role es uno de los roles del sistema.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleManager, RoleCounter:
		return true
	}
	return false
}

// User representa un usuario del sistema; los contadores pertenecen a un Team.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Role         string
	TeamID       *string
	CreatedAt    time.Time
}
