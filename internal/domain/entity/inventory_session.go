package entity

import "time"

// SessionStatus estado del ciclo de vida de una sesión de inventario.
type SessionStatus string

const (
	SessionOpen       SessionStatus = "Open"
	SessionInProgress SessionStatus = "InProgress"
	SessionClosed     SessionStatus = "Closed"
)

// Valid indica si el estado es uno de los conocidos.
func (s SessionStatus) Valid() bool {
	switch s {
	case SessionOpen, SessionInProgress, SessionClosed:
		return true
	}
	return false
}

// InventorySession representa un levantamiento de inventario para un cliente.
// Open -> InProgress con el primer conteo; Closed solo por acción administrativa.
type InventorySession struct {
	ID         string
	ClientName string
	TeamID     *string
	StartDate  time.Time
	EndDate    *time.Time
	Status     SessionStatus
}

// IsClosed indica si la sesión ya no acepta conteos.
func (s *InventorySession) IsClosed() bool {
	return s.Status == SessionClosed
}

// IsActive indica si la sesión está abierta o en curso.
func (s *InventorySession) IsActive() bool {
	return s.Status == SessionOpen || s.Status == SessionInProgress
}

// SessionSummary sesión con los acumulados que muestra el listado.
type SessionSummary struct {
	InventorySession
	TotalItemsCounted  int
	UniqueItemsCounted int
}
