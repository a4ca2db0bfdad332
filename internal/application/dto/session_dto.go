package dto

import "time"

// CreateSessionRequest entrada para crear una sesión de inventario.
type CreateSessionRequest struct {
	ClientName string     `json:"clientName"`
	StartDate  time.Time  `json:"startDate"`
	EndDate    *time.Time `json:"endDate"`
	TeamID     *string    `json:"teamId"`
}

// UpdateSessionRequest entrada para editar cliente, equipo y fechas.
// StartDate en cero conserva la fecha actual.
type UpdateSessionRequest struct {
	ClientName string     `json:"clientName"`
	TeamID     *string    `json:"teamId"`
	StartDate  time.Time  `json:"startDate"`
	EndDate    *time.Time `json:"endDate"`
}

// UpdateStatusRequest entrada para cambiar el estado (Open, InProgress, Closed).
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// SessionResponse sesión de inventario.
type SessionResponse struct {
	ID         string     `json:"id"`
	ClientName string     `json:"clientName"`
	Status     string     `json:"status"`
	StartDate  time.Time  `json:"startDate"`
	EndDate    *time.Time `json:"endDate"`
	TeamID     *string    `json:"teamId"`
}

// SessionListItem sesión con acumulados para el listado.
type SessionListItem struct {
	SessionResponse
	TotalItemsCounted  int `json:"totalItemsCounted"`
	UniqueItemsCounted int `json:"uniqueItemsCounted"`
}

// SessionProgressResponse respuesta de GET /:id/progress.
type SessionProgressResponse struct {
	TotalCounts    int    `json:"totalCounts"`
	UniqueProducts int    `json:"uniqueProducts"`
	Status         string `json:"status"`
}

// ActiveSessionResponse sesión activa del equipo del usuario.
type ActiveSessionResponse struct {
	ID         string `json:"id"`
	ClientName string `json:"clientName"`
	Status     string `json:"status"`
}
