package entity

import "time"

// Team equipo de contadores asignable a sesiones.
type Team struct {
	ID          string
	Name        string
	Description *string
	CreatedAt   time.Time
}
