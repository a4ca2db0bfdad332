package dto

import "time"

// TeamRequest entrada para crear o editar un equipo.
type TeamRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

// TeamResponse equipo.
type TeamResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}

// LocationRequest entrada para crear una ubicación.
type LocationRequest struct {
	Barcode     *string `json:"barcode"`
	Description *string `json:"description"`
}

// LocationResponse ubicación de productos.
type LocationResponse struct {
	ID          string  `json:"id"`
	Barcode     *string `json:"barcode"`
	Description *string `json:"description"`
}
