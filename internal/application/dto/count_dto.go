package dto

import "time"

// RegisterCountRequest cuerpo de POST /api/inventorysession/:id/count.
// Quantity omitido equivale a 1; la versión la asigna el servidor.
type RegisterCountRequest struct {
	EAN               string  `json:"ean"`
	ProductLocationID *string `json:"productLocationId"`
	Quantity          *int    `json:"quantity"`
}

// RegisterCountResponse respuesta del registro de un conteo.
type RegisterCountResponse struct {
	Message   string    `json:"message"`
	CountID   string    `json:"countId"`
	EAN       string    `json:"ean"`
	CountedAt time.Time `json:"countedAt"`
	Version   int       `json:"countVersion"`
}

// RawCountDTO fila de la exportación de datos crudos.
type RawCountDTO struct {
	ProductLocationID *string   `json:"productLocationId"`
	EAN               string    `json:"ean"`
	Quantity          int       `json:"quantity"`
	CountedAt         time.Time `json:"countedAt"`
	UserID            string    `json:"userId"`
	CountVersion      int       `json:"countVersion"`
}
