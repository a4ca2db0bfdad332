package entity

import "time"

// InventoryCount es una lectura de conteo (EAN + ubicación + cantidad). Inmutable:
// una corrección es una fila nueva con Version incrementada.
type InventoryCount struct {
	ID                string
	SessionID         string
	EAN               string
	ProductLocationID *string
	Quantity          int
	UserID            string
	CountedAt         time.Time
	Version           int
}

// LocationKey devuelve el id de ubicación o "" si el conteo no tiene ubicación.
func (c InventoryCount) LocationKey() string {
	if c.ProductLocationID == nil {
		return ""
	}
	return *c.ProductLocationID
}
