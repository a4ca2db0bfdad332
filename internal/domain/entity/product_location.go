package entity

// ProductLocation ubicación física (góndola, pasillo, sector) con su código de barras.
type ProductLocation struct {
	ID          string
	Barcode     *string
	Description *string
}
