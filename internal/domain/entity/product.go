package entity

import "github.com/shopspring/decimal"

// Product producto del catálogo maestro, identificado por EAN (único).
// StockQuantity es la base de divergencias cuando la sesión no tiene stock esperado.
type Product struct {
	ID            string
	EAN           string
	Name          string
	Category      string
	Price         decimal.Decimal
	StockQuantity int
}
