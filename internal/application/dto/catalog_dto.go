package dto

import "github.com/shopspring/decimal"

// ProductImportItem fila de importación del catálogo.
type ProductImportItem struct {
	EAN           string          `json:"ean"`
	Name          string          `json:"name"`
	Category      string          `json:"category"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int             `json:"stockQuantity"`
}

// ExpectedStockImportItem fila de importación del stock esperado del cliente.
type ExpectedStockImportItem struct {
	EAN              string `json:"ean"`
	ExpectedQuantity int    `json:"expectedQuantity"`
}

// ImportResponse resumen de una importación.
type ImportResponse struct {
	Message   string `json:"message"`
	Processed int    `json:"processed"`
	Created   int    `json:"created"`
	Updated   int    `json:"updated"`
}

// ProductResponse producto del catálogo.
type ProductResponse struct {
	ID            string          `json:"id"`
	EAN           string          `json:"ean"`
	Name          string          `json:"name"`
	Category      string          `json:"category"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int             `json:"stockQuantity"`
}
