package csvimport_test

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/jhoicas/inventory-count-api/internal/domain"
	"github.com/jhoicas/inventory-count-api/internal/infrastructure/csvimport"
)

func TestReadProducts_Coma(t *testing.T) {
	in := "ean,name,category,price,stock\n" +
		"7891000100103,Arroz 1kg,Granos,3.50,10\n" +
		"\n" +
		"7891000100110,Aceite,,12,\n"
	items, err := csvimport.ReadProducts(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "7891000100103", items[0].EAN)
	assert.Equal(t, "Arroz 1kg", items[0].Name)
	assert.True(t, decimal.RequireFromString("3.5").Equal(items[0].Price))
	assert.Equal(t, 10, items[0].StockQuantity)
	assert.Equal(t, 0, items[1].StockQuantity)
}

func TestReadProducts_PuntoYComaEncabezadosEnEspanol(t *testing.T) {
	in := "\ufeffCódigo;Descripción;Categoría;Precio;Cantidad\n" +
		"111;Café molido;Bebidas;1.234,50;3\n"
	items, err := csvimport.ReadProducts(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "111", items[0].EAN)
	assert.Equal(t, "Café molido", items[0].Name)
	assert.Equal(t, "Bebidas", items[0].Category)
	assert.True(t, decimal.RequireFromString("1234.50").Equal(items[0].Price))
	assert.Equal(t, 3, items[0].StockQuantity)
}

func TestReadProducts_Windows1252(t *testing.T) {
	utf := "codigo;descricao;preco\n222;Feijão;7,90\n"
	latin, err := charmap.Windows1252.NewEncoder().String(utf)
	require.NoError(t, err)

	items, err := csvimport.ReadProducts(strings.NewReader(latin))
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Feijão", items[0].Name)
	assert.True(t, decimal.RequireFromString("7.9").Equal(items[0].Price))
}

func TestReadProducts_Errores(t *testing.T) {
	tests := []struct {
		name string
		in   string
		msg  string
	}{
		{"vacío", "", "vacío"},
		{"sin columna ean", "name,price\nA,1\n", "ean"},
		{"ean vacío", "ean,name\n1,A\n,B\n", "línea 3"},
		{"precio inválido", "ean,price\n1,abc\n", "línea 2"},
		{"cantidad fraccionaria", "ean,stock\n1,2.5\n", "línea 2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := csvimport.ReadProducts(strings.NewReader(tt.in))
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestReadExpectedStock(t *testing.T) {
	in := "EAN;Expected Quantity\n111;8\n222;\"10,0\"\n"
	items, err := csvimport.ReadExpectedStock(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, 8, items[0].ExpectedQuantity)
	assert.Equal(t, 10, items[1].ExpectedQuantity)
}

func TestReadExpectedStock_RequiereCantidad(t *testing.T) {
	_, err := csvimport.ReadExpectedStock(strings.NewReader("ean,name\n1,A\n"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = csvimport.ReadExpectedStock(strings.NewReader("ean,qty\n1,-3\n"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
