// Package csvimport lee planillas CSV de catálogo y de stock esperado tal como
// las exportan los clientes: separador coma o punto y coma, coma decimal,
// encabezados en español, portugués o inglés y archivos en UTF-8 o Windows-1252.
package csvimport

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/inventory-count-api/internal/application/dto"
	"github.com/jhoicas/inventory-count-api/internal/domain"
)

type column int

const (
	colEAN column = iota
	colName
	colCategory
	colPrice
	colStock
)

// aliases encabezados aceptados, ya normalizados (minúsculas, sin acentos ni separadores).
var aliases = map[string]column{
	"ean": colEAN, "codigo": colEAN, "code": colEAN, "cod": colEAN, "barcode": colEAN,
	"codigodebarras": colEAN, "gtin": colEAN,

	"name": colName, "nome": colName, "nombre": colName, "descricao": colName,
	"descripcion": colName, "description": colName, "produto": colName, "producto": colName,

	"category": colCategory, "categoria": colCategory,

	"price": colPrice, "preco": colPrice, "precio": colPrice, "valor": colPrice,

	"stock": colStock, "estoque": colStock, "quantidade": colStock, "cantidad": colStock,
	"quantity": colStock, "qty": colStock, "qtd": colStock, "expected": colStock,
	"expectedquantity": colStock, "stockquantity": colStock, "existencia": colStock,
}

var bom = []byte{0xEF, 0xBB, 0xBF}

// ReadProducts lee el catálogo. Requiere columna de EAN; el resto es opcional.
func ReadProducts(r io.Reader) ([]dto.ProductImportItem, error) {
	var items []dto.ProductImportItem
	err := readRows(r, []column{colEAN}, func(line int, get func(column) string) error {
		ean := get(colEAN)
		if ean == "" {
			return lineError(line, "EAN vacío")
		}
		price := decimal.Zero
		if raw := get(colPrice); raw != "" {
			p, err := parseDecimal(raw)
			if err != nil {
				return lineError(line, "precio inválido %q", raw)
			}
			price = p
		}
		stock := 0
		if raw := get(colStock); raw != "" {
			n, err := parseQuantity(raw)
			if err != nil {
				return lineError(line, "cantidad inválida %q", raw)
			}
			stock = n
		}
		items = append(items, dto.ProductImportItem{
			EAN:           ean,
			Name:          get(colName),
			Category:      get(colCategory),
			Price:         price,
			StockQuantity: stock,
		})
		return nil
	})
	return items, err
}

// ReadExpectedStock lee el stock esperado del cliente: EAN y cantidad, ambos requeridos.
func ReadExpectedStock(r io.Reader) ([]dto.ExpectedStockImportItem, error) {
	var items []dto.ExpectedStockImportItem
	err := readRows(r, []column{colEAN, colStock}, func(line int, get func(column) string) error {
		ean := get(colEAN)
		if ean == "" {
			return lineError(line, "EAN vacío")
		}
		n, err := parseQuantity(get(colStock))
		if err != nil {
			return lineError(line, "cantidad inválida %q", get(colStock))
		}
		items = append(items, dto.ExpectedStockImportItem{EAN: ean, ExpectedQuantity: n})
		return nil
	})
	return items, err
}

func readRows(r io.Reader, required []column, fn func(line int, get func(column) string) error) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("csvimport: leer archivo: %w", err)
	}
	data = bytes.TrimPrefix(data, bom)
	if !utf8.Valid(data) {
		if data, err = charmap.Windows1252.NewDecoder().Bytes(data); err != nil {
			return fmt.Errorf("csvimport: decodificar Windows-1252: %w", err)
		}
	}

	cr := csv.NewReader(bytes.NewReader(data))
	cr.Comma = detectDelimiter(data)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return fmt.Errorf("csvimport: archivo vacío: %w", domain.ErrInvalidInput)
	}
	if err != nil {
		return fmt.Errorf("csvimport: encabezado: %v: %w", err, domain.ErrInvalidInput)
	}
	index := make(map[column]int)
	for i, h := range header {
		if c, ok := aliases[normalizeHeader(h)]; ok {
			if _, dup := index[c]; !dup {
				index[c] = i
			}
		}
	}
	for _, c := range required {
		if _, ok := index[c]; !ok {
			return fmt.Errorf("csvimport: falta la columna %s: %w", columnName(c), domain.ErrInvalidInput)
		}
	}

	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("csvimport: %v: %w", err, domain.ErrInvalidInput)
		}
		if blank(record) {
			continue
		}
		line, _ := cr.FieldPos(0)
		get := func(c column) string {
			i, ok := index[c]
			if !ok || i >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[i])
		}
		if err := fn(line, get); err != nil {
			return err
		}
	}
}

// detectDelimiter elige ';' si la primera línea tiene más puntos y coma que comas.
func detectDelimiter(data []byte) rune {
	first := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		first = data[:i]
	}
	if bytes.Count(first, []byte{';'}) > bytes.Count(first, []byte{','}) {
		return ';'
	}
	return ','
}

// normalizeHeader minúsculas, sin acentos y sin espacios ni separadores.
// La cadena de transformadores tiene estado: se crea una por llamada.
func normalizeHeader(h string) string {
	folder := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(folder, strings.ToLower(strings.TrimSpace(h)))
	if err != nil {
		folded = strings.ToLower(h)
	}
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return -1
	}, folded)
}

// parseDecimal acepta "1234.5", "1234,5", "1.234,50" y "1,234.50".
func parseDecimal(raw string) (decimal.Decimal, error) {
	s := strings.ReplaceAll(strings.TrimSpace(raw), " ", "")
	s = strings.TrimPrefix(s, "$")
	lastComma, lastDot := strings.LastIndex(s, ","), strings.LastIndex(s, ".")
	switch {
	case lastComma >= 0 && lastDot >= 0 && lastComma > lastDot:
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	case lastComma >= 0 && lastDot >= 0:
		s = strings.ReplaceAll(s, ",", "")
	case lastComma >= 0:
		s = strings.Replace(s, ",", ".", 1)
	}
	return decimal.NewFromString(s)
}

// parseQuantity entero no negativo; admite decimales nulos como "10,0".
func parseQuantity(raw string) (int, error) {
	d, err := parseDecimal(raw)
	if err != nil {
		return 0, err
	}
	if !d.IsInteger() || d.IsNegative() {
		return 0, fmt.Errorf("cantidad no entera o negativa: %s", raw)
	}
	return int(d.IntPart()), nil
}

func blank(record []string) bool {
	for _, f := range record {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

func lineError(line int, format string, args ...any) error {
	return fmt.Errorf("línea %d: %s: %w", line, fmt.Sprintf(format, args...), domain.ErrInvalidInput)
}

func columnName(c column) string {
	switch c {
	case colEAN:
		return "ean"
	case colStock:
		return "cantidad"
	}
	return "desconocida"
}
