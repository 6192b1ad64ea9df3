// Package rows turns loosely-typed sales records into a validated, canonical
// table. Nothing downstream of this package accepts an untyped record.
package rows

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// UnknownModel is the sentinel category for rows that carry no model field.
const UnknownModel = "unknown"

/*
RawRow is one record as decoded from a sample file: string values from CSV,
strings or JSON numbers from JSON.
*/
type RawRow map[string]any

/*
SalesRow is one validated sales record.

Total is always recomputed as Quantity × UnitPrice; an incoming total field is
never trusted.
*/
type SalesRow struct {
	Date      string          `json:"date"`
	OrderID   string          `json:"order_id"`
	Model     string          `json:"model"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Total     decimal.Decimal `json:"total"`
}

// SalesTable preserves the input order of its rows.
type SalesTable []SalesRow

/*
ValidationError reports a malformed field on one raw row.
*/
type ValidationError struct {
	Row   int
	Field string
	Value string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("row %d: field '%s' has invalid value '%s'", e.Row, e.Field, e.Value)
}

/*
Normalize converts raw records into a SalesTable.

Rules per row:
  - quantity: integer; absent or empty means 1
  - unit_price: decimal; absent falls back to the price field, then to 0
  - quantity and unit_price must be non-negative
  - date / order_id / model pass through as strings; a missing model lands in
    the "unknown" category
  - total is recomputed as quantity × unit_price

A present but non-numeric field aborts with a *ValidationError naming the row
index and field. Empty input yields an empty table, not an error; whether that
is acceptable is the caller's decision.
*/
func Normalize(rawRows []RawRow) (table SalesTable, err error) {
	table = make(SalesTable, 0, len(rawRows))

	for index, rawRow := range rawRows {
		quantity, quantityErr := intField(rawRow, index, "quantity", 1)
		if quantityErr != nil {
			return nil, quantityErr
		}

		unitPrice, priceErr := priceField(rawRow, index)
		if priceErr != nil {
			return nil, priceErr
		}

		if quantity < 0 {
			return nil, &ValidationError{Row: index, Field: "quantity", Value: fmt.Sprintf("%d", quantity)}
		}
		if unitPrice.IsNegative() {
			return nil, &ValidationError{Row: index, Field: "unit_price", Value: unitPrice.String()}
		}

		model := stringField(rawRow, "model")
		if model == "" {
			model = UnknownModel
		}

		row := SalesRow{
			Date:      stringField(rawRow, "date"),
			OrderID:   stringField(rawRow, "order_id"),
			Model:     model,
			Quantity:  quantity,
			UnitPrice: unitPrice,
			Total:     unitPrice.Mul(decimal.NewFromInt(int64(quantity))),
		}
		table = append(table, row)
	}

	return table, nil
}

/*
stringField returns the trimmed string form of a raw field, or "" when the
field is absent or not a plain string.
*/
func stringField(rawRow RawRow, field string) string {
	value, exists := rawRow[field]
	if !exists || value == nil {
		return ""
	}

	switch typed := value.(type) {
	case string:
		return strings.TrimSpace(typed)
	default:
		return strings.TrimSpace(fmt.Sprintf("%v", typed))
	}
}

/*
intField parses an integer field. An absent field or empty string yields the
default; anything present but non-integral is a *ValidationError.
*/
func intField(rawRow RawRow, rowIndex int, field string, defaultValue int) (parsed int, err error) {
	value, exists := rawRow[field]
	if !exists || value == nil {
		return defaultValue, nil
	}

	switch typed := value.(type) {
	case string:
		trimmed := strings.TrimSpace(typed)
		if trimmed == "" {
			return defaultValue, nil
		}
		asDecimal, parseErr := decimal.NewFromString(trimmed)
		if parseErr != nil || !asDecimal.IsInteger() {
			return 0, &ValidationError{Row: rowIndex, Field: field, Value: trimmed}
		}
		return int(asDecimal.IntPart()), nil
	case float64:
		if typed != math.Trunc(typed) {
			return 0, &ValidationError{Row: rowIndex, Field: field, Value: fmt.Sprintf("%v", typed)}
		}
		return int(typed), nil
	case int:
		return typed, nil
	default:
		return 0, &ValidationError{Row: rowIndex, Field: field, Value: fmt.Sprintf("%v", typed)}
	}
}

/*
priceField resolves the unit price for a row: unit_price first, then price,
then zero.
*/
func priceField(rawRow RawRow, rowIndex int) (price decimal.Decimal, err error) {
	for _, field := range []string{"unit_price", "price"} {
		value, exists := rawRow[field]
		if !exists || value == nil {
			continue
		}

		switch typed := value.(type) {
		case string:
			trimmed := strings.TrimSpace(typed)
			if trimmed == "" {
				continue
			}
			parsed, parseErr := decimal.NewFromString(trimmed)
			if parseErr != nil {
				return decimal.Zero, &ValidationError{Row: rowIndex, Field: field, Value: trimmed}
			}
			return parsed, nil
		case float64:
			return decimal.NewFromFloat(typed), nil
		case int:
			return decimal.NewFromInt(int64(typed)), nil
		default:
			return decimal.Zero, &ValidationError{Row: rowIndex, Field: field, Value: fmt.Sprintf("%v", typed)}
		}
	}

	return decimal.Zero, nil
}
