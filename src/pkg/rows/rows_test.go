package rows

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeEmptyInput(t *testing.T) {
	table, err := Normalize(nil)
	require.NoError(t, err)
	assert.Empty(t, table)
}

func TestNormalizeDefaults(t *testing.T) {
	table, err := Normalize([]RawRow{{"date": "2024-01-01"}})
	require.NoError(t, err)
	require.Len(t, table, 1)

	row := table[0]
	assert.Equal(t, 1, row.Quantity)
	assert.True(t, row.UnitPrice.IsZero())
	assert.True(t, row.Total.IsZero())
	assert.Equal(t, UnknownModel, row.Model)
	assert.Equal(t, "2024-01-01", row.Date)
}

func TestNormalizeRecomputesTotal(t *testing.T) {
	table, err := Normalize([]RawRow{
		{"quantity": "3", "unit_price": "10.50", "total": "1.00"},
	})
	require.NoError(t, err)
	assert.Equal(t, "31.50", table[0].Total.StringFixed(2))
}

func TestNormalizePriceFallback(t *testing.T) {
	withPrice, err := Normalize([]RawRow{{"quantity": float64(2), "price": 9.99}})
	require.NoError(t, err)

	withUnitPrice, err := Normalize([]RawRow{{"quantity": float64(2), "unit_price": 9.99}})
	require.NoError(t, err)

	assert.Equal(t, "19.98", withPrice[0].Total.StringFixed(2))
	assert.True(t, withPrice[0].Total.Equal(withUnitPrice[0].Total))
}

func TestNormalizeBadQuantity(t *testing.T) {
	_, err := Normalize([]RawRow{
		{"quantity": "2", "unit_price": "1.00"},
		{"quantity": "abc", "unit_price": "1.00"},
	})
	require.Error(t, err)

	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Equal(t, 1, validationErr.Row)
	assert.Equal(t, "quantity", validationErr.Field)
	assert.Equal(t, "abc", validationErr.Value)
}

func TestNormalizeBadUnitPrice(t *testing.T) {
	_, err := Normalize([]RawRow{{"unit_price": "ten"}})

	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Equal(t, 0, validationErr.Row)
	assert.Equal(t, "unit_price", validationErr.Field)
}

func TestNormalizeNegativeValuesRejected(t *testing.T) {
	_, err := Normalize([]RawRow{{"quantity": "-1"}})
	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Equal(t, "quantity", validationErr.Field)

	_, err = Normalize([]RawRow{{"unit_price": "-0.01"}})
	require.True(t, errors.As(err, &validationErr))
	assert.Equal(t, "unit_price", validationErr.Field)
}

func TestNormalizePreservesOrder(t *testing.T) {
	table, err := Normalize([]RawRow{
		{"order_id": "A1", "unit_price": "1"},
		{"order_id": "A2", "unit_price": "2"},
		{"order_id": "A3", "unit_price": "3"},
	})
	require.NoError(t, err)
	require.Len(t, table, 3)
	assert.Equal(t, "A1", table[0].OrderID)
	assert.Equal(t, "A2", table[1].OrderID)
	assert.Equal(t, "A3", table[2].OrderID)
}

func TestNormalizeFractionalQuantityRejected(t *testing.T) {
	_, err := Normalize([]RawRow{{"quantity": 2.5}})
	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Equal(t, "quantity", validationErr.Field)
}

func TestNormalizeExactArithmetic(t *testing.T) {
	// 0.1 + 0.2 style drift must not appear in totals.
	table, err := Normalize([]RawRow{
		{"quantity": "1", "unit_price": "0.10"},
		{"quantity": "1", "unit_price": "0.20"},
	})
	require.NoError(t, err)

	sum := decimal.Zero
	for _, row := range table {
		sum = sum.Add(row.Total)
	}
	assert.True(t, sum.Equal(decimal.RequireFromString("0.30")))
}
