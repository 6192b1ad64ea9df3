package report

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sales-reporter/src/pkg/rows"
)

func scenarioRows() []rows.RawRow {
	return []rows.RawRow{
		{"date": "2024-01-01", "order_id": "A1", "model": "X", "quantity": "2", "unit_price": "10.0"},
		{"date": "2024-01-01", "order_id": "A2", "model": "Y", "quantity": "1", "unit_price": "5.0"},
		{"date": "2024-01-02", "order_id": "A3", "model": "X", "quantity": "1", "unit_price": "7.5"},
	}
}

func TestGenerateReport(t *testing.T) {
	destination := filepath.Join(t.TempDir(), "reports", "sales.pdf")

	documentPath, err := GenerateReport(scenarioRows(), destination, "Sales Report - test")
	require.NoError(t, err)
	assert.Equal(t, destination, documentPath)

	contents, readErr := os.ReadFile(destination)
	require.NoError(t, readErr)
	assert.Equal(t, "%PDF", string(contents[:4]))
}

func TestGenerateReportEmptyInput(t *testing.T) {
	destination := filepath.Join(t.TempDir(), "sales.pdf")

	_, err := GenerateReport(nil, destination, "t")
	require.Error(t, err)

	var stageErr *StageError
	require.True(t, errors.As(err, &stageErr))
	assert.Equal(t, StageNormalize, stageErr.Stage)

	var emptyErr *EmptyInputError
	assert.True(t, errors.As(err, &emptyErr))

	_, statErr := os.Stat(destination)
	assert.True(t, os.IsNotExist(statErr))
}

func TestGenerateReportValidationFailureTagged(t *testing.T) {
	destination := filepath.Join(t.TempDir(), "sales.pdf")

	_, err := GenerateReport([]rows.RawRow{{"quantity": "abc"}}, destination, "t")
	require.Error(t, err)

	var stageErr *StageError
	require.True(t, errors.As(err, &stageErr))
	assert.Equal(t, StageNormalize, stageErr.Stage)

	var validationErr *rows.ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Equal(t, "quantity", validationErr.Field)

	_, statErr := os.Stat(destination)
	assert.True(t, os.IsNotExist(statErr))
}

func TestGenerateReportBadDateTagged(t *testing.T) {
	destination := filepath.Join(t.TempDir(), "sales.pdf")

	_, err := GenerateReport([]rows.RawRow{
		{"date": "garbage", "model": "X", "unit_price": "1.00"},
	}, destination, "t")
	require.Error(t, err)

	var stageErr *StageError
	require.True(t, errors.As(err, &stageErr))
	assert.Equal(t, StageAggregate, stageErr.Stage)

	var aggregationErr *AggregationError
	assert.True(t, errors.As(err, &aggregationErr))
}

func TestGenerateReportComposeFailureTagged(t *testing.T) {
	// Destination parent is a regular file, so composing must fail and leave
	// nothing behind.
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))
	destination := filepath.Join(blocker, "sales.pdf")

	_, err := GenerateReport(scenarioRows(), destination, "t")
	require.Error(t, err)

	var stageErr *StageError
	require.True(t, errors.As(err, &stageErr))
	assert.Equal(t, StageCompose, stageErr.Stage)

	// Stat fails with ENOTDIR here rather than ENOENT, so only assert that
	// nothing was written.
	_, statErr := os.Stat(destination)
	assert.Error(t, statErr)
}

func TestGenerateReportIdempotentContent(t *testing.T) {
	dir := t.TempDir()
	firstPath := filepath.Join(dir, "first.pdf")
	secondPath := filepath.Join(dir, "second.pdf")

	_, err := GenerateReport(scenarioRows(), firstPath, "t")
	require.NoError(t, err)
	_, err = GenerateReport(scenarioRows(), secondPath, "t")
	require.NoError(t, err)

	// Logical content is identical because the aggregates are: compare them
	// directly rather than the PDF bytes, which carry timestamps.
	table, err := rows.Normalize(scenarioRows())
	require.NoError(t, err)
	first, err := Aggregate(table)
	require.NoError(t, err)
	second, err := Aggregate(table)
	require.NoError(t, err)

	assert.True(t, first.TotalRevenue.Equal(second.TotalRevenue))
	assert.Equal(t, first.OrderCount, second.OrderCount)
	require.Equal(t, len(first.TopCategories), len(second.TopCategories))
	for index := range first.TopCategories {
		assert.Equal(t, first.TopCategories[index].Model, second.TopCategories[index].Model)
		assert.True(t, first.TopCategories[index].Revenue.Equal(second.TopCategories[index].Revenue))
	}
	require.Equal(t, len(first.DailySeries), len(second.DailySeries))

	firstInfo, statErr := os.Stat(firstPath)
	require.NoError(t, statErr)
	secondInfo, statErr := os.Stat(secondPath)
	require.NoError(t, statErr)
	assert.True(t, firstInfo.Size() > 0)
	assert.True(t, secondInfo.Size() > 0)
}
