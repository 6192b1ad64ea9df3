package samples

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir string, name string, contents string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(contents), 0o644))
}

func TestList(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.csv", "")
	writeFile(t, dir, "a.json", "[]")
	writeFile(t, dir, "notes.txt", "ignored")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.csv"), 0o755))

	names, err := List(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.json", "b.csv"}, names)
}

func TestLoadRowsCSV(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "sales.csv",
		"date,order_id,model,quantity,unit_price\n"+
			"2024-01-01,A1,X,2,10.0\n"+
			"2024-01-01,A2,Y,1,5.0\n")

	rawRows, err := LoadRows(dir, "sales.csv")
	require.NoError(t, err)
	require.Len(t, rawRows, 2)

	assert.Equal(t, "A1", rawRows[0]["order_id"])
	assert.Equal(t, "2", rawRows[0]["quantity"])
	assert.Equal(t, "5.0", rawRows[1]["unit_price"])
}

func TestLoadRowsJSON(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "sales.json",
		`[{"date":"2024-01-01","order_id":"A1","model":"X","quantity":2,"price":9.99}]`)

	rawRows, err := LoadRows(dir, "sales.json")
	require.NoError(t, err)
	require.Len(t, rawRows, 1)

	assert.Equal(t, "X", rawRows[0]["model"])
	assert.Equal(t, float64(2), rawRows[0]["quantity"])
	assert.Equal(t, 9.99, rawRows[0]["price"])
}

func TestLoadRowsRejectsPaths(t *testing.T) {
	_, err := LoadRows(t.TempDir(), "../escape.csv")
	require.Error(t, err)
}

func TestLoadRowsUnknownExtension(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "sales.xml", "<rows/>")

	_, err := LoadRows(dir, "sales.xml")
	require.Error(t, err)
}

func TestLoadRowsMissingFile(t *testing.T) {
	_, err := LoadRows(t.TempDir(), "absent.csv")
	require.Error(t, err)
}

func TestLoadRowsEmptyCSV(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "empty.csv", "")

	rawRows, err := LoadRows(dir, "empty.csv")
	require.NoError(t, err)
	assert.Empty(t, rawRows)
}
