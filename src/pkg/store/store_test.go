package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureDir(t *testing.T) {
	target := filepath.Join(t.TempDir(), "a", "b")
	require.NoError(t, EnsureDir(target))

	info, statErr := os.Stat(target)
	require.NoError(t, statErr)
	assert.True(t, info.IsDir())
}

func TestListReports(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"sales_20240101_120000.pdf", "sales_20240301_120000.pdf", "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}

	names, err := ListReports(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"sales_20240301_120000.pdf", "sales_20240101_120000.pdf"}, names)
}

func TestListSent(t *testing.T) {
	dir := t.TempDir()
	first := `{"id":1,"timestamp":"t1","from":"a","to":"b","subject":"s","body":"x","attachment":"1.pdf"}`
	second := `{"id":2,"timestamp":"t2","from":"a","to":"b","subject":"s","body":"x","attachment":"2.pdf"}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "1.json"), []byte(first), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "2.json"), []byte(second), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.json"), []byte("{nope"), 0o644))

	records, err := ListSent(dir)
	require.NoError(t, err)

	// Malformed record is skipped, the rest come back newest first.
	require.Len(t, records, 2)
	assert.Equal(t, 2, records[0].ID)
	assert.Equal(t, 1, records[1].ID)
	assert.Equal(t, "2.pdf", records[0].Attachment)
}

func TestListSentEmptyDir(t *testing.T) {
	records, err := ListSent(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, records)
}
