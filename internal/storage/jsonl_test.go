package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/pharmadesk/pkg/types"
)

func TestWriteReadJSONL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "products.jsonl")
	records := []json.RawMessage{
		json.RawMessage(`{"id":"a"}`),
		json.RawMessage(`{"id":"b"}`),
	}
	require.NoError(t, writeJSONL(path, records))

	got, err := readJSONL(path)
	require.NoError(t, err)
	assert.Equal(t, records, got)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")
}

func TestReadJSONLSkipsMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wishlist.jsonl")
	content := strings.Join([]string{`{"id":"a"}`, ``, `{not json`, `{"id":"b"}`}, "\n")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	got, err := readJSONL(path)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.JSONEq(t, `{"id":"b"}`, string(got[1]))
}

func TestExportImport(t *testing.T) {
	ctx := t.Context()
	src := setupBackend(t)

	p, err := src.Products().Create(ctx, types.Product{Name: "Paracetamol", Stock: 5, MinimumStock: 10})
	require.NoError(t, err)
	_, err = src.Wishlist().Create(ctx, types.WishlistItem{ProductName: "Paracetamol", Quantity: 20})
	require.NoError(t, err)

	dir := t.TempDir()
	counts, err := src.Export(ctx, dir)
	require.NoError(t, err)
	assert.Equal(t, 1, counts[types.TableProducts])
	assert.Equal(t, 1, counts[types.TableWishlist])
	assert.Equal(t, 0, counts[types.TableOrders])
	for _, name := range types.StandardTableNames {
		_, err := os.Stat(filepath.Join(dir, jsonlFile(name)))
		assert.NoError(t, err, name)
	}

	dst := setupBackend(t)
	counts, err = dst.Import(ctx, dir)
	require.NoError(t, err)
	assert.Equal(t, 1, counts[types.TableProducts])

	got, err := dst.Products().GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p, got)

	// Importing again upserts instead of duplicating.
	_, err = dst.Import(ctx, dir)
	require.NoError(t, err)
	all, err := dst.Products().List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestImportSkipsMissingFilesAndRecordsWithoutID(t *testing.T) {
	dir := t.TempDir()
	content := `{"name":"no id"}` + "\n" + `{"id":"c1","name":"Luis","created_at":"2026-01-02T03:04:05Z","updated_at":"2026-01-02T03:04:05Z"}` + "\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, jsonlFile(types.TableCustomers)), []byte(content), 0o644))

	b := setupBackend(t)
	counts, err := b.Import(t.Context(), dir)
	require.NoError(t, err)
	assert.Equal(t, 1, counts[types.TableCustomers])
	assert.NotContains(t, counts, types.TableProducts)

	c, err := b.Customers().GetByID(t.Context(), "c1")
	require.NoError(t, err)
	assert.Equal(t, "Luis", c.Name)
}
