package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/pharmadesk/pkg/types"
)

// setupBackend attaches a SQLite backend in a temp dir and detaches it when
// the test ends.
func setupBackend(t *testing.T) *Backend {
	t.Helper()
	b := NewBackend()
	require.NoError(t, b.Attach(types.Config{
		Backend: types.BackendSQLite,
		DataDir: t.TempDir(),
	}))
	t.Cleanup(func() { b.Detach() })
	return b
}

func TestAttach(t *testing.T) {
	tests := []struct {
		name    string
		config  func(dir string) types.Config
		wantErr error
	}{
		{
			name: "sqlite creates database file",
			config: func(dir string) types.Config {
				return types.Config{Backend: types.BackendSQLite, DataDir: filepath.Join(dir, "nested")}
			},
		},
		{
			name:    "empty backend",
			config:  func(string) types.Config { return types.Config{} },
			wantErr: types.ErrBackendEmpty,
		},
		{
			name:    "unknown backend",
			config:  func(string) types.Config { return types.Config{Backend: "mysql"} },
			wantErr: types.ErrBackendUnknown,
		},
		{
			name:    "postgres without dsn",
			config:  func(string) types.Config { return types.Config{Backend: types.BackendPostgres} },
			wantErr: types.ErrDSNRequired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			cfg := tt.config(dir)
			b := NewBackend()
			err := b.Attach(cfg)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			defer b.Detach()

			_, err = os.Stat(filepath.Join(cfg.DataDir, DatabaseFile))
			assert.NoError(t, err)
			assert.Equal(t, cfg, b.Config())
		})
	}
}

func TestAttachTwice(t *testing.T) {
	b := setupBackend(t)
	err := b.Attach(types.Config{Backend: types.BackendSQLite, DataDir: t.TempDir()})
	assert.ErrorIs(t, err, types.ErrAlreadyAttached)
}

func TestDetach(t *testing.T) {
	b := setupBackend(t)
	require.NoError(t, b.Detach())
	assert.NoError(t, b.Detach(), "detach is idempotent")

	_, err := b.Products().List(t.Context())
	assert.ErrorIs(t, err, types.ErrBackendDetached)
}

func TestReattachKeepsData(t *testing.T) {
	dir := t.TempDir()
	cfg := types.Config{Backend: types.BackendSQLite, DataDir: dir}

	b := NewBackend()
	require.NoError(t, b.Attach(cfg))
	created, err := b.Customers().Create(t.Context(), types.Customer{Name: "Ana"})
	require.NoError(t, err)
	require.NoError(t, b.Detach())

	b = NewBackend()
	require.NoError(t, b.Attach(cfg))
	defer b.Detach()
	got, err := b.Customers().GetByID(t.Context(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana", got.Name)
}

func TestSchemaStatements(t *testing.T) {
	stmts := schemaStatements([]string{"products", "wishlist"})
	require.Len(t, stmts, 2)
	assert.Contains(t, stmts[0], "CREATE TABLE IF NOT EXISTS products")
	assert.Contains(t, stmts[1], "CREATE TABLE IF NOT EXISTS wishlist")
}
