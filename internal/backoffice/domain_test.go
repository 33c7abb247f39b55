package backoffice

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/pharmadesk/internal/store"
	"github.com/mesh-intelligence/pharmadesk/pkg/types"
)

func newProductDomain(repo *memRepo[types.Product]) *Domain[types.Product, types.ProductFilter] {
	return NewDomain(store.NewProducts().Store, repo)
}

func TestFetch(t *testing.T) {
	repo := &memRepo[types.Product]{items: []types.Product{
		{ID: "a", Name: "Aspirin"},
		{ID: "b", Name: "Betadine"},
	}}
	d := newProductDomain(repo)

	require.NoError(t, d.Fetch(t.Context()))
	s := d.Store()
	assert.Len(t, s.Entities(), 2)
	assert.Len(t, s.View(), 2)
	assert.False(t, s.Loading())
	assert.NoError(t, s.Err())
}

func TestFetchFailureKeepsList(t *testing.T) {
	repo := &memRepo[types.Product]{items: []types.Product{{ID: "a", Name: "Aspirin"}}}
	d := newProductDomain(repo)
	require.NoError(t, d.Fetch(t.Context()))

	boom := errors.New("connection refused")
	repo.listErr = boom
	err := d.Fetch(t.Context())
	assert.ErrorIs(t, err, boom)

	s := d.Store()
	assert.ErrorIs(t, s.Err(), boom)
	assert.False(t, s.Loading())
	assert.Len(t, s.Entities(), 1, "previous list is kept")

	repo.listErr = nil
	require.NoError(t, d.Fetch(t.Context()))
	assert.NoError(t, s.Err(), "success clears the error")
}

func TestCreateSaveRemove(t *testing.T) {
	repo := &memRepo[types.Product]{}
	d := newProductDomain(repo)
	ctx := t.Context()

	created, err := d.Create(ctx, types.Product{Name: "Omeprazole", Stock: 4})
	require.NoError(t, err)
	assert.Equal(t, "id-1", created.ID)
	got, ok := d.Store().Get("id-1")
	require.True(t, ok)
	assert.Equal(t, created, got)

	changed := created
	changed.Stock = 40
	saved, err := d.Save(ctx, created.ID, changed)
	require.NoError(t, err)
	got, _ = d.Store().Get(created.ID)
	assert.Equal(t, 40, got.Stock)
	assert.Equal(t, saved.UpdatedAt, got.UpdatedAt)

	require.NoError(t, d.Remove(ctx, created.ID))
	assert.Zero(t, d.Store().Len())
}

func TestSaveFailureLeavesStore(t *testing.T) {
	boom := errors.New("conflict")
	repo := &memRepo[types.Product]{
		items:   []types.Product{{ID: "a", Name: "Aspirin", Stock: 1}},
		failIDs: map[string]error{"a": boom},
	}
	d := newProductDomain(repo)
	require.NoError(t, d.Fetch(t.Context()))

	_, err := d.Save(t.Context(), "a", types.Product{Name: "Aspirin", Stock: 99})
	assert.ErrorIs(t, err, boom)

	got, _ := d.Store().Get("a")
	assert.Equal(t, 1, got.Stock)
	assert.ErrorIs(t, d.Store().Err(), boom)

	err = d.Remove(t.Context(), "a")
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, d.Store().Len())
}

func TestPatch(t *testing.T) {
	tests := []struct {
		name    string
		fetch   bool
		id      string
		wantErr error
	}{
		{name: "patches the cached entity", fetch: true, id: "a"},
		{name: "falls back to the repository", fetch: false, id: "a"},
		{name: "unknown id", fetch: true, id: "zzz", wantErr: types.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &memRepo[types.Product]{items: []types.Product{
				{ID: "a", Name: "Aspirin", Tags: []string{"otc"}, Stock: 3},
			}}
			d := newProductDomain(repo)
			if tt.fetch {
				require.NoError(t, d.Fetch(t.Context()))
			}

			stock := 12
			got, err := d.Patch(t.Context(), tt.id, types.ProductPatch{Stock: &stock})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, 12, got.Stock)
			assert.Equal(t, "Aspirin", got.Name)
			assert.Equal(t, []string{"otc"}, got.Tags)

			stored, err := repo.GetByID(t.Context(), "a")
			require.NoError(t, err)
			assert.Equal(t, 12, stored.Stock)
		})
	}
}

func TestGetDoesNotTouchStore(t *testing.T) {
	repo := &memRepo[types.Product]{items: []types.Product{{ID: "a", Name: "Aspirin"}}}
	d := newProductDomain(repo)

	got, err := d.Get(t.Context(), "a")
	require.NoError(t, err)
	assert.Equal(t, "Aspirin", got.Name)
	assert.Zero(t, d.Store().Len())
}
