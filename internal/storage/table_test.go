package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/pharmadesk/pkg/types"
)

func TestProductsCRUD(t *testing.T) {
	b := setupBackend(t)
	ctx := t.Context()
	repo := b.Products()

	clock := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	b.now = func() time.Time { return clock }

	created, err := repo.Create(ctx, types.Product{
		ID:    "ignored",
		Name:  "Ibuprofen 400mg",
		Tags:  []string{"analgesic"},
		Price: 4.5,
		Stock: 12,
	})
	require.NoError(t, err)
	assert.NotEqual(t, "ignored", created.ID)
	assert.Len(t, created.ID, 36)
	assert.Equal(t, clock, created.CreatedAt)
	assert.Equal(t, clock, created.UpdatedAt)

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)

	clock = clock.Add(time.Hour)
	changed := got
	changed.Stock = 3
	changed.CreatedAt = time.Time{}
	updated, err := repo.Update(ctx, created.ID, changed)
	require.NoError(t, err)
	assert.Equal(t, 3, updated.Stock)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	assert.Equal(t, clock, updated.UpdatedAt)

	got, err = repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, updated, got)

	require.NoError(t, repo.Delete(ctx, created.ID))
	_, err = repo.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestListInsertionOrder(t *testing.T) {
	b := setupBackend(t)
	ctx := t.Context()
	repo := b.Wishlist()

	names := []string{"Amoxicillin", "Cetirizine", "Bisoprolol"}
	for _, n := range names {
		_, err := repo.Create(ctx, types.WishlistItem{ProductName: n, Quantity: 1, Status: types.WishlistPending})
		require.NoError(t, err)
	}

	items, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 3)
	for i, n := range names {
		assert.Equal(t, n, items[i].ProductName)
	}
}

func TestListEmpty(t *testing.T) {
	b := setupBackend(t)
	orders, err := b.Orders().List(t.Context())
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestRepositoryErrors(t *testing.T) {
	b := setupBackend(t)
	ctx := t.Context()

	tests := []struct {
		name    string
		run     func() error
		wantErr error
	}{
		{
			name: "get unknown id",
			run: func() error {
				_, err := b.Products().GetByID(ctx, "missing")
				return err
			},
			wantErr: types.ErrNotFound,
		},
		{
			name: "get empty id",
			run: func() error {
				_, err := b.Products().GetByID(ctx, "")
				return err
			},
			wantErr: types.ErrInvalidID,
		},
		{
			name: "update unknown id",
			run: func() error {
				_, err := b.Customers().Update(ctx, "missing", types.Customer{Name: "X"})
				return err
			},
			wantErr: types.ErrNotFound,
		},
		{
			name: "delete unknown id",
			run: func() error {
				return b.Quotations().Delete(ctx, "missing")
			},
			wantErr: types.ErrNotFound,
		},
		{
			name: "create invalid product",
			run: func() error {
				_, err := b.Products().Create(ctx, types.Product{Name: " "})
				return err
			},
			wantErr: types.ErrInvalidName,
		},
		{
			name: "create wishlist item without quantity",
			run: func() error {
				_, err := b.Wishlist().Create(ctx, types.WishlistItem{ProductName: "Insulin"})
				return err
			},
			wantErr: types.ErrInvalidData,
		},
		{
			name: "create closing with negative expenses",
			run: func() error {
				_, err := b.Closings().Create(ctx, types.CashClosing{Expenses: -1})
				return err
			},
			wantErr: types.ErrInvalidData,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.run(), tt.wantErr)
		})
	}
}

func TestOrderLinesRoundTrip(t *testing.T) {
	b := setupBackend(t)
	ctx := t.Context()

	created, err := b.Orders().Create(ctx, types.Order{
		Number: "ORD-0001",
		Status: types.OrderPending,
		Items: []types.LineItem{
			{ProductID: "p1", Quantity: 2, UnitPrice: 10},
			{ProductID: "p2", Quantity: 1, UnitPrice: 5},
		},
	})
	require.NoError(t, err)

	got, err := b.Orders().GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Items, got.Items)
	assert.InDelta(t, 25.0, got.Total(), 1e-9)
}
