package backoffice

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/mesh-intelligence/pharmadesk/pkg/types"
)

// memRepo is an in-memory repository with injectable failures.
type memRepo[T types.Entity[T]] struct {
	mu      sync.Mutex
	items   []T
	seq     int
	listErr error
	// failIDs makes Update and Delete fail for the given IDs.
	failIDs map[string]error
	creates int
	updates int
}

func (r *memRepo[T]) List(context.Context) ([]T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.listErr != nil {
		return nil, r.listErr
	}
	return slices.Clone(r.items), nil
}

func (r *memRepo[T]) GetByID(_ context.Context, id string) (T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, v := range r.items {
		if v.EntityID() == id {
			return v, nil
		}
	}
	var zero T
	return zero, types.ErrNotFound
}

func (r *memRepo[T]) Create(_ context.Context, data T) (T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	r.creates++
	now := time.Date(2026, 1, 1, 0, 0, r.seq, 0, time.UTC)
	v := data.WithStamp(fmt.Sprintf("id-%d", r.seq), now, now)
	r.items = append(r.items, v)
	return v, nil
}

func (r *memRepo[T]) Update(_ context.Context, id string, data T) (T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.updates++
	var zero T
	if err := r.failIDs[id]; err != nil {
		return zero, err
	}
	for i, v := range r.items {
		if v.EntityID() == id {
			createdAt, _ := v.Timestamps()
			r.items[i] = data.WithStamp(id, createdAt, createdAt.Add(time.Hour))
			return r.items[i], nil
		}
	}
	return zero, types.ErrNotFound
}

func (r *memRepo[T]) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.failIDs[id]; err != nil {
		return err
	}
	for i, v := range r.items {
		if v.EntityID() == id {
			r.items = slices.Delete(r.items, i, i+1)
			return nil
		}
	}
	return types.ErrNotFound
}

// memRepos implements Repositories.
type memRepos struct {
	products   *memRepo[types.Product]
	customers  *memRepo[types.Customer]
	orders     *memRepo[types.Order]
	quotations *memRepo[types.Quotation]
	wishlist   *memRepo[types.WishlistItem]
	closings   *memRepo[types.CashClosing]
}

func newMemRepos() *memRepos {
	return &memRepos{
		products:   &memRepo[types.Product]{},
		customers:  &memRepo[types.Customer]{},
		orders:     &memRepo[types.Order]{},
		quotations: &memRepo[types.Quotation]{},
		wishlist:   &memRepo[types.WishlistItem]{},
		closings:   &memRepo[types.CashClosing]{},
	}
}

func (m *memRepos) Products() types.Repository[types.Product] { return m.products }
func (m *memRepos) Customers() types.Repository[types.Customer] { return m.customers }
func (m *memRepos) Orders() types.Repository[types.Order] { return m.orders }
func (m *memRepos) Quotations() types.Repository[types.Quotation] { return m.quotations }
func (m *memRepos) Wishlist() types.Repository[types.WishlistItem] { return m.wishlist }
func (m *memRepos) Closings() types.Repository[types.CashClosing] { return m.closings }
