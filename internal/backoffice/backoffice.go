package backoffice

import (
	"context"
	"fmt"
	"log"
	"maps"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/mesh-intelligence/pharmadesk/internal/store"
	"github.com/mesh-intelligence/pharmadesk/pkg/types"
)

// Repositories hands out one repository per domain. *storage.Backend
// implements it.
type Repositories interface {
	Products() types.Repository[types.Product]
	Customers() types.Repository[types.Customer]
	Orders() types.Repository[types.Order]
	Quotations() types.Repository[types.Quotation]
	Wishlist() types.Repository[types.WishlistItem]
	Closings() types.Repository[types.CashClosing]
}

// Backoffice bundles the six domain stores with their controllers. The
// typed store fields expose the domain-specific derived values; the
// controllers share the same underlying stores.
type Backoffice struct {
	ProductStore   *store.Products
	CustomerStore  *store.Customers
	OrderStore     *store.Orders
	QuotationStore *store.Quotations
	WishlistStore  *store.Wishlist
	ClosingStore   *store.Closings

	Products   *Domain[types.Product, types.ProductFilter]
	Customers  *Domain[types.Customer, types.CustomerFilter]
	Orders     *Domain[types.Order, types.OrderFilter]
	Quotations *Domain[types.Quotation, types.QuotationFilter]
	Wishlist   *Domain[types.WishlistItem, types.WishlistFilter]
	Closings   *Domain[types.CashClosing, types.ClosingFilter]
}

// New builds empty stores wired to repos. Options are passed to every store.
func New(repos Repositories, opts ...store.Option) *Backoffice {
	b := &Backoffice{
		ProductStore:   store.NewProducts(opts...),
		CustomerStore:  store.NewCustomers(opts...),
		OrderStore:     store.NewOrders(opts...),
		QuotationStore: store.NewQuotations(opts...),
		WishlistStore:  store.NewWishlist(opts...),
		ClosingStore:   store.NewClosings(opts...),
	}
	b.Products = NewDomain(b.ProductStore.Store, repos.Products())
	b.Customers = NewDomain(b.CustomerStore.Store, repos.Customers())
	b.Orders = NewDomain(b.OrderStore.Store, repos.Orders())
	b.Quotations = NewDomain(b.QuotationStore.Store, repos.Quotations())
	b.Wishlist = NewDomain(b.WishlistStore.Store, repos.Wishlist())
	b.Closings = NewDomain(b.ClosingStore.Store, repos.Closings())
	return b
}

// FetchAll refreshes every domain concurrently. A failing domain does not
// stop the others; the first error is returned.
func (b *Backoffice) FetchAll(ctx context.Context) error {
	var g errgroup.Group
	g.Go(func() error { return b.Products.Fetch(ctx) })
	g.Go(func() error { return b.Customers.Fetch(ctx) })
	g.Go(func() error { return b.Orders.Fetch(ctx) })
	g.Go(func() error { return b.Quotations.Fetch(ctx) })
	g.Go(func() error { return b.Wishlist.Fetch(ctx) })
	g.Go(func() error { return b.Closings.Fetch(ctx) })
	return g.Wait()
}

// BulkError reports the IDs whose remote update failed during a bulk
// operation.
type BulkError struct {
	Op     string
	Total  int
	Failed map[string]error
}

func (e *BulkError) Error() string {
	return fmt.Sprintf("%s: %d of %d updates failed", e.Op, len(e.Failed), e.Total)
}

// Unwrap returns the individual failures ordered by ID.
func (e *BulkError) Unwrap() []error {
	errs := make([]error, 0, len(e.Failed))
	for _, id := range slices.Sorted(maps.Keys(e.Failed)) {
		errs = append(errs, fmt.Errorf("%s: %w", id, e.Failed[id]))
	}
	return errs
}

// SetWishlistStatus moves the listed wishlist items to status. Each item is
// saved remotely in turn and the values the repository returned replace the
// local ones. Repeated IDs are sent once and IDs the store does not hold are
// skipped. It returns the number of items transitioned and a *BulkError if
// any remote update failed; callers should refetch in that case.
func (b *Backoffice) SetWishlistStatus(ctx context.Context, ids []string, status types.WishlistStatus) (int, error) {
	if !status.Valid() {
		return 0, types.ErrInvalidStatus
	}

	ws := b.WishlistStore
	ws.SetLoading(true)
	defer ws.SetLoading(false)

	repo := b.Wishlist.repo
	var saved []types.WishlistItem
	failed := make(map[string]error)
	seen := make(map[string]bool, len(ids))
	total := 0
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		item, ok := ws.Get(id)
		if !ok {
			continue
		}
		total++
		v, err := repo.Update(ctx, id, item.WithStatus(status))
		if err != nil {
			failed[id] = err
			continue
		}
		saved = append(saved, v)
	}

	n := ws.ReplaceMany(saved)
	if len(failed) > 0 {
		err := &BulkError{Op: "wishlist status", Total: total, Failed: failed}
		log.Printf("%s: %v", ws.Name(), err)
		ws.SetError(err)
		return n, err
	}
	ws.SetError(nil)
	return n, nil
}
