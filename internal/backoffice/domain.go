// Package backoffice drives the entity stores from their repositories. Each
// controller wraps every remote call in the same flag discipline: loading is
// raised before the call, the error is recorded after it, and the store is
// only written with what the repository returned.
package backoffice

import (
	"context"
	"log"

	"github.com/mesh-intelligence/pharmadesk/internal/store"
	"github.com/mesh-intelligence/pharmadesk/pkg/types"
)

// Domain pairs one store with the repository that feeds it.
type Domain[T types.Entity[T], F types.Filter[T]] struct {
	store *store.Store[T, F]
	repo  types.Repository[T]
}

// NewDomain returns a controller for s backed by repo.
func NewDomain[T types.Entity[T], F types.Filter[T]](s *store.Store[T, F], repo types.Repository[T]) *Domain[T, F] {
	return &Domain[T, F]{store: s, repo: repo}
}

// Store returns the store the controller writes to.
func (d *Domain[T, F]) Store() *store.Store[T, F] { return d.store }

// Fetch reloads the whole list from the repository. On failure the previous
// list is kept and the error is recorded.
func (d *Domain[T, F]) Fetch(ctx context.Context) error {
	d.store.SetLoading(true)
	defer d.store.SetLoading(false)

	list, err := d.repo.List(ctx)
	if err != nil {
		return d.fail("fetching", "", err)
	}
	d.store.SetEntities(list)
	d.store.SetError(nil)
	return nil
}

// Get fetches a single entity without touching the store.
func (d *Domain[T, F]) Get(ctx context.Context, id string) (T, error) {
	return d.repo.GetByID(ctx, id)
}

// Create persists v and appends the stored entity.
func (d *Domain[T, F]) Create(ctx context.Context, v T) (T, error) {
	d.store.SetLoading(true)
	defer d.store.SetLoading(false)

	created, err := d.repo.Create(ctx, v)
	if err != nil {
		var zero T
		return zero, d.fail("creating", "", err)
	}
	d.store.Add(created)
	d.store.SetError(nil)
	return created, nil
}

// Save replaces the entity with the given ID by v.
func (d *Domain[T, F]) Save(ctx context.Context, id string, v T) (T, error) {
	d.store.SetLoading(true)
	defer d.store.SetLoading(false)

	saved, err := d.repo.Update(ctx, id, v)
	if err != nil {
		var zero T
		return zero, d.fail("saving", id, err)
	}
	d.store.Update(id, types.Replace(saved))
	d.store.SetError(nil)
	return saved, nil
}

// Patch merges patch into the current entity and saves the result. The
// current value comes from the store, or from the repository when the store
// does not hold it.
func (d *Domain[T, F]) Patch(ctx context.Context, id string, patch types.Patch[T]) (T, error) {
	current, ok := d.store.Get(id)
	if !ok {
		var err error
		if current, err = d.repo.GetByID(ctx, id); err != nil {
			var zero T
			return zero, d.fail("patching", id, err)
		}
	}
	return d.Save(ctx, id, patch.Apply(current))
}

// Remove deletes the entity remotely, then locally.
func (d *Domain[T, F]) Remove(ctx context.Context, id string) error {
	d.store.SetLoading(true)
	defer d.store.SetLoading(false)

	if err := d.repo.Delete(ctx, id); err != nil {
		return d.fail("removing", id, err)
	}
	d.store.Delete(id)
	d.store.SetError(nil)
	return nil
}

func (d *Domain[T, F]) fail(op, id string, err error) error {
	if id != "" {
		log.Printf("%s: %s %s: %v", d.store.Name(), op, id, err)
	} else {
		log.Printf("%s: %s: %v", d.store.Name(), op, err)
	}
	d.store.SetError(err)
	return err
}
