package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mesh-intelligence/pharmadesk/pkg/types"
)

// timeLayout is the storage format for created_at and updated_at.
const timeLayout = time.RFC3339Nano

// validator is implemented by entities that check their own fields.
type validator interface {
	Validate() error
}

// record is one row of an entity table.
type record struct {
	ID        string `db:"id"`
	Data      string `db:"data"`
	CreatedAt string `db:"created_at"`
	UpdatedAt string `db:"updated_at"`
}

// table implements types.Repository for one entity type.
type table[T types.Entity[T]] struct {
	name    string
	backend *Backend
}

var (
	_ types.Repository[types.Product]      = (*table[types.Product])(nil)
	_ types.Repository[types.WishlistItem] = (*table[types.WishlistItem])(nil)
)

func newTable[T types.Entity[T]](b *Backend, name string) *table[T] {
	return &table[T]{name: name, backend: b}
}

// List returns every row ordered by id. UUID v7 ids make this insertion order.
func (t *table[T]) List(ctx context.Context) ([]T, error) {
	db, err := t.backend.conn()
	if err != nil {
		return nil, err
	}

	var rows []record
	query := "SELECT id, data, created_at, updated_at FROM " + t.name + " ORDER BY id"
	if err := db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("listing %s: %w", t.name, err)
	}

	out := make([]T, 0, len(rows))
	for _, r := range rows {
		v, err := decodeRecord[T](r)
		if err != nil {
			return nil, fmt.Errorf("decoding %s %s: %w", t.name, r.ID, err)
		}
		out = append(out, v)
	}
	return out, nil
}

// GetByID retrieves a single entity.
func (t *table[T]) GetByID(ctx context.Context, id string) (T, error) {
	var zero T
	if strings.TrimSpace(id) == "" {
		return zero, types.ErrInvalidID
	}
	db, err := t.backend.conn()
	if err != nil {
		return zero, err
	}

	var r record
	query := db.Rebind("SELECT id, data, created_at, updated_at FROM " + t.name + " WHERE id = ?")
	if err := db.GetContext(ctx, &r, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return zero, types.ErrNotFound
		}
		return zero, fmt.Errorf("getting %s %s: %w", t.name, id, err)
	}
	return decodeRecord[T](r)
}

// Create assigns a UUID v7 and timestamps, then inserts the entity.
func (t *table[T]) Create(ctx context.Context, data T) (T, error) {
	var zero T
	if err := validate(data); err != nil {
		return zero, err
	}
	db, err := t.backend.conn()
	if err != nil {
		return zero, err
	}

	id, err := generateUUID()
	if err != nil {
		return zero, err
	}
	now := t.backend.now().UTC()
	v := data.WithStamp(id, now, now)

	r, err := encodeRecord(v)
	if err != nil {
		return zero, err
	}
	query := db.Rebind("INSERT INTO " + t.name + " (id, data, created_at, updated_at) VALUES (?, ?, ?, ?)")
	if _, err := db.ExecContext(ctx, query, r.ID, r.Data, r.CreatedAt, r.UpdatedAt); err != nil {
		return zero, fmt.Errorf("inserting %s: %w", t.name, err)
	}
	return v, nil
}

// Update replaces the stored document, keeping the original created_at.
func (t *table[T]) Update(ctx context.Context, id string, data T) (T, error) {
	var zero T
	if strings.TrimSpace(id) == "" {
		return zero, types.ErrInvalidID
	}
	if err := validate(data); err != nil {
		return zero, err
	}
	db, err := t.backend.conn()
	if err != nil {
		return zero, err
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return zero, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var created string
	if err := tx.GetContext(ctx, &created, tx.Rebind("SELECT created_at FROM "+t.name+" WHERE id = ?"), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return zero, types.ErrNotFound
		}
		return zero, fmt.Errorf("getting %s %s: %w", t.name, id, err)
	}
	createdAt, err := time.Parse(timeLayout, created)
	if err != nil {
		return zero, fmt.Errorf("parsing created_at of %s %s: %w", t.name, id, err)
	}

	v := data.WithStamp(id, createdAt, t.backend.now().UTC())
	r, err := encodeRecord(v)
	if err != nil {
		return zero, err
	}
	query := tx.Rebind("UPDATE " + t.name + " SET data = ?, updated_at = ? WHERE id = ?")
	if _, err := tx.ExecContext(ctx, query, r.Data, r.UpdatedAt, id); err != nil {
		return zero, fmt.Errorf("updating %s %s: %w", t.name, id, err)
	}
	if err := tx.Commit(); err != nil {
		return zero, fmt.Errorf("committing transaction: %w", err)
	}
	return v, nil
}

// Delete removes a row by id.
func (t *table[T]) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return types.ErrInvalidID
	}
	db, err := t.backend.conn()
	if err != nil {
		return err
	}

	res, err := db.ExecContext(ctx, db.Rebind("DELETE FROM "+t.name+" WHERE id = ?"), id)
	if err != nil {
		return fmt.Errorf("deleting %s %s: %w", t.name, id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if n == 0 {
		return types.ErrNotFound
	}
	return nil
}

func validate(v any) error {
	if val, ok := v.(validator); ok {
		return val.Validate()
	}
	return nil
}

func encodeRecord[T types.Entity[T]](v T) (record, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return record{}, fmt.Errorf("encoding entity: %w", err)
	}
	createdAt, updatedAt := v.Timestamps()
	return record{
		ID:        v.EntityID(),
		Data:      string(data),
		CreatedAt: createdAt.UTC().Format(timeLayout),
		UpdatedAt: updatedAt.UTC().Format(timeLayout),
	}, nil
}

// decodeRecord unmarshals the document and restamps it from the columns,
// which are authoritative.
func decodeRecord[T types.Entity[T]](r record) (T, error) {
	var v T
	if err := json.Unmarshal([]byte(r.Data), &v); err != nil {
		return v, err
	}
	createdAt, err := time.Parse(timeLayout, r.CreatedAt)
	if err != nil {
		return v, err
	}
	updatedAt, err := time.Parse(timeLayout, r.UpdatedAt)
	if err != nil {
		return v, err
	}
	return v.WithStamp(r.ID, createdAt, updatedAt), nil
}
