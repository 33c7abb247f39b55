// Package storage implements the relational data-access layer behind the
// back-office stores. Entities are kept as JSON documents in one table per
// domain, in SQLite for local use or PostgreSQL for a shared server.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/pharmadesk/pkg/types"
)

// Driver names registered by the imported database/sql drivers.
const (
	driverSQLite   = "sqlite"
	driverPostgres = "pgx"
)

// DatabaseFile is the SQLite file created inside DataDir.
const DatabaseFile = "pharmadesk.db"

func init() {
	sqlx.BindDriver(driverSQLite, sqlx.QUESTION)
}

// Backend owns the database connection and hands out one repository per
// domain. A Backend must be attached before use.
type Backend struct {
	mu       sync.RWMutex
	attached bool
	config   types.Config
	db       *sqlx.DB

	// now is the clock used for entity timestamps; tests replace it.
	now func() time.Time
}

// NewBackend creates a new backend instance.
// The backend is not attached; call Attach with a Config to initialize.
func NewBackend() *Backend {
	return &Backend{now: time.Now}
}

// Attach validates config, opens the database and creates any missing
// tables. For SQLite the DataDir is created if needed.
// Returns ErrAlreadyAttached if already attached.
func (b *Backend) Attach(config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}

	if err := config.Validate(); err != nil {
		return err
	}

	db, err := open(config)
	if err != nil {
		return err
	}

	for _, stmt := range schemaStatements(types.StandardTableNames) {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return fmt.Errorf("creating schema: %w", err)
		}
	}

	b.db = db
	b.config = config
	b.attached = true
	return nil
}

// open connects to the database described by config.
func open(config types.Config) (*sqlx.DB, error) {
	switch config.Backend {
	case types.BackendPostgres:
		db, err := sqlx.Connect(driverPostgres, config.DSN)
		if err != nil {
			return nil, fmt.Errorf("connecting to postgres: %w", err)
		}
		return db, nil
	default:
		dataDir := config.DataDir
		if dataDir == "" {
			dataDir = "."
		}
		if err := os.MkdirAll(dataDir, 0o755); err != nil {
			return nil, err
		}
		db, err := sqlx.Connect(driverSQLite, filepath.Join(dataDir, DatabaseFile))
		if err != nil {
			return nil, fmt.Errorf("opening sqlite database: %w", err)
		}
		db.SetMaxOpenConns(1)
		return db, nil
	}
}

// Detach closes the database connection. After Detach, repository
// operations return ErrBackendDetached. Detach is idempotent.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil
	}
	b.attached = false
	if b.db != nil {
		err := b.db.Close()
		b.db = nil
		return err
	}
	return nil
}

// Config returns the configuration the backend was attached with.
func (b *Backend) Config() types.Config {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.config
}

// conn returns the open database or ErrBackendDetached.
func (b *Backend) conn() (*sqlx.DB, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.attached {
		return nil, types.ErrBackendDetached
	}
	return b.db, nil
}

// Products returns the product repository.
func (b *Backend) Products() types.Repository[types.Product] {
	return newTable[types.Product](b, types.TableProducts)
}

// Customers returns the customer repository.
func (b *Backend) Customers() types.Repository[types.Customer] {
	return newTable[types.Customer](b, types.TableCustomers)
}

// Orders returns the order repository.
func (b *Backend) Orders() types.Repository[types.Order] {
	return newTable[types.Order](b, types.TableOrders)
}

// Quotations returns the quotation repository.
func (b *Backend) Quotations() types.Repository[types.Quotation] {
	return newTable[types.Quotation](b, types.TableQuotations)
}

// Wishlist returns the wishlist repository.
func (b *Backend) Wishlist() types.Repository[types.WishlistItem] {
	return newTable[types.WishlistItem](b, types.TableWishlist)
}

// Closings returns the cash-register closing repository.
func (b *Backend) Closings() types.Repository[types.CashClosing] {
	return newTable[types.CashClosing](b, types.TableClosings)
}

// generateUUID generates a new UUID v7 for entity IDs. UUID v7 sorts by
// creation time, which keeps ORDER BY id in insertion order.
func generateUUID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("generating UUID v7: %w", err)
	}
	return id.String(), nil
}
