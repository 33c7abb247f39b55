package types

import (
	"strings"
	"time"
)

// WishlistStatus tracks a backorder request from request to receipt.
type WishlistStatus string

// Wishlist statuses.
const (
	WishlistPending   WishlistStatus = "pending"
	WishlistOrdered   WishlistStatus = "ordered"
	WishlistReceived  WishlistStatus = "received"
	WishlistCancelled WishlistStatus = "cancelled"
)

var validWishlistStatuses = map[WishlistStatus]bool{
	WishlistPending:   true,
	WishlistOrdered:   true,
	WishlistReceived:  true,
	WishlistCancelled: true,
}

// Valid reports whether s is a recognized wishlist status.
func (s WishlistStatus) Valid() bool { return validWishlistStatuses[s] }

// ParseWishlistStatus converts raw to a WishlistStatus.
func ParseWishlistStatus(raw string) (WishlistStatus, error) {
	return parseStatus(raw, validWishlistStatuses)
}

// WishlistItem is a product the pharmacy needs to order from a supplier.
type WishlistItem struct {
	ID           string         `json:"id"`
	ProductID    string         `json:"product_id,omitempty"`
	ProductName  string         `json:"product_name"`
	Quantity     int            `json:"quantity"`
	SupplierName string         `json:"supplier_name,omitempty"`
	Status       WishlistStatus `json:"status"`
	Notes        string         `json:"notes,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// EntityID returns the wishlist item ID.
func (w WishlistItem) EntityID() string { return w.ID }

// Timestamps returns the creation and last-update times.
func (w WishlistItem) Timestamps() (time.Time, time.Time) { return w.CreatedAt, w.UpdatedAt }

// WithStamp returns a copy of w carrying the given identity and timestamps.
func (w WishlistItem) WithStamp(id string, createdAt, updatedAt time.Time) WishlistItem {
	w.ID = id
	w.CreatedAt = createdAt
	w.UpdatedAt = updatedAt
	return w
}

// WithStatus returns a copy of w in the given status.
func (w WishlistItem) WithStatus(status WishlistStatus) WishlistItem {
	w.Status = status
	return w
}

// Validate requires a product name, a positive quantity and a known status.
func (w WishlistItem) Validate() error {
	if strings.TrimSpace(w.ProductName) == "" {
		return ErrInvalidName
	}
	if w.Quantity <= 0 {
		return ErrInvalidData
	}
	if w.Status != "" && !w.Status.Valid() {
		return ErrInvalidStatus
	}
	return nil
}

// WishlistFilter selects wishlist items. Search covers product name,
// supplier and notes.
type WishlistFilter struct {
	Search string         `json:"search,omitempty"`
	Status WishlistStatus `json:"status,omitempty"`
}

// Match reports whether w satisfies every active predicate.
func (f WishlistFilter) Match(w WishlistItem) bool {
	if !MatchesSearch(f.Search, w.ProductName, w.SupplierName, w.Notes) {
		return false
	}
	return f.Status == "" || w.Status == f.Status
}

// IsZero reports whether no predicate is active.
func (f WishlistFilter) IsZero() bool { return blank(f.Search) && f.Status == "" }

// Validate rejects an unknown status.
func (f WishlistFilter) Validate() error { return checkStatus(f.Status, f.Status.Valid) }

// WishlistPatch is a shallow merge for a wishlist item.
type WishlistPatch struct {
	Quantity     *int            `json:"quantity,omitempty"`
	SupplierName *string         `json:"supplier_name,omitempty"`
	Status       *WishlistStatus `json:"status,omitempty"`
	Notes        *string         `json:"notes,omitempty"`
}

// Apply merges the non-nil fields of wp into current.
func (wp WishlistPatch) Apply(current WishlistItem) WishlistItem {
	next := current
	setIf(&next.Quantity, wp.Quantity)
	setIf(&next.SupplierName, wp.SupplierName)
	setIf(&next.Status, wp.Status)
	setIf(&next.Notes, wp.Notes)
	return next
}
