package types

import (
	"slices"
	"strings"
	"time"
)

// ProductStatus is the catalogue state of a product.
type ProductStatus string

// Product statuses.
const (
	ProductActive       ProductStatus = "active"
	ProductInactive     ProductStatus = "inactive"
	ProductDiscontinued ProductStatus = "discontinued"
)

// validProductStatuses is the set of recognized product status values.
var validProductStatuses = map[ProductStatus]bool{
	ProductActive:       true,
	ProductInactive:     true,
	ProductDiscontinued: true,
}

// Valid reports whether s is a recognized product status.
func (s ProductStatus) Valid() bool { return validProductStatuses[s] }

// ParseProductStatus converts raw to a ProductStatus.
// Returns ErrInvalidStatus if the value is not recognized.
func ParseProductStatus(raw string) (ProductStatus, error) {
	return parseStatus(raw, validProductStatuses)
}

// Product is a catalogue item held in stock.
type Product struct {
	ID                   string        `json:"id"`
	Name                 string        `json:"name"`
	Description          string        `json:"description,omitempty"`
	SKU                  string        `json:"sku,omitempty"`
	Barcode              string        `json:"barcode,omitempty"`
	Category             string        `json:"category,omitempty"`
	Tags                 []string      `json:"tags,omitempty"`
	Price                float64       `json:"price"`
	Cost                 float64       `json:"cost"`
	Stock                int           `json:"stock"`
	MinimumStock         int           `json:"minimum_stock"`
	RequiresPrescription bool          `json:"requires_prescription"`
	Status               ProductStatus `json:"status"`
	CreatedAt            time.Time     `json:"created_at"`
	UpdatedAt            time.Time     `json:"updated_at"`
}

// EntityID returns the product ID.
func (p Product) EntityID() string { return p.ID }

// Timestamps returns the creation and last-update times.
func (p Product) Timestamps() (time.Time, time.Time) { return p.CreatedAt, p.UpdatedAt }

// WithStamp returns a copy of p carrying the given identity and timestamps.
func (p Product) WithStamp(id string, createdAt, updatedAt time.Time) Product {
	p.ID = id
	p.CreatedAt = createdAt
	p.UpdatedAt = updatedAt
	return p
}

// IsLowStock reports whether stock has fallen to or below the minimum.
func (p Product) IsLowStock() bool {
	return p.Stock <= p.MinimumStock
}

// Margin returns price minus cost.
func (p Product) Margin() float64 {
	return p.Price - p.Cost
}

// Validate checks the fields a product must carry before it is persisted.
func (p Product) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrInvalidName
	}
	if p.Status != "" && !p.Status.Valid() {
		return ErrInvalidStatus
	}
	if p.Price < 0 || p.Cost < 0 || p.Stock < 0 || p.MinimumStock < 0 {
		return ErrInvalidData
	}
	return nil
}

// ProductFilter selects products. Empty fields, a nil RequiresPrescription
// and a false LowStock are inactive.
type ProductFilter struct {
	Search               string        `json:"search,omitempty"`
	Category             string        `json:"category,omitempty"`
	Status               ProductStatus `json:"status,omitempty"`
	RequiresPrescription *bool         `json:"requires_prescription,omitempty"`
	LowStock             bool          `json:"low_stock,omitempty"`
}

// Match reports whether p satisfies every active predicate. Search covers
// name, description, SKU, barcode and tags.
func (f ProductFilter) Match(p Product) bool {
	if !MatchesSearch(f.Search, p.Name, p.Description, p.SKU, p.Barcode, strings.Join(p.Tags, " ")) {
		return false
	}
	if f.Category != "" && p.Category != f.Category {
		return false
	}
	if f.Status != "" && p.Status != f.Status {
		return false
	}
	if f.RequiresPrescription != nil && p.RequiresPrescription != *f.RequiresPrescription {
		return false
	}
	if f.LowStock && !p.IsLowStock() {
		return false
	}
	return true
}

// IsZero reports whether no predicate is active.
func (f ProductFilter) IsZero() bool {
	return blank(f.Search) && f.Category == "" && f.Status == "" &&
		f.RequiresPrescription == nil && !f.LowStock
}

// Validate rejects an unknown status.
func (f ProductFilter) Validate() error { return checkStatus(f.Status, f.Status.Valid) }

// ProductPatch is a shallow merge for a product; nil fields are kept.
type ProductPatch struct {
	Name                 *string        `json:"name,omitempty"`
	Description          *string        `json:"description,omitempty"`
	SKU                  *string        `json:"sku,omitempty"`
	Barcode              *string        `json:"barcode,omitempty"`
	Category             *string        `json:"category,omitempty"`
	Tags                 []string       `json:"tags,omitempty"`
	Price                *float64       `json:"price,omitempty"`
	Cost                 *float64       `json:"cost,omitempty"`
	Stock                *int           `json:"stock,omitempty"`
	MinimumStock         *int           `json:"minimum_stock,omitempty"`
	RequiresPrescription *bool          `json:"requires_prescription,omitempty"`
	Status               *ProductStatus `json:"status,omitempty"`
}

// Apply merges the non-nil fields of pp into current.
func (pp ProductPatch) Apply(current Product) Product {
	next := current
	setIf(&next.Name, pp.Name)
	setIf(&next.Description, pp.Description)
	setIf(&next.SKU, pp.SKU)
	setIf(&next.Barcode, pp.Barcode)
	setIf(&next.Category, pp.Category)
	setIf(&next.Price, pp.Price)
	setIf(&next.Cost, pp.Cost)
	setIf(&next.Stock, pp.Stock)
	setIf(&next.MinimumStock, pp.MinimumStock)
	setIf(&next.RequiresPrescription, pp.RequiresPrescription)
	setIf(&next.Status, pp.Status)
	if pp.Tags != nil {
		next.Tags = slices.Clone(pp.Tags)
	}
	return next
}

// setIf copies *src into *dst when src is non-nil.
func setIf[V any](dst *V, src *V) {
	if src != nil {
		*dst = *src
	}
}
