package types

import (
	"strings"
	"time"
)

// Customer is a pharmacy client that orders and quotations refer to.
type Customer struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Address   string    `json:"address,omitempty"`
	TaxID     string    `json:"tax_id,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// EntityID returns the customer ID.
func (c Customer) EntityID() string { return c.ID }

// Timestamps returns the creation and last-update times.
func (c Customer) Timestamps() (time.Time, time.Time) { return c.CreatedAt, c.UpdatedAt }

// WithStamp returns a copy of c carrying the given identity and timestamps.
func (c Customer) WithStamp(id string, createdAt, updatedAt time.Time) Customer {
	c.ID = id
	c.CreatedAt = createdAt
	c.UpdatedAt = updatedAt
	return c
}

// Validate requires a non-blank name.
func (c Customer) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrInvalidName
	}
	return nil
}

// CustomerFilter selects customers by free text over name, email, phone and
// tax ID.
type CustomerFilter struct {
	Search string `json:"search,omitempty"`
}

// Match reports whether c satisfies the search predicate.
func (f CustomerFilter) Match(c Customer) bool {
	return MatchesSearch(f.Search, c.Name, c.Email, c.Phone, c.TaxID)
}

// IsZero reports whether no predicate is active.
func (f CustomerFilter) IsZero() bool { return blank(f.Search) }

// Validate always succeeds; a search string carries no invalid values.
func (f CustomerFilter) Validate() error { return nil }
