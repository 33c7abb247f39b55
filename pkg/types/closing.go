package types

import (
	"math"
	"time"
)

// balanceTolerance is the largest difference, in currency units, treated as
// a balanced register.
const balanceTolerance = 0.005

// CashClosing records the count of a cash register at the end of a shift.
// Counted, expected and difference amounts are derived, never stored.
type CashClosing struct {
	ID            string      `json:"id"`
	OpenedAt      time.Time   `json:"opened_at"`
	ClosedAt      *time.Time  `json:"closed_at,omitempty"`
	OpeningAmount float64     `json:"opening_amount"`
	CashSales     float64     `json:"cash_sales"`
	CardSales     float64     `json:"card_sales"`
	Expenses      float64     `json:"expenses"`
	Counts        []CashCount `json:"counts"`
	Notes         string      `json:"notes,omitempty"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

// EntityID returns the closing ID.
func (c CashClosing) EntityID() string { return c.ID }

// Timestamps returns the creation and last-update times.
func (c CashClosing) Timestamps() (time.Time, time.Time) { return c.CreatedAt, c.UpdatedAt }

// WithStamp returns a copy of c carrying the given identity and timestamps.
func (c CashClosing) WithStamp(id string, createdAt, updatedAt time.Time) CashClosing {
	c.ID = id
	c.CreatedAt = createdAt
	c.UpdatedAt = updatedAt
	return c
}

// Counted returns the cash physically counted in the drawer.
func (c CashClosing) Counted() float64 {
	return Sum(c.Counts)
}

// Expected returns the cash the drawer should hold: opening float plus cash
// sales minus expenses paid out of the drawer.
func (c CashClosing) Expected() float64 {
	return c.OpeningAmount + c.CashSales - c.Expenses
}

// Difference returns counted minus expected; negative means a shortfall.
func (c CashClosing) Difference() float64 {
	return c.Counted() - c.Expected()
}

// Balanced reports whether the difference is below one half of a cent.
func (c CashClosing) Balanced() bool {
	return math.Abs(c.Difference()) < balanceTolerance
}

// Validate rejects negative amounts and counts.
func (c CashClosing) Validate() error {
	if c.OpeningAmount < 0 || c.CashSales < 0 || c.CardSales < 0 || c.Expenses < 0 {
		return ErrInvalidData
	}
	for _, n := range c.Counts {
		if n.Denomination <= 0 || n.Quantity < 0 {
			return ErrInvalidData
		}
	}
	if c.ClosedAt != nil && c.ClosedAt.Before(c.OpenedAt) {
		return ErrInvalidData
	}
	return nil
}

// ClosingFilter selects closings by opening date; WithDifference keeps only
// unbalanced registers.
type ClosingFilter struct {
	From           *time.Time `json:"from,omitempty"`
	To             *time.Time `json:"to,omitempty"`
	WithDifference bool       `json:"with_difference,omitempty"`
}

// Match reports whether c satisfies every active predicate.
func (f ClosingFilter) Match(c CashClosing) bool {
	if !inRange(c.OpenedAt, f.From, f.To) {
		return false
	}
	return !f.WithDifference || !c.Balanced()
}

// IsZero reports whether no predicate is active.
func (f ClosingFilter) IsZero() bool {
	return f.From == nil && f.To == nil && !f.WithDifference
}

// Validate rejects an inverted date range.
func (f ClosingFilter) Validate() error { return checkRange(f.From, f.To) }
