package types

import (
	"slices"
	"strings"
	"time"
)

// OrderStatus is the fulfilment state of a customer order.
type OrderStatus string

// Order statuses.
const (
	OrderPending    OrderStatus = "pending"
	OrderProcessing OrderStatus = "processing"
	OrderCompleted  OrderStatus = "completed"
	OrderCancelled  OrderStatus = "cancelled"
)

var validOrderStatuses = map[OrderStatus]bool{
	OrderPending:    true,
	OrderProcessing: true,
	OrderCompleted:  true,
	OrderCancelled:  true,
}

// Valid reports whether s is a recognized order status.
func (s OrderStatus) Valid() bool { return validOrderStatuses[s] }

// ParseOrderStatus converts raw to an OrderStatus.
func ParseOrderStatus(raw string) (OrderStatus, error) {
	return parseStatus(raw, validOrderStatuses)
}

// Order is a customer order made of product lines. Its total is always
// derived from Items and never stored.
type Order struct {
	ID           string      `json:"id"`
	Number       string      `json:"number"`
	CustomerID   string      `json:"customer_id,omitempty"`
	CustomerName string      `json:"customer_name,omitempty"`
	Status       OrderStatus `json:"status"`
	Items        []LineItem  `json:"items"`
	Notes        string      `json:"notes,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

// EntityID returns the order ID.
func (o Order) EntityID() string { return o.ID }

// Timestamps returns the creation and last-update times.
func (o Order) Timestamps() (time.Time, time.Time) { return o.CreatedAt, o.UpdatedAt }

// WithStamp returns a copy of o carrying the given identity and timestamps.
func (o Order) WithStamp(id string, createdAt, updatedAt time.Time) Order {
	o.ID = id
	o.CreatedAt = createdAt
	o.UpdatedAt = updatedAt
	return o
}

// Total returns the sum of quantity × unit price over all lines.
func (o Order) Total() float64 {
	return Sum(o.Items)
}

// WithItems returns a copy of o with its lines replaced.
func (o Order) WithItems(items []LineItem) Order {
	o.Items = slices.Clone(items)
	return o
}

// Validate requires a number, a known status and non-negative lines.
func (o Order) Validate() error {
	if strings.TrimSpace(o.Number) == "" {
		return ErrInvalidName
	}
	if o.Status != "" && !o.Status.Valid() {
		return ErrInvalidStatus
	}
	return validateLines(o.Items)
}

// OrderFilter selects orders. The date range applies to CreatedAt and is
// inclusive at both ends.
type OrderFilter struct {
	Search     string      `json:"search,omitempty"`
	Status     OrderStatus `json:"status,omitempty"`
	CustomerID string      `json:"customer_id,omitempty"`
	From       *time.Time  `json:"from,omitempty"`
	To         *time.Time  `json:"to,omitempty"`
}

// Match reports whether o satisfies every active predicate. Search covers
// number, customer name and notes.
func (f OrderFilter) Match(o Order) bool {
	if !MatchesSearch(f.Search, o.Number, o.CustomerName, o.Notes) {
		return false
	}
	if f.Status != "" && o.Status != f.Status {
		return false
	}
	if f.CustomerID != "" && o.CustomerID != f.CustomerID {
		return false
	}
	return inRange(o.CreatedAt, f.From, f.To)
}

// IsZero reports whether no predicate is active.
func (f OrderFilter) IsZero() bool {
	return blank(f.Search) && f.Status == "" && f.CustomerID == "" && f.From == nil && f.To == nil
}

// Validate rejects an unknown status or an inverted date range.
func (f OrderFilter) Validate() error {
	if err := checkStatus(f.Status, f.Status.Valid); err != nil {
		return err
	}
	return checkRange(f.From, f.To)
}
