package types

import (
	"strings"
	"time"
)

// QuotationStatus is the negotiation state of a quotation.
type QuotationStatus string

// Quotation statuses.
const (
	QuotationDraft    QuotationStatus = "draft"
	QuotationSent     QuotationStatus = "sent"
	QuotationAccepted QuotationStatus = "accepted"
	QuotationRejected QuotationStatus = "rejected"
	QuotationExpired  QuotationStatus = "expired"
)

var validQuotationStatuses = map[QuotationStatus]bool{
	QuotationDraft:    true,
	QuotationSent:     true,
	QuotationAccepted: true,
	QuotationRejected: true,
	QuotationExpired:  true,
}

// Valid reports whether s is a recognized quotation status.
func (s QuotationStatus) Valid() bool { return validQuotationStatuses[s] }

// ParseQuotationStatus converts raw to a QuotationStatus.
func ParseQuotationStatus(raw string) (QuotationStatus, error) {
	return parseStatus(raw, validQuotationStatuses)
}

// Quotation is a priced offer to a customer.
type Quotation struct {
	ID           string          `json:"id"`
	Number       string          `json:"number"`
	CustomerID   string          `json:"customer_id,omitempty"`
	CustomerName string          `json:"customer_name,omitempty"`
	Status       QuotationStatus `json:"status"`
	Items        []LineItem      `json:"items"`
	ValidUntil   *time.Time      `json:"valid_until,omitempty"`
	Notes        string          `json:"notes,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// EntityID returns the quotation ID.
func (q Quotation) EntityID() string { return q.ID }

// Timestamps returns the creation and last-update times.
func (q Quotation) Timestamps() (time.Time, time.Time) { return q.CreatedAt, q.UpdatedAt }

// WithStamp returns a copy of q carrying the given identity and timestamps.
func (q Quotation) WithStamp(id string, createdAt, updatedAt time.Time) Quotation {
	q.ID = id
	q.CreatedAt = createdAt
	q.UpdatedAt = updatedAt
	return q
}

// Total returns the sum of quantity × unit price over all lines.
func (q Quotation) Total() float64 {
	return Sum(q.Items)
}

// Expired reports whether the quotation is past its validity date at now.
// A quotation without ValidUntil never expires.
func (q Quotation) Expired(now time.Time) bool {
	return q.ValidUntil != nil && now.After(*q.ValidUntil)
}

// Validate requires a number, a known status and non-negative lines.
func (q Quotation) Validate() error {
	if strings.TrimSpace(q.Number) == "" {
		return ErrInvalidName
	}
	if q.Status != "" && !q.Status.Valid() {
		return ErrInvalidStatus
	}
	return validateLines(q.Items)
}

// QuotationFilter selects quotations; same shape as OrderFilter.
type QuotationFilter struct {
	Search     string          `json:"search,omitempty"`
	Status     QuotationStatus `json:"status,omitempty"`
	CustomerID string          `json:"customer_id,omitempty"`
	From       *time.Time      `json:"from,omitempty"`
	To         *time.Time      `json:"to,omitempty"`
}

// Match reports whether q satisfies every active predicate.
func (f QuotationFilter) Match(q Quotation) bool {
	if !MatchesSearch(f.Search, q.Number, q.CustomerName, q.Notes) {
		return false
	}
	if f.Status != "" && q.Status != f.Status {
		return false
	}
	if f.CustomerID != "" && q.CustomerID != f.CustomerID {
		return false
	}
	return inRange(q.CreatedAt, f.From, f.To)
}

// IsZero reports whether no predicate is active.
func (f QuotationFilter) IsZero() bool {
	return blank(f.Search) && f.Status == "" && f.CustomerID == "" && f.From == nil && f.To == nil
}

// Validate rejects an unknown status or an inverted date range.
func (f QuotationFilter) Validate() error {
	if err := checkStatus(f.Status, f.Status.Valid); err != nil {
		return err
	}
	return checkRange(f.From, f.To)
}
