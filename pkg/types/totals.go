package types

// Line is one row of a running total: an order or quotation line, or a
// denomination count in a cash-register closing.
type Line interface {
	Subtotal() float64
}

// Sum recomputes the running total of lines from scratch. An empty or nil
// list totals exactly zero.
func Sum[L Line](lines []L) float64 {
	total := 0.0
	for _, l := range lines {
		total += l.Subtotal()
	}
	return total
}

// LineItem is a product line on an order or quotation.
type LineItem struct {
	ProductID   string  `json:"product_id,omitempty"`
	Description string  `json:"description"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
}

// Subtotal returns quantity × unit price.
func (l LineItem) Subtotal() float64 {
	return float64(l.Quantity) * l.UnitPrice
}

// validateLines rejects lines with a negative quantity or price.
func validateLines(items []LineItem) error {
	for _, it := range items {
		if it.Quantity < 0 || it.UnitPrice < 0 {
			return ErrInvalidData
		}
	}
	return nil
}

// CashCount is the number of notes or coins of one denomination counted at
// a cash-register closing.
type CashCount struct {
	Denomination float64 `json:"denomination"`
	Quantity     int     `json:"quantity"`
}

// Subtotal returns denomination × quantity.
func (c CashCount) Subtotal() float64 {
	return c.Denomination * float64(c.Quantity)
}
