package store

import (
	"github.com/mesh-intelligence/pharmadesk/pkg/types"
)

// Products caches the product catalogue.
type Products struct {
	*Store[types.Product, types.ProductFilter]
}

// NewProducts returns an empty product store.
func NewProducts(opts ...Option) *Products {
	return &Products{New[types.Product, types.ProductFilter](append([]Option{WithName(types.TableProducts)}, opts...)...)}
}

// LowStock returns every product at or below its minimum stock, in list
// order, ignoring the current filters.
func (p *Products) LowStock() []types.Product {
	return types.Select(types.ProductFilter{LowStock: true}, p.Entities())
}

// Customers caches the customer directory.
type Customers struct {
	*Store[types.Customer, types.CustomerFilter]
}

// NewCustomers returns an empty customer store.
func NewCustomers(opts ...Option) *Customers {
	return &Customers{New[types.Customer, types.CustomerFilter](append([]Option{WithName(types.TableCustomers)}, opts...)...)}
}

// Orders caches customer orders.
type Orders struct {
	*Store[types.Order, types.OrderFilter]
}

// NewOrders returns an empty order store.
func NewOrders(opts ...Option) *Orders {
	return &Orders{New[types.Order, types.OrderFilter](append([]Option{WithName(types.TableOrders)}, opts...)...)}
}

// ViewTotal returns the summed totals of the visible orders.
func (o *Orders) ViewTotal() float64 {
	total := 0.0
	for _, order := range o.View() {
		total += order.Total()
	}
	return total
}

// Quotations caches quotations.
type Quotations struct {
	*Store[types.Quotation, types.QuotationFilter]
}

// NewQuotations returns an empty quotation store.
func NewQuotations(opts ...Option) *Quotations {
	return &Quotations{New[types.Quotation, types.QuotationFilter](append([]Option{WithName(types.TableQuotations)}, opts...)...)}
}

// ViewTotal returns the summed totals of the visible quotations.
func (q *Quotations) ViewTotal() float64 {
	total := 0.0
	for _, quote := range q.View() {
		total += quote.Total()
	}
	return total
}

// Wishlist caches backorder requests.
type Wishlist struct {
	*Store[types.WishlistItem, types.WishlistFilter]
}

// NewWishlist returns an empty wishlist store.
func NewWishlist(opts ...Option) *Wishlist {
	return &Wishlist{New[types.WishlistItem, types.WishlistFilter](append([]Option{WithName(types.TableWishlist)}, opts...)...)}
}

// SetStatus moves every listed item to status and returns how many were
// present. Items not listed are untouched.
func (w *Wishlist) SetStatus(ids []string, status types.WishlistStatus) int {
	return w.UpdateMany(ids, types.WishlistPatch{Status: &status})
}

// Closings caches cash-register closings.
type Closings struct {
	*Store[types.CashClosing, types.ClosingFilter]
}

// NewClosings returns an empty closing store.
func NewClosings(opts ...Option) *Closings {
	return &Closings{New[types.CashClosing, types.ClosingFilter](append([]Option{WithName(types.TableClosings)}, opts...)...)}
}

// ViewDifference returns the summed register differences of the visible
// closings.
func (c *Closings) ViewDifference() float64 {
	total := 0.0
	for _, closing := range c.View() {
		total += closing.Difference()
	}
	return total
}
