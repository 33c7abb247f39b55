package store

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mesh-intelligence/pharmadesk/pkg/types"
)

func TestProductsLowStockIgnoresFilters(t *testing.T) {
	s := NewProducts()
	s.SetEntities(sampleProducts())
	s.SetFilters(types.ProductFilter{Category: "supplement"})

	assert.Equal(t, []string{"p1", "p3"}, ids(s.LowStock()))
	assert.Equal(t, []string{"p4"}, ids(s.View()))
}

func TestWishlistSetStatus(t *testing.T) {
	s := NewWishlist()
	s.SetEntities([]types.WishlistItem{
		{ID: "a", ProductName: "Aspirin", Quantity: 10, Status: types.WishlistPending},
		{ID: "b", ProductName: "Gauze", Quantity: 5, Status: types.WishlistPending},
		{ID: "c", ProductName: "Saline", Quantity: 2, Status: types.WishlistPending},
		{ID: "d", ProductName: "Insulin", Quantity: 1, Status: types.WishlistReceived},
	})
	before := s.Entities()

	n := s.SetStatus([]string{"a", "b", "ghost"}, types.WishlistOrdered)
	assert.Equal(t, 2, n)

	after := s.Entities()
	for i, item := range after {
		switch item.ID {
		case "a", "b":
			assert.Equal(t, types.WishlistOrdered, item.Status)
			assert.Equal(t, before[i].WithStatus(types.WishlistOrdered), item)
		default:
			assert.Equal(t, before[i], item)
		}
	}
}

func TestWishlistSetStatusRecomputesFilteredView(t *testing.T) {
	s := NewWishlist()
	s.SetEntities([]types.WishlistItem{
		{ID: "a", ProductName: "Aspirin", Quantity: 1, Status: types.WishlistPending},
		{ID: "b", ProductName: "Gauze", Quantity: 1, Status: types.WishlistPending},
	})
	s.SetFilters(types.WishlistFilter{Status: types.WishlistPending})

	s.SetStatus([]string{"a"}, types.WishlistOrdered)
	assert.Equal(t, []string{"b"}, ids(s.View()))
}

func TestOrdersViewTotal(t *testing.T) {
	s := NewOrders()
	s.SetEntities([]types.Order{
		{ID: "o1", Number: "1", Status: types.OrderPending, Items: []types.LineItem{{Quantity: 2, UnitPrice: 10}, {Quantity: 1, UnitPrice: 5}}},
		{ID: "o2", Number: "2", Status: types.OrderCompleted, Items: []types.LineItem{{Quantity: 1, UnitPrice: 7}}},
		{ID: "o3", Number: "3", Status: types.OrderPending},
	})

	assert.Equal(t, 32.0, s.ViewTotal())

	s.SetFilters(types.OrderFilter{Status: types.OrderPending})
	assert.Equal(t, 25.0, s.ViewTotal())

	s.SetFilters(types.OrderFilter{Status: types.OrderCancelled})
	assert.Equal(t, 0.0, s.ViewTotal())
}

func TestQuotationsViewTotal(t *testing.T) {
	s := NewQuotations()
	s.SetEntities([]types.Quotation{
		{ID: "q1", Number: "Q1", Status: types.QuotationSent, Items: []types.LineItem{{Quantity: 3, UnitPrice: 2}}},
		{ID: "q2", Number: "Q2", Status: types.QuotationDraft, Items: []types.LineItem{{Quantity: 1, UnitPrice: 4}}},
	})
	s.SetFilters(types.QuotationFilter{Search: "q2"})
	assert.Equal(t, 4.0, s.ViewTotal())
}

func TestClosingsViewDifference(t *testing.T) {
	s := NewClosings()
	s.SetEntities([]types.CashClosing{
		{ID: "c1", OpeningAmount: 100, Counts: []types.CashCount{{Denomination: 50, Quantity: 2}}},
		{ID: "c2", OpeningAmount: 100, Counts: []types.CashCount{{Denomination: 50, Quantity: 1}}},
	})
	s.SetFilters(types.ClosingFilter{WithDifference: true})

	assert.Equal(t, []string{"c2"}, ids(s.View()))
	assert.Equal(t, -50.0, s.ViewDifference())
}

func TestStoreNames(t *testing.T) {
	assert.Equal(t, types.TableProducts, NewProducts().Name())
	assert.Equal(t, types.TableCustomers, NewCustomers().Name())
	assert.Equal(t, types.TableOrders, NewOrders().Name())
	assert.Equal(t, types.TableQuotations, NewQuotations().Name())
	assert.Equal(t, types.TableWishlist, NewWishlist().Name())
	assert.Equal(t, "custom", NewClosings(WithName("custom")).Name())
}
