package types

// Standard table names, one per domain.
const (
	TableProducts   = "products"
	TableCustomers  = "customers"
	TableOrders     = "orders"
	TableQuotations = "quotations"
	TableWishlist   = "wishlist"
	TableClosings   = "closings"
)

// StandardTableNames lists all standard table names for enumeration.
var StandardTableNames = []string{
	TableProducts,
	TableCustomers,
	TableOrders,
	TableQuotations,
	TableWishlist,
	TableClosings,
}
