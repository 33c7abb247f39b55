package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/mesh-intelligence/pharmadesk/pkg/types"
)

// readSheet opens an xlsx payload and returns the rows of sheet.
func readSheet(t *testing.T, payload []byte, sheet string) [][]string {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(payload))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	assert.Equal(t, []string{sheet}, f.GetSheetList())
	rows, err := f.GetRows(sheet)
	require.NoError(t, err)
	return rows
}

func TestWriteXLSX(t *testing.T) {
	tests := []struct {
		name      string
		sheet     string
		wantSheet string
	}{
		{name: "named sheet", sheet: "Stock", wantSheet: "Stock"},
		{name: "default sheet", sheet: "", wantSheet: "Sheet1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			err := WriteXLSX(&buf, tt.sheet, []string{"A", "B"}, [][]any{{"x", 1}, {"y", 2}})
			require.NoError(t, err)

			rows := readSheet(t, buf.Bytes(), tt.wantSheet)
			assert.Equal(t, [][]string{{"A", "B"}, {"x", "1"}, {"y", "2"}}, rows)
		})
	}
}

func TestProducts(t *testing.T) {
	var buf bytes.Buffer
	err := Products(&buf, []types.Product{
		{ID: "p1", Name: "Paracetamol", Price: 3, Cost: 1, Stock: 5, MinimumStock: 10, Status: types.ProductActive},
		{ID: "p2", Name: "Ibuprofen", Price: 4, Cost: 2, Stock: 20, MinimumStock: 10, Status: types.ProductActive},
	})
	require.NoError(t, err)

	rows := readSheet(t, buf.Bytes(), "Products")
	require.Len(t, rows, 3)
	assert.Equal(t, "Low stock", rows[0][9])
	assert.Equal(t, "Paracetamol", rows[1][1])
	assert.Equal(t, "2", rows[1][6])
	assert.Equal(t, "TRUE", rows[1][9])
	assert.Equal(t, "FALSE", rows[2][9])
}

func TestOrders(t *testing.T) {
	var buf bytes.Buffer
	err := Orders(&buf, []types.Order{{
		ID:        "o1",
		Number:    "ORD-0001",
		Status:    types.OrderPending,
		Items:     []types.LineItem{{Quantity: 2, UnitPrice: 10}, {Quantity: 1, UnitPrice: 5}},
		CreatedAt: time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC),
	}})
	require.NoError(t, err)

	rows := readSheet(t, buf.Bytes(), "Orders")
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"o1", "ORD-0001", "", "pending", "2", "25", "2026-05-04"}, rows[1])
}

func TestWishlistEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Wishlist(&buf, nil))

	rows := readSheet(t, buf.Bytes(), "Wishlist")
	assert.Equal(t, [][]string{{"ID", "Product", "Quantity", "Supplier", "Status", "Notes"}}, rows)
}
