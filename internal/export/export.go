// Package export renders store views as Excel workbooks.
package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/mesh-intelligence/pharmadesk/pkg/types"
)

// defaultSheet is the sheet every new workbook starts with.
const defaultSheet = "Sheet1"

// WriteXLSX writes a single-sheet workbook with a header row followed by
// rows to w.
func WriteXLSX(w io.Writer, sheet string, headers []string, rows [][]any) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if sheet != "" && sheet != defaultSheet {
		if err := f.SetSheetName(defaultSheet, sheet); err != nil {
			return fmt.Errorf("naming sheet: %w", err)
		}
	} else {
		sheet = defaultSheet
	}

	header := make([]any, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("writing row %d: %w", i+1, err)
		}
	}
	if len(headers) > 0 {
		if err := f.SetPanes(sheet, &excelize.Panes{
			Freeze:      true,
			YSplit:      1,
			TopLeftCell: "A2",
			ActivePane:  "bottomLeft",
		}); err != nil {
			return fmt.Errorf("freezing header: %w", err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

// Products writes the product catalogue with a computed margin and
// low-stock flag.
func Products(w io.Writer, products []types.Product) error {
	headers := []string{"ID", "Name", "SKU", "Category", "Price", "Cost", "Margin", "Stock", "Minimum stock", "Low stock", "Status"}
	rows := make([][]any, len(products))
	for i, p := range products {
		rows[i] = []any{p.ID, p.Name, p.SKU, p.Category, p.Price, p.Cost, p.Margin(), p.Stock, p.MinimumStock, p.IsLowStock(), string(p.Status)}
	}
	return WriteXLSX(w, "Products", headers, rows)
}

// Orders writes one row per order with its computed total.
func Orders(w io.Writer, orders []types.Order) error {
	headers := []string{"ID", "Number", "Customer", "Status", "Items", "Total", "Created"}
	rows := make([][]any, len(orders))
	for i, o := range orders {
		rows[i] = []any{o.ID, o.Number, o.CustomerName, string(o.Status), len(o.Items), o.Total(), o.CreatedAt.Format("2006-01-02")}
	}
	return WriteXLSX(w, "Orders", headers, rows)
}

// Wishlist writes the backorder list, suitable for sending to suppliers.
func Wishlist(w io.Writer, items []types.WishlistItem) error {
	headers := []string{"ID", "Product", "Quantity", "Supplier", "Status", "Notes"}
	rows := make([][]any, len(items))
	for i, it := range items {
		rows[i] = []any{it.ID, it.ProductName, it.Quantity, it.SupplierName, string(it.Status), strings.TrimSpace(it.Notes)}
	}
	return WriteXLSX(w, "Wishlist", headers, rows)
}
