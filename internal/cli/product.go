package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/pharmadesk/internal/export"
	"github.com/mesh-intelligence/pharmadesk/pkg/types"
)

func newProductCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "product",
		Short: "Manage the product catalogue",
	}
	cmd.AddCommand(
		newProductListCmd(flags),
		newProductAddCmd(flags),
		newProductUpdateCmd(flags),
		newProductDeleteCmd(flags),
		newProductExportCmd(flags),
		newProductLowStockCmd(flags),
	)
	return cmd
}

// productFilterFlags maps command-line flags onto a types.ProductFilter.
type productFilterFlags struct {
	search       string
	category     string
	status       string
	prescription string
	lowStock     bool
}

func (f *productFilterFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.search, "search", "", "free text over name, description, SKU, barcode and tags")
	cmd.Flags().StringVar(&f.category, "category", "", "exact category")
	cmd.Flags().StringVar(&f.status, "status", "", "active, inactive or discontinued")
	cmd.Flags().StringVar(&f.prescription, "prescription", "", "true or false to filter on prescription requirement")
	cmd.Flags().BoolVar(&f.lowStock, "low-stock", false, "only products at or below their minimum stock")
}

func (f *productFilterFlags) filter() (types.ProductFilter, error) {
	pf := types.ProductFilter{Search: f.search, Category: f.category, LowStock: f.lowStock}
	if f.status != "" {
		status, err := types.ParseProductStatus(f.status)
		if err != nil {
			return pf, userErrorf("invalid --status %q", f.status)
		}
		pf.Status = status
	}
	if f.prescription != "" {
		rx, err := strconv.ParseBool(f.prescription)
		if err != nil {
			return pf, userErrorf("invalid --prescription %q", f.prescription)
		}
		pf.RequiresPrescription = &rx
	}
	return pf, nil
}

// fetchProducts loads the catalogue and applies the filter flags.
func fetchProducts(cmd *cobra.Command, s *session, ff *productFilterFlags) error {
	filter, err := ff.filter()
	if err != nil {
		return err
	}
	if err := s.office.Products.Fetch(cmd.Context()); err != nil {
		return fmt.Errorf("fetch products: %w", err)
	}
	s.office.ProductStore.SetFilters(filter)
	return nil
}

func printProducts(cmd *cobra.Command, flags *rootFlags, products []types.Product) error {
	rows := make([][]string, len(products))
	for i, p := range products {
		rows[i] = []string{
			p.ID,
			truncate(p.Name, 40),
			p.SKU,
			strconv.Itoa(p.Stock),
			strconv.Itoa(p.MinimumStock),
			money(p.Price),
			string(p.Status),
			yesNo(p.IsLowStock()),
		}
	}
	if err := output(cmd, flags, products, "No products found.",
		[]string{"ID", "NAME", "SKU", "STOCK", "MIN", "PRICE", "STATUS", "LOW"}, rows); err != nil {
		return err
	}
	if !flags.jsonMode && len(products) > 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "Total: %d product(s)\n", len(products))
	}
	return nil
}

func newProductListCmd(flags *rootFlags) *cobra.Command {
	ff := &productFilterFlags{}
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List products",
		Long: `List fetches the catalogue and prints the products matching the filters.

Example:
  pharmadesk product list
  pharmadesk product list --search ibuprofen
  pharmadesk product list --category analgesic --low-stock
  pharmadesk product list --json`,
		Args: exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(flags, func(s *session) error {
				if err := fetchProducts(cmd, s, ff); err != nil {
					return err
				}
				return printProducts(cmd, flags, s.office.ProductStore.View())
			})
		},
	}
	ff.register(cmd)
	return cmd
}

func newProductLowStockCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "low-stock",
		Short: "List products at or below their minimum stock",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(flags, func(s *session) error {
				if err := s.office.Products.Fetch(cmd.Context()); err != nil {
					return fmt.Errorf("fetch products: %w", err)
				}
				return printProducts(cmd, flags, s.office.ProductStore.LowStock())
			})
		},
	}
}

// productFields are the editable product flags shared by add and update.
type productFields struct {
	name, description, sku, barcode, category, tags, status string
	price, cost                                             float64
	stock, minStock                                         int
	prescription                                            bool
}

func (f *productFields) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "name", "", "product name")
	cmd.Flags().StringVar(&f.description, "description", "", "description")
	cmd.Flags().StringVar(&f.sku, "sku", "", "stock keeping unit")
	cmd.Flags().StringVar(&f.barcode, "barcode", "", "barcode")
	cmd.Flags().StringVar(&f.category, "category", "", "category")
	cmd.Flags().StringVar(&f.tags, "tags", "", "comma-separated tags")
	cmd.Flags().StringVar(&f.status, "status", string(types.ProductActive), "active, inactive or discontinued")
	cmd.Flags().Float64Var(&f.price, "price", 0, "sale price")
	cmd.Flags().Float64Var(&f.cost, "cost", 0, "purchase cost")
	cmd.Flags().IntVar(&f.stock, "stock", 0, "units in stock")
	cmd.Flags().IntVar(&f.minStock, "min-stock", 0, "minimum stock before reordering")
	cmd.Flags().BoolVar(&f.prescription, "prescription", false, "requires a prescription")
}

func (f *productFields) parseStatus() (types.ProductStatus, error) {
	status, err := types.ParseProductStatus(f.status)
	if err != nil {
		return "", userErrorf("invalid --status %q", f.status)
	}
	return status, nil
}

func newProductAddCmd(flags *rootFlags) *cobra.Command {
	pf := &productFields{}
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a product",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			status, err := pf.parseStatus()
			if err != nil {
				return err
			}
			p := types.Product{
				Name:                 pf.name,
				Description:          pf.description,
				SKU:                  pf.sku,
				Barcode:              pf.barcode,
				Category:             pf.category,
				Tags:                 splitList(pf.tags),
				Price:                pf.price,
				Cost:                 pf.cost,
				Stock:                pf.stock,
				MinimumStock:         pf.minStock,
				RequiresPrescription: pf.prescription,
				Status:               status,
			}
			return withSession(flags, func(s *session) error {
				created, err := s.office.Products.Create(cmd.Context(), p)
				if err != nil {
					return fmt.Errorf("add product: %w", err)
				}
				if flags.jsonMode {
					return printJSON(cmd.OutOrStdout(), created)
				}
				fmt.Fprintln(cmd.OutOrStdout(), created.ID)
				return nil
			})
		},
	}
	pf.register(cmd)
	return cmd
}

func newProductUpdateCmd(flags *rootFlags) *cobra.Command {
	pf := &productFields{}
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change the given fields of a product",
		Long: `Update merges the flags that were passed into the stored product.
Fields without a flag keep their current value.

Example:
  pharmadesk product update 0192f0c4-... --stock 40 --price 3.95`,
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			patch, err := pf.patch(cmd)
			if err != nil {
				return err
			}
			return withSession(flags, func(s *session) error {
				saved, err := s.office.Products.Patch(cmd.Context(), args[0], patch)
				if err != nil {
					return fmt.Errorf("update product: %w", err)
				}
				if flags.jsonMode {
					return printJSON(cmd.OutOrStdout(), saved)
				}
				fmt.Fprintln(cmd.OutOrStdout(), "updated", saved.ID)
				return nil
			})
		},
	}
	pf.register(cmd)
	return cmd
}

// patch builds a ProductPatch from the flags that were set on cmd.
func (f *productFields) patch(cmd *cobra.Command) (types.ProductPatch, error) {
	var p types.ProductPatch
	changed := cmd.Flags().Changed
	if changed("name") {
		p.Name = &f.name
	}
	if changed("description") {
		p.Description = &f.description
	}
	if changed("sku") {
		p.SKU = &f.sku
	}
	if changed("barcode") {
		p.Barcode = &f.barcode
	}
	if changed("category") {
		p.Category = &f.category
	}
	if changed("tags") {
		p.Tags = append([]string{}, splitList(f.tags)...)
	}
	if changed("price") {
		p.Price = &f.price
	}
	if changed("cost") {
		p.Cost = &f.cost
	}
	if changed("stock") {
		p.Stock = &f.stock
	}
	if changed("min-stock") {
		p.MinimumStock = &f.minStock
	}
	if changed("prescription") {
		p.RequiresPrescription = &f.prescription
	}
	if changed("status") {
		status, err := f.parseStatus()
		if err != nil {
			return p, err
		}
		p.Status = &status
	}
	return p, nil
}

func newProductDeleteCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a product",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(flags, func(s *session) error {
				if err := s.office.Products.Remove(cmd.Context(), args[0]); err != nil {
					return fmt.Errorf("delete product: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), "deleted", args[0])
				return nil
			})
		},
	}
}

func newProductExportCmd(flags *rootFlags) *cobra.Command {
	ff := &productFilterFlags{}
	cmd := &cobra.Command{
		Use:   "export <file.xlsx>",
		Short: "Write the filtered catalogue to an Excel workbook",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(flags, func(s *session) error {
				if err := fetchProducts(cmd, s, ff); err != nil {
					return err
				}
				products := s.office.ProductStore.View()
				f, err := os.Create(args[0])
				if err != nil {
					return fmt.Errorf("create %s: %w", args[0], err)
				}
				if err := export.Products(f, products); err != nil {
					f.Close()
					return err
				}
				if err := f.Close(); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "exported %d product(s) to %s\n", len(products), args[0])
				return nil
			})
		},
	}
	ff.register(cmd)
	return cmd
}
