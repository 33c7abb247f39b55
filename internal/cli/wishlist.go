package cli

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/pharmadesk/internal/backoffice"
	"github.com/mesh-intelligence/pharmadesk/pkg/types"
)

func newWishlistCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wishlist",
		Short: "Manage products to order from suppliers",
	}
	cmd.AddCommand(newWishlistListCmd(flags), newWishlistAddCmd(flags), newWishlistMarkCmd(flags))
	return cmd
}

func newWishlistListCmd(flags *rootFlags) *cobra.Command {
	var search, status string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List wishlist items",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			filter := types.WishlistFilter{Search: search}
			if status != "" {
				st, err := types.ParseWishlistStatus(status)
				if err != nil {
					return userErrorf("invalid --status %q", status)
				}
				filter.Status = st
			}
			return withSession(flags, func(s *session) error {
				if err := s.office.Wishlist.Fetch(cmd.Context()); err != nil {
					return fmt.Errorf("fetch wishlist: %w", err)
				}
				s.office.WishlistStore.SetFilters(filter)

				items := s.office.WishlistStore.View()
				rows := make([][]string, len(items))
				for i, it := range items {
					rows[i] = []string{it.ID, truncate(it.ProductName, 40), strconv.Itoa(it.Quantity), it.SupplierName, string(it.Status)}
				}
				return output(cmd, flags, items, "Wishlist is empty.",
					[]string{"ID", "PRODUCT", "QTY", "SUPPLIER", "STATUS"}, rows)
			})
		},
	}
	cmd.Flags().StringVar(&search, "search", "", "free text over product, supplier and notes")
	cmd.Flags().StringVar(&status, "status", "", "pending, ordered, received or cancelled")
	return cmd
}

func newWishlistAddCmd(flags *rootFlags) *cobra.Command {
	w := types.WishlistItem{Status: types.WishlistPending}
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a product to the wishlist",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(flags, func(s *session) error {
				created, err := s.office.Wishlist.Create(cmd.Context(), w)
				if err != nil {
					return fmt.Errorf("add wishlist item: %w", err)
				}
				if flags.jsonMode {
					return printJSON(cmd.OutOrStdout(), created)
				}
				fmt.Fprintln(cmd.OutOrStdout(), created.ID)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&w.ProductName, "product", "", "product name")
	cmd.Flags().StringVar(&w.ProductID, "product-id", "", "catalogue product ID")
	cmd.Flags().IntVar(&w.Quantity, "quantity", 1, "units to order")
	cmd.Flags().StringVar(&w.SupplierName, "supplier", "", "supplier name")
	cmd.Flags().StringVar(&w.Notes, "notes", "", "free-form notes")
	return cmd
}

func newWishlistMarkCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "mark <status> <id>...",
		Short: "Move wishlist items to a new status",
		Long: `Mark moves every listed item to the given status. Items are saved one by
one; the ones that fail are reported and keep their previous status.

Example:
  pharmadesk wishlist mark ordered 0192f0c4-... 0192f0c5-...`,
		Args: minArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			status, err := types.ParseWishlistStatus(args[0])
			if err != nil {
				return userErrorf("invalid status %q", args[0])
			}
			return withSession(flags, func(s *session) error {
				if err := s.office.Wishlist.Fetch(cmd.Context()); err != nil {
					return fmt.Errorf("fetch wishlist: %w", err)
				}
				n, err := s.office.SetWishlistStatus(cmd.Context(), args[1:], status)

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "marked %d item(s) %s\n", n, status)
				var bulk *backoffice.BulkError
				if errors.As(err, &bulk) {
					for _, id := range slices.Sorted(maps.Keys(bulk.Failed)) {
						fmt.Fprintf(cmd.ErrOrStderr(), "  %s: %v\n", id, bulk.Failed[id])
					}
				}
				return err
			})
		},
	}
}
