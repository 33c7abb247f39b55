package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/pharmadesk/pkg/types"
)

func newOrderCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "order",
		Short: "Manage customer orders",
	}
	cmd.AddCommand(newOrderListCmd(flags), newOrderAddCmd(flags), newOrderTotalCmd(flags))
	return cmd
}

// documentFilterFlags are the filters shared by orders and quotations.
type documentFilterFlags struct {
	search, status, customer, from, to string
}

func (f *documentFilterFlags) register(cmd *cobra.Command, statuses string) {
	cmd.Flags().StringVar(&f.search, "search", "", "free text over number, customer and notes")
	cmd.Flags().StringVar(&f.status, "status", "", statuses)
	cmd.Flags().StringVar(&f.customer, "customer", "", "customer ID")
	cmd.Flags().StringVar(&f.from, "from", "", "created on or after YYYY-MM-DD")
	cmd.Flags().StringVar(&f.to, "to", "", "created on or before YYYY-MM-DD")
}

func (f *documentFilterFlags) dates() (from, to *time.Time, err error) {
	if from, err = parseDate("from", f.from, false); err != nil {
		return nil, nil, err
	}
	if to, err = parseDate("to", f.to, true); err != nil {
		return nil, nil, err
	}
	return from, to, nil
}

func (f *documentFilterFlags) orderFilter() (types.OrderFilter, error) {
	of := types.OrderFilter{Search: f.search, CustomerID: f.customer}
	if f.status != "" {
		status, err := types.ParseOrderStatus(f.status)
		if err != nil {
			return of, userErrorf("invalid --status %q", f.status)
		}
		of.Status = status
	}
	var err error
	if of.From, of.To, err = f.dates(); err != nil {
		return of, err
	}
	return of, of.Validate()
}

// parseLineItems parses repeated --item <product>:<quantity>:<unit price>
// values.
func parseLineItems(values []string) ([]types.LineItem, error) {
	items := make([]types.LineItem, 0, len(values))
	for _, v := range values {
		fields, err := parsePair("item", v, 3)
		if err != nil {
			return nil, err
		}
		qty, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, userErrorf("invalid quantity in --item %q", v)
		}
		price, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			return nil, userErrorf("invalid unit price in --item %q", v)
		}
		items = append(items, types.LineItem{ProductID: fields[0], Quantity: qty, UnitPrice: price})
	}
	return items, nil
}

func newOrderListCmd(flags *rootFlags) *cobra.Command {
	ff := &documentFilterFlags{}
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List orders with their totals",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := ff.orderFilter()
			if err != nil {
				return err
			}
			return withSession(flags, func(s *session) error {
				if err := s.office.Orders.Fetch(cmd.Context()); err != nil {
					return fmt.Errorf("fetch orders: %w", err)
				}
				s.office.OrderStore.SetFilters(filter)

				orders := s.office.OrderStore.View()
				rows := make([][]string, len(orders))
				for i, o := range orders {
					rows[i] = []string{o.ID, o.Number, truncate(o.CustomerName, 30), string(o.Status),
						strconv.Itoa(len(o.Items)), money(o.Total()), o.CreatedAt.Format(dateLayout)}
				}
				if err := output(cmd, flags, orders, "No orders found.",
					[]string{"ID", "NUMBER", "CUSTOMER", "STATUS", "ITEMS", "TOTAL", "CREATED"}, rows); err != nil {
					return err
				}
				if !flags.jsonMode && len(orders) > 0 {
					fmt.Fprintf(cmd.OutOrStdout(), "Total: %d order(s), %s\n", len(orders), money(s.office.OrderStore.ViewTotal()))
				}
				return nil
			})
		},
	}
	ff.register(cmd, "pending, processing, completed or cancelled")
	return cmd
}

func newOrderAddCmd(flags *rootFlags) *cobra.Command {
	var (
		o      types.Order
		status string
		items  []string
	)
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an order",
		Long: `Add records a customer order. Each --item is <product-id>:<quantity>:<unit-price>.

Example:
  pharmadesk order add --number ORD-0042 --customer-name "Ana Ruiz" \
    --item 0192f0c4-...:2:4.50 --item 0192f0c5-...:1:12`,
		Args: exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := types.ParseOrderStatus(status)
			if err != nil {
				return userErrorf("invalid --status %q", status)
			}
			lines, err := parseLineItems(items)
			if err != nil {
				return err
			}
			o.Status = st
			o.Items = lines
			return withSession(flags, func(s *session) error {
				created, err := s.office.Orders.Create(cmd.Context(), o)
				if err != nil {
					return fmt.Errorf("add order: %w", err)
				}
				if flags.jsonMode {
					return printJSON(cmd.OutOrStdout(), created)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s total %s\n", created.ID, money(created.Total()))
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&o.Number, "number", "", "order number")
	cmd.Flags().StringVar(&o.CustomerID, "customer-id", "", "customer ID")
	cmd.Flags().StringVar(&o.CustomerName, "customer-name", "", "customer name")
	cmd.Flags().StringVar(&o.Notes, "notes", "", "free-form notes")
	cmd.Flags().StringVar(&status, "status", string(types.OrderPending), "pending, processing, completed or cancelled")
	cmd.Flags().StringArrayVar(&items, "item", nil, "line item <product-id>:<quantity>:<unit-price> (repeatable)")
	return cmd
}

func newOrderTotalCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "total <id>",
		Short: "Print the total of an order",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(flags, func(s *session) error {
				o, err := s.office.Orders.Get(cmd.Context(), args[0])
				if err != nil {
					return fmt.Errorf("get order: %w", err)
				}
				if flags.jsonMode {
					return printJSON(cmd.OutOrStdout(), map[string]any{"id": o.ID, "total": o.Total()})
				}
				fmt.Fprintln(cmd.OutOrStdout(), money(o.Total()))
				return nil
			})
		},
	}
}
