package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/pharmadesk/pkg/types"
)

func newClosingCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "closing",
		Short: "Record and review cash-register closings",
	}
	cmd.AddCommand(newClosingListCmd(flags), newClosingAddCmd(flags), newClosingShowCmd(flags))
	return cmd
}

func newClosingListCmd(flags *rootFlags) *cobra.Command {
	var (
		from, to       string
		withDifference bool
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List closings with their cash difference",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			filter := types.ClosingFilter{WithDifference: withDifference}
			var err error
			if filter.From, err = parseDate("from", from, false); err != nil {
				return err
			}
			if filter.To, err = parseDate("to", to, true); err != nil {
				return err
			}
			if err := filter.Validate(); err != nil {
				return err
			}
			return withSession(flags, func(s *session) error {
				if err := s.office.Closings.Fetch(cmd.Context()); err != nil {
					return fmt.Errorf("fetch closings: %w", err)
				}
				s.office.ClosingStore.SetFilters(filter)

				closings := s.office.ClosingStore.View()
				rows := make([][]string, len(closings))
				for i, c := range closings {
					rows[i] = []string{c.ID, c.OpenedAt.Format(dateLayout), money(c.Expected()),
						money(c.Counted()), money(c.Difference())}
				}
				if err := output(cmd, flags, closings, "No closings found.",
					[]string{"ID", "OPENED", "EXPECTED", "COUNTED", "DIFFERENCE"}, rows); err != nil {
					return err
				}
				if !flags.jsonMode && len(closings) > 0 {
					fmt.Fprintf(cmd.OutOrStdout(), "Total: %d closing(s), net difference %s\n",
						len(closings), money(s.office.ClosingStore.ViewDifference()))
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "opened on or after YYYY-MM-DD")
	cmd.Flags().StringVar(&to, "to", "", "opened on or before YYYY-MM-DD")
	cmd.Flags().BoolVar(&withDifference, "with-difference", false, "only closings whose count does not match")
	return cmd
}

// parseCashCounts parses repeated --count <denomination>:<quantity> values.
func parseCashCounts(values []string) ([]types.CashCount, error) {
	counts := make([]types.CashCount, 0, len(values))
	for _, v := range values {
		fields, err := parsePair("count", v, 2)
		if err != nil {
			return nil, err
		}
		denom, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return nil, userErrorf("invalid denomination in --count %q", v)
		}
		qty, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, userErrorf("invalid quantity in --count %q", v)
		}
		counts = append(counts, types.CashCount{Denomination: denom, Quantity: qty})
	}
	return counts, nil
}

func newClosingAddCmd(flags *rootFlags) *cobra.Command {
	var (
		c      types.CashClosing
		counts []string
	)
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a cash-register closing",
		Long: `Add records the end-of-day cash count. Each --count is
<denomination>:<quantity>.

Example:
  pharmadesk closing add --opening 100 --cash-sales 250 --expenses 38 \
    --count 100:3 --count 5:2 --count 2:1`,
		Args: exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			parsed, err := parseCashCounts(counts)
			if err != nil {
				return err
			}
			c.Counts = parsed
			now := time.Now().UTC()
			if c.OpenedAt.IsZero() {
				c.OpenedAt = now
			}
			c.ClosedAt = &now
			return withSession(flags, func(s *session) error {
				created, err := s.office.Closings.Create(cmd.Context(), c)
				if err != nil {
					return fmt.Errorf("add closing: %w", err)
				}
				return printClosing(cmd, flags, created)
			})
		},
	}
	cmd.Flags().Float64Var(&c.OpeningAmount, "opening", 0, "cash in the drawer at opening")
	cmd.Flags().Float64Var(&c.CashSales, "cash-sales", 0, "cash sales of the day")
	cmd.Flags().Float64Var(&c.CardSales, "card-sales", 0, "card sales of the day")
	cmd.Flags().Float64Var(&c.Expenses, "expenses", 0, "cash paid out of the drawer")
	cmd.Flags().StringVar(&c.Notes, "notes", "", "free-form notes")
	cmd.Flags().StringArrayVar(&counts, "count", nil, "counted cash <denomination>:<quantity> (repeatable)")
	return cmd
}

func newClosingShowCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show the summary of a closing",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(flags, func(s *session) error {
				c, err := s.office.Closings.Get(cmd.Context(), args[0])
				if err != nil {
					return fmt.Errorf("get closing: %w", err)
				}
				return printClosing(cmd, flags, c)
			})
		},
	}
}

func printClosing(cmd *cobra.Command, flags *rootFlags, c types.CashClosing) error {
	out := cmd.OutOrStdout()
	if flags.jsonMode {
		return printJSON(out, map[string]any{
			"closing":    c,
			"expected":   c.Expected(),
			"counted":    c.Counted(),
			"difference": c.Difference(),
			"balanced":   c.Balanced(),
		})
	}
	fmt.Fprintln(out, "closing:   ", c.ID)
	fmt.Fprintln(out, "opened:    ", c.OpenedAt.Format(time.RFC3339))
	fmt.Fprintln(out, "expected:  ", money(c.Expected()))
	fmt.Fprintln(out, "counted:   ", money(c.Counted()))
	fmt.Fprintln(out, "difference:", money(c.Difference()))
	if c.Balanced() {
		fmt.Fprintln(out, "balanced")
	}
	return nil
}
