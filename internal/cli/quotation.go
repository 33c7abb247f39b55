package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/pharmadesk/pkg/types"
)

func newQuotationCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quotation",
		Short: "Inspect quotations",
	}
	cmd.AddCommand(newQuotationListCmd(flags), newQuotationTotalCmd(flags))
	return cmd
}

func (f *documentFilterFlags) quotationFilter() (types.QuotationFilter, error) {
	qf := types.QuotationFilter{Search: f.search, CustomerID: f.customer}
	if f.status != "" {
		status, err := types.ParseQuotationStatus(f.status)
		if err != nil {
			return qf, userErrorf("invalid --status %q", f.status)
		}
		qf.Status = status
	}
	var err error
	if qf.From, qf.To, err = f.dates(); err != nil {
		return qf, err
	}
	return qf, qf.Validate()
}

func newQuotationListCmd(flags *rootFlags) *cobra.Command {
	ff := &documentFilterFlags{}
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List quotations with their totals",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := ff.quotationFilter()
			if err != nil {
				return err
			}
			return withSession(flags, func(s *session) error {
				if err := s.office.Quotations.Fetch(cmd.Context()); err != nil {
					return fmt.Errorf("fetch quotations: %w", err)
				}
				s.office.QuotationStore.SetFilters(filter)

				now := time.Now()
				quotations := s.office.QuotationStore.View()
				rows := make([][]string, len(quotations))
				for i, q := range quotations {
					valid := ""
					if q.ValidUntil != nil {
						valid = q.ValidUntil.Format(dateLayout)
					}
					rows[i] = []string{q.ID, q.Number, truncate(q.CustomerName, 30), string(q.Status),
						money(q.Total()), valid, yesNo(q.Expired(now))}
				}
				if err := output(cmd, flags, quotations, "No quotations found.",
					[]string{"ID", "NUMBER", "CUSTOMER", "STATUS", "TOTAL", "VALID UNTIL", "EXPIRED"}, rows); err != nil {
					return err
				}
				if !flags.jsonMode && len(quotations) > 0 {
					fmt.Fprintf(cmd.OutOrStdout(), "Total: %d quotation(s), %s\n", len(quotations), money(s.office.QuotationStore.ViewTotal()))
				}
				return nil
			})
		},
	}
	ff.register(cmd, "draft, sent, accepted, rejected or expired")
	return cmd
}

func newQuotationTotalCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "total <id>",
		Short: "Print the total of a quotation",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(flags, func(s *session) error {
				q, err := s.office.Quotations.Get(cmd.Context(), args[0])
				if err != nil {
					return fmt.Errorf("get quotation: %w", err)
				}
				if flags.jsonMode {
					return printJSON(cmd.OutOrStdout(), map[string]any{
						"id": q.ID, "total": q.Total(), "expired": q.Expired(time.Now()),
					})
				}
				fmt.Fprintln(cmd.OutOrStdout(), money(q.Total()))
				return nil
			})
		},
	}
}
