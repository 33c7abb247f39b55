package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/pharmadesk/pkg/types"
)

func newCustomerCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "customer",
		Short: "Manage customers",
	}
	cmd.AddCommand(newCustomerListCmd(flags), newCustomerAddCmd(flags))
	return cmd
}

func newCustomerListCmd(flags *rootFlags) *cobra.Command {
	var search string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List customers",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(flags, func(s *session) error {
				if err := s.office.Customers.Fetch(cmd.Context()); err != nil {
					return fmt.Errorf("fetch customers: %w", err)
				}
				s.office.CustomerStore.SetFilters(types.CustomerFilter{Search: search})

				customers := s.office.CustomerStore.View()
				rows := make([][]string, len(customers))
				for i, c := range customers {
					rows[i] = []string{c.ID, truncate(c.Name, 40), c.Email, c.Phone, c.TaxID}
				}
				return output(cmd, flags, customers, "No customers found.",
					[]string{"ID", "NAME", "EMAIL", "PHONE", "TAX ID"}, rows)
			})
		},
	}
	cmd.Flags().StringVar(&search, "search", "", "free text over name, email, phone and tax ID")
	return cmd
}

func newCustomerAddCmd(flags *rootFlags) *cobra.Command {
	var c types.Customer
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a customer",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(flags, func(s *session) error {
				created, err := s.office.Customers.Create(cmd.Context(), c)
				if err != nil {
					return fmt.Errorf("add customer: %w", err)
				}
				if flags.jsonMode {
					return printJSON(cmd.OutOrStdout(), created)
				}
				fmt.Fprintln(cmd.OutOrStdout(), created.ID)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&c.Name, "name", "", "customer name")
	cmd.Flags().StringVar(&c.Email, "email", "", "email address")
	cmd.Flags().StringVar(&c.Phone, "phone", "", "phone number")
	cmd.Flags().StringVar(&c.Address, "address", "", "postal address")
	cmd.Flags().StringVar(&c.TaxID, "tax-id", "", "tax identification number")
	cmd.Flags().StringVar(&c.Notes, "notes", "", "free-form notes")
	return cmd
}
