package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newInitCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize pharmadesk configuration and storage",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(flags, func(s *session) error {
				out := cmd.OutOrStdout()
				fmt.Fprintln(out, "pharmadesk initialized successfully")
				fmt.Fprintln(out, "  config: ", s.settings.ConfigDir)
				fmt.Fprintln(out, "  backend:", s.settings.Storage.Backend)
				if s.settings.Storage.Backend == defaultBackend {
					fmt.Fprintln(out, "  data:   ", s.settings.Storage.DataDir)
				}
				return nil
			})
		},
	}
}
