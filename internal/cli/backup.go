package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/pharmadesk/pkg/types"
)

func newBackupCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "backup <dir>",
		Short: "Write every table to <dir>/<table>.jsonl",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(flags, func(s *session) error {
				counts, err := s.backend.Export(cmd.Context(), args[0])
				if err != nil {
					return fmt.Errorf("backup: %w", err)
				}
				return printCounts(cmd, flags, "exported", counts)
			})
		},
	}
}

func newRestoreCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "restore <dir>",
		Short: "Load <dir>/<table>.jsonl files, replacing rows with the same id",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(flags, func(s *session) error {
				counts, err := s.backend.Import(cmd.Context(), args[0])
				if err != nil {
					return fmt.Errorf("restore: %w", err)
				}
				return printCounts(cmd, flags, "imported", counts)
			})
		},
	}
}

// printCounts prints per-table record counts in table order.
func printCounts(cmd *cobra.Command, flags *rootFlags, verb string, counts map[string]int) error {
	var rows [][]string
	for _, name := range types.StandardTableNames {
		if n, ok := counts[name]; ok {
			rows = append(rows, []string{name, fmt.Sprint(n)})
		}
	}
	return output(cmd, flags, counts, "nothing "+verb, []string{"TABLE", "RECORDS"}, rows)
}
