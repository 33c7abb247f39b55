// Package cli implements the pharmadesk command-line interface.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/pharmadesk/internal/backoffice"
	"github.com/mesh-intelligence/pharmadesk/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	dataDir   string
	jsonMode  bool
}

// NewRootCmd creates the top-level "pharmadesk" command with global flags
// and all subcommands registered.
func NewRootCmd() *cobra.Command {
	flags := &rootFlags{}
	root := &cobra.Command{
		Use:   "pharmadesk",
		Short: "Pharmacy back-office",
		Long: `pharmadesk manages a pharmacy's product catalogue, customers, orders,
quotations, supplier wishlist and cash-register closings.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return userError{err}
	})

	root.PersistentFlags().StringVar(&flags.configDir, "config-dir", "", "configuration directory (default: platform config dir)")
	root.PersistentFlags().StringVar(&flags.dataDir, "data-dir", "", "data directory (default: platform data dir)")
	root.PersistentFlags().BoolVar(&flags.jsonMode, "json", false, "output in JSON format")

	root.AddCommand(
		newVersionCmd(flags),
		newInitCmd(flags),
		newServeCmd(flags),
		newProductCmd(flags),
		newCustomerCmd(flags),
		newOrderCmd(flags),
		newQuotationCmd(flags),
		newWishlistCmd(flags),
		newClosingCmd(flags),
		newBackupCmd(flags),
		newRestoreCmd(flags),
	)
	return root
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	os.Exit(run(NewRootCmd(), os.Args[1:], os.Stderr))
}

func run(root *cobra.Command, args []string, stderr io.Writer) int {
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(stderr, "error:", err)
		return exitCode(err)
	}
	return exitSuccess
}

// userError marks an error caused by the invocation rather than the system.
type userError struct{ err error }

func (e userError) Error() string { return e.err.Error() }
func (e userError) Unwrap() error { return e.err }

func userErrorf(format string, args ...any) error {
	return userError{fmt.Errorf(format, args...)}
}

// exitCode classifies err as a user or system failure. A partially failed
// bulk update is a system failure whatever its items report.
func exitCode(err error) int {
	var (
		ue   userError
		bulk *backoffice.BulkError
	)
	switch {
	case err == nil:
		return exitSuccess
	case errors.As(err, &bulk):
		return exitSysError
	case errors.As(err, &ue),
		errors.Is(err, types.ErrNotFound),
		errors.Is(err, types.ErrInvalidID),
		errors.Is(err, types.ErrInvalidData),
		errors.Is(err, types.ErrInvalidName),
		errors.Is(err, types.ErrInvalidStatus),
		errors.Is(err, types.ErrInvalidFilter):
		return exitUserError
	default:
		return exitSysError
	}
}

// exactArgs is cobra.ExactArgs reporting a user error.
func exactArgs(n int) cobra.PositionalArgs {
	return wrapArgs(cobra.ExactArgs(n))
}

// minArgs is cobra.MinimumNArgs reporting a user error.
func minArgs(n int) cobra.PositionalArgs {
	return wrapArgs(cobra.MinimumNArgs(n))
}

func wrapArgs(check cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := check(cmd, args); err != nil {
			return userError{err}
		}
		return nil
	}
}
