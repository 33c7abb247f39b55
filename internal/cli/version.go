package cli

import (
	"fmt"
	"io"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/spf13/cobra"
)

const modulePath = "github.com/mesh-intelligence/pharmadesk"

// Build metadata, set by the mage build target with
// -ldflags "-X .../internal/cli.Version=... -X .../internal/cli.Commit=...".
var (
	Version   = "dev"
	Commit    = ""
	BuildDate = ""
)

// buildInfo is what the version command reports.
type buildInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit,omitempty"`
	BuildDate string `json:"build_date,omitempty"`
	Module    string `json:"module"`
	GoVersion string `json:"go_version"`
}

// currentBuild combines the linker-set values with the module build info.
// A binary installed with go install carries no ldflags, so its module
// version and VCS revision are used instead.
func currentBuild() buildInfo {
	info := buildInfo{
		Version:   Version,
		Commit:    Commit,
		BuildDate: BuildDate,
		Module:    modulePath,
		GoVersion: runtime.Version(),
	}
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return info
	}
	return mergeBuildInfo(info, bi)
}

func mergeBuildInfo(info buildInfo, bi *debug.BuildInfo) buildInfo {
	if info.Version == "dev" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		info.Version = bi.Main.Version
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if info.Commit == "" {
				info.Commit = s.Value
			}
		case "vcs.time":
			if info.BuildDate == "" {
				info.BuildDate = s.Value
			}
		}
	}
	if len(info.Commit) > 12 {
		info.Commit = info.Commit[:12]
	}
	return info
}

func writeVersion(out io.Writer, info buildInfo) {
	v := info.Version
	if v != "dev" && !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	fmt.Fprintf(out, "pharmadesk %s\n", v)
	if info.Commit != "" {
		fmt.Fprintf(out, "commit: %s\n", info.Commit)
	}
	if info.BuildDate != "" {
		fmt.Fprintf(out, "built: %s\n", info.BuildDate)
	}
	fmt.Fprintf(out, "module: %s\ngo: %s\n", info.Module, info.GoVersion)
}

func newVersionCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the pharmadesk version",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			info := currentBuild()
			if flags.jsonMode {
				return printJSON(cmd.OutOrStdout(), info)
			}
			writeVersion(cmd.OutOrStdout(), info)
			return nil
		},
	}
}
