// =============================================================================
// X12 EDI Parser - Version Command
// =============================================================================
//
// COMMAND USAGE:
//   x12 version
//
// OUTPUT:
//   X12 EDI Parser
//   Version:    1.0.0
//   Build Date: 2024-01-01
//   Go Version: go1.24.0
//   Catalog:    313 transaction sets
//
// =============================================================================

package cmd

import (
	"runtime"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/x12-edi-parser/internal/catalog"
)

// Version information, set at build time:
//   go build -ldflags "-X 'github.com/ginjaninja78/x12-edi-parser/cmd.Version=1.0.0' -X 'github.com/ginjaninja78/x12-edi-parser/cmd.BuildDate=2024-01-01'"
var (
	Version   = "1.0.0"
	BuildDate = "unknown"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Display the application version",
	Long:  `Display the application version, build date, Go runtime version and the size of the built-in transaction set catalog.`,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		printf(out, "X12 EDI Parser\n")
		printf(out, "Version:    %s\n", Version)
		printf(out, "Build Date: %s\n", BuildDate)
		printf(out, "Go Version: %s\n", runtime.Version())
		printf(out, "Catalog:    %d transaction sets\n", catalog.Default().Len())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
