package brandkit

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// rootCmd is the base Cobra command for the brandkit backend CLI.
var rootCmd = &cobra.Command{
	Use:           "brandkit",
	Short:         "Upload security backend for the brandkit platform",
	Long:          "brandkit validates untrusted uploads with signature, policy, and malware heuristics, and serves the upload API.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the CLI. It should be called by the main package.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
