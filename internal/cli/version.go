package cli

import (
	"runtime"

	"github.com/spf13/cobra"

	"github.com/mrz1836/stakeview/internal/output"
)

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Print the stakeview version, commit and build date.`,
	Example: `  stakeview version
  stakeview version -o json`,
	Args: cobra.NoArgs,
	RunE: runVersion,
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for command registration
func init() {
	versionCmd.GroupID = "config"
	rootCmd.AddCommand(versionCmd)
}

func runVersion(cmd *cobra.Command, _ []string) error {
	w := cmd.OutOrStdout()
	if GetCmdContext(cmd).Formatter.Format() == output.FormatJSON {
		return writeJSON(w, map[string]string{
			"version": buildInfo.Version,
			"commit":  buildInfo.Commit,
			"date":    buildInfo.Date,
			"go":      runtime.Version(),
		})
	}
	out(w, "stakeview %s %s\n", formatVersion(buildInfo), runtime.Version())
	return nil
}
