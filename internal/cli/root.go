// Package cli implements the stakeview command-line interface.
//
// This package uses global variables to manage CLI state, which is the standard
// pattern for Cobra-based CLI applications. The globals are initialized in
// PersistentPreRunE and cleaned up in PersistentPostRun.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level state
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/spf13/cobra"

	"github.com/mrz1836/stakeview/internal/chain"
	"github.com/mrz1836/stakeview/internal/config"
	"github.com/mrz1836/stakeview/internal/output"
	sverr "github.com/mrz1836/stakeview/pkg/errors"
)

// BuildInfo is the version metadata injected at link time.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

var (
	// Global flags
	homeDir      string
	outputFormat string
	clusterFlag  string
	rpcFlag      string
	verbose      bool

	// Global state initialized in PersistentPreRunE
	cfg       *config.Config
	logger    *config.Logger
	formatter *output.Formatter

	buildInfo BuildInfo
	helpOnce  sync.Once
)

// rootCmd is the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "stakeview",
	Short: "Browse Solana stake pools",
	Long: `Stakeview lists the stake pool accounts of a Solana staking program and
splits them into recognized pools, which have display metadata, and
unrecognized ones.

Pools can be browsed in the terminal or through a small web server that
also accepts wallet connections and shows the connected wallet's tokens.`,
	Example: `  stakeview pools list
  stakeview pools show cardinal --cluster devnet
  stakeview serve --addr 127.0.0.1:8080`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if err := initGlobals(); err != nil {
			return err
		}
		SetCmdContext(cmd, NewCommandContext(cfg, logger, formatter))
		return nil
	},
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		cleanup()
	},
}

// reportedError marks an error the user has already seen, for example as a
// notification. Execute does not print it again but still maps its exit code.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

// Execute runs the root command.
func Execute() error {
	helpOnce.Do(func() { walkCommands(rootCmd, enrichParentLong) })

	err := rootCmd.Execute()
	if err != nil {
		var reported *reportedError
		if errors.As(err, &reported) {
			return err
		}
		// Format and print error
		if formatter != nil {
			_ = output.FormatError(os.Stderr, err, formatter.Format())
		} else {
			_ = output.FormatError(os.Stderr, err, output.FormatText)
		}
		return err
	}
	return nil
}

// ExitCode returns the appropriate exit code for an error.
func ExitCode(err error) int {
	return sverr.ExitCode(err)
}

// SetBuildInfo records version metadata for the version command.
func SetBuildInfo(info BuildInfo) {
	buildInfo = info
	rootCmd.Version = formatVersion(info)
}

func formatVersion(info BuildInfo) string {
	version, commit, date := info.Version, info.Commit, info.Date
	if version == "" {
		version = "dev"
	}
	if commit == "" {
		commit = "unknown"
	}
	if date == "" {
		date = "unknown"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date)
}

// initGlobals initializes global configuration, logger, and formatter.
func initGlobals() error {
	// Determine home directory
	home := homeDir
	if home == "" {
		home = os.Getenv(config.EnvHome)
	}
	if home == "" {
		home = config.DefaultHome()
	}

	// Load or create config
	var err error
	cfg, err = config.Load(config.Path(home))
	if err != nil {
		if !sverr.Is(err, sverr.ErrConfigNotFound) {
			return err
		}
		cfg = config.Defaults()
	}
	cfg.Home = home

	// Apply environment variable overrides
	config.ApplyEnvironment(cfg)

	// Override with command-line flags
	if homeDir != "" {
		cfg.Home = homeDir
	}
	if clusterFlag != "" {
		cluster, ok := chain.ParseCluster(clusterFlag)
		if !ok {
			return sverr.WithSuggestion(
				sverr.WithDetails(sverr.ErrUnknownCluster, map[string]string{"cluster": clusterFlag}),
				"Use one of: mainnet-beta, devnet, testnet, localnet",
			)
		}
		cfg.Network.Cluster = cluster.String()
		if rpcFlag == "" && os.Getenv(config.EnvRPC) == "" {
			// An RPC configured for another cluster would be wrong here.
			cfg.Network.RPC = ""
		}
	}
	if rpcFlag != "" {
		cfg.Network.RPC = config.SanitizeURL(rpcFlag)
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}
	if outputFormat != "" && outputFormat != "auto" {
		cfg.Output.DefaultFormat = outputFormat
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	// Initialize logger
	logLevel := config.ParseLogLevel(cfg.GetLoggingLevel())
	logger, err = config.NewLogger(logLevel, cfg.GetLoggingFile())
	if err != nil {
		// Use null logger if we can't create the file
		logger = config.NullLogger()
	}
	logger.SetJSONOutput(cfg.Logging.JSON)

	// Initialize formatter
	formatter = newFormatter(os.Stdout, cfg)
	return nil
}

// newFormatter builds the output formatter for w from the configured format
// and color preference.
func newFormatter(w io.Writer, c *config.Config) *output.Formatter {
	explicit := output.ParseFormat(c.GetOutputFormat())
	f := output.NewFormatter(output.DetectFormat(w, explicit), w)
	switch c.Output.Color {
	case "always":
		f.SetColor(true)
	case "never":
		f.SetColor(false)
	}
	return f
}

// cleanup releases resources.
func cleanup() {
	if logger != nil {
		_ = logger.Close()
	}
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for flag registration
func init() {
	rootCmd.AddGroup(
		&cobra.Group{ID: "pools", Title: "Stake Pools:"},
		&cobra.Group{ID: "wallet", Title: "Wallet:"},
		&cobra.Group{ID: "config", Title: "Configuration:"},
	)
	rootCmd.SetHelpCommandGroupID("config")

	rootCmd.PersistentFlags().StringVar(&homeDir, "home", "", "stakeview data directory (default: ~/.stakeview)")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "auto", "output format: text, json, auto")
	rootCmd.PersistentFlags().StringVar(&clusterFlag, "cluster", "", "Solana cluster: mainnet-beta, devnet, testnet, localnet")
	rootCmd.PersistentFlags().StringVar(&rpcFlag, "rpc", "", "RPC endpoint URL (default: the cluster's public endpoint)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}
