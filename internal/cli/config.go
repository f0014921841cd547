package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mrz1836/stakeview/internal/config"
	"github.com/mrz1836/stakeview/internal/output"
	sverr "github.com/mrz1836/stakeview/pkg/errors"
)

// configCmd is the parent command for configuration operations.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long:  `View and initialize stakeview configuration settings.`,
}

// configInitCmd initializes the configuration.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration",
	Long: `Create a default configuration file at ~/.stakeview/config.yaml.

If a configuration file already exists, this command will not overwrite it
unless --force is specified.`,
	Example: `  stakeview config init
  stakeview config init --force`,
	RunE: runConfigInit,
}

// configShowCmd shows the current configuration.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long: `Display the effective configuration: the config file merged with
environment variables and command-line flags.`,
	Example: `  stakeview config show
  stakeview config show -o json`,
	RunE: runConfigShow,
}

// configGetCmd gets a specific configuration value.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var configGetCmd = &cobra.Command{
	Use:   "get <path>",
	Short: "Get a configuration value",
	Long: `Get a specific configuration value by its path.

The path uses dot notation to navigate the configuration tree.`,
	Example: `  stakeview config get network.cluster
  stakeview config get server.addr`,
	Args: cobra.ExactArgs(1),
	RunE: runConfigGet,
}

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level flag variables
var configForce bool

//nolint:gochecknoinits // Cobra CLI pattern requires init for command registration
func init() {
	configCmd.GroupID = "config"
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configGetCmd)

	configInitCmd.Flags().BoolVar(&configForce, "force", false, "overwrite existing configuration")
}

func runConfigInit(cmd *cobra.Command, _ []string) error {
	c := GetCmdContext(cmd).Config
	configPath := config.Path(c.Home)

	// Check if config already exists
	if _, err := os.Stat(configPath); err == nil && !configForce {
		return sverr.WithSuggestion(
			sverr.ErrGeneral,
			fmt.Sprintf("configuration already exists at %s. Use --force to overwrite.", configPath),
		)
	}

	defaultCfg := config.Defaults()
	defaultCfg.Home = c.Home

	if err := config.Save(defaultCfg, configPath); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	w := cmd.OutOrStdout()
	out(w, "Configuration initialized at %s\n", configPath)
	outln(w)
	outln(w, "Edit this file to configure:")
	outln(w, "  - network.cluster: mainnet-beta, devnet, testnet or localnet")
	outln(w, "  - network.rpc: A private RPC endpoint (optional)")
	outln(w, "  - metadata.file: Your own stake pool metadata table (optional)")
	outln(w, "  - server.addr: Web server listen address")
	outln(w, "  - logging.level: Log level (off/error/debug)")

	return nil
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	cc := GetCmdContext(cmd)
	w := cmd.OutOrStdout()

	if cc.Formatter.Format() == output.FormatJSON {
		return writeJSON(w, configView(cc.Config))
	}
	return displayConfigText(w, cc.Config)
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	path := args[0]

	value, err := getConfigValue(GetCmdContext(cmd).Config, path)
	if err != nil {
		return sverr.WithSuggestion(
			sverr.WithDetails(sverr.ErrNotFound, map[string]string{"path": path}),
			fmt.Sprintf("configuration path '%s' not found", path),
		)
	}

	outln(cmd.OutOrStdout(), value)
	return nil
}

// configKeys lists the readable configuration paths in display order.
//
//nolint:gochecknoglobals // static lookup table
var configKeys = []string{
	"home",
	"network.cluster",
	"network.rpc",
	"network.program_id",
	"network.commitment",
	"network.rate_limit",
	"network.rate_burst",
	"metadata.file",
	"server.addr",
	"server.read_header_timeout_seconds",
	"server.shutdown_timeout_seconds",
	"holdings.staleness_minutes",
	"holdings.cache_file",
	"output.default_format",
	"output.color",
	"logging.level",
	"logging.file",
	"logging.json",
}

// getConfigValue retrieves a value from the config using dot notation.
// network.rpc reports the effective endpoint.
func getConfigValue(c *config.Config, path string) (string, error) {
	switch strings.ToLower(path) {
	case "home":
		return c.Home, nil
	case "network.cluster":
		return c.GetCluster().String(), nil
	case "network.rpc":
		return c.GetRPC(), nil
	case "network.program_id":
		return c.Network.ProgramID, nil
	case "network.commitment":
		return c.Network.Commitment, nil
	case "network.rate_limit":
		return strconv.FormatFloat(c.Network.RateLimit, 'f', -1, 64), nil
	case "network.rate_burst":
		return strconv.Itoa(c.Network.RateBurst), nil
	case "metadata.file":
		return c.Metadata.File, nil
	case "server.addr":
		return c.Server.Addr, nil
	case "server.read_header_timeout_seconds":
		return strconv.Itoa(c.Server.ReadHeaderTimeoutSecs), nil
	case "server.shutdown_timeout_seconds":
		return strconv.Itoa(c.Server.ShutdownTimeoutSeconds), nil
	case "holdings.staleness_minutes":
		return strconv.Itoa(c.Holdings.StalenessMinutes), nil
	case "holdings.cache_file":
		return c.Holdings.CacheFile, nil
	case "output.default_format":
		return c.Output.DefaultFormat, nil
	case "output.color":
		return c.Output.Color, nil
	case "logging.level":
		return c.Logging.Level, nil
	case "logging.file":
		return c.Logging.File, nil
	case "logging.json":
		return strconv.FormatBool(c.Logging.JSON), nil
	default:
		return "", sverr.WithDetails(sverr.ErrNotFound, map[string]string{"path": path})
	}
}

// configView returns every readable path with its value.
func configView(c *config.Config) map[string]string {
	view := make(map[string]string, len(configKeys))
	for _, key := range configKeys {
		value, _ := getConfigValue(c, key)
		view[key] = value
	}
	return view
}

func displayConfigText(w io.Writer, c *config.Config) error {
	table := output.NewTable("KEY", "VALUE")
	for _, key := range configKeys {
		value, _ := getConfigValue(c, key)
		if value == "" {
			value = "-"
		}
		table.AddRow(key, value)
	}
	return table.Render(w)
}
