package cli

import (
	"time"

	"github.com/mrz1836/stakeview/internal/chain"
	"github.com/mrz1836/stakeview/internal/config"
	"github.com/mrz1836/stakeview/internal/output"
)

// Compile-time interface checks.
var (
	_ ConfigProvider = (*config.Config)(nil)
	_ LogWriter      = (*config.Logger)(nil)
	_ FormatProvider = (*output.Formatter)(nil)
)

// ConfigProvider provides read access to configuration values.
// This interface enables mocking configuration in tests.
type ConfigProvider interface {
	// GetHome returns the stakeview home directory path.
	GetHome() string

	// GetCluster returns the selected Solana cluster.
	GetCluster() chain.Cluster

	// GetRPC returns the RPC endpoint for the cluster.
	GetRPC() string

	// GetMetadataFile returns the metadata table override, if any.
	GetMetadataFile() string

	// GetServerAddr returns the web server listen address.
	GetServerAddr() string

	// GetHoldingsStaleness returns how long cached holdings stay fresh.
	GetHoldingsStaleness() time.Duration

	// GetHoldingsCacheFile returns the holdings cache path.
	GetHoldingsCacheFile() string

	// GetLoggingLevel returns the configured logging level.
	GetLoggingLevel() string

	// GetLoggingFile returns the configured log file path.
	GetLoggingFile() string

	// GetOutputFormat returns the default output format.
	GetOutputFormat() string
}

// LogWriter provides logging capabilities.
// This interface enables mocking logging in tests.
type LogWriter interface {
	// Debug logs a debug-level message.
	Debug(format string, args ...any)

	// Error logs an error-level message.
	Error(format string, args ...any)

	// Close closes the logger and releases resources.
	Close() error
}

// FormatProvider provides output format information.
// This interface enables mocking output formatting in tests.
type FormatProvider interface {
	// Format returns the current output format.
	Format() output.Format

	// Color reports whether styled output is enabled.
	Color() bool
}
