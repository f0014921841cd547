package config

import (
	"os"
	"strings"

	"github.com/mrz1836/go-sanitize"
)

// Environment variable names.
const (
	EnvHome         = "STAKEVIEW_HOME"
	EnvCluster      = "STAKEVIEW_CLUSTER"
	EnvRPC          = "STAKEVIEW_RPC"
	EnvProgramID    = "STAKEVIEW_PROGRAM_ID"
	EnvMetadataFile = "STAKEVIEW_METADATA_FILE"
	EnvAddr         = "STAKEVIEW_ADDR"
	EnvOutputFormat = "STAKEVIEW_OUTPUT_FORMAT"
	EnvLogLevel     = "STAKEVIEW_LOG_LEVEL"
	EnvNoColor      = "NO_COLOR"
)

// ApplyEnvironment applies environment variable overrides to the configuration.
func ApplyEnvironment(cfg *Config) {
	if v := os.Getenv(EnvHome); v != "" {
		cfg.Home = v
	}

	if v := os.Getenv(EnvCluster); v != "" {
		cfg.Network.Cluster = strings.ToLower(strings.TrimSpace(v))
	}

	if v := os.Getenv(EnvRPC); v != "" {
		cfg.Network.RPC = SanitizeURL(v)
	}

	if v := os.Getenv(EnvProgramID); v != "" {
		cfg.Network.ProgramID = strings.TrimSpace(v)
	}

	if v := os.Getenv(EnvMetadataFile); v != "" {
		cfg.Metadata.File = v
	}

	if v := os.Getenv(EnvAddr); v != "" {
		cfg.Server.Addr = strings.TrimSpace(v)
	}

	if v := os.Getenv(EnvOutputFormat); v != "" {
		cfg.Output.DefaultFormat = strings.ToLower(v)
	}

	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}

	// NO_COLOR disables colored output
	if _, ok := os.LookupEnv(EnvNoColor); ok {
		cfg.Output.Color = "never"
	}
}

// SanitizeURL cleans a URL string by removing invalid characters and trimming whitespace.
// This is useful for cleaning user-provided RPC URLs that may contain copy-paste artifacts.
func SanitizeURL(url string) string {
	return sanitize.URL(strings.TrimSpace(url))
}
