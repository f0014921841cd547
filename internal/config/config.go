// Package config provides configuration management for stakeview.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/mrz1836/stakeview/internal/chain"
	"github.com/mrz1836/stakeview/internal/fileutil"
	sverr "github.com/mrz1836/stakeview/pkg/errors"
)

// Config represents the application configuration.
type Config struct {
	Version  int            `yaml:"version"`
	Home     string         `yaml:"home"`
	Network  NetworkConfig  `yaml:"network"`
	Metadata MetadataConfig `yaml:"metadata"`
	Server   ServerConfig   `yaml:"server"`
	Holdings HoldingsConfig `yaml:"holdings"`
	Output   OutputConfig   `yaml:"output"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// NetworkConfig selects the Solana cluster and RPC endpoint.
type NetworkConfig struct {
	Cluster    string `yaml:"cluster"`
	RPC        string `yaml:"rpc,omitempty"`
	ProgramID  string `yaml:"program_id"`
	Commitment string `yaml:"commitment"`
	// RateLimit is requests per second against the RPC endpoint; 0 disables limiting.
	RateLimit float64 `yaml:"rate_limit"`
	RateBurst int     `yaml:"rate_burst"`
}

// MetadataConfig locates the stake pool metadata table.
type MetadataConfig struct {
	// File replaces the embedded table when set.
	File string `yaml:"file,omitempty"`
}

// ServerConfig defines web server settings.
type ServerConfig struct {
	Addr                   string `yaml:"addr"`
	ReadHeaderTimeoutSecs  int    `yaml:"read_header_timeout_seconds"`
	ShutdownTimeoutSeconds int    `yaml:"shutdown_timeout_seconds"`
}

// HoldingsConfig defines token holdings cache settings.
type HoldingsConfig struct {
	StalenessMinutes int    `yaml:"staleness_minutes"`
	CacheFile        string `yaml:"cache_file"`
}

// OutputConfig defines output formatting settings.
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format"`
	Color         string `yaml:"color"`
}

// LoggingConfig defines logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
	JSON  bool   `yaml:"json"`
}

// Load reads configuration from the specified file. Keys missing from the
// file keep their default values.
func Load(path string) (*Config, error) {
	// #nosec G304 -- config file path is from validated user input
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, sverr.WithDetails(sverr.ErrConfigNotFound, map[string]string{"path": path})
		}
		return nil, sverr.WithCause(sverr.ErrConfigInvalid, err)
	}

	cfg := Defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, sverr.WithDetails(sverr.WithCause(sverr.ErrConfigInvalid, err), map[string]string{"path": path})
	}

	return cfg, nil
}

// Save writes configuration to the specified file.
func Save(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	return fileutil.WriteAtomic(path, data, 0o600)
}

// Validate checks values that would otherwise fail late.
func (c *Config) Validate() error {
	invalid := func(key, value string) error {
		return sverr.WithDetails(sverr.ErrConfigInvalid, map[string]string{key: value})
	}

	if _, ok := chain.ParseCluster(c.Network.Cluster); !ok {
		return sverr.WithSuggestion(invalid("network.cluster", c.Network.Cluster),
			"Use one of: mainnet-beta, devnet, testnet, localnet")
	}
	if c.Network.RateLimit < 0 {
		return invalid("network.rate_limit", "must not be negative")
	}
	switch strings.ToLower(c.Output.DefaultFormat) {
	case "", "auto", "text", "json":
	default:
		return invalid("output.default_format", c.Output.DefaultFormat)
	}
	return nil
}

// Path returns the default config file path.
func Path(home string) string {
	return filepath.Join(home, "config.yaml")
}

// GetHome returns the stakeview home directory path.
func (c *Config) GetHome() string {
	return c.Home
}

// GetCluster returns the configured cluster, defaulting to mainnet-beta.
func (c *Config) GetCluster() chain.Cluster {
	if cluster, ok := chain.ParseCluster(c.Network.Cluster); ok {
		return cluster
	}
	return chain.MainnetBeta
}

// GetRPC returns the configured RPC URL, or the cluster's public endpoint.
func (c *Config) GetRPC() string {
	if c.Network.RPC != "" {
		return c.Network.RPC
	}
	return c.GetCluster().DefaultRPC()
}

// GetMetadataFile returns the metadata table path with ~ expanded.
func (c *Config) GetMetadataFile() string {
	return ExpandPath(c.Metadata.File)
}

// GetServerAddr returns the web server listen address.
func (c *Config) GetServerAddr() string {
	return c.Server.Addr
}

// GetReadHeaderTimeout returns the server's request header deadline.
func (c *Config) GetReadHeaderTimeout() time.Duration {
	return time.Duration(c.Server.ReadHeaderTimeoutSecs) * time.Second
}

// GetShutdownTimeout returns how long the server waits for in-flight requests.
func (c *Config) GetShutdownTimeout() time.Duration {
	return time.Duration(c.Server.ShutdownTimeoutSeconds) * time.Second
}

// GetHoldingsStaleness returns how long cached holdings stay fresh.
func (c *Config) GetHoldingsStaleness() time.Duration {
	return time.Duration(c.Holdings.StalenessMinutes) * time.Minute
}

// GetHoldingsCacheFile returns the holdings cache path, resolved against
// the home directory when relative.
func (c *Config) GetHoldingsCacheFile() string {
	return c.resolve(c.Holdings.CacheFile)
}

// GetLoggingLevel returns the configured logging level.
func (c *Config) GetLoggingLevel() string {
	return c.Logging.Level
}

// GetLoggingFile returns the log file path, resolved against the home
// directory when relative.
func (c *Config) GetLoggingFile() string {
	return c.resolve(c.Logging.File)
}

// resolve expands ~ and anchors relative paths in the home directory.
func (c *Config) resolve(path string) string {
	if path == "" {
		return ""
	}
	path = ExpandPath(path)
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(ExpandPath(c.Home), path)
}

// GetOutputFormat returns the default output format.
func (c *Config) GetOutputFormat() string {
	return c.Output.DefaultFormat
}

// DefaultHome returns the default stakeview home directory.
func DefaultHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".stakeview"
	}
	return filepath.Join(home, ".stakeview")
}

// ExpandPath replaces a leading "~/" with the user's home directory.
func ExpandPath(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}
