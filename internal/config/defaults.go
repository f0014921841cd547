package config

import (
	"github.com/mrz1836/stakeview/internal/chain"
)

// Default values for fields that have no natural zero.
const (
	DefaultProgramID       = "stkBL96RZkjY5ine4TvPihGqW8UHJfch2cokjAPzV8i"
	DefaultServerAddr      = "127.0.0.1:8080"
	DefaultRateLimit       = 5.0
	DefaultRateBurst       = 10
	DefaultShutdownTimeout = 10
)

// Defaults returns the default configuration.
func Defaults() *Config {
	return &Config{
		Version: 1,
		Home:    "~/.stakeview",
		Network: NetworkConfig{
			Cluster:    string(chain.MainnetBeta),
			ProgramID:  DefaultProgramID,
			Commitment: "confirmed",
			RateLimit:  DefaultRateLimit,
			RateBurst:  DefaultRateBurst,
		},
		Server: ServerConfig{
			Addr:                   DefaultServerAddr,
			ReadHeaderTimeoutSecs:  5,
			ShutdownTimeoutSeconds: DefaultShutdownTimeout,
		},
		Holdings: HoldingsConfig{
			StalenessMinutes: 5,
			CacheFile:        "cache/holdings.json",
		},
		Output: OutputConfig{
			DefaultFormat: "auto",
			Color:         "auto",
		},
		Logging: LoggingConfig{
			Level: "error",
			File:  "stakeview.log",
		},
	}
}
