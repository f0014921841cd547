package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/stakeview/internal/chain"
	"github.com/mrz1836/stakeview/internal/config"
	sverr "github.com/mrz1836/stakeview/pkg/errors"
)

func TestLoadSave_RoundTrip(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg := config.Defaults()
	cfg.Network.Cluster = "devnet"
	cfg.Network.RPC = "https://rpc.example.com"
	cfg.Metadata.File = "/etc/stakeview/pools.yaml"
	cfg.Server.Addr = ":9090"

	require.NoError(t, config.Save(cfg, path))

	loaded, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("network:\n  cluster: testnet\n"), 0o600))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, chain.Testnet, cfg.GetCluster())
	assert.Equal(t, config.DefaultProgramID, cfg.Network.ProgramID)
	assert.Equal(t, config.DefaultServerAddr, cfg.GetServerAddr())
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	_, err := config.Load(filepath.Join(dir, "missing.yaml"))
	require.ErrorIs(t, err, sverr.ErrConfigNotFound)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("network: [\n"), 0o600))
	_, err = config.Load(bad)
	require.ErrorIs(t, err, sverr.ErrConfigInvalid)
}

func TestSave_CreatesDirectory(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "nested", "dir", "config.yaml")

	require.NoError(t, config.Save(config.Defaults(), path))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestDefaults(t *testing.T) {
	t.Parallel()
	cfg := config.Defaults()

	assert.Equal(t, 1, cfg.Version)
	assert.Equal(t, "~/.stakeview", cfg.GetHome())
	assert.Equal(t, chain.MainnetBeta, cfg.GetCluster())
	assert.Equal(t, chain.MainnetBetaRPC, cfg.GetRPC())
	assert.Empty(t, cfg.GetMetadataFile())
	assert.Equal(t, 5*time.Minute, cfg.GetHoldingsStaleness())
	assert.Equal(t, 10*time.Second, cfg.GetShutdownTimeout())
	assert.Equal(t, 5*time.Second, cfg.GetReadHeaderTimeout())
	assert.Equal(t, "auto", cfg.GetOutputFormat())
	assert.Equal(t, "error", cfg.GetLoggingLevel())
	assert.Equal(t, filepath.Join(config.ExpandPath("~/.stakeview"), "stakeview.log"), cfg.GetLoggingFile())
	require.NoError(t, cfg.Validate())
}

func TestGetRPC(t *testing.T) {
	t.Parallel()

	cfg := config.Defaults()
	cfg.Network.Cluster = "devnet"
	assert.Equal(t, chain.DevnetRPC, cfg.GetRPC())

	cfg.Network.RPC = "http://custom:8899"
	assert.Equal(t, "http://custom:8899", cfg.GetRPC())
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"unknown cluster", func(c *config.Config) { c.Network.Cluster = "moonnet" }},
		{"negative rate limit", func(c *config.Config) { c.Network.RateLimit = -1 }},
		{"unknown format", func(c *config.Config) { c.Output.DefaultFormat = "xml" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := config.Defaults()
			tt.mutate(cfg)
			require.ErrorIs(t, cfg.Validate(), sverr.ErrConfigInvalid)
		})
	}
}

func TestExpandPath(t *testing.T) {
	t.Parallel()

	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "pools.yaml"), config.ExpandPath("~/pools.yaml"))
	assert.Equal(t, "/abs/pools.yaml", config.ExpandPath("/abs/pools.yaml"))
	assert.Empty(t, config.ExpandPath(""))
}

func TestConfigPath(t *testing.T) {
	t.Parallel()
	assert.Equal(t, filepath.Join("/tmp/sv", "config.yaml"), config.Path("/tmp/sv"))
	assert.NotEmpty(t, config.DefaultHome())
}

func TestFilePathsResolveAgainstHome(t *testing.T) {
	t.Parallel()
	home := t.TempDir()

	cfg := config.Defaults()
	cfg.Home = home
	assert.Equal(t, filepath.Join(home, "stakeview.log"), cfg.GetLoggingFile())
	assert.Equal(t, filepath.Join(home, "cache", "holdings.json"), cfg.GetHoldingsCacheFile())

	cfg.Logging.File = "/var/log/stakeview.log"
	assert.Equal(t, "/var/log/stakeview.log", cfg.GetLoggingFile())

	cfg.Holdings.CacheFile = ""
	assert.Empty(t, cfg.GetHoldingsCacheFile())
}
