package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/stakeview/internal/chain"
	"github.com/mrz1836/stakeview/internal/chain/solana"
	"github.com/mrz1836/stakeview/internal/stakepool"
)

const (
	addrKnown   = "So11111111111111111111111111111111111111112"
	addrUnknown = "SysvarC1ock11111111111111111111111111111111"
	addrWallet  = "SysvarRent111111111111111111111111111111111"
)

// stubClient is an in-memory chain.Client.
type stubClient struct {
	cluster    chain.Cluster
	records    []stakepool.Record
	err        error
	tokens     []chain.TokenAccount
	tokenErr   error
	poolCalls  atomic.Int32
	tokenCalls atomic.Int32
}

func (c *stubClient) FetchAllStakePools(_ context.Context) ([]stakepool.Record, error) {
	c.poolCalls.Add(1)
	return c.records, c.err
}

func (c *stubClient) TokenAccountsByOwner(_ context.Context, _ string) ([]chain.TokenAccount, error) {
	c.tokenCalls.Add(1)
	return c.tokens, c.tokenErr
}

func (c *stubClient) ValidateAddress(address string) error {
	return solana.ValidateAddress(address)
}

func (c *stubClient) Cluster() chain.Cluster {
	return c.cluster
}

// withStubChain routes every client the CLI builds to client.
func withStubChain(t *testing.T, client *stubClient) {
	t.Helper()
	chainFactoryOverride = chain.NewConfigurableFactory(
		func(_ context.Context, cluster chain.Cluster, _ string) (chain.Client, error) {
			client.cluster = cluster
			return client, nil
		},
	)
	t.Cleanup(func() { chainFactoryOverride = nil })
}

// writeMetadata writes a one-entry metadata table and points the CLI at it.
func writeMetadata(t *testing.T, home string) {
	t.Helper()
	path := filepath.Join(home, "pools.yaml")
	data := []byte(`pools:
  - address: ` + addrKnown + `
    name: cardinal
    display_name: Cardinal Pool
`)
	require.NoError(t, os.WriteFile(path, data, 0o600))
	t.Setenv("STAKEVIEW_METADATA_FILE", path)
}

// resetFlags restores every flag to its default between executions.
func resetFlags() {
	reset := func(fs *pflag.FlagSet) {
		fs.VisitAll(func(f *pflag.Flag) {
			_ = f.Value.Set(f.DefValue)
			f.Changed = false
		})
	}
	reset(rootCmd.PersistentFlags())
	walkCommands(rootCmd, func(c *cobra.Command) {
		reset(c.Flags())
	})
}

// runCLI executes the root command with args under home and returns what
// was written to stdout and stderr.
func runCLI(t *testing.T, home string, args ...string) (string, string, error) {
	t.Helper()
	return runCLIContext(t, context.Background(), home, args...)
}

func runCLIContext(t *testing.T, ctx context.Context, home string, args ...string) (string, string, error) {
	t.Helper()
	resetFlags()
	t.Cleanup(resetFlags)
	walkCommands(rootCmd, func(c *cobra.Command) {
		//nolint:staticcheck // clearing the context left by a previous run
		c.SetContext(nil)
	})

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(append([]string{"--home", home}, args...))
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.ExecuteContext(ctx)
	return stdout.String(), stderr.String(), err
}

func twoPoolClient() *stubClient {
	return &stubClient{records: []stakepool.Record{
		{Address: addrKnown, Lamports: 2_000_000_000, Data: stakepool.PoolData{Authority: addrWallet, TotalStaked: 3}},
		{Address: addrUnknown},
	}}
}
