package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/mrz1836/stakeview/internal/chain"
	"github.com/mrz1836/stakeview/internal/chain/solana"
	"github.com/mrz1836/stakeview/internal/config"
	"github.com/mrz1836/stakeview/internal/metadata"
	"github.com/mrz1836/stakeview/internal/output"
)

type cmdContextKey struct{}

// CommandContext holds dependencies for CLI commands.
type CommandContext struct {
	Config       *config.Config
	Logger       *config.Logger
	Formatter    *output.Formatter
	ChainFactory chain.Factory
}

// NewCommandContext creates a context with the given dependencies.
func NewCommandContext(
	cfg *config.Config,
	logger *config.Logger,
	formatter *output.Formatter,
) *CommandContext {
	return &CommandContext{
		Config:       cfg,
		Logger:       logger,
		Formatter:    formatter,
		ChainFactory: newChainFactory(cfg, logger),
	}
}

// WithChainFactory sets the chain factory.
func (c *CommandContext) WithChainFactory(f chain.Factory) *CommandContext {
	c.ChainFactory = f
	return c
}

// SetCmdContext attaches cc to the command so subcommands can retrieve it.
func SetCmdContext(cmd *cobra.Command, cc *CommandContext) {
	base := cmd.Context()
	if base == nil {
		base = context.Background()
	}
	cmd.SetContext(context.WithValue(base, cmdContextKey{}, cc))
}

// GetCmdContext returns the command context attached by SetCmdContext, or
// one built from the globals.
func GetCmdContext(cmd *cobra.Command) *CommandContext {
	if ctx := cmd.Context(); ctx != nil {
		if cc, ok := ctx.Value(cmdContextKey{}).(*CommandContext); ok {
			return cc
		}
	}
	return NewCommandContext(cfg, logger, formatter)
}

// NewClient builds the chain client for the configured cluster.
func (c *CommandContext) NewClient(ctx context.Context) (chain.Client, error) {
	return c.ChainFactory.NewClient(ctx, c.Config.GetCluster(), c.Config.GetRPC())
}

// LoadMetadata returns the configured metadata table, or the embedded one.
// Parsing validates the table.
func (c *CommandContext) LoadMetadata() (*metadata.Table, error) {
	table, err := metadata.Load(c.Config.GetMetadataFile())
	if err != nil {
		return nil, err
	}
	c.Logger.Debug("loaded %d stake pool metadata entries", table.Len())
	return table, nil
}

// chainFactoryOverride replaces the Solana client factory in tests.
//
//nolint:gochecknoglobals // test seam
var chainFactoryOverride chain.Factory

func newChainFactory(c *config.Config, _ *config.Logger) chain.Factory {
	if chainFactoryOverride != nil {
		return chainFactoryOverride
	}
	if c == nil {
		return chain.NewConfigurableFactory(solana.Creator(nil))
	}
	return chain.NewConfigurableFactory(solana.Creator(&solana.ClientOptions{
		ProgramID:  c.Network.ProgramID,
		Commitment: c.Network.Commitment,
		RateLimit:  c.Network.RateLimit,
		Burst:      c.Network.RateBurst,
	}))
}
