package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mrz1836/stakeview/internal/cache"
	"github.com/mrz1836/stakeview/internal/chain/solana"
	"github.com/mrz1836/stakeview/internal/output"
	"github.com/mrz1836/stakeview/internal/service/holdings"
	"github.com/mrz1836/stakeview/internal/wallet"
	"github.com/mrz1836/stakeview/internal/web"
)

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level flag variables
var (
	serveAddr   string
	serveWallet string
)

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the stake pool browser over HTTP",
	Long: `Start the web server.

The index page shows placeholders and then loads the pool grid; every page
load fetches the pools once. Each pool links to a detail page at /<name> or
/<address>. A browser wallet that connects reports its public key to the
server, which then serves that wallet's token holdings at /api/wallet.

The server stops cleanly on interrupt.`,
	Example: `  stakeview serve
  stakeview serve --addr 0.0.0.0:8080 --cluster devnet
  stakeview serve --wallet <address>`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for command registration
func init() {
	serveCmd.GroupID = "pools"
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default: server.addr from config)")
	serveCmd.Flags().StringVar(&serveWallet, "wallet", "", "preset the connected wallet address")
}

func runServe(cmd *cobra.Command, _ []string) error {
	cc := GetCmdContext(cmd)
	c := cc.Config

	addr := serveAddr
	if addr == "" {
		addr = c.GetServerAddr()
	}

	base := cmd.Context()
	if base == nil {
		base = context.Background()
	}
	ctx, stop := signal.NotifyContext(base, os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := cc.NewClient(ctx)
	if err != nil {
		return err
	}
	table, err := cc.LoadMetadata()
	if err != nil {
		return err
	}
	if table.Len() == 0 {
		output.Warn(cmd.ErrOrStderr(), emptyMetadataHint)
	}

	storage := cache.NewFileStorage(c.GetHoldingsCacheFile())
	holdingsCache, err := storage.Load()
	if err != nil {
		// Load returns a usable empty cache alongside the corruption error.
		cc.Logger.Error("holdings cache: %v", err)
	}
	if holdingsCache == nil {
		holdingsCache = cache.NewHoldingsCache()
	}
	defer func() {
		if saveErr := storage.Save(holdingsCache); saveErr != nil {
			cc.Logger.Error("saving holdings cache: %v", saveErr)
		}
	}()

	state := wallet.NewState()
	svc := holdings.NewService(&holdings.Config{
		Source:    client,
		Wallet:    state,
		Cache:     holdingsCache,
		Cluster:   client.Cluster(),
		Staleness: c.GetHoldingsStaleness(),
		Logger:    cc.Logger,
	})

	if serveWallet != "" {
		if err := solana.ValidateAddress(serveWallet); err != nil {
			return err
		}
		state.SetAddress(serveWallet)
	}

	var health web.HealthChecker
	if hc, ok := client.(web.HealthChecker); ok {
		health = hc
	}

	server := web.NewServer(&web.Config{
		Addr:              addr,
		Cluster:           client.Cluster(),
		Source:            client,
		Metadata:          table,
		Wallet:            state,
		Holdings:          svc,
		Health:            health,
		Logger:            cc.Logger,
		ReadHeaderTimeout: c.GetReadHeaderTimeout(),
		ShutdownTimeout:   c.GetShutdownTimeout(),
	})

	out(cmd.ErrOrStderr(), "Serving %s stake pools on http://%s\n", client.Cluster(), addr)
	return server.Start(ctx)
}
