package cli

import (
	"github.com/spf13/cobra"

	"github.com/mrz1836/stakeview/internal/cache"
	"github.com/mrz1836/stakeview/internal/chain"
	"github.com/mrz1836/stakeview/internal/output"
	"github.com/mrz1836/stakeview/internal/service/holdings"
	"github.com/mrz1836/stakeview/internal/wallet"
)

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level flag variables
var (
	holdingsWallet  string
	holdingsRefresh bool
)

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var holdingsCmd = &cobra.Command{
	Use:   "holdings",
	Short: "Show the token accounts of a wallet",
	Long: `List the SPL token accounts owned by a wallet address.

Results are cached on disk and reused while fresh. When a refresh fails,
the last cached result is shown and marked stale.`,
	Example: `  stakeview holdings --wallet <address>
  stakeview holdings --wallet <address> --refresh -o json`,
	Args: cobra.NoArgs,
	RunE: runHoldings,
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for command registration
func init() {
	holdingsCmd.GroupID = "wallet"
	rootCmd.AddCommand(holdingsCmd)

	holdingsCmd.Flags().StringVar(&holdingsWallet, "wallet", "", "wallet address (required)")
	holdingsCmd.Flags().BoolVar(&holdingsRefresh, "refresh", false, "ignore cached holdings")
	_ = holdingsCmd.MarkFlagRequired("wallet")
}

func runHoldings(cmd *cobra.Command, _ []string) error {
	cc := GetCmdContext(cmd)
	c := cc.Config

	ctx, cancel := contextWithTimeout(cmd, fetchTimeout)
	defer cancel()

	client, err := cc.NewClient(ctx)
	if err != nil {
		return err
	}
	if err := client.ValidateAddress(holdingsWallet); err != nil {
		return err
	}

	storage := cache.NewFileStorage(c.GetHoldingsCacheFile())
	holdingsCache, err := storage.Load()
	if err != nil {
		cc.Logger.Error("holdings cache: %v", err)
	}
	if holdingsCache == nil {
		holdingsCache = cache.NewHoldingsCache()
	}
	if holdingsRefresh {
		holdingsCache.Delete(client.Cluster(), holdingsWallet)
	}

	state := wallet.NewState()
	svc := holdings.NewService(&holdings.Config{
		Source:    client,
		Wallet:    state,
		Cache:     holdingsCache,
		Cluster:   client.Cluster(),
		Staleness: c.GetHoldingsStaleness(),
		Logger:    cc.Logger,
	})
	state.SetAddress(holdingsWallet)

	result, err := svc.Holdings(ctx)
	if err != nil {
		return err
	}
	if saveErr := storage.Save(holdingsCache); saveErr != nil {
		cc.Logger.Error("saving holdings cache: %v", saveErr)
	}

	w := cmd.OutOrStdout()
	if cc.Formatter.Format() == output.FormatJSON {
		return writeJSON(w, result)
	}

	if result.Error != nil {
		output.Warnf(cmd.ErrOrStderr(), "refresh failed, showing cached holdings: %v", result.Error)
	}
	if len(result.Holdings) == 0 {
		outln(w, "No token accounts found.")
		return nil
	}

	table := output.NewTable("MINT", "ACCOUNT", "BALANCE")
	for _, h := range result.Holdings {
		table.AddRow(chain.ShortAddress(h.Mint), chain.ShortAddress(h.Address), h.Balance)
	}
	if err := table.Render(w); err != nil {
		return err
	}
	if result.Cached {
		out(w, "\nCached %s\n", result.UpdatedAt.Local().Format("2006-01-02 15:04:05"))
	}
	return nil
}
