package cli

import (
	"github.com/spf13/cobra"

	"github.com/mrz1836/stakeview/internal/chain/solana"
	"github.com/mrz1836/stakeview/internal/notify"
	"github.com/mrz1836/stakeview/internal/output"
	"github.com/mrz1836/stakeview/internal/service/pools"
	"github.com/mrz1836/stakeview/internal/stakepool"
	"github.com/mrz1836/stakeview/internal/view"
)

// poolsCmd is the parent command for stake pool operations.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var poolsCmd = &cobra.Command{
	Use:   "pools",
	Short: "List and inspect stake pools",
	Long:  `Fetch the stake pools of the configured program and show them.`,
}

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var poolsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all stake pools",
	Long: `Fetch every stake pool account once and show them as a grid.

Pools found in the metadata table are listed first under "Stake Pools" in
the order the RPC node returned them. All other pools follow under
"Unrecognized Pools". A failed fetch is reported once and nothing is retried.`,
	Example: `  stakeview pools list
  stakeview pools list --cluster devnet
  stakeview pools list -o json`,
	Args: cobra.NoArgs,
	RunE: runPoolsList,
}

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var poolsShowCmd = &cobra.Command{
	Use:   "show <name-or-address>",
	Short: "Show one stake pool",
	Long: `Show the on-chain fields of one stake pool.

The pool is found by its metadata name or by its account address.`,
	Example: `  stakeview pools show cardinal
  stakeview pools show <address> -o json`,
	Args: cobra.ExactArgs(1),
	RunE: runPoolsShow,
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for command registration
func init() {
	poolsCmd.GroupID = "pools"
	rootCmd.AddCommand(poolsCmd)
	poolsCmd.AddCommand(poolsListCmd)
	poolsCmd.AddCommand(poolsShowCmd)
}

// PoolsListResponse is the JSON output of pools list.
type PoolsListResponse struct {
	Cluster         string                `json:"cluster"`
	Loaded          bool                  `json:"loaded"`
	WithMetadata    []stakepool.StakePool `json:"with_metadata"`
	WithoutMetadata []stakepool.StakePool `json:"without_metadata"`
	Notifications   []notify.Notification `json:"notifications"`
}

// PoolShowResponse is the JSON output of pools show.
type PoolShowResponse struct {
	Pool   stakepool.StakePool `json:"pool"`
	Detail view.Detail         `json:"detail"`
}

// emptyMetadataHint explains an all-unrecognized listing.
const emptyMetadataHint = "no stake pool metadata configured, so every pool is listed as unrecognized. " +
	"Set metadata.file in config.yaml or STAKEVIEW_METADATA_FILE to name pools."

// mountPools runs one fetch-and-partition cycle. Notifications go to stderr
// in text mode and are collected for JSON output. A non-empty key that cannot
// name a pool is rejected before the fetch.
func mountPools(cmd *cobra.Command, cc *CommandContext, key string) (pools.State, *pools.Loader, []notify.Notification, error) {
	ctx, cancel := contextWithTimeout(cmd, fetchTimeout)
	defer cancel()

	client, err := cc.NewClient(ctx)
	if err != nil {
		return pools.State{}, nil, nil, err
	}
	table, err := cc.LoadMetadata()
	if err != nil {
		return pools.State{}, nil, nil, err
	}
	if key == "" && table.Len() == 0 && cc.Formatter.Format() != output.FormatJSON {
		output.Warn(cmd.ErrOrStderr(), emptyMetadataHint)
	}

	rec := &notify.Recorder{}
	notifier := notify.Notifier(rec)
	if cc.Formatter.Format() != output.FormatJSON {
		notifier = notify.Multi(rec, output.Notifier(cmd.ErrOrStderr()))
	}

	loader := pools.NewLoader(&pools.Config{
		Source:   client,
		Metadata: table,
		Notifier: notifier,
		Logger:   cc.Logger,

		ValidateAddress: solana.ValidateAddress,
	})
	if key != "" {
		if err := loader.CheckKey(key); err != nil {
			return pools.State{}, nil, nil, err
		}
	}
	state := loader.Load(ctx)
	return state, loader, rec.All(), nil
}

func runPoolsList(cmd *cobra.Command, _ []string) error {
	cc := GetCmdContext(cmd)
	state, _, notes, err := mountPools(cmd, cc, "")
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	cluster := cc.Config.GetCluster()
	if cc.Formatter.Format() == output.FormatJSON {
		if notes == nil {
			notes = []notify.Notification{}
		}
		resp := PoolsListResponse{
			Cluster:         cluster.String(),
			Loaded:          state.Loaded,
			WithMetadata:    nonNil(state.WithMetadata),
			WithoutMetadata: nonNil(state.WithoutMetadata),
			Notifications:   notes,
		}
		if err := writeJSON(w, resp); err != nil {
			return err
		}
	} else if err := output.RenderGrid(w, view.Render(state, cluster), cc.Formatter.Color()); err != nil {
		return err
	}

	if state.Err != nil {
		return &reportedError{err: state.Err}
	}
	return nil
}

func runPoolsShow(cmd *cobra.Command, args []string) error {
	cc := GetCmdContext(cmd)
	state, loader, _, err := mountPools(cmd, cc, args[0])
	if err != nil {
		return err
	}
	if state.Err != nil {
		if cc.Formatter.Format() == output.FormatJSON {
			return state.Err
		}
		return &reportedError{err: state.Err}
	}

	pool, err := loader.Find(args[0])
	if err != nil {
		return err
	}

	detail := view.RenderDetail(pool, cc.Config.GetCluster())
	w := cmd.OutOrStdout()
	if cc.Formatter.Format() == output.FormatJSON {
		return writeJSON(w, PoolShowResponse{Pool: pool, Detail: detail})
	}

	outln(w, detail.Title)
	if !detail.Recognized {
		outln(w, "(unrecognized pool)")
	}
	outln(w)

	table := output.NewTable("FIELD", "VALUE")
	table.SetNoHeader(true)
	for _, field := range detail.Fields {
		table.AddRow(field.Label, field.Value)
	}
	if err := table.Render(w); err != nil {
		return err
	}
	outln(w)
	out(w, "Explorer: %s\n", detail.Explorer.URL)
	return nil
}

func nonNil(p []stakepool.StakePool) []stakepool.StakePool {
	if p == nil {
		return []stakepool.StakePool{}
	}
	return p
}
