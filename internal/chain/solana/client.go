// Package solana provides the Solana chain client: stake pool account
// fetching and decoding, token account listing, and address validation.
package solana

import (
	"context"
	"net/http"

	solanago "github.com/gagliardetto/solana-go"

	"github.com/mrz1836/stakeview/internal/chain"
	"github.com/mrz1836/stakeview/internal/chain/solana/rpc"
	"github.com/mrz1836/stakeview/internal/metrics"
	"github.com/mrz1836/stakeview/internal/stakepool"
	sverr "github.com/mrz1836/stakeview/pkg/errors"
)

// DefaultStakePoolProgramID is the Cardinal stake pool program.
const DefaultStakePoolProgramID = "stkBL96RZkjY5ine4TvPihGqW8UHJfch2cokjAPzV8i"

// ErrRPCURLRequired indicates the RPC URL was not provided.
var ErrRPCURLRequired = &sverr.StakeviewError{
	Code:     "SOLANA_RPC_URL_REQUIRED",
	Message:  "RPC URL is required",
	ExitCode: sverr.ExitInput,
}

// ClientOptions contains optional configuration for the Solana client.
type ClientOptions struct {
	// ProgramID overrides the stake pool program address.
	ProgramID string
	// Commitment is the commitment level for reads (default "confirmed").
	Commitment string
	// RateLimit is requests per second against the endpoint; zero disables limiting.
	RateLimit float64
	// Burst is the rate limiter burst size.
	Burst int
	// HTTPClient overrides the HTTP client of the underlying RPC client.
	HTTPClient *http.Client
	// Metrics receives RPC call statistics (default metrics.Global).
	Metrics *metrics.Metrics
}

// Compile-time interface check
var _ chain.Client = (*Client)(nil)

// Client provides Solana blockchain reads.
type Client struct {
	cluster    chain.Cluster
	rpcClient  *rpc.Client
	programID  solanago.PublicKey
	commitment string
}

// NewClient creates a new Solana client for the cluster at rpcURL.
func NewClient(cluster chain.Cluster, rpcURL string, opts *ClientOptions) (*Client, error) {
	if rpcURL == "" {
		return nil, ErrRPCURLRequired
	}
	if opts == nil {
		opts = &ClientOptions{}
	}

	programID := opts.ProgramID
	if programID == "" {
		programID = DefaultStakePoolProgramID
	}
	program, err := solanago.PublicKeyFromBase58(programID)
	if err != nil {
		return nil, sverr.WithDetails(sverr.WithCause(sverr.ErrInvalidAddress, err), map[string]string{"program_id": programID})
	}

	commitment := opts.Commitment
	if commitment == "" {
		commitment = rpc.CommitmentConfirmed
	}

	rpcOpts := []rpc.Option{rpc.WithRateLimit(opts.RateLimit, opts.Burst)}
	if opts.HTTPClient != nil {
		rpcOpts = append(rpcOpts, rpc.WithHTTPClient(opts.HTTPClient))
	}
	if opts.Metrics != nil {
		rpcOpts = append(rpcOpts, rpc.WithMetrics(opts.Metrics))
	}

	return &Client{
		cluster:    cluster,
		rpcClient:  rpc.NewClient(rpcURL, rpcOpts...),
		programID:  program,
		commitment: commitment,
	}, nil
}

// Creator adapts NewClient to chain.Creator using opts for every client.
func Creator(opts *ClientOptions) chain.Creator {
	return func(_ context.Context, cluster chain.Cluster, rpcURL string) (chain.Client, error) {
		return NewClient(cluster, rpcURL, opts)
	}
}

// Cluster returns the environment the client talks to.
func (c *Client) Cluster() chain.Cluster {
	return c.cluster
}

// ProgramID returns the stake pool program address.
func (c *Client) ProgramID() string {
	return c.programID.String()
}

// FetchAllStakePools returns every stake pool account of the program, in the
// order the node returned them. A single undecodable account fails the fetch.
func (c *Client) FetchAllStakePools(ctx context.Context) ([]stakepool.Record, error) {
	accounts, err := c.rpcClient.GetProgramAccounts(ctx, c.programID.String(), rpc.ProgramAccountsConfig{
		Commitment: c.commitment,
		Memcmp:     []rpc.MemcmpFilter{{Offset: 0, Bytes: StakePoolDiscriminator()}},
	})
	if err != nil {
		return nil, err
	}

	records := make([]stakepool.Record, 0, len(accounts))
	for _, acct := range accounts {
		data, err := DecodeStakePool(acct.Data)
		if err != nil {
			return nil, sverr.WithDetails(err, map[string]string{"account": acct.Pubkey})
		}
		records = append(records, stakepool.Record{
			Address:  acct.Pubkey,
			Lamports: acct.Lamports,
			Owner:    acct.Owner,
			Data:     data,
		})
	}
	return records, nil
}

// TokenAccountsByOwner lists the SPL token accounts owned by owner.
func (c *Client) TokenAccountsByOwner(ctx context.Context, owner string) ([]chain.TokenAccount, error) {
	if err := c.ValidateAddress(owner); err != nil {
		return nil, err
	}

	parsed, err := c.rpcClient.GetTokenAccountsByOwner(ctx, owner, solanago.TokenProgramID.String())
	if err != nil {
		return nil, err
	}

	accounts := make([]chain.TokenAccount, 0, len(parsed))
	for _, p := range parsed {
		accounts = append(accounts, chain.TokenAccount{
			Address:  p.Pubkey,
			Mint:     p.Mint,
			Owner:    p.Owner,
			Amount:   p.Amount,
			Decimals: p.Decimals,
		})
	}
	return accounts, nil
}

// Health returns nil when the RPC node reports itself healthy.
func (c *Client) Health(ctx context.Context) error {
	return c.rpcClient.GetHealth(ctx)
}

// ValidateAddress checks that address is a base58 encoded 32-byte public key.
func (c *Client) ValidateAddress(address string) error {
	return ValidateAddress(address)
}

// ValidateAddress checks that address is a base58 encoded 32-byte public key.
func ValidateAddress(address string) error {
	if _, err := solanago.PublicKeyFromBase58(address); err != nil {
		return sverr.WithDetails(sverr.WithCause(sverr.ErrInvalidAddress, err), map[string]string{"address": address})
	}
	return nil
}
