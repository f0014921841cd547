package holdings

import (
	"context"
	"time"

	"github.com/mrz1836/stakeview/internal/cache"
	"github.com/mrz1836/stakeview/internal/chain"
	"github.com/mrz1836/stakeview/internal/wallet"
)

// TokenSource lists SPL token accounts.
// Satisfied by solana.Client.
type TokenSource interface {
	TokenAccountsByOwner(ctx context.Context, owner string) ([]chain.TokenAccount, error)
}

// AddressSource is the shared wallet address.
// Satisfied by wallet.State.
type AddressSource interface {
	Address() string
	Subscribe(fn wallet.Listener)
}

// CacheProvider provides holdings cache operations.
// Satisfied by cache.HoldingsCache.
type CacheProvider interface {
	Get(cluster chain.Cluster, owner string) (*cache.HoldingsEntry, bool, time.Duration)
	Set(entry cache.HoldingsEntry)
	Delete(cluster chain.Cluster, owner string)
}

// Logger is the subset of config.Logger the service uses.
type Logger interface {
	Debug(format string, args ...any)
	Error(format string, args ...any)
}
