// Package holdings lists the SPL token accounts of the connected wallet.
package holdings

import (
	"context"
	"sync"
	"time"

	"github.com/mrz1836/stakeview/internal/cache"
	"github.com/mrz1836/stakeview/internal/chain"
	"github.com/mrz1836/stakeview/internal/metrics"
)

// Config holds the configuration for the holdings service.
type Config struct {
	Source    TokenSource
	Wallet    AddressSource
	Cache     CacheProvider
	Cluster   chain.Cluster
	Staleness time.Duration
	Metrics   *metrics.Metrics
	Logger    Logger
}

// Service reads the shared wallet address and returns its token holdings,
// serving fresh cache entries without a network call.
type Service struct {
	source    TokenSource
	wallet    AddressSource
	cache     CacheProvider
	cluster   chain.Cluster
	staleness time.Duration
	metrics   *metrics.Metrics
	logger    Logger

	mu       sync.Mutex
	previous string
}

// NewService creates a holdings service. When a wallet is given, the cache
// entry of the previous address is dropped on every address change.
func NewService(cfg *Config) *Service {
	s := &Service{
		source:    cfg.Source,
		wallet:    cfg.Wallet,
		cache:     cfg.Cache,
		cluster:   cfg.Cluster,
		staleness: cfg.Staleness,
		metrics:   cfg.Metrics,
		logger:    cfg.Logger,
	}
	if s.cache == nil {
		s.cache = cache.NewHoldingsCache()
	}
	if s.staleness <= 0 {
		s.staleness = cache.DefaultStaleness
	}
	if s.metrics == nil {
		s.metrics = metrics.Global
	}
	if s.logger == nil {
		s.logger = nopLogger{}
	}
	if s.wallet != nil {
		s.previous = s.wallet.Address()
		s.wallet.Subscribe(s.onAddressChange)
	}
	return s
}

// Holdings returns the holdings of the current wallet address. Before any
// wallet connects the result is empty.
func (s *Service) Holdings(ctx context.Context) (*Result, error) {
	owner := ""
	if s.wallet != nil {
		owner = s.wallet.Address()
	}
	return s.HoldingsFor(ctx, owner)
}

// HoldingsFor returns the holdings of owner. If the refresh fails and a
// cached entry exists, the cached entry is returned marked stale.
func (s *Service) HoldingsFor(ctx context.Context, owner string) (*Result, error) {
	if owner == "" {
		return &Result{Holdings: []Holding{}}, nil
	}

	cached, exists, age := s.cache.Get(s.cluster, owner)
	if exists && age <= s.staleness {
		s.metrics.RecordCacheHit()
		return resultFromEntry(cached, true, false), nil
	}
	s.metrics.RecordCacheMiss()

	accounts, err := s.source.TokenAccountsByOwner(ctx, owner)
	if err != nil {
		s.logger.Error("token accounts for %s: %v", owner, err)
		if exists {
			result := resultFromEntry(cached, true, true)
			result.Error = err
			return result, nil
		}
		return nil, err
	}

	entry := cache.HoldingsEntry{Cluster: s.cluster, Owner: owner, Accounts: accounts}
	s.cache.Set(entry)
	s.logger.Debug("fetched %d token accounts for %s", len(accounts), owner)

	result := resultFromEntry(&entry, false, false)
	result.UpdatedAt = time.Now()
	return result, nil
}

func (s *Service) onAddressChange(address string) {
	s.mu.Lock()
	prev := s.previous
	s.previous = address
	s.mu.Unlock()

	if prev != "" && prev != address {
		s.cache.Delete(s.cluster, prev)
	}
}

func resultFromEntry(entry *cache.HoldingsEntry, cached, stale bool) *Result {
	holdings := make([]Holding, 0, len(entry.Accounts))
	for _, acct := range entry.Accounts {
		holdings = append(holdings, Holding{
			TokenAccount: acct,
			Balance:      chain.FormatRawAmount(acct.Amount, acct.Decimals),
		})
	}
	return &Result{
		Owner:     entry.Owner,
		Holdings:  holdings,
		Cached:    cached,
		Stale:     stale,
		UpdatedAt: entry.UpdatedAt,
	}
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Error(string, ...any) {}
