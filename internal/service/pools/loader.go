// Package pools fetches the stake pool collection and partitions it against
// the metadata table.
package pools

import (
	"context"
	"sync"
	"time"

	"github.com/mrz1836/stakeview/internal/metrics"
	"github.com/mrz1836/stakeview/internal/notify"
	"github.com/mrz1836/stakeview/internal/stakepool"
	sverr "github.com/mrz1836/stakeview/pkg/errors"
)

// Config holds the dependencies of a Loader.
type Config struct {
	Source   Source
	Metadata MetadataProvider
	Notifier notify.Notifier
	Logger   Logger
	Metrics  *metrics.Metrics
	// ValidateAddress reports whether a key is a well-formed pool address.
	// When nil, CheckKey accepts every non-empty key.
	ValidateAddress func(string) error
}

// Loader performs one fetch-and-partition cycle. Each page mount or CLI
// invocation uses its own Loader.
type Loader struct {
	source   Source
	meta     MetadataProvider
	notifier notify.Notifier
	logger   Logger
	metrics  *metrics.Metrics
	validate func(string) error

	mu    sync.Mutex
	state State
}

// NewLoader creates a Loader in the not-yet-loaded state.
func NewLoader(cfg *Config) *Loader {
	l := &Loader{
		source:   cfg.Source,
		meta:     cfg.Metadata,
		notifier: cfg.Notifier,
		logger:   cfg.Logger,
		metrics:  cfg.Metrics,
		validate: cfg.ValidateAddress,
		state: State{
			WithMetadata:    []stakepool.StakePool{},
			WithoutMetadata: []stakepool.StakePool{},
		},
	}
	if l.notifier == nil {
		l.notifier = notify.Discard
	}
	if l.logger == nil {
		l.logger = nopLogger{}
	}
	if l.metrics == nil {
		l.metrics = metrics.Global
	}
	return l
}

// Load fetches the stake pool collection once and partitions it. A failure
// is reported as exactly one error notification carrying the failure text;
// the previous sequences are kept and the loader is still marked loaded.
// Load never returns an error and never retries.
func (l *Loader) Load(ctx context.Context) State {
	start := time.Now()
	records, err := l.fetch(ctx)

	l.mu.Lock()
	if err != nil {
		l.state.Err = sverr.WithCause(sverr.ErrFetchFailed, err)
		l.state.Loaded = true
		snapshot := l.state.clone()
		l.mu.Unlock()

		l.logger.Error("stake pool fetch failed after %s: %v", time.Since(start), err)
		l.metrics.RecordPoolFetch(0, 0, err)
		l.metrics.RecordNotification()
		l.notifier.Notify(notify.Error(err))
		return snapshot
	}

	parts := stakepool.Partition(records, l.table())
	l.state = State{
		Loaded:          true,
		WithMetadata:    parts.WithMetadata,
		WithoutMetadata: parts.WithoutMetadata,
	}
	snapshot := l.state.clone()
	l.mu.Unlock()

	l.logger.Debug("fetched %d stake pools (%d recognized) in %s",
		len(records), len(parts.WithMetadata), time.Since(start))
	l.metrics.RecordPoolFetch(len(parts.WithMetadata), len(parts.WithoutMetadata), nil)
	return snapshot
}

// Snapshot returns a copy of the current state.
func (l *Loader) Snapshot() State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state.clone()
}

// Find returns the loaded pool whose route key or address equals key.
func (l *Loader) Find(key string) (stakepool.StakePool, error) {
	state := l.Snapshot()

	for _, pool := range state.WithMetadata {
		if key != "" && pool.Metadata.Name == key {
			return pool, nil
		}
	}
	for _, group := range [][]stakepool.StakePool{state.WithMetadata, state.WithoutMetadata} {
		for _, pool := range group {
			if pool.Address() == key {
				return pool, nil
			}
		}
	}

	extra := make([]string, 0, len(state.WithoutMetadata))
	for _, pool := range state.WithoutMetadata {
		extra = append(extra, pool.Address())
	}
	return stakepool.StakePool{}, l.notFound(key, extra)
}

// CheckKey reports, without fetching, whether key could name a pool: a
// metadata name or a well-formed address. Callers use it to reject stray
// paths before paying for a fetch.
func (l *Loader) CheckKey(key string) error {
	if key == "" {
		return l.notFound(key, nil)
	}
	if l.meta != nil {
		if _, ok := l.meta.ByName(key); ok {
			return nil
		}
	}
	if l.validate == nil || l.validate(key) == nil {
		return nil
	}
	return l.notFound(key, nil)
}

// notFound builds ErrPoolNotFound for key, suggesting the closest metadata
// name or extra candidate.
func (l *Loader) notFound(key string, extra []string) error {
	err := sverr.WithDetails(sverr.ErrPoolNotFound, map[string]string{"key": key})
	if l.meta != nil {
		if s := l.meta.Suggest(key, extra...); s != "" {
			err = sverr.WithSuggestion(err, "Did you mean '"+s+"'?")
		}
	}
	return err
}

// fetch calls the source once.
func (l *Loader) fetch(ctx context.Context) ([]stakepool.Record, error) {
	if l.source == nil {
		return nil, sverr.New("NO_SOURCE", "no stake pool source configured")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return l.source.FetchAllStakePools(ctx)
}

func (l *Loader) table() []stakepool.Metadata {
	if l.meta == nil {
		return nil
	}
	return l.meta.Entries()
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Error(string, ...any) {}
