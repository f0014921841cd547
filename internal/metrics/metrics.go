// Package metrics provides application-level metrics collection.
// This is a lightweight metrics foundation using atomic counters.
package metrics

import (
	"sync/atomic"
	"time"
)

// Metrics holds application metrics using atomic counters for thread safety.
type Metrics struct {
	// RPC metrics
	rpcCallsTotal   atomic.Int64
	rpcErrorsTotal  atomic.Int64
	rpcLatencyNanos atomic.Int64

	// Stake pool fetch cycles
	poolFetchesTotal  atomic.Int64
	poolFetchFailures atomic.Int64
	poolsRecognized   atomic.Int64
	poolsUnrecognized atomic.Int64

	notificationsTotal atomic.Int64
	walletSyncsTotal   atomic.Int64

	// Holdings cache metrics
	cacheHits   atomic.Int64
	cacheMisses atomic.Int64
}

// Global is the global metrics instance.
// Use this for recording metrics throughout the application.
//
//nolint:gochecknoglobals // Intentional global for metrics access
var Global = &Metrics{}

// RecordRPCCall records an RPC call with its duration and success status.
func (m *Metrics) RecordRPCCall(duration time.Duration, err error) {
	m.rpcCallsTotal.Add(1)
	m.rpcLatencyNanos.Add(duration.Nanoseconds())

	if err != nil {
		m.rpcErrorsTotal.Add(1)
	}
}

// RecordPoolFetch records the outcome of one fetch-and-partition cycle.
func (m *Metrics) RecordPoolFetch(recognized, unrecognized int, err error) {
	m.poolFetchesTotal.Add(1)
	if err != nil {
		m.poolFetchFailures.Add(1)
		return
	}
	m.poolsRecognized.Store(int64(recognized))
	m.poolsUnrecognized.Store(int64(unrecognized))
}

// RecordNotification records a user-visible notification.
func (m *Metrics) RecordNotification() {
	m.notificationsTotal.Add(1)
}

// RecordWalletSync records a wallet address change.
func (m *Metrics) RecordWalletSync() {
	m.walletSyncsTotal.Add(1)
}

// RecordCacheHit records a cache hit.
func (m *Metrics) RecordCacheHit() {
	m.cacheHits.Add(1)
}

// RecordCacheMiss records a cache miss.
func (m *Metrics) RecordCacheMiss() {
	m.cacheMisses.Add(1)
}

// Snapshot is a point-in-time copy of all metrics.
type Snapshot struct {
	RPCCallsTotal      int64   `json:"rpc_calls_total"`
	RPCErrorsTotal     int64   `json:"rpc_errors_total"`
	RPCLatencyAvgMs    float64 `json:"rpc_latency_avg_ms"`
	PoolFetchesTotal   int64   `json:"pool_fetches_total"`
	PoolFetchFailures  int64   `json:"pool_fetch_failures"`
	PoolsRecognized    int64   `json:"pools_recognized"`
	PoolsUnrecognized  int64   `json:"pools_unrecognized"`
	NotificationsTotal int64   `json:"notifications_total"`
	WalletSyncsTotal   int64   `json:"wallet_syncs_total"`
	CacheHits          int64   `json:"cache_hits"`
	CacheMisses        int64   `json:"cache_misses"`
}

// Snapshot returns a point-in-time copy of all metrics.
func (m *Metrics) Snapshot() Snapshot {
	return Snapshot{
		RPCCallsTotal:      m.rpcCallsTotal.Load(),
		RPCErrorsTotal:     m.rpcErrorsTotal.Load(),
		RPCLatencyAvgMs:    m.RPCLatencyAvgMs(),
		PoolFetchesTotal:   m.poolFetchesTotal.Load(),
		PoolFetchFailures:  m.poolFetchFailures.Load(),
		PoolsRecognized:    m.poolsRecognized.Load(),
		PoolsUnrecognized:  m.poolsUnrecognized.Load(),
		NotificationsTotal: m.notificationsTotal.Load(),
		WalletSyncsTotal:   m.walletSyncsTotal.Load(),
		CacheHits:          m.cacheHits.Load(),
		CacheMisses:        m.cacheMisses.Load(),
	}
}

// RPCLatencyAvgMs returns the average RPC latency in milliseconds.
// Returns 0 if no calls have been made.
func (m *Metrics) RPCLatencyAvgMs() float64 {
	calls := m.rpcCallsTotal.Load()
	if calls == 0 {
		return 0
	}
	nanos := m.rpcLatencyNanos.Load()
	return float64(nanos) / float64(calls) / 1e6
}

// CacheHitRate returns the cache hit rate as a percentage (0-100).
// Returns 0 if no cache operations have occurred.
func (m *Metrics) CacheHitRate() float64 {
	hits := m.cacheHits.Load()
	misses := m.cacheMisses.Load()
	total := hits + misses
	if total == 0 {
		return 0
	}
	return float64(hits) / float64(total) * 100
}

// Reset resets all metrics to zero.
func (m *Metrics) Reset() {
	m.rpcCallsTotal.Store(0)
	m.rpcErrorsTotal.Store(0)
	m.rpcLatencyNanos.Store(0)
	m.poolFetchesTotal.Store(0)
	m.poolFetchFailures.Store(0)
	m.poolsRecognized.Store(0)
	m.poolsUnrecognized.Store(0)
	m.notificationsTotal.Store(0)
	m.walletSyncsTotal.Store(0)
	m.cacheHits.Store(0)
	m.cacheMisses.Store(0)
}
