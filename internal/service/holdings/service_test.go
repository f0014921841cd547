package holdings

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/stakeview/internal/cache"
	"github.com/mrz1836/stakeview/internal/chain"
	"github.com/mrz1836/stakeview/internal/metrics"
	"github.com/mrz1836/stakeview/internal/wallet"
)

const (
	ownerA = "9WzDXwBbmkg8ZTbNMqUxvQRAyrZzDsGYdLVL9zYtAWWM"
	ownerB = "4Nd1mBQtrMJVYVfKf2PJy9NZUZdTAsp7D4xWLs4gDB4T"
	mint   = "So11111111111111111111111111111111111111112"
)

var errRPCDown = errors.New("rpc down")

type stubTokens struct {
	accounts map[string][]chain.TokenAccount
	err      error
	calls    atomic.Int32
}

func (s *stubTokens) TokenAccountsByOwner(_ context.Context, owner string) ([]chain.TokenAccount, error) {
	s.calls.Add(1)
	if s.err != nil {
		return nil, s.err
	}
	return s.accounts[owner], nil
}

func newStub() *stubTokens {
	return &stubTokens{accounts: map[string][]chain.TokenAccount{
		ownerA: {{Address: "acctA", Mint: mint, Owner: ownerA, Amount: "1500000", Decimals: 6}},
		ownerB: {{Address: "acctB", Mint: mint, Owner: ownerB, Amount: "42", Decimals: 0}},
	}}
}

func newTestService(src TokenSource, w AddressSource, c CacheProvider) (*Service, *metrics.Metrics) {
	m := &metrics.Metrics{}
	return NewService(&Config{
		Source:  src,
		Wallet:  w,
		Cache:   c,
		Cluster: chain.Devnet,
		Metrics: m,
	}), m
}

func TestHoldings_NoWallet(t *testing.T) {
	t.Parallel()

	src := newStub()
	svc, _ := newTestService(src, wallet.NewState(), nil)

	result, err := svc.Holdings(context.Background())
	require.NoError(t, err)
	assert.Empty(t, result.Owner)
	assert.Empty(t, result.Holdings)
	assert.NotNil(t, result.Holdings)
	assert.Equal(t, int32(0), src.calls.Load())
}

func TestHoldings_FollowsWallet(t *testing.T) {
	t.Parallel()

	src := newStub()
	state := wallet.NewState()
	svc, _ := newTestService(src, state, nil)

	state.Sync(wallet.Connection{Connected: true, PublicKey: ownerA})
	result, err := svc.Holdings(context.Background())
	require.NoError(t, err)
	assert.Equal(t, ownerA, result.Owner)
	require.Len(t, result.Holdings, 1)
	assert.Equal(t, "1.5", result.Holdings[0].Balance)
	assert.False(t, result.Cached)

	state.Sync(wallet.Connection{Connected: true, PublicKey: ownerB})
	result, err = svc.Holdings(context.Background())
	require.NoError(t, err)
	assert.Equal(t, ownerB, result.Owner)
	assert.Equal(t, "42", result.Holdings[0].Balance)
}

func TestHoldings_CacheHit(t *testing.T) {
	t.Parallel()

	src := newStub()
	svc, m := newTestService(src, nil, nil)

	_, err := svc.HoldingsFor(context.Background(), ownerA)
	require.NoError(t, err)
	result, err := svc.HoldingsFor(context.Background(), ownerA)
	require.NoError(t, err)

	assert.True(t, result.Cached)
	assert.False(t, result.Stale)
	assert.Equal(t, int32(1), src.calls.Load())
	snap := m.Snapshot()
	assert.Equal(t, int64(1), snap.CacheHits)
	assert.Equal(t, int64(1), snap.CacheMisses)
}

func TestHoldings_AddressChangeInvalidatesPrevious(t *testing.T) {
	t.Parallel()

	src := newStub()
	state := wallet.NewState()
	store := cache.NewHoldingsCache()
	_, _ = newTestService(src, state, store)

	state.SetAddress(ownerA)
	store.Set(cache.HoldingsEntry{Cluster: chain.Devnet, Owner: ownerA})
	require.Equal(t, 1, store.Size())

	state.SetAddress(ownerB)
	_, exists, _ := store.Get(chain.Devnet, ownerA)
	assert.False(t, exists)
}

func TestHoldings_FailureWithoutCache(t *testing.T) {
	t.Parallel()

	src := newStub()
	src.err = errRPCDown
	svc, _ := newTestService(src, nil, nil)

	result, err := svc.HoldingsFor(context.Background(), ownerA)
	require.ErrorIs(t, err, errRPCDown)
	assert.Nil(t, result)
}

func TestHoldings_FailureFallsBackToStaleCache(t *testing.T) {
	t.Parallel()

	src := newStub()
	store := cache.NewHoldingsCache()
	store.Set(cache.HoldingsEntry{
		Cluster:  chain.Devnet,
		Owner:    ownerA,
		Accounts: []chain.TokenAccount{{Address: "old", Amount: "5", Decimals: 1}},
	})
	src.err = errRPCDown

	svc := NewService(&Config{
		Source:    src,
		Cache:     store,
		Cluster:   chain.Devnet,
		Staleness: time.Nanosecond,
		Metrics:   &metrics.Metrics{},
	})
	time.Sleep(time.Millisecond)

	result, err := svc.HoldingsFor(context.Background(), ownerA)
	require.NoError(t, err)
	assert.True(t, result.Stale)
	assert.True(t, result.Cached)
	require.ErrorIs(t, result.Error, errRPCDown)
	require.Len(t, result.Holdings, 1)
	assert.Equal(t, "0.5", result.Holdings[0].Balance)
}
