package cli

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sverr "github.com/mrz1836/stakeview/pkg/errors"
)

func TestServe_StopsWhenContextIsCanceled(t *testing.T) {
	home := t.TempDir()
	withStubChain(t, twoPoolClient())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, stderr, err := runCLIContext(t, ctx, home, "serve", "--addr", "127.0.0.1:0", "--wallet", addrWallet)
	require.NoError(t, err)
	assert.Contains(t, stderr, "Serving mainnet-beta stake pools on http://127.0.0.1:0")
	assert.Contains(t, stderr, "no stake pool metadata configured")
	assert.FileExists(t, filepath.Join(home, "cache", "holdings.json"))
}

func TestServe_InvalidWallet(t *testing.T) {
	withStubChain(t, twoPoolClient())

	_, _, err := runCLI(t, t.TempDir(), "serve", "--addr", "127.0.0.1:0", "--wallet", "bogus")
	require.ErrorIs(t, err, sverr.ErrInvalidAddress)
}
