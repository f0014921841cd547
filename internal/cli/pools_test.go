package cli

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/stakeview/internal/output"
	sverr "github.com/mrz1836/stakeview/pkg/errors"
)

var errRPCDown = errors.New("rpc unavailable")

func TestPoolsList_JSON(t *testing.T) {
	home := t.TempDir()
	writeMetadata(t, home)
	client := twoPoolClient()
	withStubChain(t, client)

	stdout, _, err := runCLI(t, home, "--cluster", "devnet", "-o", "json", "pools", "list")
	require.NoError(t, err)

	var resp PoolsListResponse
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	assert.Equal(t, "devnet", resp.Cluster)
	assert.True(t, resp.Loaded)
	require.Len(t, resp.WithMetadata, 1)
	assert.Equal(t, "Cardinal Pool", resp.WithMetadata[0].Metadata.DisplayName)
	require.Len(t, resp.WithoutMetadata, 1)
	assert.Equal(t, addrUnknown, resp.WithoutMetadata[0].Address())
	assert.Empty(t, resp.Notifications)
	assert.Equal(t, int32(1), client.poolCalls.Load())
}

func TestPoolsList_Text(t *testing.T) {
	home := t.TempDir()
	writeMetadata(t, home)
	withStubChain(t, twoPoolClient())

	stdout, stderr, err := runCLI(t, home, "-o", "text", "pools", "list")
	require.NoError(t, err)
	assert.Empty(t, stderr)
	assert.Contains(t, stdout, "Stake Pools")
	assert.Contains(t, stdout, "Cardinal Pool")
	assert.Contains(t, stdout, "Unrecognized Pools")
}

func TestPoolsList_NoMetadata(t *testing.T) {
	withStubChain(t, twoPoolClient())

	stdout, stderr, err := runCLI(t, t.TempDir(), "-o", "text", "pools", "list")
	require.NoError(t, err)
	assert.Contains(t, stdout, "No pools found...")
	assert.Contains(t, stdout, "Unrecognized Pools")
	assert.Contains(t, stderr, "no stake pool metadata configured")
	assert.Contains(t, stderr, "metadata.file")
}

func TestPoolsList_FetchFailure(t *testing.T) {
	t.Run("text reports one notification", func(t *testing.T) {
		home := t.TempDir()
		writeMetadata(t, home)
		withStubChain(t, &stubClient{err: errRPCDown})

		stdout, stderr, err := runCLI(t, home, "-o", "text", "pools", "list")
		require.Error(t, err)
		assert.Equal(t, sverr.ExitNetwork, ExitCode(err))

		var reported *reportedError
		require.ErrorAs(t, err, &reported)
		assert.Equal(t, "❌ rpc unavailable\n", stderr)
		assert.Contains(t, stdout, "No pools found...")
	})

	t.Run("json carries the notification", func(t *testing.T) {
		withStubChain(t, &stubClient{err: errRPCDown})

		stdout, stderr, err := runCLI(t, t.TempDir(), "-o", "json", "pools", "list")
		require.Error(t, err)
		assert.Empty(t, stderr)

		var resp PoolsListResponse
		require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
		assert.True(t, resp.Loaded)
		require.Len(t, resp.Notifications, 1)
		assert.Equal(t, "rpc unavailable", resp.Notifications[0].Message)
	})
}

func TestPoolsShow(t *testing.T) {
	t.Run("by name", func(t *testing.T) {
		home := t.TempDir()
		writeMetadata(t, home)
		withStubChain(t, twoPoolClient())

		stdout, _, err := runCLI(t, home, "-o", "text", "pools", "show", "cardinal")
		require.NoError(t, err)
		assert.Contains(t, stdout, "Cardinal Pool")
		assert.Contains(t, stdout, "2 SOL")
		assert.Contains(t, stdout, "Explorer: https://explorer.solana.com/address/"+addrKnown)
	})

	t.Run("unrecognized by address", func(t *testing.T) {
		withStubChain(t, twoPoolClient())

		stdout, _, err := runCLI(t, t.TempDir(), "-o", "json", "pools", "show", addrUnknown)
		require.NoError(t, err)

		var resp PoolShowResponse
		require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
		assert.Equal(t, addrUnknown, resp.Pool.Address())
		assert.False(t, resp.Detail.Recognized)
	})

	t.Run("not found with suggestion", func(t *testing.T) {
		home := t.TempDir()
		writeMetadata(t, home)
		withStubChain(t, twoPoolClient())

		_, _, err := runCLI(t, home, "-o", "json", "pools", "show", "cardnal")
		require.ErrorIs(t, err, sverr.ErrPoolNotFound)
		assert.Equal(t, sverr.ExitNotFound, ExitCode(err))

		out := output.NewErrorOutput(err)
		assert.Equal(t, "Did you mean 'cardinal'?", out.Error.Suggestion)
	})

	t.Run("fetch failure", func(t *testing.T) {
		home := t.TempDir()
		writeMetadata(t, home)
		withStubChain(t, &stubClient{err: errRPCDown})

		_, _, err := runCLI(t, home, "-o", "json", "pools", "show", "cardinal")
		require.ErrorIs(t, err, sverr.ErrFetchFailed)
	})

	t.Run("malformed key is rejected before fetching", func(t *testing.T) {
		home := t.TempDir()
		writeMetadata(t, home)
		client := twoPoolClient()
		withStubChain(t, client)

		_, _, err := runCLI(t, home, "-o", "json", "pools", "show", "not/a-pool")
		require.ErrorIs(t, err, sverr.ErrPoolNotFound)
		assert.Equal(t, int32(0), client.poolCalls.Load())
	})
}
