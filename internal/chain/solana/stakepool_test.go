package solana

import (
	"bytes"
	"encoding/binary"
	"testing"

	solanago "github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sverr "github.com/mrz1836/stakeview/pkg/errors"
)

// poolAccount builds a StakePool account body field by field.
type poolAccount struct {
	buf bytes.Buffer
}

func newPoolAccount() *poolAccount {
	a := &poolAccount{}
	a.buf.Write(StakePoolDiscriminator())
	return a
}

func (a *poolAccount) u8(v uint8) *poolAccount { a.buf.WriteByte(v); return a }

func (a *poolAccount) u32(v uint32) *poolAccount {
	_ = binary.Write(&a.buf, binary.LittleEndian, v)
	return a
}

func (a *poolAccount) u64(v uint64) *poolAccount {
	_ = binary.Write(&a.buf, binary.LittleEndian, v)
	return a
}

func (a *poolAccount) i64(v int64) *poolAccount {
	_ = binary.Write(&a.buf, binary.LittleEndian, v)
	return a
}

func (a *poolAccount) boolean(v bool) *poolAccount {
	if v {
		return a.u8(1)
	}
	return a.u8(0)
}

func (a *poolAccount) key(k solanago.PublicKey) *poolAccount { a.buf.Write(k[:]); return a }

func (a *poolAccount) keys(ks ...solanago.PublicKey) *poolAccount {
	a.u32(uint32(len(ks))) //nolint:gosec // test sizes are tiny
	for _, k := range ks {
		a.key(k)
	}
	return a
}

func (a *poolAccount) str(s string) *poolAccount {
	a.u32(uint32(len(s))) //nolint:gosec // test sizes are tiny
	a.buf.WriteString(s)
	return a
}

func (a *poolAccount) bytes() []byte { return a.buf.Bytes() }

func fullPool() []byte {
	return newPoolAccount().
		u8(254).
		u64(7).
		key(solanago.TokenProgramID).
		keys(solanago.SystemProgramID).
		keys().
		boolean(true).
		str("STAKED").
		str("https://example.com/pool.png").
		boolean(false).
		u32(42).
		u8(1).u32(3600).
		u8(0).
		u8(1).i64(1700000000).
		bytes()
}

func TestDecodeStakePool(t *testing.T) {
	t.Parallel()

	data, err := DecodeStakePool(fullPool())
	require.NoError(t, err)

	assert.Equal(t, uint8(254), data.Bump)
	assert.Equal(t, uint64(7), data.Identifier)
	assert.Equal(t, solanago.TokenProgramID.String(), data.Authority)
	assert.Equal(t, []string{solanago.SystemProgramID.String()}, data.RequiresCreators)
	assert.Empty(t, data.RequiresCollections)
	assert.True(t, data.RequiresAuthorization)
	assert.Equal(t, "STAKED", data.OverlayText)
	assert.Equal(t, "https://example.com/pool.png", data.ImageURI)
	assert.False(t, data.ResetOnStake)
	assert.Equal(t, uint32(42), data.TotalStaked)
	require.NotNil(t, data.CooldownSeconds)
	assert.Equal(t, uint32(3600), *data.CooldownSeconds)
	assert.Nil(t, data.MinStakeSeconds)
	require.NotNil(t, data.EndDate)
	assert.Equal(t, int64(1700000000), *data.EndDate)
}

func TestDecodeStakePool_IgnoresPadding(t *testing.T) {
	t.Parallel()

	padded := append(fullPool(), make([]byte, 64)...)
	data, err := DecodeStakePool(padded)
	require.NoError(t, err)
	assert.Equal(t, uint32(42), data.TotalStaked)
}

func TestDecodeStakePool_Errors(t *testing.T) {
	t.Parallel()

	full := fullPool()
	hugeVec := newPoolAccount().u8(1).u64(1).key(solanago.TokenProgramID).u32(1 << 30).bytes()

	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"wrong discriminator", append([]byte{0, 0, 0, 0, 0, 0, 0, 0}, full[8:]...)},
		{"truncated header", full[:12]},
		{"truncated tail", full[:len(full)-4]},
		{"oversized vector", hugeVec},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := DecodeStakePool(tt.data)
			require.Error(t, err)
			assert.ErrorIs(t, err, sverr.ErrDecodeFailed)
		})
	}
}

func TestStakePoolDiscriminator(t *testing.T) {
	t.Parallel()

	d := StakePoolDiscriminator()
	require.Len(t, d, 8)
	d[0] ^= 0xff
	assert.NotEqual(t, d, StakePoolDiscriminator(), "callers must not mutate the shared discriminator")
}
