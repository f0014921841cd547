package solana

import (
	"bytes"
	"crypto/sha256"
	"fmt"

	bin "github.com/gagliardetto/binary"
	solanago "github.com/gagliardetto/solana-go"

	"github.com/mrz1836/stakeview/internal/stakepool"
	sverr "github.com/mrz1836/stakeview/pkg/errors"
)

const (
	discriminatorSize = 8
	pubkeySize        = 32
)

// stakePoolDiscriminator is the Anchor account discriminator of StakePool.
//
//nolint:gochecknoglobals // computed once from the account name
var stakePoolDiscriminator = func() []byte {
	sum := sha256.Sum256([]byte("account:StakePool"))
	return sum[:discriminatorSize]
}()

// StakePoolDiscriminator returns a copy of the StakePool account discriminator.
func StakePoolDiscriminator() []byte {
	return bytes.Clone(stakePoolDiscriminator)
}

// DecodeStakePool decodes a Borsh-encoded StakePool account. Bytes after the
// last known field are account padding and are ignored.
func DecodeStakePool(data []byte) (stakepool.PoolData, error) {
	var out stakepool.PoolData

	if len(data) < discriminatorSize || !bytes.Equal(data[:discriminatorSize], stakePoolDiscriminator) {
		return out, sverr.WithDetails(sverr.ErrDecodeFailed, map[string]string{"reason": "discriminator mismatch"})
	}
	body := data[discriminatorSize:]
	dec := bin.NewBorshDecoder(body)

	fail := func(field string, err error) (stakepool.PoolData, error) {
		return stakepool.PoolData{}, sverr.WithDetails(
			sverr.WithCause(sverr.ErrDecodeFailed, err),
			map[string]string{"field": field},
		)
	}

	var err error
	if out.Bump, err = dec.ReadUint8(); err != nil {
		return fail("bump", err)
	}
	if out.Identifier, err = dec.ReadUint64(bin.LE); err != nil {
		return fail("identifier", err)
	}
	if out.Authority, err = readPubkey(dec); err != nil {
		return fail("authority", err)
	}
	if out.RequiresCreators, err = readPubkeyVec(dec, len(body)); err != nil {
		return fail("requires_creators", err)
	}
	if out.RequiresCollections, err = readPubkeyVec(dec, len(body)); err != nil {
		return fail("requires_collections", err)
	}
	if out.RequiresAuthorization, err = dec.ReadBool(); err != nil {
		return fail("requires_authorization", err)
	}
	if out.OverlayText, err = dec.ReadRustString(); err != nil {
		return fail("overlay_text", err)
	}
	if out.ImageURI, err = dec.ReadRustString(); err != nil {
		return fail("image_uri", err)
	}
	if out.ResetOnStake, err = dec.ReadBool(); err != nil {
		return fail("reset_on_stake", err)
	}
	if out.TotalStaked, err = dec.ReadUint32(bin.LE); err != nil {
		return fail("total_staked", err)
	}
	if out.CooldownSeconds, err = readOptionalUint32(dec); err != nil {
		return fail("cooldown_seconds", err)
	}
	if out.MinStakeSeconds, err = readOptionalUint32(dec); err != nil {
		return fail("min_stake_seconds", err)
	}
	if out.EndDate, err = readOptionalInt64(dec); err != nil {
		return fail("end_date", err)
	}

	return out, nil
}

func readPubkey(dec *bin.Decoder) (string, error) {
	raw, err := dec.ReadNBytes(pubkeySize)
	if err != nil {
		return "", err
	}
	return solanago.PublicKeyFromBytes(raw).String(), nil
}

// readPubkeyVec reads a Borsh Vec<Pubkey>; limit bounds the declared length.
func readPubkeyVec(dec *bin.Decoder, limit int) ([]string, error) {
	n, err := dec.ReadUint32(bin.LE)
	if err != nil {
		return nil, err
	}
	if int(n) > limit/pubkeySize {
		return nil, fmt.Errorf("vector length %d exceeds account size", n)
	}
	if n == 0 {
		return nil, nil
	}
	keys := make([]string, 0, n)
	for i := uint32(0); i < n; i++ {
		key, err := readPubkey(dec)
		if err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}
	return keys, nil
}

func readOptionalUint32(dec *bin.Decoder) (*uint32, error) {
	present, err := dec.ReadOption()
	if err != nil || !present {
		return nil, err
	}
	v, err := dec.ReadUint32(bin.LE)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func readOptionalInt64(dec *bin.Decoder) (*int64, error) {
	present, err := dec.ReadOption()
	if err != nil || !present {
		return nil, err
	}
	v, err := dec.ReadInt64(bin.LE)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
