package chain

import (
	"math/big"

	"github.com/shopspring/decimal"
)

// LamportsPerSOL is the number of lamports in one SOL.
const LamportsPerSOL = 1_000_000_000

// solDecimals is the number of decimal places of SOL.
const solDecimals = 9

// FormatLamports renders a lamport amount as SOL with trailing zeros removed.
// For example, 1500000000 returns "1.5".
func FormatLamports(lamports uint64) string {
	return FormatDecimalAmount(new(big.Int).SetUint64(lamports), solDecimals)
}

// FormatDecimalAmount converts a raw integer amount to a human-readable string
// with the given decimal places. Trailing zeros after the decimal point are removed.
func FormatDecimalAmount(amount *big.Int, decimalPlaces int) string {
	if amount == nil {
		return "0"
	}
	return decimal.NewFromBigInt(amount, int32(-decimalPlaces)).String() //nolint:gosec // decimals are small
}

// FormatRawAmount formats a base-10 integer string, as returned by token
// account queries, with the given decimal places. Unparseable input is
// returned unchanged.
func FormatRawAmount(raw string, decimalPlaces int) string {
	amount, ok := new(big.Int).SetString(raw, 10)
	if !ok {
		return raw
	}
	return FormatDecimalAmount(amount, decimalPlaces)
}
