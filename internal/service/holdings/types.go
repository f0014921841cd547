package holdings

import (
	"time"

	"github.com/mrz1836/stakeview/internal/chain"
)

// Holding is one token account with its display balance.
type Holding struct {
	chain.TokenAccount

	// Balance is Amount scaled by Decimals.
	Balance string `json:"balance"`
}

// Result is the holdings of one wallet.
type Result struct {
	Owner     string    `json:"owner"`
	Holdings  []Holding `json:"holdings"`
	Cached    bool      `json:"cached"`
	Stale     bool      `json:"stale"`
	UpdatedAt time.Time `json:"updated_at"`
	// Error is set when a refresh failed and stale cached data was returned.
	Error error `json:"-"`
}
