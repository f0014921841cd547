// Package chain provides Solana cluster definitions and the chain client
// interfaces consumed by the stake pool and holdings services.
package chain

import (
	"context"
	"strings"

	"github.com/mrz1836/stakeview/internal/stakepool"
)

// Cluster identifies a Solana network environment. Its string form is the
// environment label used in explorer links.
type Cluster string

// Supported clusters.
const (
	MainnetBeta Cluster = "mainnet-beta"
	Devnet      Cluster = "devnet"
	Testnet     Cluster = "testnet"
	Localnet    Cluster = "localnet"
)

// Default public RPC endpoints per cluster.
const (
	MainnetBetaRPC = "https://api.mainnet-beta.solana.com"
	DevnetRPC      = "https://api.devnet.solana.com"
	TestnetRPC     = "https://api.testnet.solana.com"
	LocalnetRPC    = "http://127.0.0.1:8899"
)

// String returns the cluster label.
func (c Cluster) String() string {
	return string(c)
}

// IsValid returns true if the cluster is known.
func (c Cluster) IsValid() bool {
	switch c {
	case MainnetBeta, Devnet, Testnet, Localnet:
		return true
	default:
		return false
	}
}

// DefaultRPC returns the public RPC endpoint for the cluster.
func (c Cluster) DefaultRPC() string {
	switch c {
	case MainnetBeta:
		return MainnetBetaRPC
	case Devnet:
		return DevnetRPC
	case Testnet:
		return TestnetRPC
	case Localnet:
		return LocalnetRPC
	default:
		return ""
	}
}

// ParseCluster parses a cluster label. "mainnet" is accepted as an alias
// for mainnet-beta.
func ParseCluster(s string) (Cluster, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "mainnet" {
		return MainnetBeta, true
	}
	c := Cluster(s)
	return c, c.IsValid()
}

// AllClusters returns every known cluster.
func AllClusters() []Cluster {
	return []Cluster{MainnetBeta, Devnet, Testnet, Localnet}
}

// TokenAccount is an SPL token account owned by a wallet.
type TokenAccount struct {
	Address  string `json:"address"`
	Mint     string `json:"mint"`
	Owner    string `json:"owner"`
	Amount   string `json:"amount"`
	Decimals int    `json:"decimals"`
}

// StakePoolReader fetches the full stake pool collection.
type StakePoolReader interface {
	// FetchAllStakePools returns every stake pool account in provider order.
	FetchAllStakePools(ctx context.Context) ([]stakepool.Record, error)
}

// TokenAccountReader lists the token accounts held by a wallet.
type TokenAccountReader interface {
	TokenAccountsByOwner(ctx context.Context, owner string) ([]TokenAccount, error)
}

// AddressValidator provides address validation.
type AddressValidator interface {
	// ValidateAddress checks if an address is a valid public key.
	ValidateAddress(address string) error
}

// Client is the full chain client used by the application.
type Client interface {
	StakePoolReader
	TokenAccountReader
	AddressValidator

	// Cluster returns the environment the client talks to.
	Cluster() Cluster
}
