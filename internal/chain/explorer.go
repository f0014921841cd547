package chain

import (
	"net/url"
)

// ExplorerBaseURL is the root of the Solana block explorer.
const ExplorerBaseURL = "https://explorer.solana.com"

// ExplorerURL builds the explorer link for an address on the given cluster.
// Mainnet links carry no cluster parameter; localnet points the explorer at
// the local validator.
func ExplorerURL(cluster Cluster, address string) string {
	if address == "" {
		return ExplorerBaseURL
	}
	base := ExplorerBaseURL + "/address/" + url.PathEscape(address)

	switch cluster {
	case MainnetBeta, "":
		return base
	case Localnet:
		q := url.Values{}
		q.Set("cluster", "custom")
		q.Set("customUrl", LocalnetRPC)
		return base + "?" + q.Encode()
	default:
		return base + "?cluster=" + url.QueryEscape(cluster.String())
	}
}

// ShortAddress abbreviates an address to its first and last four characters.
func ShortAddress(address string) string {
	if len(address) <= 10 {
		return address
	}
	return address[:4] + ".." + address[len(address)-4:]
}
