// Package stakepool defines stake pool records, their off-chain metadata,
// and the partition of fetched pools into recognized and unrecognized sets.
package stakepool

// Record is a stake pool account as returned by the chain-data provider.
// Records are immutable once fetched and live for a single fetch cycle.
type Record struct {
	Address  string   `json:"address"`
	Lamports uint64   `json:"lamports"`
	Owner    string   `json:"owner"`
	Data     PoolData `json:"data"`
}

// PoolData holds the decoded on-chain fields of a stake pool account.
type PoolData struct {
	Bump                  uint8    `json:"bump"`
	Identifier            uint64   `json:"identifier"`
	Authority             string   `json:"authority"`
	RequiresCreators      []string `json:"requires_creators,omitempty"`
	RequiresCollections   []string `json:"requires_collections,omitempty"`
	RequiresAuthorization bool     `json:"requires_authorization"`
	OverlayText           string   `json:"overlay_text,omitempty"`
	ImageURI              string   `json:"image_uri,omitempty"`
	ResetOnStake          bool     `json:"reset_on_stake"`
	TotalStaked           uint32   `json:"total_staked"`
	CooldownSeconds       *uint32  `json:"cooldown_seconds,omitempty"`
	MinStakeSeconds       *uint32  `json:"min_stake_seconds,omitempty"`
	EndDate               *int64   `json:"end_date,omitempty"`
}

// Metadata is the statically configured display information for a
// recognized stake pool. Name is the canonical name used in routes.
type Metadata struct {
	Address     string `json:"address" yaml:"address"`
	Name        string `json:"name" yaml:"name"`
	DisplayName string `json:"display_name" yaml:"display_name"`
	ImageURL    string `json:"image_url,omitempty" yaml:"image_url,omitempty"`
}

// StakePool pairs a fetched record with its metadata, if any.
type StakePool struct {
	Record   Record    `json:"record"`
	Metadata *Metadata `json:"metadata,omitempty"`
}

// Address returns the pool's account address.
func (p StakePool) Address() string {
	return p.Record.Address
}

// HasMetadata reports whether the pool was matched against the metadata table.
func (p StakePool) HasMetadata() bool {
	return p.Metadata != nil
}

// RouteKey is the detail route segment: the metadata name when present and
// non-empty, otherwise the raw address.
func (p StakePool) RouteKey() string {
	if p.Metadata != nil && p.Metadata.Name != "" {
		return p.Metadata.Name
	}
	return p.Record.Address
}

// Path returns the detail route for the pool.
func (p StakePool) Path() string {
	return "/" + p.RouteKey()
}
