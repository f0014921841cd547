package pools

import (
	"context"

	"github.com/mrz1836/stakeview/internal/stakepool"
)

// Source fetches the complete stake pool collection.
// Satisfied by solana.Client.
type Source interface {
	FetchAllStakePools(ctx context.Context) ([]stakepool.Record, error)
}

// MetadataProvider provides the static metadata table.
// Satisfied by metadata.Table.
type MetadataProvider interface {
	Entries() []stakepool.Metadata
	ByName(name string) (stakepool.Metadata, bool)
	Suggest(key string, extra ...string) string
}

// Logger is the subset of config.Logger the loader uses.
type Logger interface {
	Debug(format string, args ...any)
	Error(format string, args ...any)
}
