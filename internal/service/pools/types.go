package pools

import (
	"github.com/mrz1836/stakeview/internal/stakepool"
)

// State is an immutable snapshot of a loader.
type State struct {
	// Loaded is true once the fetch has settled, successfully or not.
	Loaded bool `json:"loaded"`
	// WithMetadata holds pools that have a metadata entry, in provider order.
	WithMetadata []stakepool.StakePool `json:"with_metadata"`
	// WithoutMetadata holds the remaining pools, in provider order.
	WithoutMetadata []stakepool.StakePool `json:"without_metadata"`
	// Err is the fetch failure, if any. It has already been reported through
	// the notifier.
	Err error `json:"-"`
}

// Len returns the total number of pools in the snapshot.
func (s State) Len() int {
	return len(s.WithMetadata) + len(s.WithoutMetadata)
}

func (s State) clone() State {
	return State{
		Loaded:          s.Loaded,
		WithMetadata:    append(make([]stakepool.StakePool, 0, len(s.WithMetadata)), s.WithMetadata...),
		WithoutMetadata: append(make([]stakepool.StakePool, 0, len(s.WithoutMetadata)), s.WithoutMetadata...),
		Err:             s.Err,
	}
}
