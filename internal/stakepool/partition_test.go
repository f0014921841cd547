package stakepool_test

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/stakeview/internal/stakepool"
)

func records(addresses ...string) []stakepool.Record {
	out := make([]stakepool.Record, 0, len(addresses))
	for _, a := range addresses {
		out = append(out, stakepool.Record{Address: a})
	}
	return out
}

func addresses(pools []stakepool.StakePool) []string {
	out := make([]string, 0, len(pools))
	for _, p := range pools {
		out = append(out, p.Address())
	}
	return out
}

func TestPartition_SingleRecognized(t *testing.T) {
	t.Parallel()

	table := []stakepool.Metadata{{Address: "A", DisplayName: "Pool A"}}
	got := stakepool.Partition(records("A"), table)

	want := stakepool.Partitioned{
		WithMetadata: []stakepool.StakePool{{
			Record:   stakepool.Record{Address: "A"},
			Metadata: &stakepool.Metadata{Address: "A", DisplayName: "Pool A"},
		}},
		WithoutMetadata: []stakepool.StakePool{},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Partition() mismatch (-want +got):\n%s", diff)
	}
}

func TestPartition_MixedRecognition(t *testing.T) {
	t.Parallel()

	table := []stakepool.Metadata{{Address: "B", DisplayName: "Pool B"}}
	got := stakepool.Partition(records("A", "B"), table)

	require.Len(t, got.WithMetadata, 1)
	assert.Equal(t, "B", got.WithMetadata[0].Address())
	assert.Equal(t, "Pool B", got.WithMetadata[0].Metadata.DisplayName)
	assert.Equal(t, []string{"A"}, addresses(got.WithoutMetadata))
	assert.Nil(t, got.WithoutMetadata[0].Metadata)
}

func TestPartition_EmptyTable(t *testing.T) {
	t.Parallel()

	input := records("C", "A", "B")
	got := stakepool.Partition(input, nil)

	assert.Empty(t, got.WithMetadata)
	assert.Equal(t, []string{"C", "A", "B"}, addresses(got.WithoutMetadata))
}

func TestPartition_EmptyInput(t *testing.T) {
	t.Parallel()

	got := stakepool.Partition(nil, []stakepool.Metadata{{Address: "A"}})
	assert.NotNil(t, got.WithMetadata)
	assert.NotNil(t, got.WithoutMetadata)
	assert.Equal(t, 0, got.Len())
}

func TestPartition_FirstMatchWins(t *testing.T) {
	t.Parallel()

	table := []stakepool.Metadata{
		{Address: "A", Name: "first"},
		{Address: "A", Name: "second"},
	}
	got := stakepool.Partition(records("A"), table)

	require.Len(t, got.WithMetadata, 1)
	assert.Equal(t, "first", got.WithMetadata[0].Metadata.Name)
}

func TestPartition_MetadataIsCopied(t *testing.T) {
	t.Parallel()

	table := []stakepool.Metadata{{Address: "A", Name: "original"}}
	got := stakepool.Partition(records("A"), table)
	table[0].Name = "mutated"

	assert.Equal(t, "original", got.WithMetadata[0].Metadata.Name)
}

// TestPartition_Properties checks coverage, disjointness, order preservation
// and idempotence over randomized inputs.
func TestPartition_Properties(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewPCG(7, 11)) //nolint:gosec // deterministic test data

	for iter := 0; iter < 200; iter++ {
		n := rng.IntN(30)
		input := make([]stakepool.Record, n)
		for i := range input {
			// Indices keep every record distinguishable even when addresses repeat.
			input[i] = stakepool.Record{Address: fmt.Sprintf("pool-%d", rng.IntN(10)), Lamports: uint64(i)}
		}
		var table []stakepool.Metadata
		for j := 0; j < rng.IntN(8); j++ {
			table = append(table, stakepool.Metadata{Address: fmt.Sprintf("pool-%d", rng.IntN(10))})
		}

		got := stakepool.Partition(input, table)
		require.Equal(t, n, got.Len())

		seen := make(map[uint64]int)
		for _, seq := range [][]stakepool.StakePool{got.WithMetadata, got.WithoutMetadata} {
			last := -1
			for _, p := range seq {
				idx := int(p.Record.Lamports)
				assert.Greater(t, idx, last, "order must follow input order")
				last = idx
				seen[p.Record.Lamports]++
			}
		}
		for i := range input {
			assert.Equal(t, 1, seen[uint64(i)], "record %d must appear exactly once", i)
		}

		for _, p := range got.WithMetadata {
			_, ok := stakepool.Lookup(table, p.Address())
			assert.True(t, ok)
		}
		for _, p := range got.WithoutMetadata {
			_, ok := stakepool.Lookup(table, p.Address())
			assert.False(t, ok)
		}

		again := stakepool.Partition(input, table)
		if diff := cmp.Diff(got, again); diff != "" {
			t.Fatalf("Partition() not idempotent (-first +second):\n%s", diff)
		}
	}
}

func TestStakePool_RouteKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		pool stakepool.StakePool
		want string
	}{
		{
			name: "metadata name",
			pool: stakepool.StakePool{
				Record:   stakepool.Record{Address: "addr"},
				Metadata: &stakepool.Metadata{Name: "cardinal"},
			},
			want: "cardinal",
		},
		{
			name: "empty metadata name falls back to address",
			pool: stakepool.StakePool{
				Record:   stakepool.Record{Address: "addr"},
				Metadata: &stakepool.Metadata{},
			},
			want: "addr",
		},
		{
			name: "no metadata",
			pool: stakepool.StakePool{Record: stakepool.Record{Address: "addr"}},
			want: "addr",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.pool.RouteKey())
			assert.Equal(t, "/"+tt.want, tt.pool.Path())
		})
	}
}
