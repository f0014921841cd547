package stakepool

// Partitioned is the result of splitting a fetched collection against the
// metadata table. Every input record lands in exactly one of the two
// sequences, and each sequence keeps the provider's order.
type Partitioned struct {
	WithMetadata    []StakePool `json:"with_metadata"`
	WithoutMetadata []StakePool `json:"without_metadata"`
}

// Len returns the total number of pools across both sequences.
func (p Partitioned) Len() int {
	return len(p.WithMetadata) + len(p.WithoutMetadata)
}

// Partition splits records by whether their address matches an entry in
// table. When several entries share an address the first one wins.
func Partition(records []Record, table []Metadata) Partitioned {
	index := indexByAddress(table)

	out := Partitioned{
		WithMetadata:    []StakePool{},
		WithoutMetadata: []StakePool{},
	}
	for _, rec := range records {
		if i, ok := index[rec.Address]; ok {
			md := table[i]
			out.WithMetadata = append(out.WithMetadata, StakePool{Record: rec, Metadata: &md})
			continue
		}
		out.WithoutMetadata = append(out.WithoutMetadata, StakePool{Record: rec})
	}
	return out
}

// Lookup returns the first metadata entry for address.
func Lookup(table []Metadata, address string) (Metadata, bool) {
	for _, md := range table {
		if md.Address == address {
			return md, true
		}
	}
	return Metadata{}, false
}

// indexByAddress maps each address to the position of its first entry.
func indexByAddress(table []Metadata) map[string]int {
	index := make(map[string]int, len(table))
	for i, md := range table {
		if _, seen := index[md.Address]; !seen {
			index[md.Address] = i
		}
	}
	return index
}
