// Package metadata loads the static stake pool metadata table.
//
// The table is read once at process start, either from the embedded default
// or from a YAML file, and is read-only afterwards.
package metadata

import (
	_ "embed"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/agnivade/levenshtein"
	"gopkg.in/yaml.v3"

	"github.com/mrz1836/stakeview/internal/chain/solana"
	"github.com/mrz1836/stakeview/internal/stakepool"
	sverr "github.com/mrz1836/stakeview/pkg/errors"
)

//go:embed pools.yaml
var embeddedTable []byte

// maxSuggestionDistance bounds how far a mistyped key may be from a suggestion.
const maxSuggestionDistance = 3

// reservedNames collide with server routes and cannot be used as pool names.
//
//nolint:gochecknoglobals // fixed route set
var reservedNames = map[string]struct{}{
	"api":       {},
	"fragments": {},
	"healthz":   {},
	"static":    {},
}

// tableFile is the on-disk layout of the metadata table.
type tableFile struct {
	Pools []stakepool.Metadata `yaml:"pools"`
}

// Table is an immutable list of metadata entries in file order.
type Table struct {
	entries []stakepool.Metadata
}

// Default returns the embedded metadata table.
func Default() (*Table, error) {
	return Parse(embeddedTable)
}

// Load reads the table at path, or the embedded table when path is empty.
func Load(path string) (*Table, error) {
	if path == "" {
		return Default()
	}

	data, err := os.ReadFile(path) //nolint:gosec // path comes from user config
	if err != nil {
		if os.IsNotExist(err) {
			return nil, sverr.WithDetails(sverr.ErrNotFound, map[string]string{"metadata_file": path})
		}
		return nil, sverr.WithCause(sverr.ErrMetadataInvalid, err)
	}

	table, err := Parse(data)
	if err != nil {
		return nil, sverr.Wrap(err, "loading %s", path)
	}
	return table, nil
}

// Parse decodes and validates a YAML metadata table.
func Parse(data []byte) (*Table, error) {
	var file tableFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, sverr.WithCause(sverr.ErrMetadataInvalid, err)
	}

	table := &Table{entries: file.Pools}
	if err := table.Validate(); err != nil {
		return nil, err
	}
	return table, nil
}

// New builds a table from entries without validation. Intended for tests
// and callers that assemble metadata in code.
func New(entries ...stakepool.Metadata) *Table {
	return &Table{entries: append([]stakepool.Metadata(nil), entries...)}
}

// Validate checks every entry. Duplicate addresses are allowed; lookups use
// the first entry. Duplicate names are rejected since they would make routes
// ambiguous.
func (t *Table) Validate() error {
	names := make(map[string]int, len(t.entries))
	for i, entry := range t.entries {
		where := map[string]string{"entry": strconv.Itoa(i)}

		if strings.TrimSpace(entry.Address) == "" {
			where["reason"] = "missing address"
			return sverr.WithDetails(sverr.ErrMetadataInvalid, where)
		}
		if err := solana.ValidateAddress(entry.Address); err != nil {
			where["address"] = entry.Address
			return sverr.WithDetails(sverr.WithCause(sverr.ErrMetadataInvalid, err), where)
		}
		if entry.Name == "" {
			continue
		}
		if strings.ContainsAny(entry.Name, "/?#% ") {
			where["name"] = entry.Name
			where["reason"] = "name must be a single path segment"
			return sverr.WithDetails(sverr.ErrMetadataInvalid, where)
		}
		if _, reserved := reservedNames[strings.ToLower(entry.Name)]; reserved {
			where["name"] = entry.Name
			where["reason"] = "name is reserved"
			return sverr.WithDetails(sverr.ErrMetadataInvalid, where)
		}
		if prev, dup := names[entry.Name]; dup {
			where["name"] = entry.Name
			where["reason"] = fmt.Sprintf("duplicate of entry %d", prev)
			return sverr.WithDetails(sverr.ErrMetadataInvalid, where)
		}
		names[entry.Name] = i
	}
	return nil
}

// Entries returns a copy of the table in file order.
func (t *Table) Entries() []stakepool.Metadata {
	return append([]stakepool.Metadata(nil), t.entries...)
}

// Len returns the number of entries.
func (t *Table) Len() int {
	return len(t.entries)
}

// Lookup returns the first entry whose address equals address.
func (t *Table) Lookup(address string) (stakepool.Metadata, bool) {
	return stakepool.Lookup(t.entries, address)
}

// ByName returns the entry with the given route name.
func (t *Table) ByName(name string) (stakepool.Metadata, bool) {
	if name == "" {
		return stakepool.Metadata{}, false
	}
	for _, entry := range t.entries {
		if entry.Name == name {
			return entry, true
		}
	}
	return stakepool.Metadata{}, false
}

// Suggest returns the closest known route key to key, or "" when nothing is
// close enough. Candidates beyond the table (such as unrecognized pool
// addresses) can be passed in extra.
func (t *Table) Suggest(key string, extra ...string) string {
	if key == "" {
		return ""
	}

	candidates := make([]string, 0, len(t.entries)+len(extra))
	for _, entry := range t.entries {
		if entry.Name != "" {
			candidates = append(candidates, entry.Name)
		}
	}
	candidates = append(candidates, extra...)

	best := ""
	bestDist := maxSuggestionDistance + 1
	lower := strings.ToLower(key)
	for _, c := range candidates {
		d := levenshtein.ComputeDistance(lower, strings.ToLower(c))
		if d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}
