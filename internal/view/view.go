// Package view turns a stake pool snapshot into a page model. Rendering is a
// pure function: the same snapshot and cluster always produce the same page.
// HTML and terminal encoders consume the model.
package view

import (
	"github.com/mrz1836/stakeview/internal/chain"
	"github.com/mrz1836/stakeview/internal/service/pools"
	"github.com/mrz1836/stakeview/internal/stakepool"
)

// Static page content.
const (
	DocumentTitle     = "Stakeview"
	Description       = "Browse Solana stake pools"
	Title             = "Stake Pools"
	UnrecognizedTitle = "Unrecognized Pools"
	EmptyMessage      = "No pools found..."
	UnknownGlyph      = "?"
	PlaceholderCount  = 6
	Columns           = 4
)

// TileKind distinguishes the three tile shapes.
type TileKind string

// Tile kinds.
const (
	TilePlaceholder  TileKind = "placeholder"
	TilePool         TileKind = "pool"
	TileUnrecognized TileKind = "unrecognized"
)

// Link is an external explorer link.
type Link struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

// Tile is one grid cell.
type Tile struct {
	Kind TileKind `json:"kind"`
	// Title is the display name for pool tiles.
	Title string `json:"title,omitempty"`
	// ImageURL and ImageAlt are set when the metadata has an image.
	ImageURL string `json:"image_url,omitempty"`
	ImageAlt string `json:"image_alt,omitempty"`
	// Glyph stands in for the image on unrecognized tiles.
	Glyph string `json:"glyph,omitempty"`
	// Links are explorer links; unrecognized tiles carry the same link twice.
	Links []Link `json:"links,omitempty"`
	// Href is the in-app detail route.
	Href    string `json:"href,omitempty"`
	Address string `json:"address,omitempty"`
}

// Section is a titled grid.
type Section struct {
	Title string `json:"title"`
	Tiles []Tile `json:"tiles"`
	// Empty is shown instead of the grid when Tiles is empty.
	Empty string `json:"empty,omitempty"`
}

// Page is the full render output.
type Page struct {
	DocumentTitle string  `json:"document_title"`
	Description   string  `json:"description"`
	Cluster       string  `json:"cluster"`
	Columns       int     `json:"columns"`
	Loaded        bool    `json:"loaded"`
	Pools         Section `json:"pools"`
	// Unrecognized is nil when there are no unrecognized pools.
	Unrecognized *Section `json:"unrecognized,omitempty"`
}

// Render builds the page for a snapshot on the given cluster.
func Render(state pools.State, cluster chain.Cluster) Page {
	page := Page{
		DocumentTitle: DocumentTitle,
		Description:   Description,
		Cluster:       cluster.String(),
		Columns:       Columns,
		Loaded:        state.Loaded,
		Pools:         Section{Title: Title, Tiles: []Tile{}},
	}

	switch {
	case !state.Loaded:
		for i := 0; i < PlaceholderCount; i++ {
			page.Pools.Tiles = append(page.Pools.Tiles, Tile{Kind: TilePlaceholder})
		}
	case len(state.WithMetadata) > 0:
		for _, pool := range state.WithMetadata {
			page.Pools.Tiles = append(page.Pools.Tiles, poolTile(pool, cluster))
		}
	default:
		page.Pools.Empty = EmptyMessage
	}

	if len(state.WithoutMetadata) > 0 {
		section := &Section{Title: UnrecognizedTitle, Tiles: make([]Tile, 0, len(state.WithoutMetadata))}
		for _, pool := range state.WithoutMetadata {
			section.Tiles = append(section.Tiles, unrecognizedTile(pool, cluster))
		}
		page.Unrecognized = section
	}

	return page
}

// PoolLink returns the explorer link for a pool address.
func PoolLink(address string, cluster chain.Cluster) Link {
	return Link{
		Label: chain.ShortAddress(address),
		URL:   chain.ExplorerURL(cluster, address),
	}
}

func poolTile(pool stakepool.StakePool, cluster chain.Cluster) Tile {
	tile := Tile{
		Kind:    TilePool,
		Links:   []Link{PoolLink(pool.Address(), cluster)},
		Href:    pool.Path(),
		Address: pool.Address(),
	}
	if pool.Metadata != nil {
		tile.Title = pool.Metadata.DisplayName
		if pool.Metadata.ImageURL != "" {
			tile.ImageURL = pool.Metadata.ImageURL
			tile.ImageAlt = pool.Metadata.Name
		}
	}
	return tile
}

func unrecognizedTile(pool stakepool.StakePool, cluster chain.Cluster) Tile {
	link := PoolLink(pool.Address(), cluster)
	return Tile{
		Kind:    TileUnrecognized,
		Glyph:   UnknownGlyph,
		Links:   []Link{link, link},
		Href:    pool.Path(),
		Address: pool.Address(),
	}
}
