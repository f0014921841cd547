package output

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mrz1836/stakeview/internal/view"
)

const (
	tileWidth  = 24
	tileHeight = 5
)

// gridStyles holds the styles of one grid render.
type gridStyles struct {
	heading     lipgloss.Style
	tile        lipgloss.Style
	placeholder lipgloss.Style
	title       lipgloss.Style
	muted       lipgloss.Style
	glyph       lipgloss.Style
}

func newGridStyles(color bool) gridStyles {
	s := gridStyles{
		heading: lipgloss.NewStyle().Bold(true).MarginTop(1).MarginBottom(1),
		tile: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Width(tileWidth).
			Height(tileHeight).
			Align(lipgloss.Center),
		title: lipgloss.NewStyle().Bold(true),
		muted: lipgloss.NewStyle(),
		glyph: lipgloss.NewStyle().Bold(true),
	}
	s.placeholder = s.tile
	if color {
		s.tile = s.tile.BorderForeground(lipgloss.Color("63"))
		s.placeholder = s.placeholder.BorderForeground(lipgloss.Color("238"))
		s.muted = s.muted.Foreground(lipgloss.Color("245"))
		s.glyph = s.glyph.Foreground(lipgloss.Color("240"))
	}
	return s
}

// RenderGrid writes page as titled sections of bordered tiles laid out in
// page.Columns columns.
func RenderGrid(w io.Writer, page view.Page, color bool) error {
	styles := newGridStyles(color)

	var blocks []string
	blocks = append(blocks, renderSection(styles, page.Pools, page.Columns))
	if page.Unrecognized != nil {
		blocks = append(blocks, renderSection(styles, *page.Unrecognized, page.Columns))
	}

	_, err := io.WriteString(w, lipgloss.JoinVertical(lipgloss.Left, blocks...)+"\n")
	return err
}

func renderSection(styles gridStyles, section view.Section, columns int) string {
	heading := styles.heading.Render(section.Title)
	if len(section.Tiles) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, heading, section.Empty)
	}
	if columns <= 0 {
		columns = view.Columns
	}

	var rows []string
	for start := 0; start < len(section.Tiles); start += columns {
		end := min(start+columns, len(section.Tiles))
		cells := make([]string, 0, 2*(end-start))
		for i, tile := range section.Tiles[start:end] {
			if i > 0 {
				cells = append(cells, " ")
			}
			cells = append(cells, renderTile(styles, tile))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, append([]string{heading}, rows...)...)
}

func renderTile(styles gridStyles, tile view.Tile) string {
	var lines []string
	switch tile.Kind {
	case view.TilePlaceholder:
		return styles.placeholder.Render("")
	case view.TilePool:
		lines = append(lines, styles.title.Render(tile.Title))
		for _, link := range tile.Links {
			lines = append(lines, styles.muted.Render(link.Label))
		}
		if tile.ImageURL != "" {
			lines = append(lines, styles.muted.Render("[image]"))
		}
	case view.TileUnrecognized:
		for _, link := range tile.Links {
			lines = append(lines, styles.muted.Render(link.Label))
		}
		lines = append(lines, styles.glyph.Render(tile.Glyph))
	}
	lines = append(lines, styles.muted.Render(tile.Href))
	return styles.tile.Render(strings.Join(lines, "\n"))
}
