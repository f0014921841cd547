package view

import (
	"strconv"
	"time"

	"github.com/mrz1836/stakeview/internal/chain"
	"github.com/mrz1836/stakeview/internal/stakepool"
)

// Field is a labeled value on the detail page.
type Field struct {
	Label string `json:"label"`
	Value string `json:"value"`
	// URL makes the value a link when set.
	URL string `json:"url,omitempty"`
}

// Detail is the model of a single pool page.
type Detail struct {
	DocumentTitle string  `json:"document_title"`
	Title         string  `json:"title"`
	ImageURL      string  `json:"image_url,omitempty"`
	Recognized    bool    `json:"recognized"`
	Explorer      Link    `json:"explorer"`
	Fields        []Field `json:"fields"`
}

// RenderDetail builds the detail page of one pool.
func RenderDetail(pool stakepool.StakePool, cluster chain.Cluster) Detail {
	data := pool.Record.Data
	d := Detail{
		DocumentTitle: DocumentTitle,
		Title:         chain.ShortAddress(pool.Address()),
		Recognized:    pool.HasMetadata(),
		Explorer:      PoolLink(pool.Address(), cluster),
	}
	if pool.Metadata != nil {
		if pool.Metadata.DisplayName != "" {
			d.Title = pool.Metadata.DisplayName
		}
		d.ImageURL = pool.Metadata.ImageURL
	}
	if d.ImageURL == "" {
		d.ImageURL = data.ImageURI
	}

	d.Fields = []Field{
		{Label: "Address", Value: pool.Address(), URL: d.Explorer.URL},
		{Label: "Authority", Value: data.Authority, URL: chain.ExplorerURL(cluster, data.Authority)},
		{Label: "Identifier", Value: strconv.FormatUint(data.Identifier, 10)},
		{Label: "Total staked", Value: strconv.FormatUint(uint64(data.TotalStaked), 10)},
		{Label: "Rent", Value: chain.FormatLamports(pool.Record.Lamports) + " SOL"},
		{Label: "Requires authorization", Value: yesNo(data.RequiresAuthorization)},
		{Label: "Reset on stake", Value: yesNo(data.ResetOnStake)},
	}
	if data.OverlayText != "" {
		d.Fields = append(d.Fields, Field{Label: "Overlay text", Value: data.OverlayText})
	}
	if data.CooldownSeconds != nil {
		d.Fields = append(d.Fields, Field{Label: "Cooldown", Value: seconds(*data.CooldownSeconds)})
	}
	if data.MinStakeSeconds != nil {
		d.Fields = append(d.Fields, Field{Label: "Minimum stake", Value: seconds(*data.MinStakeSeconds)})
	}
	if data.EndDate != nil {
		d.Fields = append(d.Fields, Field{
			Label: "End date",
			Value: time.Unix(*data.EndDate, 0).UTC().Format(time.RFC3339),
		})
	}
	for _, creator := range data.RequiresCreators {
		d.Fields = append(d.Fields, Field{Label: "Required creator", Value: creator, URL: chain.ExplorerURL(cluster, creator)})
	}
	for _, collection := range data.RequiresCollections {
		d.Fields = append(d.Fields, Field{Label: "Required collection", Value: collection, URL: chain.ExplorerURL(cluster, collection)})
	}
	return d
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func seconds(s uint32) string {
	return (time.Duration(s) * time.Second).String()
}
