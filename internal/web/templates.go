package web

import (
	"embed"
	"html/template"
	"io"

	"github.com/mrz1836/stakeview/internal/chain"
	"github.com/mrz1836/stakeview/internal/notify"
	"github.com/mrz1836/stakeview/internal/service/pools"
	"github.com/mrz1836/stakeview/internal/view"
)

//go:embed templates/*.html
var templateFS embed.FS

//nolint:gochecknoglobals // parsed once at init from embedded files
var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// poolsData feeds the index page and the pools fragment.
type poolsData struct {
	Page          view.Page
	Notifications []notify.Notification
}

type detailData struct {
	Page          view.Page
	Detail        view.Detail
	Notifications []notify.Notification
}

type errorData struct {
	Page       view.Page
	Title      string
	Message    string
	Suggestion string
}

// chrome returns the static page frame for pages other than the listing.
func chrome(cluster chain.Cluster) view.Page {
	return view.Render(pools.State{}, cluster)
}

func renderTemplate(w io.Writer, name string, data any) error {
	return templates.ExecuteTemplate(w, name, data)
}
