package webui

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/davecgh/go-spew/spew"
	"wayfinder.transit.dev/internal/app"
	"wayfinder.transit.dev/transitdb"
)

//go:embed debug_index.html
var templateFS embed.FS

var debugTemplate = template.Must(template.ParseFS(templateFS, "debug_index.html"))

// WebUI serves dumps of the loaded dataset for inspection during development.
type WebUI struct {
	*app.Application
}

type debugData struct {
	Title string
	Pre   string
}

func writeDebugData(w http.ResponseWriter, title string, data interface{}) {
	w.Header().Set("Content-Type", "text/html")

	err := debugTemplate.Execute(w, debugData{
		Title: title,
		Pre:   spew.Sdump(data),
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (webUI *WebUI) debugIndexHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	queries := webUI.Dataset.Queries

	var data interface{}
	var title string
	var err error

	switch r.URL.Query().Get("dataType") {
	case "metadata":
		data, err = queries.GetMetadata(ctx)
		title = "Dataset - Build Metadata"
	case "counts":
		data, err = webUI.Dataset.TableCounts(ctx)
		title = "Dataset - Table Counts"
	case "routes":
		data, err = queries.ListRoutes(ctx, transitdb.ListRoutesParams{Limit: -1})
		title = "Dataset - Routes"
	case "patterns":
		data, err = queries.ListPatterns(ctx)
		title = "Dataset - Direction Patterns"
	case "index":
		data, err = queries.ListStopRouteIndex(ctx)
		title = "Dataset - Stop Route Index"
	case "stops":
		data, err = queries.ListStopsInBounds(ctx, transitdb.ListStopsInBoundsParams{
			MinLat: -90, MaxLat: 90,
			MinLon: -180, MaxLon: 180,
			LonScale: 1,
			Limit:    -1,
		})
		title = "Dataset - Stops"
	default:
		data = map[string]string{
			"error": "Please use one of the following: metadata, counts, routes, patterns, index, stops.",
		}
		title = "Choose a data type"
	}

	if err != nil {
		webUI.Logger.Error("debug page query failed", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeDebugData(w, title, data)
}
