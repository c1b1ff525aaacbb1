package restapi

import (
	"net/http"

	"wayfinder.transit.dev/internal/lookup"
	"wayfinder.transit.dev/internal/models"
	"wayfinder.transit.dev/internal/utils"
	"wayfinder.transit.dev/transitdb"
)

// parseMode reads the optional mode parameter. Blank means every mode.
func parseMode(r *http.Request, fieldErrors map[string][]string) transitdb.Mode {
	raw := r.URL.Query().Get("mode")
	if raw == "" {
		return ""
	}
	mode, ok := transitdb.ParseMode(raw)
	if !ok {
		fieldErrors["mode"] = append(fieldErrors["mode"], "mode must be one of Bus, Metro, Tram, Rail, Ferry")
	}
	return mode
}

func (api *RestAPI) routesHandler(w http.ResponseWriter, r *http.Request) {
	fieldErrors := make(map[string][]string)
	mode := parseMode(r, fieldErrors)

	text, err := utils.ValidateAndSanitizeQuery(r.URL.Query().Get("q"))
	if err != nil {
		fieldErrors["q"] = append(fieldErrors["q"], err.Error())
	}
	if len(fieldErrors) > 0 {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	routes, err := api.Lookup.SearchRoutes(r.Context(), mode, text)
	if err != nil {
		api.handleError(w, r, err)
		return
	}

	list := models.NewRoutes(routes)
	api.sendResponse(w, r, models.NewListResponse(list, models.NewEmptyReferences(), len(list) >= lookup.MaxRouteResults))
}

func (api *RestAPI) routeHandler(w http.ResponseWriter, r *http.Request) {
	fieldErrors := make(map[string][]string)
	mode := parseMode(r, fieldErrors)

	token := utils.ExtractIDFromParams(r, "id")
	if err := utils.ValidateQuery(token); err != nil {
		fieldErrors["id"] = append(fieldErrors["id"], err.Error())
	}
	if len(fieldErrors) > 0 {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	detail, err := api.Lookup.RouteDetail(r.Context(), token, mode)
	if err != nil {
		api.handleError(w, r, err)
		return
	}

	refs := models.NewEmptyReferences()
	for _, p := range detail.Patterns {
		for _, s := range p.Stops {
			if s.Missing {
				continue
			}
			refs.AddStop(models.Stop{ID: s.StopID, Name: s.Name, Lat: s.Lat, Lon: s.Lon, Kind: string(s.Kind)})
		}
	}
	api.sendResponse(w, r, models.NewEntryResponse(models.NewRouteDetail(detail), refs))
}
