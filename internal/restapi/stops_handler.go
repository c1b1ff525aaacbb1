package restapi

import (
	"net/http"

	"wayfinder.transit.dev/internal/lookup"
	"wayfinder.transit.dev/internal/models"
	"wayfinder.transit.dev/internal/utils"
)

func (api *RestAPI) stopsHandler(w http.ResponseWriter, r *http.Request) {
	query, err := utils.ValidateAndSanitizeQuery(r.URL.Query().Get("q"))
	if err != nil {
		api.validationErrorResponse(w, r, map[string][]string{"q": {err.Error()}})
		return
	}

	stops, err := api.Lookup.SearchStops(r.Context(), query)
	if err != nil {
		api.handleError(w, r, err)
		return
	}

	list := models.NewStops(stops)
	api.sendResponse(w, r, models.NewListResponse(list, models.NewEmptyReferences(), len(list) >= lookup.MaxStopResults))
}

func (api *RestAPI) stopsForLocationHandler(w http.ResponseWriter, r *http.Request) {
	queryParams := r.URL.Query()

	lat, fieldErrors := utils.RequireFloatParam(queryParams, "lat", nil)
	lon, fieldErrors := utils.RequireFloatParam(queryParams, "lon", fieldErrors)
	radius, fieldErrors := utils.ParseFloatParam(queryParams, "radius", fieldErrors)
	if len(fieldErrors) > 0 {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	stops, err := api.Lookup.NearbyStops(r.Context(), lat, lon, radius)
	if err != nil {
		api.handleError(w, r, err)
		return
	}

	list := models.NewStopsWithDistance(stops)
	api.sendResponse(w, r, models.NewListResponse(list, models.NewEmptyReferences(), len(list) >= lookup.MaxStopResults))
}

func (api *RestAPI) stopHandler(w http.ResponseWriter, r *http.Request) {
	stopID := utils.ExtractIDFromParams(r, "id")
	if err := utils.ValidateID(stopID); err != nil {
		api.validationErrorResponse(w, r, map[string][]string{"id": {err.Error()}})
		return
	}

	detail, err := api.Lookup.StopDetail(r.Context(), stopID)
	if err != nil {
		api.handleError(w, r, err)
		return
	}

	refs := models.NewEmptyReferences()
	for _, route := range detail.Routes {
		refs.AddRoute(models.Route{
			ID:        route.RouteID,
			ShortName: route.ShortName,
			LongName:  route.LongName,
			Mode:      string(route.Mode),
			Color:     route.Color,
		})
	}
	api.sendResponse(w, r, models.NewEntryResponse(models.NewStopDetail(detail), refs))
}
