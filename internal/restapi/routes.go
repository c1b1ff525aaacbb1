package restapi

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

type handlerFunc func(w http.ResponseWriter, r *http.Request)

func validateAPIKey(api *RestAPI, finalHandler handlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if api.RequestHasInvalidAPIKey(r) {
			api.invalidAPIKeyResponse(w, r)
			return
		}
		finalHandler(w, r)
	})
}

// SetRoutes registers the API endpoints on router.
func (api *RestAPI) SetRoutes(router *httprouter.Router) {
	router.Handler(http.MethodGet, "/api/routes.json", validateAPIKey(api, api.routesHandler))
	router.Handler(http.MethodGet, "/api/route/:id", validateAPIKey(api, api.routeHandler))
	router.Handler(http.MethodGet, "/api/stops.json", validateAPIKey(api, api.stopsHandler))
	router.Handler(http.MethodGet, "/api/stops-for-location.json", validateAPIKey(api, api.stopsForLocationHandler))
	router.Handler(http.MethodGet, "/api/stop/:id", validateAPIKey(api, api.stopHandler))
	router.Handler(http.MethodGet, "/api/plan.json", validateAPIKey(api, api.planHandler))

	router.NotFound = http.HandlerFunc(api.sendNotFound)
}

// Handler returns router behind the full middleware chain: request
// logging, security headers and CORS, per-client rate limiting, then gzip.
func (api *RestAPI) Handler(router *httprouter.Router) http.Handler {
	var handler http.Handler = router
	handler = CompressionMiddleware(handler)
	handler = api.rateLimiter(handler)
	handler = api.WithSecurityHeaders(handler)
	handler = NewRequestLoggingMiddleware(api.Logger, api.clientKey)(handler)
	return handler
}
