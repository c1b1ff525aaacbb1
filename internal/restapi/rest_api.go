package restapi

import (
	"net/http"
	"time"

	"wayfinder.transit.dev/internal/app"
)

type RestAPI struct {
	*app.Application
	limiter     *RateLimitMiddleware
	rateLimiter func(http.Handler) http.Handler
}

// NewRestAPI creates a new RestAPI instance with initialized rate limiter
func NewRestAPI(app *app.Application) *RestAPI {
	api := &RestAPI{Application: app}
	api.limiter = newRateLimiter(app.Config.RateLimit, time.Second, api.clientKey)
	api.rateLimiter = api.limiter.rateLimitHandler
	return api
}

// clientKey identifies a client for rate limiting. Only configured API keys
// get a bucket of their own; any other request shares its IP's bucket.
func (api *RestAPI) clientKey(r *http.Request) string {
	if len(api.Config.APIKeys) > 0 {
		if key := r.URL.Query().Get("key"); key != "" && !api.IsInvalidAPIKey(key) {
			return "key:" + key
		}
	}
	return ipClientKey(r)
}

// Shutdown stops background work owned by the API.
func (api *RestAPI) Shutdown() {
	if api.limiter != nil {
		api.limiter.Stop()
	}
}
