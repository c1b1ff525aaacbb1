package app

import "net/http"

func (app *Application) RequestHasInvalidAPIKey(r *http.Request) bool {
	key := r.URL.Query().Get("key")
	return app.IsInvalidAPIKey(key)
}

// IsInvalidAPIKey reports whether key is rejected. With no keys configured
// every request is accepted.
func (app *Application) IsInvalidAPIKey(key string) bool {
	validKeys := app.Config.APIKeys
	if len(validKeys) == 0 {
		return false
	}

	if key == "" {
		return true
	}

	for _, validKey := range validKeys {
		if key == validKey {
			return false
		}
	}

	return true
}
