package app

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"wayfinder.transit.dev/internal/appconf"
)

func TestBlankKeyIsInvalid(t *testing.T) {
	app := &Application{
		Config: appconf.Config{
			APIKeys: []string{"key"},
		},
	}
	assert.True(t, app.IsInvalidAPIKey(""))
	assert.True(t, app.IsInvalidAPIKey("other"))
	assert.False(t, app.IsInvalidAPIKey("key"))
}

func TestNoConfiguredKeysAcceptsEverything(t *testing.T) {
	app := &Application{}
	assert.False(t, app.IsInvalidAPIKey(""))
	assert.False(t, app.RequestHasInvalidAPIKey(httptest.NewRequest("GET", "/api/stops.json?q=gold", nil)))
}
