package utils

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
)

func TestExtractIDFromParams(t *testing.T) {
	testCases := []struct {
		name string
		id   string
		want string
	}{
		{name: "plain id", id: "M_GLD", want: "M_GLD"},
		{name: "id with json extension", id: "M_GLD.json", want: "M_GLD"},
		{name: "id with dots", id: "stop.12.json", want: "stop.12"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var result string
			router := httprouter.New()
			router.HandlerFunc(http.MethodGet, "/api/stop/:id", func(w http.ResponseWriter, r *http.Request) {
				result = ExtractIDFromParams(r, "id")
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/api/stop/"+tc.id, nil)
			router.ServeHTTP(httptest.NewRecorder(), req)

			assert.Equal(t, tc.want, result)
		})
	}
}

func TestParseFloatParam(t *testing.T) {
	params := url.Values{"lat": {"25.27"}, "lon": {"east"}}

	lat, fieldErrors := ParseFloatParam(params, "lat", nil)
	assert.Equal(t, 25.27, lat)
	assert.Empty(t, fieldErrors)

	_, fieldErrors = ParseFloatParam(params, "lon", fieldErrors)
	assert.Equal(t, []string{`Invalid field value for field "lon".`}, fieldErrors["lon"])

	radius, fieldErrors := ParseFloatParam(params, "radius", fieldErrors)
	assert.Zero(t, radius)
	assert.NotContains(t, fieldErrors, "radius")
}

func TestRequireFloatParam(t *testing.T) {
	_, fieldErrors := RequireFloatParam(url.Values{}, "lat", nil)
	assert.Equal(t, []string{`Missing required field "lat".`}, fieldErrors["lat"])

	v, fieldErrors := RequireFloatParam(url.Values{"lat": {"1.5"}}, "lat", nil)
	assert.Equal(t, 1.5, v)
	assert.Empty(t, fieldErrors)
}
