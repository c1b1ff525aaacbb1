package restapi

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoutesHandlerEndToEnd(t *testing.T) {
	api := createTestApi(t)

	tests := []struct {
		name     string
		endpoint string
		want     []string
	}{
		{name: "all routes", endpoint: "/api/routes.json", want: []string{"C28", "F11", "NS1", "X28", "E100", "E101", "MRed"}},
		{name: "metro only", endpoint: "/api/routes.json?mode=metro", want: []string{"MRed"}},
		{name: "text search", endpoint: "/api/routes.json?q=x28", want: []string{"X28", "C28"}},
		{name: "no match", endpoint: "/api/routes.json?q=tramway", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, model := serveApiAndRetrieveEndpoint(t, api, tt.endpoint)
			require.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Equal(t, 200, model.Code)
			assert.Equal(t, "OK", model.Text)
			assert.Equal(t, tt.want, listIDs(t, model, "id"))
			assert.Equal(t, false, dataMap(t, model)["limitExceeded"])
		})
	}
}

func TestRoutesHandlerValidatesParameters(t *testing.T) {
	api := createTestApi(t)

	resp, body := retrieveRaw(t, api, "/api/routes.json?mode=hovercraft&q=%3Cscript%3E")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	fieldErrors, ok := body["fieldErrors"].(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, fieldErrors, "mode")
	assert.Contains(t, fieldErrors, "q")
}

func TestRouteHandlerEndToEnd(t *testing.T) {
	_, resp, model := serveAndRetrieveEndpoint(t, "/api/route/X28")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	data := dataMap(t, model)
	entry := data["entry"].(map[string]interface{})
	assert.Equal(t, "X28", entry["id"])
	assert.Equal(t, "Bus", entry["mode"])

	patterns := entry["patterns"].([]interface{})
	require.Len(t, patterns, 2)

	outbound := patterns[0].(map[string]interface{})
	assert.Equal(t, "X28:0", outbound["id"])
	assert.Equal(t, "Upward", outbound["directionLabel"])
	assert.NotEmpty(t, outbound["polyline"])
	stops := outbound["stops"].([]interface{})
	require.Len(t, stops, 3)
	assert.Equal(t, "B_GSOUQ", stops[0].(map[string]interface{})["stopId"])

	refs := data["references"].(map[string]interface{})
	assert.Len(t, refs["stops"], 3)
}

func TestRouteHandlerResolvesNames(t *testing.T) {
	api := createTestApi(t)

	resp, model := serveApiAndRetrieveEndpoint(t, api, "/api/route/Express")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "C28", dataMap(t, model)["entry"].(map[string]interface{})["id"])

	resp, model = serveApiAndRetrieveEndpoint(t, api, "/api/route/X28?mode=Metro")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, 404, model.Code)
	assert.Equal(t, "resource not found", model.Text)
}

func TestRouteHandlerMissingStopsAreFlagged(t *testing.T) {
	_, resp, model := serveAndRetrieveEndpoint(t, "/api/route/F11")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	entry := dataMap(t, model)["entry"].(map[string]interface{})
	pattern := entry["patterns"].([]interface{})[0].(map[string]interface{})
	stops := pattern["stops"].([]interface{})
	require.Len(t, stops, 3)

	ghost := stops[2].(map[string]interface{})
	assert.Equal(t, "B_GHOST", ghost["stopId"])
	assert.Equal(t, true, ghost["missing"])
	assert.Equal(t, "", ghost["name"])
}
