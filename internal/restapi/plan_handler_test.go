package restapi

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func planEntry(t *testing.T, api *RestAPI, endpoint string) map[string]interface{} {
	t.Helper()
	resp, model := serveApiAndRetrieveEndpoint(t, api, endpoint)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	return dataMap(t, model)["entry"].(map[string]interface{})
}

func TestPlanHandlerEndToEnd(t *testing.T) {
	api := createTestApi(t)

	t.Run("direct", func(t *testing.T) {
		entry := planEntry(t, api, "/api/plan.json?from=M_GLD&to=M_BKM")
		assert.Equal(t, "direct", entry["kind"])
		options := entry["options"].([]interface{})
		require.Len(t, options, 1)
		option := options[0].(map[string]interface{})
		assert.Equal(t, "DirectRoute", option["kind"])
		assert.Equal(t, "X28", option["routeId"])
		assert.EqualValues(t, 1, option["stopsBetween"])
	})

	t.Run("transfer", func(t *testing.T) {
		entry := planEntry(t, api, "/api/plan.json?from=B_GHU&to=B_ABU")
		assert.Equal(t, "transfer", entry["kind"])
		options := entry["options"].([]interface{})
		require.Len(t, options, 1)
		option := options[0].(map[string]interface{})
		assert.Equal(t, "TransferRoute", option["kind"])
		assert.Equal(t, "M_IBN", option["transferAt"].(map[string]interface{})["id"])
		assert.Equal(t, "E100", option["firstLeg"].(map[string]interface{})["routeId"])
		assert.Equal(t, "E101", option["secondLeg"].(map[string]interface{})["routeId"])
	})

	t.Run("no connection", func(t *testing.T) {
		entry := planEntry(t, api, "/api/plan.json?from=B_SOUQ&to=B_ABU")
		assert.Equal(t, "none", entry["kind"])
		assert.Empty(t, entry["options"])
		assert.NotEmpty(t, entry["reason"])
	})
}

func TestPlanHandlerErrors(t *testing.T) {
	api := createTestApi(t)

	tests := []struct {
		name       string
		endpoint   string
		wantStatus int
	}{
		{name: "missing ids", endpoint: "/api/plan.json", wantStatus: http.StatusBadRequest},
		{name: "same stop", endpoint: "/api/plan.json?from=M_BUR&to=M_BUR", wantStatus: http.StatusBadRequest},
		{name: "malformed id", endpoint: "/api/plan.json?from=M_BUR%3B--&to=M_GLD", wantStatus: http.StatusBadRequest},
		{name: "unknown stop", endpoint: "/api/plan.json?from=NONEXISTENT_ID&to=M_BUR", wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := retrieveRaw(t, api, tt.endpoint)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			assert.EqualValues(t, tt.wantStatus, body["code"])
		})
	}
}
