package restapi

import (
	"log/slog"
	"net/http"

	"wayfinder.transit.dev/internal/logging"
	"wayfinder.transit.dev/internal/models"
	"wayfinder.transit.dev/internal/utils"
)

func (api *RestAPI) planHandler(w http.ResponseWriter, r *http.Request) {
	queryParams := r.URL.Query()
	from := queryParams.Get("from")
	to := queryParams.Get("to")

	// Blank ids are left to the planner, which reports both at once.
	fieldErrors := make(map[string][]string)
	if from != "" {
		if err := utils.ValidateID(from); err != nil {
			fieldErrors["from"] = append(fieldErrors["from"], err.Error())
		}
	}
	if to != "" {
		if err := utils.ValidateID(to); err != nil {
			fieldErrors["to"] = append(fieldErrors["to"], err.Error())
		}
	}
	if len(fieldErrors) > 0 {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	result, err := api.Planner.Plan(r.Context(), from, to)
	if err != nil {
		api.handleError(w, r, err)
		return
	}

	logging.FromContext(r.Context()).Debug("journey planned",
		slog.String("from", result.From.ID),
		slog.String("to", result.To.ID),
		slog.String("kind", string(result.Kind)),
		slog.Int("options", len(result.Options)))

	plan, refs := models.NewPlan(result)
	api.sendResponse(w, r, models.NewEntryResponse(plan, refs))
}
