package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"wayfinder.transit.dev/internal/lookup"
	"wayfinder.transit.dev/internal/planner"
	"wayfinder.transit.dev/transitdb"
)

func TestNewPlanTagsOptions(t *testing.T) {
	e100 := planner.RouteRef{PatternID: "E100:0", RouteID: "E100", ShortName: "E100", Mode: transitdb.ModeBus, DirectionLabel: "Upward"}
	mred := planner.RouteRef{PatternID: "MRed:0", RouteID: "MRed", ShortName: "MRed", Mode: transitdb.ModeMetro, DirectionLabel: "Upward"}

	result := planner.Result{
		Kind: planner.KindTransfer,
		From: transitdb.Stop{ID: "B_GHU", Name: "Al Ghubaiba Bus Station"},
		To:   transitdb.Stop{ID: "M_BUR", Name: "Burjuman"},
		Options: []planner.Option{
			planner.TransferRoute{
				FirstLeg:         planner.Leg{RouteRef: e100, FromSequence: 1, ToSequence: 2},
				SecondLeg:        planner.Leg{RouteRef: mred, FromSequence: 2, ToSequence: 3},
				TransferStopID:   "M_IBN",
				TransferStopName: "Ibn Battuta",
			},
		},
	}

	plan, refs := NewPlan(result)
	assert.Equal(t, "transfer", plan.Kind)
	assert.Len(t, refs.Stops, 2)
	assert.Len(t, refs.Routes, 2)

	raw, err := json.Marshal(plan)
	require.NoError(t, err)

	var decoded struct {
		Kind    string                   `json:"kind"`
		Options []map[string]interface{} `json:"options"`
	}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	require.Len(t, decoded.Options, 1)
	assert.Equal(t, "TransferRoute", decoded.Options[0]["kind"])
	assert.Equal(t, "M_IBN", decoded.Options[0]["transferAt"].(map[string]interface{})["id"])
	assert.Equal(t, "MRed", decoded.Options[0]["secondLeg"].(map[string]interface{})["routeId"])
}

func TestNewPlanDirectIsFlat(t *testing.T) {
	result := planner.Result{
		Kind: planner.KindDirect,
		Options: []planner.Option{
			planner.DirectRoute{
				RouteRef:     planner.RouteRef{PatternID: "X28:0", RouteID: "X28"},
				FromSequence: 2,
				ToSequence:   3,
				StopsBetween: 1,
			},
		},
	}

	plan, _ := NewPlan(result)
	raw, err := json.Marshal(plan)
	require.NoError(t, err)

	var decoded struct {
		Options []map[string]interface{} `json:"options"`
		Reason  *string                  `json:"reason"`
	}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Nil(t, decoded.Reason, "reason is omitted when options exist")
	assert.Equal(t, "DirectRoute", decoded.Options[0]["kind"])
	assert.Equal(t, "X28", decoded.Options[0]["routeId"])
	assert.EqualValues(t, 1, decoded.Options[0]["stopsBetween"])
}

func TestNewPlanNone(t *testing.T) {
	plan, _ := NewPlan(planner.Result{Kind: planner.KindNone, Options: []planner.Option{}, Reason: "no connection"})

	raw, err := json.Marshal(plan)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"options":[]`)
	assert.Contains(t, string(raw), `"reason":"no connection"`)
}

func TestNewStopsWithDistance(t *testing.T) {
	stops := NewStopsWithDistance([]lookup.StopDistance{
		{Stop: transitdb.Stop{ID: "M_GLD"}, DistanceMeters: 54.9},
	})
	require.Len(t, stops, 1)
	require.NotNil(t, stops[0].Distance)
	assert.Equal(t, 55.0, *stops[0].Distance)

	raw, err := json.Marshal(NewStop(transitdb.Stop{ID: "B_ABU"}))
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "distance")
}
