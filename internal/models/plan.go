package models

import (
	"wayfinder.transit.dev/internal/planner"
)

type RouteLeg struct {
	PatternID      string `json:"patternId"`
	RouteID        string `json:"routeId"`
	ShortName      string `json:"shortName"`
	LongName       string `json:"longName"`
	Mode           string `json:"mode"`
	Color          string `json:"color"`
	Direction      int64  `json:"direction"`
	DirectionLabel string `json:"directionLabel"`
	Headsign       string `json:"headsign"`
	FromSequence   int64  `json:"fromSequence"`
	ToSequence     int64  `json:"toSequence"`
}

func newRouteLeg(ref planner.RouteRef, from, to int64) RouteLeg {
	return RouteLeg{
		PatternID:      ref.PatternID,
		RouteID:        ref.RouteID,
		ShortName:      ref.ShortName,
		LongName:       ref.LongName,
		Mode:           string(ref.Mode),
		Color:          ref.Color,
		Direction:      int64(ref.Direction),
		DirectionLabel: ref.DirectionLabel,
		Headsign:       ref.Headsign,
		FromSequence:   from,
		ToSequence:     to,
	}
}

// DirectOption is serialized with kind "DirectRoute".
type DirectOption struct {
	Kind string `json:"kind"`
	RouteLeg
	StopsBetween int64 `json:"stopsBetween"`
}

type TransferStop struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// TransferOption is serialized with kind "TransferRoute".
type TransferOption struct {
	Kind       string       `json:"kind"`
	FirstLeg   RouteLeg     `json:"firstLeg"`
	SecondLeg  RouteLeg     `json:"secondLeg"`
	TransferAt TransferStop `json:"transferAt"`
}

type Plan struct {
	Kind    string        `json:"kind"`
	From    Stop          `json:"from"`
	To      Stop          `json:"to"`
	Options []interface{} `json:"options"`
	Reason  string        `json:"reason,omitempty"`
}

// NewPlan converts a planner result and collects the stops and routes it
// mentions into references.
func NewPlan(result planner.Result) (Plan, ReferencesModel) {
	refs := NewEmptyReferences()
	plan := Plan{
		Kind:    string(result.Kind),
		From:    NewStop(result.From),
		To:      NewStop(result.To),
		Options: make([]interface{}, 0, len(result.Options)),
		Reason:  result.Reason,
	}
	refs.AddStop(plan.From)
	refs.AddStop(plan.To)

	for _, opt := range result.Options {
		switch o := opt.(type) {
		case planner.DirectRoute:
			plan.Options = append(plan.Options, DirectOption{
				Kind:         string(o.OptionKind()),
				RouteLeg:     newRouteLeg(o.RouteRef, o.FromSequence, o.ToSequence),
				StopsBetween: o.StopsBetween,
			})
			refs.AddRoute(routeFromRef(o.RouteRef))
		case planner.TransferRoute:
			plan.Options = append(plan.Options, TransferOption{
				Kind:       string(o.OptionKind()),
				FirstLeg:   newRouteLeg(o.FirstLeg.RouteRef, o.FirstLeg.FromSequence, o.FirstLeg.ToSequence),
				SecondLeg:  newRouteLeg(o.SecondLeg.RouteRef, o.SecondLeg.FromSequence, o.SecondLeg.ToSequence),
				TransferAt: TransferStop{ID: o.TransferStopID, Name: o.TransferStopName},
			})
			refs.AddRoute(routeFromRef(o.FirstLeg.RouteRef))
			refs.AddRoute(routeFromRef(o.SecondLeg.RouteRef))
		}
	}
	return plan, refs
}

func routeFromRef(ref planner.RouteRef) Route {
	return Route{
		ID:        ref.RouteID,
		ShortName: ref.ShortName,
		LongName:  ref.LongName,
		Mode:      string(ref.Mode),
		Color:     ref.Color,
	}
}
