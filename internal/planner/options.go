package planner

import (
	"database/sql"

	"wayfinder.transit.dev/transitdb"
)

// OptionKind discriminates the variants of Option.
type OptionKind string

const (
	OptionDirect   OptionKind = "DirectRoute"
	OptionTransfer OptionKind = "TransferRoute"
)

// Option is one journey choice, either a DirectRoute or a TransferRoute.
type Option interface {
	OptionKind() OptionKind
}

// RouteRef names the route and pattern a leg rides. Route fields are blank
// when the pattern's route is missing from the route table.
type RouteRef struct {
	PatternID      string
	RouteID        string
	ShortName      string
	LongName       string
	Mode           transitdb.Mode
	Color          string
	Direction      transitdb.Direction
	DirectionLabel string
	Headsign       string
}

type DirectRoute struct {
	RouteRef
	FromSequence int64
	ToSequence   int64
	StopsBetween int64
}

func (DirectRoute) OptionKind() OptionKind { return OptionDirect }

// Leg is one ride of a transfer journey between two pattern positions.
type Leg struct {
	RouteRef
	FromSequence int64
	ToSequence   int64
}

type TransferRoute struct {
	FirstLeg         Leg
	SecondLeg        Leg
	TransferStopID   string
	TransferStopName string
}

func (TransferRoute) OptionKind() OptionKind { return OptionTransfer }

func newRouteRef(patternID, routeID string, direction transitdb.Direction, headsign string, shortName, longName, mode, color sql.NullString) RouteRef {
	return RouteRef{
		PatternID:      patternID,
		RouteID:        routeID,
		ShortName:      shortName.String,
		LongName:       longName.String,
		Mode:           transitdb.Mode(mode.String),
		Color:          color.String,
		Direction:      direction,
		DirectionLabel: direction.Label(),
		Headsign:       headsign,
	}
}
