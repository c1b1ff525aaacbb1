package patterns

import "wayfinder.transit.dev/transitdb"

// ModeForRouteType maps a GTFS route_type, basic or extended, to a Mode.
// Anything unrecognised is treated as a bus.
func ModeForRouteType(routeType int) transitdb.Mode {
	switch routeType {
	case 0:
		return transitdb.ModeTram
	case 1:
		return transitdb.ModeMetro
	case 2:
		return transitdb.ModeRail
	case 3:
		return transitdb.ModeBus
	case 4:
		return transitdb.ModeFerry
	}

	switch routeType / 100 {
	case 1:
		return transitdb.ModeRail
	case 4:
		return transitdb.ModeMetro
	case 7:
		return transitdb.ModeBus
	case 9:
		return transitdb.ModeTram
	case 10, 12:
		return transitdb.ModeFerry
	}
	return transitdb.ModeBus
}

// KindForLocationType maps a GTFS location_type to a StopKind.
func KindForLocationType(locationType int) transitdb.StopKind {
	if locationType == 1 {
		return transitdb.StopKindStation
	}
	return transitdb.StopKindStop
}
