package planner

import (
	"context"
	"fmt"

	"wayfinder.transit.dev/transitdb"
)

type transferKey struct {
	firstPattern  string
	secondPattern string
	stopID        string
}

// findTransfer intersects the stops reachable from the origin with the stops
// that reach the destination. Pairs are emitted in discovery order and the
// search stops at MaxTransferResults; no attempt is made to rank them.
func (p *Planner) findTransfer(ctx context.Context, fromStopID, toStopID string) ([]TransferRoute, error) {
	outbound, err := p.queries.ListStopsReachableFrom(ctx, fromStopID)
	if err != nil {
		return nil, fmt.Errorf("list stops reachable from %s: %w", fromStopID, err)
	}
	if len(outbound) == 0 {
		return []TransferRoute{}, nil
	}

	inbound, err := p.queries.ListStopsReaching(ctx, toStopID)
	if err != nil {
		return nil, fmt.Errorf("list stops reaching %s: %w", toStopID, err)
	}

	reaching := make(map[string][]transitdb.ReachRow, len(inbound))
	for _, row := range inbound {
		reaching[row.StopID] = append(reaching[row.StopID], row)
	}

	seen := make(map[transferKey]struct{})
	results := make([]TransferRoute, 0, MaxTransferResults)
	for _, first := range outbound {
		if first.StopID == fromStopID || first.StopID == toStopID {
			continue
		}
		for _, second := range reaching[first.StopID] {
			if second.RouteID == first.RouteID {
				continue
			}
			key := transferKey{firstPattern: first.PatternID, secondPattern: second.PatternID, stopID: first.StopID}
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}

			results = append(results, TransferRoute{
				FirstLeg: Leg{
					RouteRef:     newRouteRef(first.PatternID, first.RouteID, first.Direction, first.Headsign, first.ShortName, first.LongName, first.Mode, first.Color),
					FromSequence: first.AnchorSequence,
					ToSequence:   first.StopSequence,
				},
				SecondLeg: Leg{
					RouteRef:     newRouteRef(second.PatternID, second.RouteID, second.Direction, second.Headsign, second.ShortName, second.LongName, second.Mode, second.Color),
					FromSequence: second.StopSequence,
					ToSequence:   second.AnchorSequence,
				},
				TransferStopID:   first.StopID,
				TransferStopName: first.StopName.String,
			})
			if len(results) == MaxTransferResults {
				return results, nil
			}
		}
	}
	return results, nil
}
