package planner

import (
	"context"
	"fmt"
)

// findDirect keeps the closest from/to pairing of each pattern; the query
// already orders candidates by stops between, route id and direction.
func (p *Planner) findDirect(ctx context.Context, fromStopID, toStopID string) ([]DirectRoute, error) {
	rows, err := p.queries.FindDirectCandidates(ctx, fromStopID, toStopID)
	if err != nil {
		return nil, fmt.Errorf("find direct candidates: %w", err)
	}

	seen := make(map[string]struct{}, len(rows))
	results := make([]DirectRoute, 0, min(len(rows), MaxDirectResults))
	for _, row := range rows {
		if _, ok := seen[row.PatternID]; ok {
			continue
		}
		seen[row.PatternID] = struct{}{}

		results = append(results, DirectRoute{
			RouteRef:     newRouteRef(row.PatternID, row.RouteID, row.Direction, row.Headsign, row.ShortName, row.LongName, row.Mode, row.Color),
			FromSequence: row.FromSequence,
			ToSequence:   row.ToSequence,
			StopsBetween: row.ToSequence - row.FromSequence,
		})
		if len(results) == MaxDirectResults {
			break
		}
	}
	return results, nil
}
