// Package planner finds journeys between two stops over the direction
// patterns of a dataset: rides on a single pattern, and rides with one
// change between two different routes.
package planner

import (
	"context"
	"fmt"
	"strings"

	"wayfinder.transit.dev/internal/lookup"
	"wayfinder.transit.dev/transitdb"
)

const (
	MaxDirectResults   = 8
	MaxTransferResults = 5
)

type stopResolver interface {
	GetStop(ctx context.Context, id string) (transitdb.Stop, error)
}

// Planner is stateless and safe for concurrent use.
type Planner struct {
	queries *transitdb.Queries
	stops   stopResolver
}

func New(queries *transitdb.Queries) *Planner {
	return &Planner{
		queries: queries,
		stops:   lookup.New(queries),
	}
}

// Kind is the outcome of a plan.
type Kind string

const (
	KindDirect   Kind = "direct"
	KindTransfer Kind = "transfer"
	KindNone     Kind = "none"
)

// Result is the outcome of Plan. Options hold DirectRoute values when Kind
// is KindDirect and TransferRoute values when it is KindTransfer. Reason
// explains an empty result.
type Result struct {
	Kind    Kind
	From    transitdb.Stop
	To      transitdb.Stop
	Options []Option
	Reason  string
}

// Plan resolves both stops, then looks for direct rides and falls back to
// one-change journeys only when there are none. Finding nothing is a
// KindNone result, not an error.
func (p *Planner) Plan(ctx context.Context, fromStopID, toStopID string) (Result, error) {
	from, to, err := p.resolve(ctx, fromStopID, toStopID)
	if err != nil {
		return Result{}, err
	}
	result := Result{From: from, To: to}

	direct, err := p.findDirect(ctx, from.ID, to.ID)
	if err != nil {
		return Result{}, err
	}
	if len(direct) > 0 {
		result.Kind = KindDirect
		for _, d := range direct {
			result.Options = append(result.Options, d)
		}
		return result, nil
	}

	transfers, err := p.findTransfer(ctx, from.ID, to.ID)
	if err != nil {
		return Result{}, err
	}
	if len(transfers) > 0 {
		result.Kind = KindTransfer
		for _, t := range transfers {
			result.Options = append(result.Options, t)
		}
		return result, nil
	}

	result.Kind = KindNone
	result.Options = []Option{}
	result.Reason = fmt.Sprintf("no direct route or single-transfer connection from %s to %s", displayName(from), displayName(to))
	return result, nil
}

// FindDirect lists patterns that call at fromStopID and later at toStopID.
func (p *Planner) FindDirect(ctx context.Context, fromStopID, toStopID string) ([]DirectRoute, error) {
	from, to, err := p.resolve(ctx, fromStopID, toStopID)
	if err != nil {
		return nil, err
	}
	return p.findDirect(ctx, from.ID, to.ID)
}

// FindTransfer lists journeys with one change between different routes.
func (p *Planner) FindTransfer(ctx context.Context, fromStopID, toStopID string) ([]TransferRoute, error) {
	from, to, err := p.resolve(ctx, fromStopID, toStopID)
	if err != nil {
		return nil, err
	}
	return p.findTransfer(ctx, from.ID, to.ID)
}

func (p *Planner) resolve(ctx context.Context, fromStopID, toStopID string) (transitdb.Stop, transitdb.Stop, error) {
	fromStopID = strings.TrimSpace(fromStopID)
	toStopID = strings.TrimSpace(toStopID)

	fieldErrors := make(map[string][]string)
	if fromStopID == "" {
		fieldErrors["from"] = append(fieldErrors["from"], "from stop id is required")
	}
	if toStopID == "" {
		fieldErrors["to"] = append(fieldErrors["to"], "to stop id is required")
	}
	if len(fieldErrors) == 0 && fromStopID == toStopID {
		fieldErrors["to"] = append(fieldErrors["to"], "from and to must be different stops")
	}
	if len(fieldErrors) > 0 {
		return transitdb.Stop{}, transitdb.Stop{}, &lookup.ValidationError{Fields: fieldErrors}
	}

	from, err := p.stops.GetStop(ctx, fromStopID)
	if err != nil {
		return transitdb.Stop{}, transitdb.Stop{}, fmt.Errorf("resolve from stop: %w", err)
	}
	to, err := p.stops.GetStop(ctx, toStopID)
	if err != nil {
		return transitdb.Stop{}, transitdb.Stop{}, fmt.Errorf("resolve to stop: %w", err)
	}
	return from, to, nil
}

func displayName(s transitdb.Stop) string {
	if s.Name == "" {
		return s.ID
	}
	return s.Name
}
