package pipeline

import (
	"context"

	"go.uber.org/zap"

	"github.com/sells-group/csv2gpx/internal/model"
)

// resolveAll assigns coordinates to every unresolved place, one place at a
// time in collection order.
func (p *Pipeline) resolveAll(ctx context.Context) {
	for i := range p.places {
		p.resolve(ctx, &p.places[i])
	}
}

// resolve tries "name, address" first and the bare address second, keeping
// the first candidate of whichever stage answers. A lookup error counts as
// a miss for that stage only, so a failing first stage never blocks the
// second.
func (p *Pipeline) resolve(ctx context.Context, place *model.Place) {
	if place.Resolved() {
		return
	}

	queries := []string{
		place.Name + ", " + place.Address,
		place.Address,
	}
	for _, query := range queries {
		candidates, err := p.lookup.Lookup(ctx, query)
		if err != nil {
			zap.L().Warn("pipeline: geocoding failed",
				zap.String("query", query),
				zap.Int("line", place.LineNumber),
				zap.Error(err),
			)
			continue
		}
		if len(candidates) == 0 {
			continue
		}

		coords := candidates[0]
		place.Coords = &coords
		return
	}

	zap.L().Warn("pipeline: could not obtain coordinates",
		zap.String("name", place.Name),
		zap.Int("line", place.LineNumber),
		zap.String("address", place.Address),
	)
}
