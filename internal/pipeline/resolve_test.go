package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/csv2gpx/internal/model"
)

// fakeLookup serves canned candidates or errors per query and records the
// order of queries it receives.
type fakeLookup struct {
	responses map[string][]model.Coordinates
	errs      map[string]error
	queries   []string
}

func (f *fakeLookup) Lookup(_ context.Context, query string) ([]model.Coordinates, error) {
	f.queries = append(f.queries, query)
	if err, ok := f.errs[query]; ok {
		return nil, err
	}
	return f.responses[query], nil
}

func TestResolve_PrimaryQueryWins(t *testing.T) {
	lookup := &fakeLookup{
		responses: map[string][]model.Coordinates{
			"Acme, 123 Main St": {{Lon: 12.34, Lat: 56.78}},
		},
	}
	p := New(Options{}, lookup)

	place := model.Place{LineNumber: 1, Name: "Acme", Address: "123 Main St"}
	p.resolve(context.Background(), &place)

	require.True(t, place.Resolved())
	assert.InDelta(t, 12.34, place.Coords.Lon, 0.0001)
	assert.InDelta(t, 56.78, place.Coords.Lat, 0.0001)
	assert.Equal(t, []string{"Acme, 123 Main St"}, lookup.queries)
}

func TestResolve_FallsBackToAddress(t *testing.T) {
	lookup := &fakeLookup{
		responses: map[string][]model.Coordinates{
			"123 Main St": {{Lon: 1.5, Lat: 2.5}},
		},
	}
	p := New(Options{}, lookup)

	place := model.Place{LineNumber: 1, Name: "Acme", Address: "123 Main St"}
	p.resolve(context.Background(), &place)

	require.True(t, place.Resolved())
	assert.InDelta(t, 1.5, place.Coords.Lon, 0.0001)
	assert.Equal(t, []string{"Acme, 123 Main St", "123 Main St"}, lookup.queries)
}

func TestResolve_ErrorDoesNotBlockFallback(t *testing.T) {
	lookup := &fakeLookup{
		errs: map[string]error{
			"Acme, 123 Main St": errors.New("connection reset"),
		},
		responses: map[string][]model.Coordinates{
			"123 Main St": {{Lon: 1.5, Lat: 2.5}},
		},
	}
	p := New(Options{}, lookup)

	place := model.Place{LineNumber: 1, Name: "Acme", Address: "123 Main St"}
	p.resolve(context.Background(), &place)

	require.True(t, place.Resolved())
	assert.InDelta(t, 1.5, place.Coords.Lon, 0.0001)
}

func TestResolve_BothStagesMiss(t *testing.T) {
	lookup := &fakeLookup{}
	p := New(Options{}, lookup)

	place := model.Place{LineNumber: 7, Name: "Acme", Address: "123 Main St"}
	p.resolve(context.Background(), &place)

	assert.False(t, place.Resolved())
	assert.Equal(t, []string{"Acme, 123 Main St", "123 Main St"}, lookup.queries)
}

func TestResolve_SkipsAlreadyResolved(t *testing.T) {
	lookup := &fakeLookup{}
	p := New(Options{}, lookup)

	coords := model.Coordinates{Lon: 1, Lat: 2}
	place := model.Place{LineNumber: 1, Name: "Acme", Address: "123 Main St", Coords: &coords}
	p.resolve(context.Background(), &place)

	assert.Empty(t, lookup.queries)
	assert.Equal(t, &coords, place.Coords)
}

func TestResolveAll_FailuresDoNotAbort(t *testing.T) {
	lookup := &fakeLookup{
		errs: map[string]error{
			"Lost, 000 Nowhere": errors.New("boom"),
			"000 Nowhere":       errors.New("boom"),
		},
		responses: map[string][]model.Coordinates{
			"Found, 1 Here St": {{Lon: 3, Lat: 4}},
		},
	}
	p := New(Options{}, lookup)
	p.places = []model.Place{
		{LineNumber: 1, Name: "Lost", Address: "000 Nowhere"},
		{LineNumber: 2, Name: "Found", Address: "1 Here St"},
	}

	p.resolveAll(context.Background())

	assert.False(t, p.places[0].Resolved())
	require.True(t, p.places[1].Resolved())
	assert.InDelta(t, 3, p.places[1].Coords.Lon, 0.0001)
}
