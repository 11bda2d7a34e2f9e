// Package pipeline sequences extraction, geocoding, and GPX serialization.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/sells-group/csv2gpx/internal/extract"
	"github.com/sells-group/csv2gpx/internal/gpx"
	"github.com/sells-group/csv2gpx/internal/model"
	"github.com/sells-group/csv2gpx/pkg/geocode"
)

// Options is the immutable run configuration handed in by the CLI.
// Column indices are 1-based.
type Options struct {
	Files          []string
	Outfile        string
	AddressCols    []int
	NameCols       []int
	DescCols       []int
	SkipFirstLines int
	DryRun         bool
	Verbose        bool
}

// Pipeline converts CSV address files into a GPX waypoint document.
type Pipeline struct {
	opts   Options
	lookup geocode.Client
	out    io.Writer
	places []model.Place
}

// New creates a Pipeline with the given options and lookup client.
func New(opts Options, lookup geocode.Client) *Pipeline {
	return &Pipeline{
		opts:   opts,
		lookup: lookup,
		out:    os.Stdout,
	}
}

// SetOutput redirects the dry-run place listing, mainly for tests.
func (p *Pipeline) SetOutput(w io.Writer) {
	p.out = w
}

// Run executes the pipeline: extract all files, stop after printing when
// dry-run, otherwise resolve coordinates and write the GPX file. Per-place
// geocoding failures never fail the run; only file I/O errors do.
func (p *Pipeline) Run(ctx context.Context) error {
	log := zap.L()
	log.Debug("pipeline: reading input files", zap.Int("files", len(p.opts.Files)))

	extractOpts := extract.Options{
		AddressCols:    p.opts.AddressCols,
		NameCols:       p.opts.NameCols,
		DescCols:       p.opts.DescCols,
		SkipFirstLines: p.opts.SkipFirstLines,
	}
	for _, file := range p.opts.Files {
		places, err := extract.FromFile(file, extractOpts)
		if err != nil {
			return err
		}
		p.places = append(p.places, places...)
	}

	if p.opts.DryRun {
		for _, place := range p.places {
			fmt.Fprintln(p.out, place)
		}
		return nil
	}
	if p.opts.Verbose {
		for _, place := range p.places {
			log.Debug("pipeline: parsed place",
				zap.Int("line", place.LineNumber),
				zap.String("name", place.Name),
				zap.String("address", place.Address),
			)
		}
	}

	log.Debug("pipeline: resolving coordinates", zap.Int("places", len(p.places)))
	p.resolveAll(ctx)

	log.Debug("pipeline: writing gpx", zap.String("outfile", p.opts.Outfile))
	return gpx.WriteFile(p.opts.Outfile, p.places)
}
