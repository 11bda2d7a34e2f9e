// Package extract parses delimited address files into places.
package extract

import (
	"encoding/csv"
	"io"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/csv2gpx/internal/model"
)

// Options control column selection and line skipping. Column indices are
// 1-based, the way the user supplies them on the command line.
type Options struct {
	AddressCols    []int // columns joined with ", " into the address
	NameCols       []int // columns joined with " " into the name
	DescCols       []int // columns joined with ", " into the description
	SkipFirstLines int   // discard records starting on line <= N
}

// FromFile reads one CSV file and returns its validated places.
func FromFile(path string, opts Options) ([]model.Place, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "extract: open %s", path)
	}
	defer f.Close() //nolint:errcheck

	places, err := FromReader(f, opts)
	if err != nil {
		return nil, eris.Wrapf(err, "extract: read %s", path)
	}
	return places, nil
}

// FromReader parses places from an already-decoded CSV stream in a single
// pass. Records missing a name or address are logged and dropped; blank
// lines never produce a record. Line numbers are physical source lines,
// so skipped and blank lines still advance the count.
func FromReader(r io.Reader, opts Options) ([]model.Place, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // allow variable fields
	reader.TrimLeadingSpace = true
	reader.LazyQuotes = true

	var places []model.Place
	for {
		record, err := reader.Read()
		if err == io.EOF {
			return places, nil
		}
		if err != nil {
			return nil, eris.Wrap(err, "extract: read record")
		}

		line, _ := reader.FieldPos(0)
		if line <= opts.SkipFirstLines {
			continue
		}

		place, ok := placeFromRecord(record, line, opts)
		if !ok {
			continue
		}
		places = append(places, place)
	}
}

// placeFromRecord builds a Place from one CSV record. It returns false for
// records that lack a name or an address; the rejection is logged with the
// source line so a bad row never aborts the run.
func placeFromRecord(record []string, line int, opts Options) (model.Place, bool) {
	addr := selectColumns(record, opts.AddressCols, ", ")
	name := selectColumns(record, opts.NameCols, " ")
	desc := selectColumns(record, opts.DescCols, ", ")

	if name == "" || addr == "" {
		zap.L().Warn("extract: skipping place without name or address",
			zap.Int("line", line),
			zap.String("name", name),
			zap.String("address", addr),
		)
		return model.Place{}, false
	}

	return model.Place{
		LineNumber:  line,
		Address:     addr,
		Name:        name,
		Description: desc,
	}, true
}

// selectColumns joins a subset of record columns with sep. Indices are
// 1-based and taken in the order given; the first index past the end of
// the record stops the subset. A short row yields fewer parts, not an
// error. The separator is only inserted once something has accumulated,
// so empty leading columns never produce a dangling separator and a
// subset of all-empty columns stays empty.
func selectColumns(record []string, cols []int, sep string) string {
	var b strings.Builder
	for _, col := range cols {
		idx := col - 1
		if idx < 0 || idx >= len(record) {
			break
		}
		if b.Len() > 0 {
			b.WriteString(sep)
		}
		b.WriteString(record[idx])
	}
	return b.String()
}
