// Package gpx renders resolved places as a GPX 1.1 waypoint document.
package gpx

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/csv2gpx/internal/model"
)

const (
	header  = "<?xml version=\"1.0\" encoding=\"UTF-8\" standalone=\"yes\"?>\n<gpx version=\"1.1\">\n"
	trailer = "</gpx>\n"
)

// escaper rewrites the five XML-reserved characters into named entities.
// Apostrophe and double quote are escaped even in character data so the
// output stays uniform between attributes and elements.
var escaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	"'", "&apos;",
	`"`, "&quot;",
)

// Escape returns text with XML-reserved characters replaced by entities.
func Escape(text string) string {
	return escaper.Replace(text)
}

// Write renders all resolved places as GPX waypoints. Places without
// coordinates are omitted; a place with no description gets no desc
// element.
func Write(w io.Writer, places []model.Place) error {
	bw := bufio.NewWriter(w)

	if _, err := bw.WriteString(header); err != nil {
		return eris.Wrap(err, "gpx: write header")
	}

	for _, place := range places {
		if !place.Resolved() {
			// geocoding missed; leaving the waypoint out is intentional
			continue
		}

		fmt.Fprintf(bw, "  <wpt lon=\"%s\" lat=\"%s\">\n    <name>%s</name>\n",
			formatCoord(place.Coords.Lon), formatCoord(place.Coords.Lat), Escape(place.Name))
		if place.Description != "" {
			fmt.Fprintf(bw, "    <desc>%s</desc>\n", Escape(place.Description))
		}
		if _, err := bw.WriteString("  </wpt>\n"); err != nil {
			return eris.Wrap(err, "gpx: write waypoint")
		}
	}

	if _, err := bw.WriteString(trailer); err != nil {
		return eris.Wrap(err, "gpx: write trailer")
	}
	if err := bw.Flush(); err != nil {
		return eris.Wrap(err, "gpx: flush")
	}
	return nil
}

// WriteFile writes the GPX document to path, creating or truncating it.
func WriteFile(path string, places []model.Place) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "gpx: create %s", path)
	}

	if err := Write(f, places); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return eris.Wrapf(err, "gpx: close %s", path)
	}
	return nil
}

// formatCoord renders a coordinate as a plain decimal with no trailing
// zeros and no exponent, keeping it a valid xsd:decimal.
func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
