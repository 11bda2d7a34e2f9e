// Package model holds the value types shared across the conversion pipeline.
package model

import "fmt"

// Coordinates is a longitude/latitude pair, in the order the geocoder
// returns it.
type Coordinates struct {
	Lon float64
	Lat float64
}

// Place is a single address record under processing.
type Place struct {
	LineNumber  int    // origin line in its source file, for diagnostics
	Address     string // selected columns joined with ", "
	Name        string // selected columns joined with " "
	Description string // selected columns joined with ", "; empty means absent

	// Coords is nil until the resolver assigns it and stays nil when
	// geocoding misses. Once set it is never overwritten.
	Coords *Coordinates
}

// Resolved reports whether the place has coordinates.
func (p Place) Resolved() bool { return p.Coords != nil }

// String renders the place for dry-run listings.
func (p Place) String() string {
	s := fmt.Sprintf("line %d: name %q address %q", p.LineNumber, p.Name, p.Address)
	if p.Description != "" {
		s += fmt.Sprintf(" desc %q", p.Description)
	}
	return s
}
