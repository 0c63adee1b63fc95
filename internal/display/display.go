// Package display formats area values for people.
package display

import (
	"fmt"
	"strings"

	"github.com/woozymasta/landarea/internal/geo"

	"github.com/dustin/go-humanize"
)

// Formatted holds the rounded strings shown next to the map.
type Formatted struct {
	SquareFeet  string `json:"squareFeet"`
	SquareYards string `json:"squareYards"`
	Acres       string `json:"acres"`
}

// Format rounds feet and yards to 2 decimals and acres to 4.
func Format(u geo.Units) Formatted {
	return Formatted{
		SquareFeet:  humanize.FormatFloat("#,###.##", u.SquareFeet) + " sq ft",
		SquareYards: humanize.FormatFloat("#,###.##", u.SquareYards) + " sq yards",
		Acres:       humanize.FormatFloat("#,###.####", u.Acres) + " acres",
	}
}

// Block renders the multi-line area panel.
func Block(u geo.Units) string {
	f := Format(u)

	var b strings.Builder
	fmt.Fprintln(&b, "Area:")
	fmt.Fprintln(&b, f.SquareFeet)
	fmt.Fprintln(&b, f.SquareYards)
	fmt.Fprintln(&b, f.Acres)
	return b.String()
}
