package geo

// Conversion factors from square meters. Exported documents depend on these
// exact values.
const (
	SquareFeetPerSquareMeter  = 10.764
	SquareYardsPerSquareMeter = 1.196
	AcresPerSquareMeter       = 0.000247105
)

// Units is an area expressed in the units shown to the user and exported.
type Units struct {
	SquareFeet  float64 `json:"squareFeet" yaml:"squareFeet"`
	SquareYards float64 `json:"squareYards" yaml:"squareYards"`
	Acres       float64 `json:"acres" yaml:"acres"`
}

// ConvertUnits derives Units from an area in square meters without rounding.
func ConvertUnits(squareMeters float64) Units {
	return Units{
		SquareFeet:  squareMeters * SquareFeetPerSquareMeter,
		SquareYards: squareMeters * SquareYardsPerSquareMeter,
		Acres:       squareMeters * AcresPerSquareMeter,
	}
}
