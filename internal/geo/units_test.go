package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConvertUnits(t *testing.T) {
	t.Parallel()

	u := ConvertUnits(100)
	assert.InDelta(t, 1076.4, u.SquareFeet, 1e-9)
	assert.InDelta(t, 119.6, u.SquareYards, 1e-9)
	assert.InDelta(t, 0.0247105, u.Acres, 1e-12)
}

func TestConvertUnitsZero(t *testing.T) {
	t.Parallel()

	assert.Equal(t, Units{}, ConvertUnits(0))
}
