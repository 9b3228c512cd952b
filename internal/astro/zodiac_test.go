package astro

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToSign(t *testing.T) {
	cases := []struct {
		lon    float64
		sign   string
		degree float64
	}{
		{0, "Widder", 0},
		{15.5, "Widder", 15.5},
		{29.999999, "Widder", 29.999999},
		{30, "Stier", 0},
		{123.456, "Löwe", 3.456},
		{359.9, "Fische", 29.9},
		{360, "Widder", 0},
		{-10, "Fische", 20},
	}
	for _, c := range cases {
		pos := ToSign(c.lon)
		assert.Equal(t, c.sign, pos.Sign, "lon=%v", c.lon)
		assert.InDelta(t, c.degree, pos.Degree, 1e-6, "lon=%v", c.lon)
		assert.GreaterOrEqual(t, pos.Degree, 0.0)
		assert.Less(t, pos.Degree, 30.0)
	}
}

func TestSignTables(t *testing.T) {
	assert.Len(t, ZodiacSigns, 12)
	assert.Equal(t, "Feuer", ElementOf(0))     // Widder
	assert.Equal(t, "Erde", ElementOf(9))      // Steinbock
	assert.Equal(t, "Luft", ElementOf(6))      // Waage
	assert.Equal(t, "Wasser", ElementOf(3))    // Krebs
	assert.Equal(t, "Kardinal", ModalityOf(0)) // Widder
	assert.Equal(t, "Fix", ModalityOf(4))      // Löwe
	assert.Equal(t, "Veränderlich", ModalityOf(11))
}
