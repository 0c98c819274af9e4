package units

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertFactors(t *testing.T) {
	cases := []struct {
		from, to Unit
		in, want float64
	}{
		{Meter, Centimeter, 2.5, 250},
		{Centimeter, Meter, 250, 2.5},
		{SquareMeter, SquareCentimeter, 3, 30000},
		{SquareCentimeter, SquareMeter, 30000, 3},
		{SquareMeter, Hectare, 50000, 5},
		{Hectare, SquareMeter, 5, 50000},
		{Kilonewton, Newton, 1.2, 1200},
		{Newton, Kilonewton, 1200, 1.2},
		{Megapascal, Kilopascal, 0.5, 500},
		{Kilopascal, Megapascal, 500, 0.5},
		{Pascal, Kilopascal, 1500, 1.5},
		{Kilopascal, Pascal, 1.5, 1500},
	}
	for _, c := range cases {
		assert.InDelta(t, c.want, Convert(c.in, c.from, c.to), 1e-9, "%s->%s", c.from, c.to)
	}
}

func TestConvertRoundTrips(t *testing.T) {
	pairs := [][2]Unit{
		{Meter, Centimeter},
		{SquareMeter, SquareCentimeter},
		{SquareMeter, Hectare},
		{Kilonewton, Newton},
		{Megapascal, Kilopascal},
		{Pascal, Kilopascal},
	}
	for _, p := range pairs {
		v := 123.456
		got := Convert(Convert(v, p[0], p[1]), p[1], p[0])
		assert.InDelta(t, v, got, 1e-9, "%s<->%s", p[0], p[1])
	}
}

// Pairs outside the table pass the value through unchanged. Intentional, see
// the Convert doc comment.
func TestConvertUnsupportedPairIsNoOp(t *testing.T) {
	assert.Equal(t, 7.0, Convert(7, Millimeter, Meter))
	assert.Equal(t, 7.0, Convert(7, Meter, Kilonewton))
	assert.Equal(t, 7.0, Convert(7, Meter, Meter))
	assert.Equal(t, 7.0, Convert(7, Unit("furlong"), Meter))
}

func TestSupported(t *testing.T) {
	assert.True(t, Supported(Meter, Centimeter))
	assert.True(t, Supported(Kilopascal, Pascal))
	assert.False(t, Supported(Millimeter, Meter))
	assert.False(t, Supported(Meter, Meter))
	assert.False(t, Supported(Meter, Kilonewton))
}

func TestQuantityOf(t *testing.T) {
	q, ok := QuantityOf(Millimeter)
	require.True(t, ok)
	assert.Equal(t, Length, q)

	q, ok = QuantityOf(Hectare)
	require.True(t, ok)
	assert.Equal(t, Area, q)

	_, ok = QuantityOf(Unit("furlong"))
	assert.False(t, ok)
}
