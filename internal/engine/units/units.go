// Package units converts engineering magnitudes between units of the same
// physical quantity via a fixed table of direct multiplicative factors.
package units

import "fmt"

type Quantity int

const (
	Length Quantity = iota
	Area
	Force
	Pressure
)

type Unit string

const (
	Meter      Unit = "m"
	Centimeter Unit = "cm"
	Millimeter Unit = "mm"

	SquareMeter      Unit = "m2"
	SquareCentimeter Unit = "cm2"
	Hectare          Unit = "ha"

	Kilonewton Unit = "kN"
	Newton     Unit = "N"

	Megapascal Unit = "MPa"
	Kilopascal Unit = "kPa"
	Pascal     Unit = "Pa"
)

var quantities = map[Unit]Quantity{
	Meter:            Length,
	Centimeter:       Length,
	Millimeter:       Length,
	SquareMeter:      Area,
	SquareCentimeter: Area,
	Hectare:          Area,
	Kilonewton:       Force,
	Newton:           Force,
	Megapascal:       Pressure,
	Kilopascal:       Pressure,
	Pascal:           Pressure,
}

type pair struct {
	from, to Unit
}

// No chained or derived conversions: every supported pair is listed with its
// factor, both directions.
var factors = map[pair]float64{
	{Meter, Centimeter}: 100,
	{Centimeter, Meter}: 0.01,

	{SquareMeter, SquareCentimeter}: 10000,
	{SquareCentimeter, SquareMeter}: 0.0001,
	{SquareMeter, Hectare}:          0.0001,
	{Hectare, SquareMeter}:          10000,

	{Kilonewton, Newton}: 1000,
	{Newton, Kilonewton}: 0.001,

	{Megapascal, Kilopascal}: 1000,
	{Kilopascal, Megapascal}: 0.001,
	{Pascal, Kilopascal}:     0.001,
	{Kilopascal, Pascal}:     1000,
}

func init() {
	for p, f := range factors {
		qf, ok := quantities[p.from]
		qt, ok2 := quantities[p.to]
		if !ok || !ok2 || qf != qt {
			panic(fmt.Sprintf("units: %s->%s crosses quantities", p.from, p.to))
		}
		if _, ok := factors[pair{p.to, p.from}]; !ok {
			panic(fmt.Sprintf("units: %s->%s has no inverse", p.from, p.to))
		}
		if f == 0 {
			panic(fmt.Sprintf("units: %s->%s has zero factor", p.from, p.to))
		}
	}
}

// QuantityOf reports the physical quantity a unit measures.
func QuantityOf(u Unit) (Quantity, bool) {
	q, ok := quantities[u]
	return q, ok
}

// Supported reports whether Convert would actually scale the value.
func Supported(from, to Unit) bool {
	_, ok := factors[pair{from, to}]
	return ok
}

// Convert scales value from one unit to another. Pairs outside the table
// (including from == to) return the value unchanged; callers that need a hard
// failure should check Supported first. The pass-through is long-standing
// behavior that stored calculations depend on.
func Convert(value float64, from, to Unit) float64 {
	if f, ok := factors[pair{from, to}]; ok {
		return value * f
	}
	return value
}
