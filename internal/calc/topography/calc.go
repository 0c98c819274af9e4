package topography

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"ObraCalc/internal/engine/units"
)

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type Input struct {
	Coordinates []Point `json:"coordinates"`
}

type Result struct {
	AreaM2      float64 `json:"area_m2"`
	AreaHA      float64 `json:"area_ha"`
	PerimeterM  float64 `json:"perimeter_m"`
	NumVertices int     `json:"num_vertices"`
}

// ParseCoordinates reads one "x,y" pair per line, blank lines ignored.
func ParseCoordinates(raw string) ([]Point, error) {
	var pts []Point
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		var p Point
		if _, err := fmt.Sscanf(line, "%f,%f", &p.X, &p.Y); err != nil {
			return nil, errors.New("Formato de coordenadas inválido. Use: x,y por linha")
		}
		pts = append(pts, p)
	}
	return pts, nil
}

// Calculate closes the polygon and returns its shoelace area and perimeter.
func Calculate(in Input) (Result, error) {
	n := len(in.Coordinates)
	if n < 3 {
		return Result{}, errors.New("Pelo menos 3 pontos são necessários")
	}

	var area, perimeter float64
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		area += in.Coordinates[i].X * in.Coordinates[j].Y
		area -= in.Coordinates[j].X * in.Coordinates[i].Y
		dx := in.Coordinates[j].X - in.Coordinates[i].X
		dy := in.Coordinates[j].Y - in.Coordinates[i].Y
		perimeter += math.Hypot(dx, dy)
	}
	area = math.Abs(area) / 2

	return Result{
		AreaM2:      area,
		AreaHA:      units.Convert(area, units.SquareMeter, units.Hectare),
		PerimeterM:  perimeter,
		NumVertices: n,
	}, nil
}
