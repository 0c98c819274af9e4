package beam

import (
	"fmt"

	"ObraCalc/internal/engine/diagram"
)

type LoadType string

const (
	LoadUniform LoadType = "uniform" // w in kN/m over the whole span
	LoadPoint   LoadType = "point"   // P in kN at midspan
)

// shearStepOffset keeps the shear jump representable as two samples either
// side of midspan instead of an undefined value exactly at the load.
const shearStepOffset = 0.01

type Input struct {
	SpanM     float64  `json:"span_m"`
	LoadType  LoadType `json:"load_type"`
	LoadValue float64  `json:"load_value"`
}

type Result struct {
	MomentMaxKNM  float64        `json:"moment_max_knm"`
	ShearMaxKN    float64        `json:"shear_max_kn"`
	MomentDiagram diagram.Series `json:"moment_diagram"`
	ShearDiagram  diagram.Series `json:"shear_diagram"`
}

// MomentAt evaluates the bending moment at position x for a simply supported
// beam. Assumes validated input (span > 0, load >= 0, 0 <= x <= span).
func MomentAt(in Input, x float64) float64 {
	switch in.LoadType {
	case LoadPoint:
		if x <= in.SpanM/2 {
			return in.LoadValue * x / 2
		}
		return in.LoadValue * (in.SpanM - x) / 2
	default:
		return in.LoadValue * x * (in.SpanM - x) / 2
	}
}

func Calculate(in Input) (Result, error) {
	if in.SpanM <= 0 {
		return Result{}, fmt.Errorf("invalid span")
	}
	if in.LoadType != LoadUniform && in.LoadType != LoadPoint {
		return Result{}, fmt.Errorf("invalid load type")
	}

	var res Result
	switch in.LoadType {
	case LoadUniform:
		// M_max = wL²/8, V_max = wL/2
		res.MomentMaxKNM = in.LoadValue * in.SpanM * in.SpanM / 8
		res.ShearMaxKN = in.LoadValue * in.SpanM / 2
	case LoadPoint:
		// M_max = PL/4, V_max = P/2
		res.MomentMaxKNM = in.LoadValue * in.SpanM / 4
		res.ShearMaxKN = in.LoadValue / 2
	}

	moment, err := diagram.Sample(in.SpanM, diagram.DefaultPoints, func(x float64) float64 {
		return MomentAt(in, x)
	})
	if err != nil {
		return Result{}, err
	}
	res.MomentDiagram = moment

	shear, err := shearDiagram(in)
	if err != nil {
		return Result{}, err
	}
	res.ShearDiagram = shear

	return res, nil
}

// shearDiagram lists the breakpoints of the piecewise-constant shear force.
// Both load cases are flat between supports, so the series carries only the
// points that define the steps.
func shearDiagram(in Input) (diagram.Series, error) {
	l := in.SpanM
	switch in.LoadType {
	case LoadPoint:
		v := in.LoadValue / 2
		return diagram.Steps(
			diagram.Point{X: 0, Y: v},
			diagram.Point{X: l/2 - shearStepOffset, Y: v},
			diagram.Point{X: l/2 + shearStepOffset, Y: -v},
			diagram.Point{X: l, Y: -v},
		)
	default:
		v := in.LoadValue * l / 2
		return diagram.Steps(
			diagram.Point{X: 0, Y: v},
			diagram.Point{X: l, Y: -v},
		)
	}
}
