package foundations

import (
	"fmt"
	"math"
)

const safetyFactor = 3.0

type Input struct {
	WidthM           float64 `json:"width_m"`
	CohesionKPA      float64 `json:"cohesion_kpa"`
	FrictionAngleDeg float64 `json:"friction_angle_deg"`
	UnitWeightKNM3   float64 `json:"unit_weight_knm3"`
	DepthM           float64 `json:"depth_m"`
}

type Result struct {
	QUltimateKPA  float64 `json:"q_ultimate_kpa"`
	QAllowableKPA float64 `json:"q_allowable_kpa"`
	SafetyFactor  float64 `json:"safety_factor"`
	Nc            float64 `json:"nc"`
	Nq            float64 `json:"nq"`
	Ngamma        float64 `json:"ngamma"`
}

// Calculate applies Terzaghi's bearing capacity equation for a strip footing:
// q_ult = c·Nc + γ·D·Nq + 0.5·γ·B·Nγ, with FS = 3 for the allowable value.
func Calculate(in Input) (Result, error) {
	if in.WidthM <= 0 || in.DepthM <= 0 {
		return Result{}, fmt.Errorf("invalid footing geometry")
	}

	phi := in.FrictionAngleDeg * math.Pi / 180
	nq := math.Exp(math.Pi*math.Tan(phi)) * math.Pow(math.Tan(math.Pi/4+phi/2), 2)
	nc := 5.14 // cohesive limit for φ = 0
	if in.FrictionAngleDeg > 0 {
		nc = (nq - 1) / math.Tan(phi)
	}
	ngamma := 2 * (nq + 1) * math.Tan(phi)

	qult := in.CohesionKPA*nc + in.UnitWeightKNM3*in.DepthM*nq + 0.5*in.UnitWeightKNM3*in.WidthM*ngamma

	return Result{
		QUltimateKPA:  qult,
		QAllowableKPA: qult / safetyFactor,
		SafetyFactor:  safetyFactor,
		Nc:            nc,
		Nq:            nq,
		Ngamma:        ngamma,
	}, nil
}
