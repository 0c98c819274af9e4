package hydraulics

import (
	"fmt"
	"math"

	"ObraCalc/internal/engine/units"
)

const (
	gravity            = 9.81
	kinematicViscosity = 1.0e-6 // water at 20 °C, m²/s
)

type Input struct {
	DiameterMM  float64 `json:"diameter_mm"`
	LengthM     float64 `json:"length_m"`
	FlowRateLS  float64 `json:"flow_rate_ls"`
	RoughnessMM float64 `json:"roughness_mm"`
}

type Result struct {
	VelocityMS     float64 `json:"velocity_ms"`
	Reynolds       float64 `json:"reynolds"`
	FrictionFactor float64 `json:"friction_factor"`
	HeadLossM      float64 `json:"head_loss_m"`
	FlowRateM3S    float64 `json:"flow_rate_m3s"`
	AreaCM2        float64 `json:"area_cm2"`
}

// Calculate runs a full-bore pressure pipe check: continuity for velocity,
// Swamee–Jain for the friction factor, Darcy–Weisbach for the head loss.
func Calculate(in Input) (Result, error) {
	if in.DiameterMM <= 0 || in.LengthM <= 0 || in.RoughnessMM <= 0 {
		return Result{}, fmt.Errorf("invalid pipe geometry")
	}

	diameter := in.DiameterMM / 1000
	flowRate := in.FlowRateLS / 1000
	roughness := in.RoughnessMM / 1000

	area := math.Pi * math.Pow(in.DiameterMM/2000, 2) // m²
	velocity := flowRate / area
	reynolds := velocity * diameter / kinematicViscosity

	relRoughness := roughness / diameter
	friction := 0.25 / math.Pow(math.Log10(relRoughness/3.7+5.74/math.Pow(reynolds, 0.9)), 2)

	headLoss := friction * (in.LengthM / diameter) * velocity * velocity / (2 * gravity)

	return Result{
		VelocityMS:     velocity,
		Reynolds:       reynolds,
		FrictionFactor: friction,
		HeadLossM:      headLoss,
		FlowRateM3S:    flowRate,
		AreaCM2:        units.Convert(area, units.SquareMeter, units.SquareCentimeter),
	}, nil
}
