package concrete

import (
	"fmt"

	"ObraCalc/internal/engine/units"
)

// Simplified rectangular RC beam sizing: lever arm taken as z = 0.9d with a
// 5 cm cover, NBR-style material partial factors.
const (
	cover          = 0.05 // m
	gammaConcrete  = 1.4
	gammaSteel     = 1.15
	minSteelRatio  = 0.0015 // As,min = 0.15% of the gross section
	leverArmFactor = 0.9
)

type Input struct {
	WidthM    float64 `json:"width_m"`
	HeightM   float64 `json:"height_m"`
	MomentKNM float64 `json:"moment_knm"`
	FckMPa    float64 `json:"fck_mpa"`
	FykMPa    float64 `json:"fyk_mpa"`
}

type Result struct {
	AsRequiredMM2    float64 `json:"as_required_mm2"`
	AsMinMM2         float64 `json:"as_min_mm2"`
	AsFinalMM2       float64 `json:"as_final_mm2"`
	SteelRatioPct    float64 `json:"steel_ratio_pct"`
	EffectiveDepthCM float64 `json:"effective_depth_cm"`
	FcdMPa           float64 `json:"fcd_mpa"`
	FydMPa           float64 `json:"fyd_mpa"`
}

func Calculate(in Input) (Result, error) {
	if in.WidthM <= 0 || in.HeightM <= 0 {
		return Result{}, fmt.Errorf("invalid section dimensions")
	}
	d := in.HeightM - cover
	if d <= 0 {
		return Result{}, fmt.Errorf("section too shallow for cover")
	}

	fcd := in.FckMPa / gammaConcrete
	fyd := in.FykMPa / gammaSteel
	z := leverArmFactor * d

	// As = M/(fyd·z): kN·m → N·m, fyd in N/mm², z in m, result in mm².
	asRequired := (in.MomentKNM * 1000) / (fyd * z)
	asMin := minSteelRatio * in.WidthM * in.HeightM * 1e6
	asFinal := asRequired
	if asMin > asFinal {
		asFinal = asMin
	}

	return Result{
		AsRequiredMM2:    asRequired,
		AsMinMM2:         asMin,
		AsFinalMM2:       asFinal,
		SteelRatioPct:    (asFinal / 1e6) / (in.WidthM * d) * 100,
		EffectiveDepthCM: units.Convert(d, units.Meter, units.Centimeter),
		FcdMPa:           fcd,
		FydMPa:           fyd,
	}, nil
}
