package engine

import (
	"ObraCalc/internal/calc/beam"
	"ObraCalc/internal/calc/concrete"
	"ObraCalc/internal/calc/foundations"
	"ObraCalc/internal/calc/hydraulics"
	"ObraCalc/internal/calc/topography"
	"ObraCalc/internal/engine/access"
	"ObraCalc/internal/engine/diagram"
	"ObraCalc/internal/engine/units"
	"ObraCalc/internal/engine/validate"
)

// Field bounds mirror the limits the input forms advertise.

func structuralSpec() moduleSpec {
	return moduleSpec{
		module: access.Structural,
		fields: []Field{
			{Name: "span", Kind: NumberField, Bounds: validate.Bounds{Min: validate.Limit(0.1)}, Unit: units.Meter, Target: units.Meter},
			{Name: "load_type", Kind: ChoiceField, Choices: []string{string(beam.LoadUniform), string(beam.LoadPoint)}},
			{Name: "load_value", Kind: NumberField, Bounds: validate.Bounds{Min: validate.Limit(0)}, Unit: units.Kilonewton, Target: units.Kilonewton},
		},
		compute: func(in Inputs) (map[string]float64, map[string]diagram.Series, error) {
			res, err := beam.Calculate(beam.Input{
				SpanM:     in.Number("span"),
				LoadType:  beam.LoadType(in.Choice("load_type")),
				LoadValue: in.Number("load_value"),
			})
			if err != nil {
				return nil, nil, err
			}
			return map[string]float64{
					"moment_max_knm": res.MomentMaxKNM,
					"shear_max_kn":   res.ShearMaxKN,
				}, map[string]diagram.Series{
					"moment": res.MomentDiagram,
					"shear":  res.ShearDiagram,
				}, nil
		},
	}
}

func concreteSpec() moduleSpec {
	return moduleSpec{
		module: access.Concrete,
		fields: []Field{
			{Name: "width", Kind: NumberField, Bounds: validate.Bounds{Min: validate.Limit(1)}, Unit: units.Centimeter, Target: units.Meter},
			{Name: "height", Kind: NumberField, Bounds: validate.Bounds{Min: validate.Limit(1)}, Unit: units.Centimeter, Target: units.Meter},
			{Name: "moment", Kind: NumberField, Bounds: validate.Bounds{Min: validate.Limit(0)}},
			{Name: "fck", Kind: NumberField, Bounds: validate.Bounds{Min: validate.Limit(10), Max: validate.Limit(50)}, Unit: units.Megapascal, Target: units.Megapascal},
			{Name: "fyk", Kind: NumberField, Bounds: validate.Bounds{Min: validate.Limit(250), Max: validate.Limit(600)}, Unit: units.Megapascal, Target: units.Megapascal},
		},
		compute: func(in Inputs) (map[string]float64, map[string]diagram.Series, error) {
			res, err := concrete.Calculate(concrete.Input{
				WidthM:    in.Number("width"),
				HeightM:   in.Number("height"),
				MomentKNM: in.Number("moment"),
				FckMPa:    in.Number("fck"),
				FykMPa:    in.Number("fyk"),
			})
			if err != nil {
				return nil, nil, err
			}
			return map[string]float64{
				"as_required_mm2":    res.AsRequiredMM2,
				"as_min_mm2":         res.AsMinMM2,
				"as_final_mm2":       res.AsFinalMM2,
				"steel_ratio_pct":    res.SteelRatioPct,
				"effective_depth_cm": res.EffectiveDepthCM,
				"fcd_mpa":            res.FcdMPa,
				"fyd_mpa":            res.FydMPa,
			}, nil, nil
		},
	}
}

func hydraulicsSpec() moduleSpec {
	return moduleSpec{
		module: access.Hydraulics,
		fields: []Field{
			{Name: "pipe_diameter", Kind: NumberField, Bounds: validate.Bounds{Min: validate.Limit(10)}, Unit: units.Millimeter, Target: units.Millimeter},
			{Name: "pipe_length", Kind: NumberField, Bounds: validate.Bounds{Min: validate.Limit(0.1)}, Unit: units.Meter, Target: units.Meter},
			{Name: "flow_rate", Kind: NumberField, Bounds: validate.Bounds{Min: validate.Limit(0.1)}},
			{Name: "roughness", Kind: NumberField, Bounds: validate.Bounds{Min: validate.Limit(0.001)}, Unit: units.Millimeter, Target: units.Millimeter},
		},
		compute: func(in Inputs) (map[string]float64, map[string]diagram.Series, error) {
			res, err := hydraulics.Calculate(hydraulics.Input{
				DiameterMM:  in.Number("pipe_diameter"),
				LengthM:     in.Number("pipe_length"),
				FlowRateLS:  in.Number("flow_rate"),
				RoughnessMM: in.Number("roughness"),
			})
			if err != nil {
				return nil, nil, err
			}
			return map[string]float64{
				"velocity_ms":     res.VelocityMS,
				"reynolds":        res.Reynolds,
				"friction_factor": res.FrictionFactor,
				"head_loss_m":     res.HeadLossM,
				"flow_rate_m3s":   res.FlowRateM3S,
				"area_cm2":        res.AreaCM2,
			}, nil, nil
		},
	}
}

func foundationsSpec() moduleSpec {
	return moduleSpec{
		module: access.Foundations,
		fields: []Field{
			{Name: "width", Kind: NumberField, Bounds: validate.Bounds{Min: validate.Limit(0.1)}, Unit: units.Meter, Target: units.Meter},
			{Name: "cohesion", Kind: NumberField, Bounds: validate.Bounds{Min: validate.Limit(0)}, Unit: units.Kilopascal, Target: units.Kilopascal},
			{Name: "friction_angle", Kind: NumberField, Bounds: validate.Bounds{Min: validate.Limit(0), Max: validate.Limit(45)}},
			{Name: "unit_weight", Kind: NumberField, Bounds: validate.Bounds{Min: validate.Limit(10), Max: validate.Limit(25)}},
			{Name: "depth", Kind: NumberField, Bounds: validate.Bounds{Min: validate.Limit(0.5)}, Unit: units.Meter, Target: units.Meter},
		},
		compute: func(in Inputs) (map[string]float64, map[string]diagram.Series, error) {
			res, err := foundations.Calculate(foundations.Input{
				WidthM:           in.Number("width"),
				CohesionKPA:      in.Number("cohesion"),
				FrictionAngleDeg: in.Number("friction_angle"),
				UnitWeightKNM3:   in.Number("unit_weight"),
				DepthM:           in.Number("depth"),
			})
			if err != nil {
				return nil, nil, err
			}
			return map[string]float64{
				"q_ultimate_kpa":  res.QUltimateKPA,
				"q_allowable_kpa": res.QAllowableKPA,
				"safety_factor":   res.SafetyFactor,
				"nc":              res.Nc,
				"nq":              res.Nq,
				"ngamma":          res.Ngamma,
			}, nil, nil
		},
	}
}

func topographySpec() moduleSpec {
	return moduleSpec{
		module: access.Topography,
		fields: []Field{
			{Name: "coordinates", Kind: CoordinatesField},
		},
		compute: func(in Inputs) (map[string]float64, map[string]diagram.Series, error) {
			res, err := topography.Calculate(topography.Input{Coordinates: in.Coords("coordinates")})
			if err != nil {
				return nil, nil, err
			}
			return map[string]float64{
				"area_m2":      res.AreaM2,
				"area_ha":      res.AreaHA,
				"perimeter_m":  res.PerimeterM,
				"num_vertices": float64(res.NumVertices),
			}, nil, nil
		},
	}
}
