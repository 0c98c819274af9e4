package engine

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ObraCalc/internal/engine/access"
	"ObraCalc/internal/engine/diagram"
)

func TestRunStructuralUniform(t *testing.T) {
	e := New()
	rec, err := e.Run(access.Structural, access.Pro, "Viga VE-01", map[string]string{
		"span":       "10",
		"load_type":  "uniform",
		"load_value": "5",
	})
	require.NoError(t, err)
	require.NotNil(t, rec)

	assert.Equal(t, access.Structural, rec.Module)
	assert.Equal(t, "Viga VE-01", rec.Name)
	assert.NotZero(t, rec.ID)
	assert.False(t, rec.CreatedAt.IsZero())

	assert.InDelta(t, 62.5, rec.Values["moment_max_knm"], 1e-9)
	assert.InDelta(t, 25.0, rec.Values["shear_max_kn"], 1e-9)

	moment := rec.Diagrams["moment"]
	require.Len(t, moment, 51)
	assert.InDelta(t, 62.5, moment[25].Y, 1e-9) // M(5) = 5·5·5/2

	shear := rec.Diagrams["shear"]
	require.Len(t, shear, 2)
	assert.Equal(t, diagram.Point{X: 0, Y: 25}, shear[0])
	assert.Equal(t, diagram.Point{X: 10, Y: -25}, shear[1])

	assert.Equal(t, "10", rec.Inputs["span"].Raw)
	assert.Equal(t, "uniform", rec.Inputs["load_type"].Raw)
}

func TestRunAcceptsLocaleDecimals(t *testing.T) {
	e := New()
	rec, err := e.Run(access.Structural, access.Free, "Viga", map[string]string{
		"span":       "2,5",
		"load_type":  "point",
		"load_value": "10",
	})
	require.NoError(t, err)
	// M_max = PL/4
	assert.InDelta(t, 6.25, rec.Values["moment_max_knm"], 1e-9)
}

func TestRunConvertsInputUnits(t *testing.T) {
	e := New()
	// width/height entered in cm, formula works in m
	rec, err := e.Run(access.Concrete, access.Pro, "Viga V1", map[string]string{
		"width":  "20",
		"height": "50",
		"moment": "100",
		"fck":    "25",
		"fyk":    "500",
	})
	require.NoError(t, err)
	assert.InDelta(t, 45.0, rec.Values["effective_depth_cm"], 1e-9)
	assert.InDelta(t, 150.0, rec.Values["as_min_mm2"], 1e-9)
}

func TestRunDeniesFreeTierOnProModule(t *testing.T) {
	e := New()

	// instrument the compute step to prove denial happens before it
	called := false
	spec := e.specs[access.Foundations]
	origCompute := spec.compute
	spec.compute = func(in Inputs) (map[string]float64, map[string]diagram.Series, error) {
		called = true
		return origCompute(in)
	}
	e.specs[access.Foundations] = spec

	rec, err := e.Run(access.Foundations, access.Free, "Sapata S1", map[string]string{
		"width":          "2",
		"cohesion":       "10",
		"friction_angle": "30",
		"unit_weight":    "18",
		"depth":          "1",
	})
	require.Error(t, err)
	assert.Nil(t, rec)
	assert.False(t, called, "compute must not run on access denial")

	var accessErr *AccessError
	require.True(t, errors.As(err, &accessErr))
	assert.Equal(t, access.Foundations, accessErr.Module)
	assert.Equal(t, access.Pro, accessErr.Required)
	assert.Contains(t, accessErr.Error(), "Profissional")
}

func TestRunValidatesFieldsInDeclarationOrder(t *testing.T) {
	e := New()
	// both span and load_value are invalid; span is declared first
	_, err := e.Run(access.Structural, access.Pro, "Viga", map[string]string{
		"span":       "abc",
		"load_type":  "uniform",
		"load_value": "-1",
	})
	require.Error(t, err)

	var valErr *ValidationError
	require.True(t, errors.As(err, &valErr))
	assert.Equal(t, "span", valErr.Field)
	assert.Equal(t, "Valor deve ser numérico", valErr.Reason)
}

func TestRunRejectsMissingField(t *testing.T) {
	e := New()
	_, err := e.Run(access.Structural, access.Pro, "Viga", map[string]string{
		"span":      "10",
		"load_type": "uniform",
	})
	var valErr *ValidationError
	require.True(t, errors.As(err, &valErr))
	assert.Equal(t, "load_value", valErr.Field)
	assert.Equal(t, "Campo obrigatório", valErr.Reason)
}

func TestRunRejectsBadChoice(t *testing.T) {
	e := New()
	_, err := e.Run(access.Structural, access.Pro, "Viga", map[string]string{
		"span":       "10",
		"load_type":  "torsion",
		"load_value": "5",
	})
	var valErr *ValidationError
	require.True(t, errors.As(err, &valErr))
	assert.Equal(t, "load_type", valErr.Field)
}

func TestRunRejectsOutOfRange(t *testing.T) {
	e := New()
	_, err := e.Run(access.Concrete, access.Pro, "Viga", map[string]string{
		"width":  "20",
		"height": "50",
		"moment": "100",
		"fck":    "80", // above the 50 MPa cap
		"fyk":    "500",
	})
	var valErr *ValidationError
	require.True(t, errors.As(err, &valErr))
	assert.Equal(t, "fck", valErr.Field)
	assert.Equal(t, "Valor deve ser menor que 50", valErr.Reason)
}

func TestRunUnknownModule(t *testing.T) {
	e := New()
	_, err := e.Run(access.Module("astrology"), access.Pro, "x", nil)
	var inputErr *InputError
	require.True(t, errors.As(err, &inputErr))
}

func TestRunTopography(t *testing.T) {
	e := New()
	rec, err := e.Run(access.Topography, access.Pro, "Terreno", map[string]string{
		"coordinates": "0,0\n20,0\n20,10\n0,10",
	})
	require.NoError(t, err)
	assert.InDelta(t, 200.0, rec.Values["area_m2"], 1e-9)
	assert.InDelta(t, 0.02, rec.Values["area_ha"], 1e-12)
	assert.InDelta(t, 60.0, rec.Values["perimeter_m"], 1e-9)
	assert.Equal(t, 4.0, rec.Values["num_vertices"])
	assert.Empty(t, rec.Diagrams)
}

func TestRunHydraulicsExposesAreaInCM2(t *testing.T) {
	e := New()
	rec, err := e.Run(access.Hydraulics, access.Free, "Rede", map[string]string{
		"pipe_diameter": "100",
		"pipe_length":   "50",
		"flow_rate":     "10",
		"roughness":     "0.1",
	})
	require.NoError(t, err)
	assert.InDelta(t, 78.54, rec.Values["area_cm2"], 0.01)
}

func TestRunFormulaPreconditionBecomesInputError(t *testing.T) {
	e := New()
	// passes field validation (height >= 1 cm) but is shallower than the cover
	_, err := e.Run(access.Concrete, access.Pro, "Viga", map[string]string{
		"width":  "20",
		"height": "4",
		"moment": "10",
		"fck":    "25",
		"fyk":    "500",
	})
	var inputErr *InputError
	require.True(t, errors.As(err, &inputErr))
}
