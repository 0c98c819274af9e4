package foundations

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculate(t *testing.T) {
	res, err := Calculate(Input{
		WidthM:           2,
		CohesionKPA:      10,
		FrictionAngleDeg: 30,
		UnitWeightKNM3:   18,
		DepthM:           1,
	})
	require.NoError(t, err)

	assert.InDelta(t, 18.40, res.Nq, 0.01)
	assert.InDelta(t, 30.14, res.Nc, 0.01)
	assert.InDelta(t, 22.40, res.Ngamma, 0.01)

	// q_ult = c·Nc + γ·D·Nq + 0.5·γ·B·Nγ
	assert.InDelta(t, 1035.8, res.QUltimateKPA, 0.5)
	assert.InDelta(t, res.QUltimateKPA/3, res.QAllowableKPA, 1e-9)
	assert.Equal(t, 3.0, res.SafetyFactor)
}

func TestPurelyCohesiveSoil(t *testing.T) {
	res, err := Calculate(Input{
		WidthM:           1.5,
		CohesionKPA:      50,
		FrictionAngleDeg: 0,
		UnitWeightKNM3:   17,
		DepthM:           1,
	})
	require.NoError(t, err)

	// φ = 0: Nc = 5.14, Nq = 1, Nγ = 0
	assert.InDelta(t, 5.14, res.Nc, 1e-9)
	assert.InDelta(t, 1.0, res.Nq, 1e-9)
	assert.InDelta(t, 0.0, res.Ngamma, 1e-9)
	assert.InDelta(t, 50*5.14+17*1, res.QUltimateKPA, 1e-6)
}

func TestCalculateRejectsBadGeometry(t *testing.T) {
	_, err := Calculate(Input{WidthM: 0, CohesionKPA: 10, FrictionAngleDeg: 30, UnitWeightKNM3: 18, DepthM: 1})
	assert.Error(t, err)

	_, err = Calculate(Input{WidthM: 2, CohesionKPA: 10, FrictionAngleDeg: 30, UnitWeightKNM3: 18, DepthM: 0})
	assert.Error(t, err)
}
