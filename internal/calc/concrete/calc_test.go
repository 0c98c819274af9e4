package concrete

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculate(t *testing.T) {
	res, err := Calculate(Input{
		WidthM:    0.20,
		HeightM:   0.50,
		MomentKNM: 100,
		FckMPa:    25,
		FykMPa:    500,
	})
	require.NoError(t, err)

	assert.InDelta(t, 25.0/1.4, res.FcdMPa, 1e-9)
	assert.InDelta(t, 500.0/1.15, res.FydMPa, 1e-9)
	assert.InDelta(t, 45.0, res.EffectiveDepthCM, 1e-9)

	// As = 100·1000 / (434.78 · 0.9·0.45)
	assert.InDelta(t, 567.94, res.AsRequiredMM2, 0.05)
	assert.InDelta(t, 150.0, res.AsMinMM2, 1e-9)
	assert.InDelta(t, res.AsRequiredMM2, res.AsFinalMM2, 1e-9)
	assert.InDelta(t, 0.631, res.SteelRatioPct, 0.001)
}

func TestMinimumSteelGoverns(t *testing.T) {
	res, err := Calculate(Input{
		WidthM:    0.30,
		HeightM:   0.60,
		MomentKNM: 1,
		FckMPa:    30,
		FykMPa:    500,
	})
	require.NoError(t, err)

	// tiny moment: As,min = 0.15% · 30 · 60 cm² = 270 mm² governs
	assert.InDelta(t, 270.0, res.AsMinMM2, 1e-9)
	assert.Equal(t, res.AsMinMM2, res.AsFinalMM2)
	assert.Less(t, res.AsRequiredMM2, res.AsMinMM2)
}

func TestCalculateRejectsBadSection(t *testing.T) {
	_, err := Calculate(Input{WidthM: 0, HeightM: 0.5, MomentKNM: 10, FckMPa: 25, FykMPa: 500})
	assert.Error(t, err)

	// section shallower than the cover has no effective depth
	_, err = Calculate(Input{WidthM: 0.2, HeightM: 0.04, MomentKNM: 10, FckMPa: 25, FykMPa: 500})
	assert.Error(t, err)
}
