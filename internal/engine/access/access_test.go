package access

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFreeTierCoversOnlyFreeModules(t *testing.T) {
	assert.True(t, CanAccess(Free, Structural))
	assert.True(t, CanAccess(Free, Hydraulics))
	assert.False(t, CanAccess(Free, Concrete))
	assert.False(t, CanAccess(Free, Foundations))
	assert.False(t, CanAccess(Free, Topography))
}

func TestProTierCoversEverything(t *testing.T) {
	for _, m := range []Module{Structural, Concrete, Hydraulics, Foundations, Topography} {
		assert.True(t, CanAccess(Pro, m), "module %s", m)
	}
}

func TestUnknownModule(t *testing.T) {
	assert.False(t, CanAccess(Pro, Module("astrology")))
	_, ok := Required(Module("astrology"))
	assert.False(t, ok)
}

func TestDeniedMessageNamesRequiredPlan(t *testing.T) {
	msg := DeniedMessage(Foundations)
	assert.Contains(t, msg, "Profissional")
	assert.Contains(t, msg, "upgrade")
}

func TestParseTier(t *testing.T) {
	tier, err := ParseTier("pro")
	require.NoError(t, err)
	assert.Equal(t, Pro, tier)

	tier, err = ParseTier("free")
	require.NoError(t, err)
	assert.Equal(t, Free, tier)

	_, err = ParseTier("platinum")
	assert.Error(t, err)
}

func TestTierOrdering(t *testing.T) {
	assert.Less(t, int(Free), int(Pro))
}
