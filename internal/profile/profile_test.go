package profile

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ObraCalc/internal/engine/access"
	"ObraCalc/internal/repo"
)

var now = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func ts(d time.Duration) *time.Time {
	t := now.Add(d)
	return &t
}

func TestEffectiveTier(t *testing.T) {
	cases := []struct {
		name string
		p    repo.Profile
		want access.Tier
	}{
		{"active trial", repo.Profile{Plan: "trial", TrialExpires: ts(3 * 24 * time.Hour)}, access.Pro},
		{"expired trial", repo.Profile{Plan: "trial", TrialExpires: ts(-time.Hour)}, access.Free},
		{"trial without expiry", repo.Profile{Plan: "trial"}, access.Free},
		{"active pro", repo.Profile{Plan: "pro", PlanExpires: ts(20 * 24 * time.Hour)}, access.Pro},
		{"expired pro", repo.Profile{Plan: "pro", PlanExpires: ts(-time.Minute)}, access.Free},
		{"free", repo.Profile{Plan: "free"}, access.Free},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, EffectiveTier(tc.p, now))
		})
	}
}

func TestStatusTrial(t *testing.T) {
	p := repo.Profile{Plan: "trial", TrialExpires: ts(5*24*time.Hour + time.Hour)}
	st := Status(p, now)
	assert.Equal(t, "trial", st.Type)
	assert.Equal(t, "Teste Grátis", st.Name)
	require.NotNil(t, st.DaysRemaining)
	assert.Equal(t, 5, *st.DaysRemaining)
	assert.True(t, st.HasFullAccess)
}

func TestStatusPro(t *testing.T) {
	p := repo.Profile{Plan: "pro", PlanExpires: ts(30 * 24 * time.Hour)}
	st := Status(p, now)
	assert.Equal(t, "pro", st.Type)
	assert.Equal(t, "Profissional", st.Name)
	require.NotNil(t, st.DaysRemaining)
	assert.Equal(t, 30, *st.DaysRemaining)
	assert.True(t, st.HasFullAccess)
}

func TestStatusFallsBackToFree(t *testing.T) {
	for _, p := range []repo.Profile{
		{Plan: "free"},
		{Plan: "trial", TrialExpires: ts(-time.Hour)},
		{Plan: "pro", PlanExpires: ts(-time.Hour)},
	} {
		st := Status(p, now)
		assert.Equal(t, "free", st.Type)
		assert.Equal(t, "Gratuito", st.Name)
		assert.Nil(t, st.DaysRemaining)
		assert.False(t, st.HasFullAccess)
	}
}
