package profile

import (
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"ObraCalc/internal/auth"
	"ObraCalc/internal/engine/access"
	"ObraCalc/internal/repo"
)

// PlanStatus is the subscription summary shown on the profile page.
type PlanStatus struct {
	Type          string     `json:"type"` // trial, pro, free
	Name          string     `json:"name"`
	DaysRemaining *int       `json:"days_remaining,omitempty"`
	Expires       *time.Time `json:"expires,omitempty"`
	HasFullAccess bool       `json:"has_full_access"`
}

// EffectiveTier maps the stored plan onto the engine's tier: an active trial
// or an unexpired Pro plan both count as Pro, everything else is Free.
func EffectiveTier(p repo.Profile, now time.Time) access.Tier {
	if inTrial(p, now) {
		return access.Pro
	}
	if p.Plan == "pro" && p.PlanExpires != nil && p.PlanExpires.After(now) {
		return access.Pro
	}
	return access.Free
}

func inTrial(p repo.Profile, now time.Time) bool {
	return p.Plan == "trial" && p.TrialExpires != nil && now.Before(*p.TrialExpires)
}

func Status(p repo.Profile, now time.Time) PlanStatus {
	if inTrial(p, now) {
		days := int(p.TrialExpires.Sub(now).Hours() / 24)
		return PlanStatus{
			Type:          "trial",
			Name:          "Teste Grátis",
			DaysRemaining: &days,
			Expires:       p.TrialExpires,
			HasFullAccess: true,
		}
	}
	if p.Plan == "pro" && p.PlanExpires != nil && p.PlanExpires.After(now) {
		days := int(p.PlanExpires.Sub(now).Hours() / 24)
		return PlanStatus{
			Type:          "pro",
			Name:          access.Pro.Name(),
			DaysRemaining: &days,
			Expires:       p.PlanExpires,
			HasFullAccess: true,
		}
	}
	return PlanStatus{Type: "free", Name: access.Free.Name()}
}

type ProfileHandler struct {
	Repo repo.Repository
	Log  *zap.Logger
}

type profileResponse struct {
	repo.Profile
	PlanStatus PlanStatus `json:"plan_status"`
}

func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFrom(r.Context())
	if !ok || userID == 0 {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	prof, err := h.Repo.GetProfileByID(r.Context(), userID)
	if err != nil {
		http.Error(w, "Perfil não encontrado", http.StatusNotFound)
		return
	}

	now := time.Now().UTC()
	if prof.Plan == "pro" && prof.PlanExpires != nil && !prof.PlanExpires.After(now) {
		if err := h.Repo.ClearExpiredPlan(r.Context(), userID); err != nil {
			h.Log.Warn("clear expired plan", zap.Int("user_id", userID), zap.Error(err))
		}
		prof.Plan = "free"
		prof.PlanExpires = nil
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(profileResponse{Profile: prof, PlanStatus: Status(prof, now)})
}

// RequestUpgrade opens a Pro-upgrade ticket; the admin approves it through
// the Telegram bot. There is no card flow here.
func (h *ProfileHandler) RequestUpgrade(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFrom(r.Context())
	if !ok || userID == 0 {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := h.Repo.CreateUpgradeTicket(r.Context(), userID)
	if err != nil {
		h.Log.Error("create upgrade ticket", zap.Int("user_id", userID), zap.Error(err))
		http.Error(w, "DB error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]any{
		"ticket_id": id,
		"message":   "Solicitação de upgrade registrada. Você será notificado após a aprovação.",
	})
}
