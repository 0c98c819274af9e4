package engine

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"ObraCalc/internal/auth"
	"ObraCalc/internal/engine/access"
	"ObraCalc/internal/profile"
	"ObraCalc/internal/repo"
)

const historyPageSize = 10

// Handler exposes the orchestrator over HTTP and persists successful runs.
type Handler struct {
	Eng  *Engine
	Repo repo.Repository
	Log  *zap.Logger
}

type calcRequest struct {
	Name   string            `json:"name"`
	Inputs map[string]string `json:"inputs"`
}

type storedResults struct {
	Values   map[string]float64 `json:"values"`
	Diagrams any                `json:"diagrams,omitempty"`
}

func (h *Handler) Calc(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFrom(r.Context())
	if !ok || userID == 0 {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	module := access.Module(mux.Vars(r)["module"])

	var req calcRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	prof, err := h.Repo.GetProfileByID(r.Context(), userID)
	if err != nil {
		http.Error(w, "Perfil não encontrado", http.StatusNotFound)
		return
	}
	tier := profile.EffectiveTier(prof, time.Now().UTC())

	rec, err := h.Eng.Run(module, tier, req.Name, req.Inputs)
	if err != nil {
		h.writeEngineError(w, err)
		return
	}

	inputs, err := json.Marshal(rec.Inputs)
	if err == nil {
		var results []byte
		results, err = json.Marshal(storedResults{Values: rec.Values, Diagrams: rec.Diagrams})
		if err == nil {
			_, err = h.Repo.SaveCalculation(r.Context(), userID, string(rec.Module), rec.Name, inputs, results)
		}
	}
	if err != nil {
		h.Log.Error("save calculation",
			zap.Int("user_id", userID),
			zap.String("module", string(module)),
			zap.Error(err))
		http.Error(w, "Erro ao salvar o cálculo", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(rec)
}

func (h *Handler) writeEngineError(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")

	var accessErr *AccessError
	if errors.As(err, &accessErr) {
		w.WriteHeader(http.StatusForbidden)
		json.NewEncoder(w).Encode(map[string]string{
			"error":         accessErr.Error(),
			"required_plan": accessErr.Required.String(),
		})
		return
	}

	var valErr *ValidationError
	if errors.As(err, &valErr) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{
			"error": valErr.Reason,
			"field": valErr.Field,
		})
		return
	}

	w.WriteHeader(http.StatusBadRequest)
	json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}

func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFrom(r.Context())
	if !ok || userID == 0 {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}

	calcs, err := h.Repo.ListCalculations(r.Context(), userID, page, historyPageSize)
	if err != nil {
		h.Log.Error("list calculations", zap.Int("user_id", userID), zap.Error(err))
		http.Error(w, "DB error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"page":         page,
		"calculations": calcs,
	})
}
