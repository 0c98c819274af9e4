package importer

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"ObraCalc/internal/auth"
	"ObraCalc/internal/engine"
	"ObraCalc/internal/engine/access"
	"ObraCalc/internal/profile"
	"ObraCalc/internal/repo"
)

type Handler struct {
	Eng  *engine.Engine
	Repo repo.Repository
	Log  *zap.Logger
}

type beamImportResult struct {
	Count   int              `json:"count"`
	Skipped int              `json:"skipped"`
	Results []*engine.Record `json:"results"`
}

// Beam imports structural beam calculations from an XLSX sheet. Expected
// columns: name, span_m, load_type, load_value; the first row is a header.
// Each row goes through the calculation engine, so bad rows are skipped the
// same way a bad form submission would be rejected.
func (h *Handler) Beam(w http.ResponseWriter, r *http.Request) {
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
	tier := profile.EffectiveTier(prof, time.Now().UTC())

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "File required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	f, err := excelize.OpenReader(file)
	if err != nil {
		http.Error(w, "Invalid file", http.StatusBadRequest)
		return
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil || len(rows) < 2 {
		http.Error(w, "Empty sheet", http.StatusBadRequest)
		return
	}

	out := beamImportResult{}
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		if len(row) < 4 {
			out.Skipped++
			continue
		}
		name := row[0]
		if name == "" {
			name = sheet
		}
		rec, err := h.Eng.Run(access.Structural, tier, name, map[string]string{
			"span":       row[1],
			"load_type":  row[2],
			"load_value": row[3],
		})
		if err != nil {
			out.Skipped++
			continue
		}

		inputs, err := json.Marshal(rec.Inputs)
		if err != nil {
			out.Skipped++
			continue
		}
		results, err := json.Marshal(map[string]any{"values": rec.Values, "diagrams": rec.Diagrams})
		if err != nil {
			out.Skipped++
			continue
		}
		if _, err := h.Repo.SaveCalculation(r.Context(), userID, string(rec.Module), rec.Name, inputs, results); err != nil {
			h.Log.Error("save imported calculation", zap.Int("user_id", userID), zap.Error(err))
			out.Skipped++
			continue
		}
		out.Results = append(out.Results, rec)
	}
	out.Count = len(out.Results)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(out)
}
