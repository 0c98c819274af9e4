package report

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/phpdave11/gofpdf"
	"go.uber.org/zap"

	"ObraCalc/internal/auth"
	"ObraCalc/internal/engine"
	"ObraCalc/internal/repo"
)

type Handler struct {
	Repo repo.Repository
	Log  *zap.Logger
}

// Generate renders a stored calculation as a PDF memória de cálculo: module,
// inputs as entered, numeric outputs. Diagram data stays with the charting
// frontend.
func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFrom(r.Context())
	if !ok || userID == 0 {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid id", http.StatusBadRequest)
		return
	}

	calc, err := h.Repo.GetCalculation(r.Context(), userID, id)
	if err != nil {
		http.Error(w, "Cálculo não encontrado", http.StatusNotFound)
		return
	}

	var inputs map[string]engine.Value
	var results struct {
		Values map[string]float64 `json:"values"`
	}
	if err := json.Unmarshal(calc.Inputs, &inputs); err != nil {
		h.Log.Error("decode stored inputs", zap.Int("calc_id", id), zap.Error(err))
		http.Error(w, "Report generation error", http.StatusInternalServerError)
		return
	}
	if err := json.Unmarshal(calc.Results, &results); err != nil {
		h.Log.Error("decode stored results", zap.Int("calc_id", id), zap.Error(err))
		http.Error(w, "Report generation error", http.StatusInternalServerError)
		return
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "Memória de Cálculo")
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, fmt.Sprintf("Cálculo: %s", calc.Name))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Módulo: %s", calc.Module))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Data: %s", calc.CreatedAt.Format("2006-01-02 15:04")))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Dados de Entrada")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)
	for _, name := range sortedKeys(inputs) {
		v := inputs[name]
		line := fmt.Sprintf("%s: %s", name, v.Raw)
		if v.Unit != "" {
			line += fmt.Sprintf(" %s", v.Unit)
		}
		pdf.Cell(0, 6, line)
		pdf.Ln(6)
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Resultados")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)
	for _, name := range sortedKeys(results.Values) {
		pdf.Cell(0, 6, fmt.Sprintf("%s: %g", name, results.Values[name]))
		pdf.Ln(6)
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=\"calculo.pdf\"")
	if err := pdf.Output(w); err != nil {
		http.Error(w, "Report generation error", http.StatusInternalServerError)
		return
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
