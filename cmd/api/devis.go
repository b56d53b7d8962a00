package main

import (
	"encoding/json"
	"net/http"

	"chantier-planning/internal/devis"
)

type DevisData struct {
	TVARates []string
}

func handleDevis(w http.ResponseWriter, r *http.Request) {
	data := DevisData{TVARates: []string{"5.5", "10", "20"}}
	render(w, r, data, "ui/templates/devis.html")
}

type devisComputeRequest struct {
	Lines []devis.Line `json:"lines"`
}

// handleDevisCompute evaluates quote lines server-side: totals, margins and
// the TVA ventilation per rate.
func handleDevisCompute(w http.ResponseWriter, r *http.Request) {
	var req devisComputeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusOK, devis.Compute(req.Lines))
}
