package main

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestHandleDevisPage(t *testing.T) {
	req := httptest.NewRequest("GET", "/devis", nil)
	rr := httptest.NewRecorder()
	handleDevis(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	body := rr.Body.String()
	for _, rate := range []string{"5.5", "10", "20"} {
		if !strings.Contains(body, rate) {
			t.Errorf("page missing TVA rate %s", rate)
		}
	}
}

func TestHandleDevisCompute(t *testing.T) {
	rr := postJSON(t, handleDevisCompute, "/api/devis/compute", `{
		"lines": [
			{"designation": "Maçonnerie", "quantity": "10", "unit_cost": "50", "margin_rate": "20", "tva_rate": "20"},
			{"designation": "Peinture", "quantity": "5", "unit_cost": "100", "margin_rate": "10", "tva_rate": "5.5"}
		]
	}`)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", rr.Code, http.StatusOK, rr.Body.String())
	}
	body := rr.Body.String()
	// 10x50x1.20 = 600, plus 5x100x1.10 = 550.
	if !strings.Contains(body, `"total_ht":"1150"`) {
		t.Errorf("unexpected total HT: %s", body)
	}
	// TVA: 600 at 20% = 120, 550 at 5.5% = 30.25, rates ascending.
	if !strings.Contains(body, `"total_tva":"150.25"`) {
		t.Errorf("unexpected total TVA: %s", body)
	}
	if !strings.Contains(body, `"total_ttc":"1300.25"`) {
		t.Errorf("unexpected total TTC: %s", body)
	}
	if strings.Index(body, `"rate":"5.5"`) > strings.Index(body, `"rate":"20"`) {
		t.Errorf("ventilation rates not ascending: %s", body)
	}
}

func TestHandleDevisComputeEmpty(t *testing.T) {
	rr := postJSON(t, handleDevisCompute, "/api/devis/compute", `{"lines": []}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	if !strings.Contains(rr.Body.String(), `"total_ttc":"0"`) {
		t.Errorf("empty document should total zero: %s", rr.Body.String())
	}
}

func TestHandleDevisComputeBadPayload(t *testing.T) {
	rr := postJSON(t, handleDevisCompute, "/api/devis/compute", `{"lines": "nope"}`)
	if rr.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rr.Code, http.StatusBadRequest)
	}
}
