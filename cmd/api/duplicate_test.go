package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"chantier-planning/internal/models"
	"chantier-planning/internal/planning"
)

func TestHandleDuplicateWeek(t *testing.T) {
	seedAffectations(t, []*models.Affectation{
		{ID: 1, OwnerID: "u1", ChantierID: "c1", Date: mustDate(t, "2024-03-11"), StartTime: "08:00"},
		{ID: 2, OwnerID: "u2", ChantierID: "c2", Date: mustDate(t, "2024-03-13")},
		{ID: 3, OwnerID: "u1", ChantierID: "c1", Date: mustDate(t, "2024-03-25")},
	})

	rr := postJSON(t, handleDuplicate, "/api/affectations/duplicate",
		`{"source_start": "2024-03-11", "target_start": "2024-03-18"}`)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", rr.Code, http.StatusOK, rr.Body.String())
	}

	var resp duplicateResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Planned != 2 || resp.Created != 2 || resp.Failed != 0 {
		t.Errorf("resp = %+v, want 2 planned, 2 created", resp)
	}

	// The copies landed one week later, originals untouched.
	affectationsMu.RLock()
	defer affectationsMu.RUnlock()
	if len(affectations) != 5 {
		t.Fatalf("len(affectations) = %d, want 5", len(affectations))
	}
	gotKeys := map[string]int{}
	for _, a := range affectations {
		gotKeys[planning.DateKey(a.Date)]++
	}
	if gotKeys["2024-03-18"] != 1 || gotKeys["2024-03-20"] != 1 {
		t.Errorf("shifted dates missing: %v", gotKeys)
	}
	if gotKeys["2024-03-11"] != 1 || gotKeys["2024-03-13"] != 1 {
		t.Errorf("source week mutated: %v", gotKeys)
	}
}

func TestHandleDuplicateFiltersByOwner(t *testing.T) {
	seedAffectations(t, []*models.Affectation{
		{ID: 1, OwnerID: "u1", ChantierID: "c1", Date: mustDate(t, "2024-03-11")},
		{ID: 2, OwnerID: "u2", ChantierID: "c2", Date: mustDate(t, "2024-03-12")},
	})

	rr := postJSON(t, handleDuplicate, "/api/affectations/duplicate",
		`{"source_start": "2024-03-11", "target_start": "2024-03-18", "owner_id": "u2"}`)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	var resp duplicateResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Planned != 1 || resp.Created != 1 {
		t.Errorf("resp = %+v, want 1 planned and created", resp)
	}

	affectationsMu.RLock()
	defer affectationsMu.RUnlock()
	for _, a := range affectations {
		if planning.DateKey(a.Date) == "2024-03-19" && a.OwnerID != "u2" {
			t.Errorf("copy has owner %s, want u2", a.OwnerID)
		}
	}
}

func TestHandleDuplicateEmptySourceWeek(t *testing.T) {
	seedAffectations(t, nil)

	rr := postJSON(t, handleDuplicate, "/api/affectations/duplicate",
		`{"source_start": "2024-03-11", "target_start": "2024-03-18"}`)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	var resp duplicateResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Planned != 0 || resp.Created != 0 {
		t.Errorf("resp = %+v, want all zero", resp)
	}
}

func TestHandleDuplicateReportsPartialFailure(t *testing.T) {
	seedAffectations(t, nil)

	source := []*models.Affectation{
		{ID: 1, OwnerID: "u1", ChantierID: "c1", Date: mustDate(t, "2024-03-11")},
		{ID: 2, OwnerID: "u1", ChantierID: "c1", Date: mustDate(t, "2024-03-12")},
		{ID: 3, OwnerID: "u1", ChantierID: "c1", Date: mustDate(t, "2024-03-13")},
	}
	calls := 0
	swapStore(t, &MockAffectationStore{
		ListByRangeFunc: func(ctx context.Context, start, end time.Time) ([]*models.Affectation, error) {
			return source, nil
		},
		CreateDraftFunc: func(ctx context.Context, draft models.AffectationDraft) error {
			calls++
			if calls == 2 {
				return errors.New("insert failed")
			}
			return nil
		},
	})

	rr := postJSON(t, handleDuplicate, "/api/affectations/duplicate",
		`{"source_start": "2024-03-11", "target_start": "2024-03-18"}`)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	var resp duplicateResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Planned != 3 || resp.Created != 2 || resp.Failed != 1 {
		t.Errorf("resp = %+v, want 3 planned, 2 created, 1 failed", resp)
	}
	if len(resp.Errors) != 1 {
		t.Errorf("expected 1 failed token, got %v", resp.Errors)
	}
}

func TestHandleDuplicateInvalidDates(t *testing.T) {
	rr := postJSON(t, handleDuplicate, "/api/affectations/duplicate",
		`{"source_start": "not-a-date", "target_start": "2024-03-18"}`)
	if rr.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rr.Code, http.StatusBadRequest)
	}
}
