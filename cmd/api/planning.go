package main

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"chantier-planning/internal/config"
	"chantier-planning/internal/models"
	"chantier-planning/internal/planning"
)

const dateLayout = "2006-01-02"

var (
	userStatusRank     = map[string]int{"active": 0, "inactive": 1}
	chantierStatusRank = map[string]int{"en_cours": 0, "prospect": 1, "termine": 2}

	// PLANNING_WEEKENDS default, overridable per request via ?weekends=.
	weekendsDefault = func() bool { return config.Use().IncludeWeekends }
)

type PlanningData struct {
	View            string
	RowsBy          string
	Anchor          string
	PrevAnchor      string
	NextAnchor      string
	IncludeWeekends bool
	Days            []planning.DayColumn
	Rows            []planning.Row
	Users           []*models.User
	Chantiers       []*models.Chantier
}

func handlePlanning(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	view := planning.ViewMode(q.Get("view"))
	if view != planning.ViewMonth {
		view = planning.ViewWeek
	}

	anchor := time.Now()
	if v := q.Get("date"); v != "" {
		if t, err := time.Parse(dateLayout, v); err == nil {
			anchor = t
		}
	}

	includeWeekends := weekendsDefault()
	if v := q.Get("weekends"); v != "" {
		includeWeekends = v != "0"
	}

	rowsBy := q.Get("rows")
	if rowsBy != "chantiers" {
		rowsBy = "users"
	}

	days := planning.BuildDays(anchor, view, includeWeekends)
	windowStart, windowEnd := days[0].Date, days[len(days)-1].Date

	affs, err := affStore.ListByRange(r.Context(), windowStart, windowEnd)
	if err != nil {
		log.WithError(err).Error("listing affectations for planning")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	materialized := materialize(affs, windowStart, windowEnd)

	var entities []planning.Entity
	var key planning.KeyFunc
	if rowsBy == "chantiers" {
		key = planning.ByChantier
		chantiersMu.RLock()
		for _, c := range chantiers {
			entities = append(entities, planning.Entity{
				ID:         c.ID,
				Name:       c.Name,
				Color:      c.Color,
				StatusRank: chantierStatusRank[c.Status],
			})
		}
		chantiersMu.RUnlock()
	} else {
		key = planning.ByOwner
		usersMu.RLock()
		for _, u := range users {
			entities = append(entities, planning.Entity{
				ID:         u.ID,
				Name:       u.DisplayName(),
				Color:      u.Color,
				StatusRank: userStatusRank[u.Status],
			})
		}
		usersMu.RUnlock()
	}

	ix := planning.BuildIndexBy(materialized, key)
	rows := planning.ComposeGrid(days, planning.SortEntities(entities), ix)

	var prev, next time.Time
	if view == planning.ViewMonth {
		prev, next = anchor.AddDate(0, -1, 0), anchor.AddDate(0, 1, 0)
	} else {
		prev, next = anchor.AddDate(0, 0, -7), anchor.AddDate(0, 0, 7)
	}

	usersMu.RLock()
	chantiersMu.RLock()
	data := PlanningData{
		View:            string(view),
		RowsBy:          rowsBy,
		Anchor:          anchor.Format(dateLayout),
		PrevAnchor:      prev.Format(dateLayout),
		NextAnchor:      next.Format(dateLayout),
		IncludeWeekends: includeWeekends,
		Days:            days,
		Rows:            rows,
		Users:           users,
		Chantiers:       chantiers,
	}
	chantiersMu.RUnlock()
	usersMu.RUnlock()

	render(w, r, data, "ui/templates/planning.html")
}

// materialize expands recurring templates into single-occurrence records for
// the window; already-materialized records pass through when they fall
// inside it.
func materialize(affs []*models.Affectation, windowStart, windowEnd time.Time) []*models.Affectation {
	var out []*models.Affectation
	for _, a := range affs {
		out = append(out, planning.ExpandRecurrence(a, windowStart, windowEnd)...)
	}
	return out
}

func handleCreateAffectation(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	date, err := time.Parse(dateLayout, r.FormValue("date"))
	if err != nil {
		http.Error(w, "Invalid date", http.StatusBadRequest)
		return
	}

	a := &models.Affectation{
		OwnerID:    r.FormValue("owner_id"),
		ChantierID: r.FormValue("chantier_id"),
		Date:       date,
		StartTime:  r.FormValue("start_time"),
		EndTime:    r.FormValue("end_time"),
		Note:       r.FormValue("note"),
	}

	if weekdays := r.Form["weekdays"]; len(weekdays) > 0 {
		rec := &models.Recurrence{}
		for _, wd := range weekdays {
			if n, err := strconv.Atoi(wd); err == nil && n >= 0 && n <= 6 {
				rec.Weekdays = append(rec.Weekdays, time.Weekday(n))
			}
		}
		if v := r.FormValue("recurrence_end"); v != "" {
			if end, err := time.Parse(dateLayout, v); err == nil {
				rec.EndDate = &end
			}
		}
		if len(rec.Weekdays) > 0 {
			a.Recurrence = rec
		}
	}

	if err := affStore.SaveAffectation(r.Context(), a); err != nil {
		log.WithError(err).Error("saving affectation")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/planning", http.StatusSeeOther)
}

func handleEditAffectation(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	id, err := strconv.ParseInt(r.FormValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}

	affectationsMu.Lock()
	for _, a := range affectations {
		if a.ID != id {
			continue
		}
		if v := r.FormValue("date"); v != "" {
			if d, err := time.Parse(dateLayout, v); err == nil {
				a.Date = d
			}
		}
		if v := r.FormValue("owner_id"); v != "" {
			a.OwnerID = v
		}
		if v := r.FormValue("chantier_id"); v != "" {
			a.ChantierID = v
		}
		a.StartTime = r.FormValue("start_time")
		a.EndTime = r.FormValue("end_time")
		a.Note = r.FormValue("note")
		a.UpdatedAt = time.Now()
		break
	}
	affectationsMu.Unlock()

	http.Redirect(w, r, "/planning", http.StatusSeeOther)
}

func handleDeleteAffectation(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.FormValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}

	if err := affStore.DeleteAffectation(r.Context(), id); err != nil {
		log.WithError(err).Error("deleting affectation")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/planning", http.StatusSeeOther)
}

type reassignRequest struct {
	AffectationID  int64  `json:"affectation_id"`
	TargetEntityID string `json:"target_entity_id"`
	TargetDate     string `json:"target_date"`
	RowsBy         string `json:"rows"`
}

// handleReassign receives the completed drop of a drag gesture and submits
// the computed mutation. A drop back onto the source cell is a no-op: 204,
// no store call.
func handleReassign(w http.ResponseWriter, r *http.Request) {
	var req reassignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	targetDate, err := time.Parse(dateLayout, req.TargetDate)
	if err != nil {
		http.Error(w, "Invalid target date", http.StatusBadRequest)
		return
	}

	a, ok := findAffectation(req.AffectationID)
	if !ok {
		http.Error(w, "Affectation not found", http.StatusNotFound)
		return
	}

	key := planning.ByOwner
	if req.RowsBy == "chantiers" {
		key = planning.ByChantier
	}

	drag := planning.NewReassigner(key)
	if !drag.StartDrag(a) {
		http.Error(w, "Conflict", http.StatusConflict)
		return
	}
	drag.HoverCell(req.TargetEntityID, targetDate)

	intent, ok := drag.Drop(req.TargetEntityID, targetDate)
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if intent.NewEntityID != "" {
		intent.Axis = req.RowsBy
		if intent.Axis != "chantiers" {
			intent.Axis = "users"
		}
	}

	if err := affStore.Reassign(r.Context(), intent); err != nil {
		log.WithError(err).WithField("affectation_id", intent.AffectationID).Error("reassigning affectation")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, intent)
}

type duplicateRequest struct {
	SourceStart string `json:"source_start"`
	TargetStart string `json:"target_start"`
	OwnerID     string `json:"owner_id,omitempty"`
}

type duplicateResponse struct {
	Planned int      `json:"planned"`
	Created int      `json:"created"`
	Failed  int      `json:"failed"`
	Errors  []string `json:"errors,omitempty"`
}

// handleDuplicate copies one period's affectations onto another period. The
// drafts are submitted one by one; the response reports partial failures per
// draft instead of treating the operation as atomic.
func handleDuplicate(w http.ResponseWriter, r *http.Request) {
	var req duplicateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	sourceStart, err := time.Parse(dateLayout, req.SourceStart)
	if err != nil {
		http.Error(w, "Invalid source_start", http.StatusBadRequest)
		return
	}
	targetStart, err := time.Parse(dateLayout, req.TargetStart)
	if err != nil {
		http.Error(w, "Invalid target_start", http.StatusBadRequest)
		return
	}

	source, err := affStore.ListByRange(r.Context(), sourceStart, sourceStart.AddDate(0, 0, 6))
	if err != nil {
		log.WithError(err).Error("listing source affectations")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if req.OwnerID != "" {
		var filtered []*models.Affectation
		for _, a := range source {
			if a.OwnerID == req.OwnerID {
				filtered = append(filtered, a)
			}
		}
		source = filtered
	}

	drafts := planning.PlanDuplication(source, sourceStart, targetStart)

	resp := duplicateResponse{Planned: len(drafts)}
	for _, draft := range drafts {
		if err := affStore.CreateDraft(r.Context(), draft); err != nil {
			log.WithError(err).WithField("client_token", draft.ClientToken).Warn("draft create failed")
			resp.Failed++
			resp.Errors = append(resp.Errors, draft.ClientToken)
			continue
		}
		resp.Created++
	}

	writeJSON(w, http.StatusOK, resp)
}
