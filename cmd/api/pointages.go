package main

import (
	"net/http"
	"strconv"
	"time"

	"chantier-planning/internal/models"
)

type PointagesData struct {
	Pointages []*models.Pointage
	Users     []*models.User
	Chantiers []*models.Chantier
	Total     float64
}

func handlePointages(w http.ResponseWriter, r *http.Request) {
	pointagesMu.RLock()
	usersMu.RLock()
	chantiersMu.RLock()

	var total float64
	for _, p := range pointages {
		total += p.Hours
	}
	data := PointagesData{
		Pointages: pointages,
		Users:     users,
		Chantiers: chantiers,
		Total:     total,
	}

	chantiersMu.RUnlock()
	usersMu.RUnlock()
	pointagesMu.RUnlock()

	render(w, r, data, "ui/templates/pointages.html")
}

func handleCreatePointage(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	date, err := time.Parse(dateLayout, r.FormValue("date"))
	if err != nil {
		http.Error(w, "Invalid date", http.StatusBadRequest)
		return
	}
	hours, err := strconv.ParseFloat(r.FormValue("hours"), 64)
	if err != nil || hours < 0 || hours > 24 {
		http.Error(w, "Invalid hours", http.StatusBadRequest)
		return
	}

	pointagesMu.Lock()
	pointageSeq++
	pointages = append(pointages, &models.Pointage{
		ID:         pointageSeq,
		UserID:     r.FormValue("user_id"),
		ChantierID: r.FormValue("chantier_id"),
		Date:       date,
		Hours:      hours,
		Note:       r.FormValue("note"),
		CreatedAt:  time.Now(),
	})
	pointagesMu.Unlock()

	http.Redirect(w, r, "/pointages", http.StatusSeeOther)
}

func handleEditPointage(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	id, err := strconv.ParseInt(r.FormValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}

	pointagesMu.Lock()
	for _, p := range pointages {
		if p.ID != id {
			continue
		}
		if v := r.FormValue("date"); v != "" {
			if d, err := time.Parse(dateLayout, v); err == nil {
				p.Date = d
			}
		}
		if v := r.FormValue("hours"); v != "" {
			if h, err := strconv.ParseFloat(v, 64); err == nil && h >= 0 && h <= 24 {
				p.Hours = h
			}
		}
		p.Note = r.FormValue("note")
		p.UpdatedAt = time.Now()
		break
	}
	pointagesMu.Unlock()

	http.Redirect(w, r, "/pointages", http.StatusSeeOther)
}

func handleDeletePointage(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.FormValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}

	pointagesMu.Lock()
	var kept []*models.Pointage
	for _, p := range pointages {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	pointages = kept
	pointagesMu.Unlock()

	http.Redirect(w, r, "/pointages", http.StatusSeeOther)
}
