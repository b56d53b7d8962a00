package main

import (
	"net/http"
	"strconv"
	"time"

	"chantier-planning/internal/models"
)

type LogistiqueData struct {
	Reservations []*models.Reservation
	Chantiers    []*models.Chantier
}

func handleLogistique(w http.ResponseWriter, r *http.Request) {
	reservationsMu.RLock()
	chantiersMu.RLock()
	data := LogistiqueData{
		Reservations: reservations,
		Chantiers:    chantiers,
	}
	chantiersMu.RUnlock()
	reservationsMu.RUnlock()

	render(w, r, data, "ui/templates/logistique.html")
}

func handleCreateReservation(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	start, err := time.Parse(dateLayout, r.FormValue("start_date"))
	if err != nil {
		http.Error(w, "Invalid start date", http.StatusBadRequest)
		return
	}
	end, err := time.Parse(dateLayout, r.FormValue("end_date"))
	if err != nil || end.Before(start) {
		http.Error(w, "Invalid end date", http.StatusBadRequest)
		return
	}

	reservationsMu.Lock()
	reservationSeq++
	reservations = append(reservations, &models.Reservation{
		ID:         reservationSeq,
		Resource:   r.FormValue("resource"),
		ChantierID: r.FormValue("chantier_id"),
		StartDate:  start,
		EndDate:    end,
		Note:       r.FormValue("note"),
		CreatedAt:  time.Now(),
	})
	reservationsMu.Unlock()

	http.Redirect(w, r, "/logistique", http.StatusSeeOther)
}

func handleDeleteReservation(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.FormValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}

	reservationsMu.Lock()
	var kept []*models.Reservation
	for _, res := range reservations {
		if res.ID != id {
			kept = append(kept, res)
		}
	}
	reservations = kept
	reservationsMu.Unlock()

	http.Redirect(w, r, "/logistique", http.StatusSeeOther)
}
