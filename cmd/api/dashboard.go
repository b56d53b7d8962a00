package main

import (
	"net/http"

	"chantier-planning/internal/models"
	"chantier-planning/internal/planning"
)

type DashboardData struct {
	ChantiersEnCours    int
	UsersActive         int
	AffectationsSemaine int
	HeuresSemaine       float64
	RecentAffectations  []*models.Affectation
}

func handleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	weekStart := mondayOfCurrentWeek()
	weekEnd := weekStart.AddDate(0, 0, 6)

	chantiersMu.RLock()
	enCours := 0
	for _, c := range chantiers {
		if c.Status == "en_cours" {
			enCours++
		}
	}
	chantiersMu.RUnlock()

	usersMu.RLock()
	active := 0
	for _, u := range users {
		if u.Status == "active" {
			active++
		}
	}
	usersMu.RUnlock()

	affectationsMu.RLock()
	week := 0
	startKey, endKey := planning.DateKey(weekStart), planning.DateKey(weekEnd)
	for _, a := range affectations {
		k := planning.DateKey(a.Date)
		if k >= startKey && k <= endKey {
			week++
		}
	}

	// Last 10 affectations, newest first.
	limit := 10
	if limit > len(affectations) {
		limit = len(affectations)
	}
	recent := make([]*models.Affectation, limit)
	copy(recent, affectations[len(affectations)-limit:])
	for i, j := 0, len(recent)-1; i < j; i, j = i+1, j-1 {
		recent[i], recent[j] = recent[j], recent[i]
	}
	affectationsMu.RUnlock()

	pointagesMu.RLock()
	var heures float64
	for _, p := range pointages {
		k := planning.DateKey(p.Date)
		if k >= startKey && k <= endKey {
			heures += p.Hours
		}
	}
	pointagesMu.RUnlock()

	data := DashboardData{
		ChantiersEnCours:    enCours,
		UsersActive:         active,
		AffectationsSemaine: week,
		HeuresSemaine:       heures,
		RecentAffectations:  recent,
	}

	render(w, r, data, "ui/templates/dashboard.html")
}
