package main

import (
	"net/http"
	"time"

	"chantier-planning/internal/models"
)

type ChantiersData struct {
	Chantiers []*models.Chantier
}

func handleChantiers(w http.ResponseWriter, r *http.Request) {
	chantiersMu.RLock()
	data := ChantiersData{Chantiers: chantiers}
	chantiersMu.RUnlock()

	render(w, r, data, "ui/templates/chantiers.html")
}

func handleCreateChantier(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	id := r.FormValue("id")
	status := r.FormValue("status")
	if status == "" {
		status = "en_cours"
	}

	chantiersMu.Lock()
	for _, c := range chantiers {
		if c.ID == id {
			chantiersMu.Unlock()
			http.Error(w, "Chantier ID already exists", http.StatusBadRequest)
			return
		}
	}
	chantiers = append(chantiers, &models.Chantier{
		ID:        id,
		Name:      r.FormValue("name"),
		Address:   r.FormValue("address"),
		Color:     r.FormValue("color"),
		Status:    status,
		CreatedAt: time.Now(),
	})
	chantiersMu.Unlock()

	http.Redirect(w, r, "/chantiers", http.StatusSeeOther)
}

func handleEditChantier(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	id := r.FormValue("id")

	chantiersMu.Lock()
	for _, c := range chantiers {
		if c.ID == id {
			c.Name = r.FormValue("name")
			c.Address = r.FormValue("address")
			if v := r.FormValue("color"); v != "" {
				c.Color = v
			}
			if v := r.FormValue("status"); v != "" {
				c.Status = v
			}
			c.UpdatedAt = time.Now()
			break
		}
	}
	chantiersMu.Unlock()

	http.Redirect(w, r, "/chantiers", http.StatusSeeOther)
}

func handleDeleteChantier(w http.ResponseWriter, r *http.Request) {
	id := r.FormValue("id")

	chantiersMu.Lock()
	var kept []*models.Chantier
	for _, c := range chantiers {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	chantiers = kept
	chantiersMu.Unlock()

	http.Redirect(w, r, "/chantiers", http.StatusSeeOther)
}

type UsersData struct {
	Users []*models.User
}

func handleUsers(w http.ResponseWriter, r *http.Request) {
	usersMu.RLock()
	data := UsersData{Users: users}
	usersMu.RUnlock()

	render(w, r, data, "ui/templates/users.html")
}

func handleCreateUser(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	id := r.FormValue("id")
	status := r.FormValue("status")
	if status == "" {
		status = "active"
	}

	usersMu.Lock()
	for _, u := range users {
		if u.ID == id {
			usersMu.Unlock()
			http.Error(w, "User ID already exists", http.StatusBadRequest)
			return
		}
	}
	users = append(users, &models.User{
		ID:        id,
		FirstName: r.FormValue("first_name"),
		LastName:  r.FormValue("last_name"),
		Color:     r.FormValue("color"),
		Role:      r.FormValue("role"),
		Status:    status,
		CreatedAt: time.Now(),
	})
	usersMu.Unlock()

	http.Redirect(w, r, "/users", http.StatusSeeOther)
}

func handleEditUser(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	id := r.FormValue("id")

	usersMu.Lock()
	for _, u := range users {
		if u.ID == id {
			u.FirstName = r.FormValue("first_name")
			u.LastName = r.FormValue("last_name")
			if v := r.FormValue("color"); v != "" {
				u.Color = v
			}
			if v := r.FormValue("role"); v != "" {
				u.Role = v
			}
			if v := r.FormValue("status"); v != "" {
				u.Status = v
			}
			u.UpdatedAt = time.Now()
			break
		}
	}
	usersMu.Unlock()

	http.Redirect(w, r, "/users", http.StatusSeeOther)
}

func handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	id := r.FormValue("id")

	usersMu.Lock()
	var kept []*models.User
	for _, u := range users {
		if u.ID != id {
			kept = append(kept, u)
		}
	}
	users = kept
	usersMu.Unlock()

	http.Redirect(w, r, "/users", http.StatusSeeOther)
}
