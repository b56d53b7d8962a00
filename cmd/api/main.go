package main

import (
	"database/sql"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"chantier-planning/internal/config"
	"chantier-planning/internal/middleware"
	"chantier-planning/internal/models"
	"chantier-planning/internal/planning"
	"chantier-planning/internal/store"
)

var (
	log = logrus.New()

	// Mock data store; affStore switches to store.PostgresStore when
	// STORAGE=postgres (see main).
	usersMu sync.RWMutex
	users   = []*models.User{
		{ID: "u1", FirstName: "Jean", LastName: "Moreau", Color: "#2d89ef", Role: "chef_equipe", Status: "active"},
		{ID: "u2", FirstName: "Claire", LastName: "Bernard", Color: "#00a300", Role: "ouvrier", Status: "active"},
		{ID: "u3", FirstName: "Paul", LastName: "Durand", Color: "#da532c", Role: "ouvrier", Status: "inactive"},
	}

	chantiersMu sync.RWMutex
	chantiers   = []*models.Chantier{
		{ID: "c1", Name: "Résidence Les Tilleuls", Address: "12 rue des Lilas", Color: "#ffb900", Status: "en_cours"},
		{ID: "c2", Name: "Extension Gymnase", Address: "4 av. du Stade", Color: "#7e3878", Status: "en_cours"},
		{ID: "c3", Name: "Rénovation Mairie", Address: "1 place de la Mairie", Color: "#603cba", Status: "termine"},
	}

	affectationsMu sync.RWMutex
	affectationSeq = int64(100)
	affectations   = []*models.Affectation{
		{ID: 1, OwnerID: "u1", ChantierID: "c1", Date: mondayOfCurrentWeek(), StartTime: "08:00", EndTime: "16:30"},
		{ID: 2, OwnerID: "u2", ChantierID: "c1", Date: mondayOfCurrentWeek(), StartTime: "08:00", EndTime: "16:30"},
		{ID: 3, OwnerID: "u1", ChantierID: "c2", Date: mondayOfCurrentWeek().AddDate(0, 0, 2), Note: "livraison grue"},
	}

	pointagesMu sync.RWMutex
	pointageSeq = int64(100)
	pointages   = []*models.Pointage{
		{ID: 1, UserID: "u1", ChantierID: "c1", Date: mondayOfCurrentWeek(), Hours: 7.5},
		{ID: 2, UserID: "u2", ChantierID: "c1", Date: mondayOfCurrentWeek(), Hours: 8},
	}

	reservationsMu sync.RWMutex
	reservationSeq = int64(100)
	reservations   = []*models.Reservation{
		{ID: 1, Resource: "Mini-pelle", ChantierID: "c1", StartDate: mondayOfCurrentWeek(), EndDate: mondayOfCurrentWeek().AddDate(0, 0, 4)},
	}

	// Store used by the grid mutation endpoints.
	affStore planning.AffectationStore = &InMemoryStore{}
)

func mondayOfCurrentWeek() time.Time {
	now := time.Now()
	wd := int(now.Weekday())
	if wd == 0 {
		wd = 7
	}
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, 1-wd)
}

// InMemoryStore implements planning.AffectationStore and
// planning.EntityDirectory over the package-level mock data.
type InMemoryStore struct{}

func newRouter() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/", handleDashboard).Methods(http.MethodGet)

	r.HandleFunc("/planning", handlePlanning).Methods(http.MethodGet)
	r.HandleFunc("/api/affectations", handleCreateAffectation).Methods(http.MethodPost)
	r.HandleFunc("/api/affectations/edit", handleEditAffectation).Methods(http.MethodPost)
	r.HandleFunc("/api/affectations/delete", handleDeleteAffectation).Methods(http.MethodPost)
	r.HandleFunc("/api/affectations/reassign", handleReassign).Methods(http.MethodPost)
	r.HandleFunc("/api/affectations/duplicate", handleDuplicate).Methods(http.MethodPost)

	r.HandleFunc("/api/search", handleSearch).Methods(http.MethodGet)

	r.HandleFunc("/chantiers", handleChantiers).Methods(http.MethodGet)
	r.HandleFunc("/api/chantiers", handleCreateChantier).Methods(http.MethodPost)
	r.HandleFunc("/api/chantiers/edit", handleEditChantier).Methods(http.MethodPost)
	r.HandleFunc("/api/chantiers/delete", handleDeleteChantier).Methods(http.MethodPost)

	r.HandleFunc("/users", handleUsers).Methods(http.MethodGet)
	r.HandleFunc("/api/users", handleCreateUser).Methods(http.MethodPost)
	r.HandleFunc("/api/users/edit", handleEditUser).Methods(http.MethodPost)
	r.HandleFunc("/api/users/delete", handleDeleteUser).Methods(http.MethodPost)

	r.HandleFunc("/pointages", handlePointages).Methods(http.MethodGet)
	r.HandleFunc("/api/pointages", handleCreatePointage).Methods(http.MethodPost)
	r.HandleFunc("/api/pointages/edit", handleEditPointage).Methods(http.MethodPost)
	r.HandleFunc("/api/pointages/delete", handleDeletePointage).Methods(http.MethodPost)

	r.HandleFunc("/devis", handleDevis).Methods(http.MethodGet)
	r.HandleFunc("/api/devis/compute", handleDevisCompute).Methods(http.MethodPost)

	r.HandleFunc("/logistique", handleLogistique).Methods(http.MethodGet)
	r.HandleFunc("/api/logistique", handleCreateReservation).Methods(http.MethodPost)
	r.HandleFunc("/api/logistique/delete", handleDeleteReservation).Methods(http.MethodPost)

	r.PathPrefix("/static/").Handler(http.StripPrefix("/static/", http.FileServer(http.Dir(resolveUIPath("ui/static")))))

	r.Use(middleware.CSRF)
	return r
}

func main() {
	cfg := config.Use()
	log = cfg.Logger()

	if cfg.Storage == "postgres" {
		conn, err := sql.Open("postgres", cfg.Database.ConnectionString())
		if err != nil {
			log.WithError(err).Fatal("opening database")
		}
		if err := conn.Ping(); err != nil {
			log.WithError(err).Fatal("connecting to database")
		}
		affStore = store.NewPostgresStore(conn)
		log.WithField("database", cfg.Database.Name).Info("using postgres store")
	}

	log.WithField("port", cfg.Port).Info("API/UI server started")
	if err := http.ListenAndServe(":"+cfg.Port, newRouter()); err != nil {
		log.WithError(err).Fatal("server failed")
	}
}
