package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"chantier-planning/internal/db"
	"chantier-planning/internal/models"
	"chantier-planning/internal/planning"
)

// PostgresStore implements planning.AffectationStore and
// planning.EntityDirectory over the sqlc-style query layer.
type PostgresStore struct {
	q *db.Queries
}

func NewPostgresStore(conn *sql.DB) *PostgresStore {
	return &PostgresStore{q: db.New(conn)}
}

func (s *PostgresStore) ListByRange(ctx context.Context, start, end time.Time) ([]*models.Affectation, error) {
	rows, err := s.q.ListAffectationsByRange(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("listing affectations: %w", err)
	}
	out := make([]*models.Affectation, 0, len(rows))
	for _, r := range rows {
		out = append(out, affectationFromRecord(r))
	}
	return out, nil
}

// affectationFromRecord maps a row to the domain record; an unreadable
// recurrence column degrades to a single-occurrence affectation.
func affectationFromRecord(r db.Affectation) *models.Affectation {
	a := &models.Affectation{
		ID:         r.ID,
		OwnerID:    r.OwnerID,
		ChantierID: r.ChantierID,
		Date:       r.Date,
		StartTime:  r.StartTime.String,
		EndTime:    r.EndTime.String,
		Note:       r.Note.String,
	}
	if len(r.Recurrence) > 0 {
		var rec models.Recurrence
		if err := json.Unmarshal(r.Recurrence, &rec); err == nil {
			a.Recurrence = &rec
		}
	}
	return a
}

func affectationToRecord(a *models.Affectation) (db.Affectation, error) {
	var rec []byte
	if a.Recurrence != nil {
		var err error
		rec, err = json.Marshal(a.Recurrence)
		if err != nil {
			return db.Affectation{}, fmt.Errorf("encoding recurrence: %w", err)
		}
	}
	return db.Affectation{
		OwnerID:    a.OwnerID,
		ChantierID: a.ChantierID,
		Date:       a.Date,
		StartTime:  nullString(a.StartTime),
		EndTime:    nullString(a.EndTime),
		Note:       nullString(a.Note),
		Recurrence: rec,
	}, nil
}

func (s *PostgresStore) SaveAffectation(ctx context.Context, a *models.Affectation) error {
	record, err := affectationToRecord(a)
	if err != nil {
		return err
	}
	id, err := s.q.CreateAffectation(ctx, record)
	if err != nil {
		return fmt.Errorf("saving affectation: %w", err)
	}
	a.ID = id
	return nil
}

func (s *PostgresStore) Reassign(ctx context.Context, intent planning.MutationIntent) error {
	date, err := time.Parse("2006-01-02", intent.NewDate)
	if err != nil {
		return fmt.Errorf("parsing intent date: %w", err)
	}
	owner, chantier := reassignColumns(intent)
	return s.q.ReassignAffectation(ctx, intent.AffectationID, date, owner, chantier)
}

func (s *PostgresStore) CreateDraft(ctx context.Context, draft models.AffectationDraft) error {
	_, err := s.q.CreateAffectation(ctx, db.Affectation{
		OwnerID:    draft.OwnerID,
		ChantierID: draft.ChantierID,
		Date:       draft.Date,
		StartTime:  nullString(draft.StartTime),
		EndTime:    nullString(draft.EndTime),
		Note:       nullString(draft.Note),
	})
	if err != nil {
		return fmt.Errorf("creating draft %s: %w", draft.ClientToken, err)
	}
	return nil
}

func (s *PostgresStore) DeleteAffectation(ctx context.Context, id int64) error {
	return s.q.DeleteAffectation(ctx, id)
}

func (s *PostgresStore) ListUsers(ctx context.Context) ([]*models.User, error) {
	rows, err := s.q.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	out := make([]*models.User, 0, len(rows))
	for _, r := range rows {
		out = append(out, &models.User{
			ID:        r.ID,
			FirstName: r.FirstName,
			LastName:  r.LastName,
			Color:     r.Color,
			Role:      r.Role,
			Status:    r.Status,
			CreatedAt: r.CreatedAt,
			UpdatedAt: r.UpdatedAt,
		})
	}
	return out, nil
}

func (s *PostgresStore) ListChantiers(ctx context.Context) ([]*models.Chantier, error) {
	rows, err := s.q.ListChantiers(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing chantiers: %w", err)
	}
	out := make([]*models.Chantier, 0, len(rows))
	for _, r := range rows {
		out = append(out, &models.Chantier{
			ID:        r.ID,
			Name:      r.Name,
			Address:   r.Address,
			Color:     r.Color,
			Status:    r.Status,
			CreatedAt: r.CreatedAt,
			UpdatedAt: r.UpdatedAt,
		})
	}
	return out, nil
}

// reassignColumns splits an intent's entity change onto the column its axis
// targets; the other column stays NULL so the UPDATE's COALESCE keeps it.
func reassignColumns(intent planning.MutationIntent) (owner, chantier sql.NullString) {
	if intent.Axis == "chantiers" {
		chantier = nullString(intent.NewEntityID)
	} else {
		owner = nullString(intent.NewEntityID)
	}
	return owner, chantier
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
