package db

import (
	"context"
	"database/sql"
	"time"

	"github.com/lib/pq"
)

type User struct {
	ID        string
	FirstName string
	LastName  string
	Color     string
	Role      string
	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Chantier struct {
	ID        string
	Name      string
	Address   string
	Color     string
	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Affectation struct {
	ID         int64
	OwnerID    string
	ChantierID string
	Date       time.Time
	StartTime  sql.NullString
	EndTime    sql.NullString
	Note       sql.NullString
	Recurrence []byte // JSONB, nil for single-occurrence records
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type Pointage struct {
	ID         int64
	UserID     string
	ChantierID string
	Date       time.Time
	Hours      float64
	Note       sql.NullString
	CreatedAt  time.Time
}

// Queries wraps the raw connection, sqlc-style.
type Queries struct {
	db *sql.DB
}

func New(db *sql.DB) *Queries {
	return &Queries{db: db}
}

func (q *Queries) DB() *sql.DB { return q.db }

func (q *Queries) ListUsers(ctx context.Context) ([]User, error) {
	rows, err := q.db.QueryContext(ctx,
		"SELECT id, first_name, last_name, color, role, status, created_at, updated_at FROM users ORDER BY last_name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []User
	for rows.Next() {
		var i User
		if err := rows.Scan(&i.ID, &i.FirstName, &i.LastName, &i.Color, &i.Role, &i.Status, &i.CreatedAt, &i.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

func (q *Queries) ListChantiers(ctx context.Context) ([]Chantier, error) {
	rows, err := q.db.QueryContext(ctx,
		"SELECT id, name, address, color, status, created_at, updated_at FROM chantiers ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Chantier
	for rows.Next() {
		var i Chantier
		if err := rows.Scan(&i.ID, &i.Name, &i.Address, &i.Color, &i.Status, &i.CreatedAt, &i.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

func (q *Queries) ListAffectationsByRange(ctx context.Context, start, end time.Time) ([]Affectation, error) {
	rows, err := q.db.QueryContext(ctx,
		"SELECT id, owner_id, chantier_id, date, start_time, end_time, note, recurrence FROM affectations WHERE date BETWEEN $1 AND $2 ORDER BY id",
		start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Affectation
	for rows.Next() {
		var i Affectation
		if err := rows.Scan(&i.ID, &i.OwnerID, &i.ChantierID, &i.Date, &i.StartTime, &i.EndTime, &i.Note, &i.Recurrence); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

func (q *Queries) CreateAffectation(ctx context.Context, arg Affectation) (int64, error) {
	var id int64
	err := q.db.QueryRowContext(ctx,
		"INSERT INTO affectations (owner_id, chantier_id, date, start_time, end_time, note, recurrence) VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id",
		arg.OwnerID, arg.ChantierID, arg.Date, arg.StartTime, arg.EndTime, arg.Note, arg.Recurrence,
	).Scan(&id)
	return id, err
}

func (q *Queries) ReassignAffectation(ctx context.Context, id int64, date time.Time, ownerID, chantierID sql.NullString) error {
	_, err := q.db.ExecContext(ctx,
		"UPDATE affectations SET date = $2, owner_id = COALESCE($3, owner_id), chantier_id = COALESCE($4, chantier_id), updated_at = now() WHERE id = $1",
		id, date, ownerID, chantierID)
	return err
}

func (q *Queries) DeleteAffectation(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, "DELETE FROM affectations WHERE id = $1", id)
	return err
}

func (q *Queries) CreatePointage(ctx context.Context, arg Pointage) (int64, error) {
	var id int64
	err := q.db.QueryRowContext(ctx,
		"INSERT INTO pointages (user_id, chantier_id, date, hours, note) VALUES ($1, $2, $3, $4, $5) RETURNING id",
		arg.UserID, arg.ChantierID, arg.Date, arg.Hours, arg.Note,
	).Scan(&id)
	return id, err
}

// SumHoursByUser aggregates pointage hours per user over a date range, for
// the dashboard.
func (q *Queries) SumHoursByUser(ctx context.Context, start, end time.Time, userIDs []string) (map[string]float64, error) {
	rows, err := q.db.QueryContext(ctx,
		"SELECT user_id, COALESCE(SUM(hours), 0) FROM pointages WHERE date BETWEEN $1 AND $2 AND user_id = ANY($3) GROUP BY user_id",
		start, end, pq.Array(userIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	totals := make(map[string]float64)
	for rows.Next() {
		var id string
		var h float64
		if err := rows.Scan(&id, &h); err != nil {
			return nil, err
		}
		totals[id] = h
	}
	return totals, rows.Err()
}
