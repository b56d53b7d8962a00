package models

import "time"

// Recurrence describes a weekly repeating affectation template. Materialized
// occurrences carry a nil Recurrence.
type Recurrence struct {
	Weekdays []time.Weekday `json:"weekdays"`
	EndDate  *time.Time     `json:"end_date"`
}

type Affectation struct {
	ID         int64       `json:"id"`
	OwnerID    string      `json:"owner_id"`
	ChantierID string      `json:"chantier_id"`
	Date       time.Time   `json:"date"`
	StartTime  string      `json:"start_time"`
	EndTime    string      `json:"end_time"`
	Note       string      `json:"note"`
	Recurrence *Recurrence `json:"recurrence"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

// AffectationDraft is an unsaved copy produced by duplication, submitted to
// the create endpoint one draft at a time.
type AffectationDraft struct {
	OwnerID     string    `json:"owner_id"`
	ChantierID  string    `json:"chantier_id"`
	Date        time.Time `json:"date"`
	StartTime   string    `json:"start_time"`
	EndTime     string    `json:"end_time"`
	Note        string    `json:"note"`
	ClientToken string    `json:"client_token"`
}
