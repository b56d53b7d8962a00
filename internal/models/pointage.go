package models

import "time"

// Pointage is one timesheet entry: hours worked by a user on a chantier for
// one calendar day.
type Pointage struct {
	ID         int64     `json:"id"`
	UserID     string    `json:"user_id"`
	ChantierID string    `json:"chantier_id"`
	Date       time.Time `json:"date"`
	Hours      float64   `json:"hours"`
	Note       string    `json:"note"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
