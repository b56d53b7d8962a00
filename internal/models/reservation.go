package models

import "time"

// Reservation blocks a logistics resource (vehicle, machine, container) for a
// chantier over a date range.
type Reservation struct {
	ID         int64     `json:"id"`
	Resource   string    `json:"resource"`
	ChantierID string    `json:"chantier_id"`
	StartDate  time.Time `json:"start_date"`
	EndDate    time.Time `json:"end_date"`
	Note       string    `json:"note"`
	CreatedAt  time.Time `json:"created_at"`
}
