package models

import "time"

type Chantier struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Color     string    `json:"color"`
	Status    string    `json:"status"` // en_cours, prospect, termine
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
