package main

import (
	"context"
	"errors"
	"time"

	"chantier-planning/internal/models"
	"chantier-planning/internal/planning"
)

func (s *InMemoryStore) ListByRange(ctx context.Context, start, end time.Time) ([]*models.Affectation, error) {
	affectationsMu.RLock()
	defer affectationsMu.RUnlock()

	startKey, endKey := planning.DateKey(start), planning.DateKey(end)
	var result []*models.Affectation
	for _, a := range affectations {
		k := planning.DateKey(a.Date)
		if k >= startKey && k <= endKey {
			result = append(result, a)
		}
	}
	return result, nil
}

func (s *InMemoryStore) SaveAffectation(ctx context.Context, a *models.Affectation) error {
	affectationsMu.Lock()
	defer affectationsMu.Unlock()
	affectationSeq++
	a.ID = affectationSeq
	a.CreatedAt = time.Now()
	affectations = append(affectations, a)
	return nil
}

func (s *InMemoryStore) Reassign(ctx context.Context, intent planning.MutationIntent) error {
	date, err := time.Parse("2006-01-02", intent.NewDate)
	if err != nil {
		return err
	}

	affectationsMu.Lock()
	defer affectationsMu.Unlock()
	for _, a := range affectations {
		if a.ID == intent.AffectationID {
			a.Date = date
			if intent.NewEntityID != "" {
				if intent.Axis == "chantiers" {
					a.ChantierID = intent.NewEntityID
				} else {
					a.OwnerID = intent.NewEntityID
				}
			}
			a.UpdatedAt = time.Now()
			return nil
		}
	}
	return errors.New("affectation not found")
}

func (s *InMemoryStore) CreateDraft(ctx context.Context, draft models.AffectationDraft) error {
	affectationsMu.Lock()
	defer affectationsMu.Unlock()
	affectationSeq++
	affectations = append(affectations, &models.Affectation{
		ID:         affectationSeq,
		OwnerID:    draft.OwnerID,
		ChantierID: draft.ChantierID,
		Date:       draft.Date,
		StartTime:  draft.StartTime,
		EndTime:    draft.EndTime,
		Note:       draft.Note,
		CreatedAt:  time.Now(),
	})
	return nil
}

func (s *InMemoryStore) DeleteAffectation(ctx context.Context, id int64) error {
	affectationsMu.Lock()
	defer affectationsMu.Unlock()
	var kept []*models.Affectation
	for _, a := range affectations {
		if a.ID != id {
			kept = append(kept, a)
		}
	}
	affectations = kept
	return nil
}

func (s *InMemoryStore) ListUsers(ctx context.Context) ([]*models.User, error) {
	usersMu.RLock()
	defer usersMu.RUnlock()
	result := make([]*models.User, len(users))
	copy(result, users)
	return result, nil
}

func (s *InMemoryStore) ListChantiers(ctx context.Context) ([]*models.Chantier, error) {
	chantiersMu.RLock()
	defer chantiersMu.RUnlock()
	result := make([]*models.Chantier, len(chantiers))
	copy(result, chantiers)
	return result, nil
}

func findAffectation(id int64) (*models.Affectation, bool) {
	affectationsMu.RLock()
	defer affectationsMu.RUnlock()
	for _, a := range affectations {
		if a.ID == id {
			return a, true
		}
	}
	return nil, false
}
