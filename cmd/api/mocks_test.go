package main

import (
	"context"
	"testing"
	"time"

	"chantier-planning/internal/models"
	"chantier-planning/internal/planning"
)

type MockAffectationStore struct {
	ListByRangeFunc       func(ctx context.Context, start, end time.Time) ([]*models.Affectation, error)
	SaveAffectationFunc   func(ctx context.Context, a *models.Affectation) error
	ReassignFunc          func(ctx context.Context, intent planning.MutationIntent) error
	CreateDraftFunc       func(ctx context.Context, draft models.AffectationDraft) error
	DeleteAffectationFunc func(ctx context.Context, id int64) error
}

func (m *MockAffectationStore) ListByRange(ctx context.Context, start, end time.Time) ([]*models.Affectation, error) {
	return m.ListByRangeFunc(ctx, start, end)
}

func (m *MockAffectationStore) SaveAffectation(ctx context.Context, a *models.Affectation) error {
	return m.SaveAffectationFunc(ctx, a)
}

func (m *MockAffectationStore) Reassign(ctx context.Context, intent planning.MutationIntent) error {
	return m.ReassignFunc(ctx, intent)
}

func (m *MockAffectationStore) CreateDraft(ctx context.Context, draft models.AffectationDraft) error {
	return m.CreateDraftFunc(ctx, draft)
}

func (m *MockAffectationStore) DeleteAffectation(ctx context.Context, id int64) error {
	if m.DeleteAffectationFunc != nil {
		return m.DeleteAffectationFunc(ctx, id)
	}
	return nil
}

// swapStore replaces the package store for one test.
func swapStore(t *testing.T, s planning.AffectationStore) {
	saved := affStore
	affStore = s
	t.Cleanup(func() { affStore = saved })
}
