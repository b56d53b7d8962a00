package planning

import (
	"context"
	"time"

	"chantier-planning/internal/models"
)

// AffectationStore defines the persistence operations the planning handlers
// need. The HTTP layer carries an in-memory implementation, internal/store a
// Postgres one.
type AffectationStore interface {
	ListByRange(ctx context.Context, start, end time.Time) ([]*models.Affectation, error)
	SaveAffectation(ctx context.Context, a *models.Affectation) error
	Reassign(ctx context.Context, intent MutationIntent) error
	CreateDraft(ctx context.Context, draft models.AffectationDraft) error
	DeleteAffectation(ctx context.Context, id int64) error
}

// EntityDirectory supplies the read-only row entities.
type EntityDirectory interface {
	ListUsers(ctx context.Context) ([]*models.User, error)
	ListChantiers(ctx context.Context) ([]*models.Chantier, error)
}
