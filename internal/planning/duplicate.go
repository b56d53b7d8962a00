package planning

import (
	"math"
	"time"

	"github.com/google/uuid"

	"chantier-planning/internal/models"
)

// PlanDuplication maps source affectations to date-shifted drafts for the
// target period. The offset is the whole-day distance between the two period
// starts. Drafts keep owner, chantier, times and note; recurrence descriptors
// are never copied, a duplicated affectation is always single-occurrence.
// The caller submits the drafts to the create endpoint one by one and reports
// per-draft failures itself.
func PlanDuplication(source []*models.Affectation, sourceStart, targetStart time.Time) []models.AffectationDraft {
	offset := daysBetween(sourceStart, targetStart)

	drafts := make([]models.AffectationDraft, 0, len(source))
	for _, a := range source {
		if a == nil || a.Date.IsZero() {
			continue
		}
		drafts = append(drafts, models.AffectationDraft{
			OwnerID:     a.OwnerID,
			ChantierID:  a.ChantierID,
			Date:        a.Date.AddDate(0, 0, offset),
			StartTime:   a.StartTime,
			EndTime:     a.EndTime,
			Note:        a.Note,
			ClientToken: uuid.NewString(),
		})
	}
	return drafts
}

// daysBetween counts calendar days from a to b, ignoring time of day. The
// rounding absorbs DST-shortened or lengthened days.
func daysBetween(a, b time.Time) int {
	a = startOfDay(a)
	b = startOfDay(b)
	return int(math.Round(b.Sub(a).Hours() / 24))
}
