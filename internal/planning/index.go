package planning

import (
	"time"

	"chantier-planning/internal/models"
)

// KeyFunc extracts the row key an affectation is indexed under. The grid can
// be pivoted by owner (one row per user) or by chantier.
type KeyFunc func(*models.Affectation) string

func ByOwner(a *models.Affectation) string    { return a.OwnerID }
func ByChantier(a *models.Affectation) string { return a.ChantierID }

// Index is the two-level lookup entity id -> date key -> affectations. The
// missing-bucket contract is explicit: Lookup always returns a non-nil slice.
type Index struct {
	key     KeyFunc
	buckets map[string]map[string][]*models.Affectation
}

// BuildIndex indexes affectations by owning entity. Order within a bucket is
// input order; that order drives the vertical stacking inside a cell.
func BuildIndex(affectations []*models.Affectation) *Index {
	return BuildIndexBy(affectations, ByOwner)
}

// BuildIndexBy indexes with an explicit row key. Records with a zero date are
// skipped so one malformed row cannot blank the grid.
func BuildIndexBy(affectations []*models.Affectation, key KeyFunc) *Index {
	if key == nil {
		key = ByOwner
	}
	ix := &Index{
		key:     key,
		buckets: make(map[string]map[string][]*models.Affectation),
	}
	for _, a := range affectations {
		if a == nil || a.Date.IsZero() {
			continue
		}
		ix.upsert(key(a), DateKey(a.Date), a)
	}
	return ix
}

func (ix *Index) upsert(entityID, dateKey string, a *models.Affectation) {
	byDate, ok := ix.buckets[entityID]
	if !ok {
		byDate = make(map[string][]*models.Affectation)
		ix.buckets[entityID] = byDate
	}
	byDate[dateKey] = append(byDate[dateKey], a)
}

// Lookup returns the affectations for one cell, empty (never nil) when the
// bucket does not exist.
func (ix *Index) Lookup(entityID string, date time.Time) []*models.Affectation {
	if byDate, ok := ix.buckets[entityID]; ok {
		if as, ok := byDate[DateKey(date)]; ok {
			return as
		}
	}
	return []*models.Affectation{}
}

// Len reports the number of indexed records.
func (ix *Index) Len() int {
	n := 0
	for _, byDate := range ix.buckets {
		for _, as := range byDate {
			n += len(as)
		}
	}
	return n
}
