package planning

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chantier-planning/internal/models"
)

func aff(id int64, owner, chantier string, d time.Time) *models.Affectation {
	return &models.Affectation{ID: id, OwnerID: owner, ChantierID: chantier, Date: d}
}

func TestBuildIndexLookup(t *testing.T) {
	d := date(2024, time.March, 15)
	affs := []*models.Affectation{
		aff(1, "u1", "c1", d),
		aff(2, "u2", "c1", d),
		aff(3, "u1", "c2", d),
		aff(4, "u1", "c1", d.AddDate(0, 0, 1)),
	}

	ix := BuildIndex(affs)

	got := ix.Lookup("u1", d)
	require.Len(t, got, 2)
	// Bucket order is input order, it drives the stacking in a cell.
	assert.Equal(t, int64(1), got[0].ID)
	assert.Equal(t, int64(3), got[1].ID)

	assert.Len(t, ix.Lookup("u1", d.AddDate(0, 0, 1)), 1)
	assert.Len(t, ix.Lookup("u2", d), 1)
}

func TestLookupMissingBucketIsEmptyNotNil(t *testing.T) {
	ix := BuildIndex(nil)
	got := ix.Lookup("nobody", date(2024, time.March, 15))
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestBuildIndexGroupsByDateKeyNotTime(t *testing.T) {
	morning := time.Date(2024, time.March, 15, 8, 0, 0, 0, time.UTC)
	evening := time.Date(2024, time.March, 15, 20, 0, 0, 0, time.UTC)
	ix := BuildIndex([]*models.Affectation{
		aff(1, "u1", "c1", morning),
		aff(2, "u1", "c1", evening),
	})
	assert.Len(t, ix.Lookup("u1", date(2024, time.March, 15)), 2)
}

func TestBuildIndexSkipsZeroDates(t *testing.T) {
	ix := BuildIndex([]*models.Affectation{
		aff(1, "u1", "c1", time.Time{}),
		aff(2, "u1", "c1", date(2024, time.March, 15)),
		nil,
	})
	assert.Equal(t, 1, ix.Len())
}

func TestBuildIndexIdempotent(t *testing.T) {
	d := date(2024, time.March, 15)
	affs := []*models.Affectation{
		aff(1, "u1", "c1", d),
		aff(2, "u1", "c1", d),
		aff(3, "u2", "c1", d),
	}
	first := BuildIndex(affs)

	// Rebuild from the first index's flattened cells.
	var flat []*models.Affectation
	flat = append(flat, first.Lookup("u1", d)...)
	flat = append(flat, first.Lookup("u2", d)...)
	second := BuildIndex(flat)

	assert.Equal(t, first.Len(), second.Len())
	assert.Equal(t, first.Lookup("u1", d), second.Lookup("u1", d))
	assert.Equal(t, first.Lookup("u2", d), second.Lookup("u2", d))
}

func TestBuildIndexByChantier(t *testing.T) {
	d := date(2024, time.March, 15)
	ix := BuildIndexBy([]*models.Affectation{
		aff(1, "u1", "c1", d),
		aff(2, "u2", "c1", d),
		aff(3, "u1", "c2", d),
	}, ByChantier)

	assert.Len(t, ix.Lookup("c1", d), 2)
	assert.Len(t, ix.Lookup("c2", d), 1)
	assert.Empty(t, ix.Lookup("u1", d))
}
