package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chantier-planning/internal/db"
	"chantier-planning/internal/models"
	"chantier-planning/internal/planning"
)

func TestAffectationRecordRoundTrip(t *testing.T) {
	end := time.Date(2024, time.June, 28, 0, 0, 0, 0, time.UTC)
	a := &models.Affectation{
		OwnerID:    "u1",
		ChantierID: "c1",
		Date:       time.Date(2024, time.March, 11, 0, 0, 0, 0, time.UTC),
		StartTime:  "08:00",
		EndTime:    "16:30",
		Note:       "coulage dalle",
		Recurrence: &models.Recurrence{
			Weekdays: []time.Weekday{time.Monday, time.Thursday},
			EndDate:  &end,
		},
	}

	record, err := affectationToRecord(a)
	require.NoError(t, err)
	assert.True(t, record.StartTime.Valid)
	assert.Equal(t, "08:00", record.StartTime.String)
	assert.NotEmpty(t, record.Recurrence)

	got := affectationFromRecord(record)
	assert.Equal(t, a.OwnerID, got.OwnerID)
	assert.Equal(t, a.ChantierID, got.ChantierID)
	assert.Equal(t, a.Note, got.Note)
	require.NotNil(t, got.Recurrence)
	assert.Equal(t, []time.Weekday{time.Monday, time.Thursday}, got.Recurrence.Weekdays)
	require.NotNil(t, got.Recurrence.EndDate)
	assert.True(t, got.Recurrence.EndDate.Equal(end))
}

func TestAffectationToRecordNullColumns(t *testing.T) {
	a := &models.Affectation{
		OwnerID:    "u1",
		ChantierID: "c1",
		Date:       time.Date(2024, time.March, 11, 0, 0, 0, 0, time.UTC),
	}

	record, err := affectationToRecord(a)
	require.NoError(t, err)
	assert.False(t, record.StartTime.Valid)
	assert.False(t, record.EndTime.Valid)
	assert.False(t, record.Note.Valid)
	assert.Nil(t, record.Recurrence)
}

func TestAffectationFromRecordBadRecurrence(t *testing.T) {
	got := affectationFromRecord(db.Affectation{
		ID:         7,
		OwnerID:    "u1",
		ChantierID: "c1",
		Date:       time.Date(2024, time.March, 11, 0, 0, 0, 0, time.UTC),
		Recurrence: []byte("{not json"),
	})
	// Unreadable column degrades to a single-occurrence record.
	assert.Nil(t, got.Recurrence)
	assert.Equal(t, int64(7), got.ID)
}

func TestReassignColumns(t *testing.T) {
	owner, chantier := reassignColumns(planning.MutationIntent{
		AffectationID: 1, NewDate: "2024-03-16", NewEntityID: "u2", Axis: "users",
	})
	assert.True(t, owner.Valid)
	assert.Equal(t, "u2", owner.String)
	assert.False(t, chantier.Valid)

	owner, chantier = reassignColumns(planning.MutationIntent{
		AffectationID: 1, NewDate: "2024-03-16", NewEntityID: "c2", Axis: "chantiers",
	})
	assert.False(t, owner.Valid)
	assert.True(t, chantier.Valid)
	assert.Equal(t, "c2", chantier.String)

	// Date-only move: both columns stay NULL for the COALESCE.
	owner, chantier = reassignColumns(planning.MutationIntent{AffectationID: 1, NewDate: "2024-03-16"})
	assert.False(t, owner.Valid)
	assert.False(t, chantier.Valid)
}
