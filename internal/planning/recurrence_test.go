package planning

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chantier-planning/internal/models"
)

func TestExpandWeeklyRecurrence(t *testing.T) {
	tpl := aff(1, "u1", "c1", date(2024, time.March, 11)) // a Monday
	tpl.Recurrence = &models.Recurrence{
		Weekdays: []time.Weekday{time.Monday, time.Wednesday},
	}

	// Two full weeks.
	got := ExpandRecurrence(tpl, date(2024, time.March, 11), date(2024, time.March, 24))

	require.Len(t, got, 4)
	var keys []string
	for _, a := range got {
		keys = append(keys, DateKey(a.Date))
		assert.Nil(t, a.Recurrence, "occurrences are single-occurrence records")
		assert.Equal(t, "u1", a.OwnerID)
		assert.Equal(t, "c1", a.ChantierID)
	}
	assert.Equal(t, []string{"2024-03-11", "2024-03-13", "2024-03-18", "2024-03-20"}, keys)
}

func TestExpandClipsToWindow(t *testing.T) {
	tpl := aff(1, "u1", "c1", date(2024, time.March, 11))
	tpl.Recurrence = &models.Recurrence{Weekdays: []time.Weekday{time.Monday}}

	// Window covers one week only; later Mondays are not materialized even
	// though the template has no end date.
	got := ExpandRecurrence(tpl, date(2024, time.March, 11), date(2024, time.March, 17))
	require.Len(t, got, 1)
	assert.Equal(t, "2024-03-11", DateKey(got[0].Date))
}

func TestExpandHonorsEndDate(t *testing.T) {
	end := date(2024, time.March, 18)
	tpl := aff(1, "u1", "c1", date(2024, time.March, 11))
	tpl.Recurrence = &models.Recurrence{
		Weekdays: []time.Weekday{time.Monday},
		EndDate:  &end,
	}

	got := ExpandRecurrence(tpl, date(2024, time.March, 1), date(2024, time.March, 31))
	require.Len(t, got, 2)
	assert.Equal(t, "2024-03-11", DateKey(got[0].Date))
	assert.Equal(t, "2024-03-18", DateKey(got[1].Date))
}

func TestExpandNonRecurringPassthrough(t *testing.T) {
	tpl := aff(1, "u1", "c1", date(2024, time.March, 12))

	inside := ExpandRecurrence(tpl, date(2024, time.March, 11), date(2024, time.March, 17))
	require.Len(t, inside, 1)
	assert.Equal(t, "2024-03-12", DateKey(inside[0].Date))

	outside := ExpandRecurrence(tpl, date(2024, time.April, 1), date(2024, time.April, 7))
	assert.Empty(t, outside)
}

func TestExpandInvalidInputs(t *testing.T) {
	assert.Empty(t, ExpandRecurrence(nil, date(2024, time.March, 11), date(2024, time.March, 17)))

	tpl := aff(1, "u1", "c1", date(2024, time.March, 12))
	assert.Empty(t, ExpandRecurrence(tpl, date(2024, time.March, 17), date(2024, time.March, 11)))
}
