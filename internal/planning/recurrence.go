package planning

import (
	"time"

	"github.com/teambition/rrule-go"

	"chantier-planning/internal/models"
)

// Safety cap so a template with an open end date cannot explode a window.
const maxOccurrencesPerTemplate = 366

// ExpandRecurrence materializes a weekly recurring template into
// single-occurrence affectations inside [windowStart, windowEnd]. Occurrences
// outside the window are clipped, not rendered as partial bars; the template
// reappears when the window moves. A template without a recurrence descriptor
// expands to itself when its date falls in the window.
//
// The grid never consumes templates directly, only the materialized records.
func ExpandRecurrence(tpl *models.Affectation, windowStart, windowEnd time.Time) []*models.Affectation {
	if tpl == nil || tpl.Date.IsZero() || windowEnd.Before(windowStart) {
		return nil
	}

	if tpl.Recurrence == nil || len(tpl.Recurrence.Weekdays) == 0 {
		if inWindow(tpl.Date, windowStart, windowEnd) {
			return []*models.Affectation{occurrenceOf(tpl, tpl.Date)}
		}
		return nil
	}

	opt := rrule.ROption{
		Freq:      rrule.WEEKLY,
		Dtstart:   startOfDay(tpl.Date),
		Byweekday: toRRuleWeekdays(tpl.Recurrence.Weekdays),
	}
	if end := tpl.Recurrence.EndDate; end != nil {
		opt.Until = startOfDay(*end).Add(24*time.Hour - time.Second)
	}

	rule, err := rrule.NewRRule(opt)
	if err != nil {
		return nil
	}

	occurrences := rule.Between(startOfDay(windowStart), startOfDay(windowEnd).Add(24*time.Hour-time.Second), true)
	if len(occurrences) > maxOccurrencesPerTemplate {
		occurrences = occurrences[:maxOccurrencesPerTemplate]
	}

	out := make([]*models.Affectation, 0, len(occurrences))
	for _, occ := range occurrences {
		out = append(out, occurrenceOf(tpl, occ))
	}
	return out
}

func occurrenceOf(tpl *models.Affectation, date time.Time) *models.Affectation {
	occ := *tpl
	occ.Date = date
	occ.Recurrence = nil
	return &occ
}

func inWindow(t, start, end time.Time) bool {
	k := DateKey(t)
	return k >= DateKey(start) && k <= DateKey(end)
}

func toRRuleWeekdays(days []time.Weekday) []rrule.Weekday {
	table := map[time.Weekday]rrule.Weekday{
		time.Monday:    rrule.MO,
		time.Tuesday:   rrule.TU,
		time.Wednesday: rrule.WE,
		time.Thursday:  rrule.TH,
		time.Friday:    rrule.FR,
		time.Saturday:  rrule.SA,
		time.Sunday:    rrule.SU,
	}
	out := make([]rrule.Weekday, 0, len(days))
	for _, d := range days {
		out = append(out, table[d])
	}
	return out
}
