package planning

import "time"

type ViewMode string

const (
	ViewWeek  ViewMode = "week"
	ViewMonth ViewMode = "month"
)

const dateKeyLayout = "2006-01-02"

// DayColumn is one rendered grid column.
type DayColumn struct {
	Date      time.Time `json:"date"`
	Key       string    `json:"key"`
	IsToday   bool      `json:"is_today"`
	IsWeekend bool      `json:"is_weekend"`
}

// DateKey normalizes a timestamp to the canonical YYYY-MM-DD grouping key.
// Time-of-day and sub-day fields never influence the key.
func DateKey(t time.Time) string {
	return t.Format(dateKeyLayout)
}

// BuildDays returns the ordered day columns for the grid: the ISO week
// (Monday start) containing anchor in week view, or every day of anchor's
// calendar month in month view. Saturdays and Sundays are dropped when
// includeWeekends is false.
func BuildDays(anchor time.Time, view ViewMode, includeWeekends bool) []DayColumn {
	var start, end time.Time

	switch view {
	case ViewMonth:
		start = time.Date(anchor.Year(), anchor.Month(), 1, 0, 0, 0, 0, anchor.Location())
		end = start.AddDate(0, 1, -1)
	default:
		// ISO week: Monday = 1 .. Sunday = 7.
		wd := int(anchor.Weekday())
		if wd == 0 {
			wd = 7
		}
		start = startOfDay(anchor).AddDate(0, 0, 1-wd)
		end = start.AddDate(0, 0, 6)
	}

	today := DateKey(time.Now())

	var days []DayColumn
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		weekend := d.Weekday() == time.Saturday || d.Weekday() == time.Sunday
		if weekend && !includeWeekends {
			continue
		}
		key := DateKey(d)
		days = append(days, DayColumn{
			Date:      d,
			Key:       key,
			IsToday:   key == today,
			IsWeekend: weekend,
		})
	}
	return days
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
