package domain

import "time"

const calendarDayLayout = "2006-01-02"

// CalendarDay is a date with the time of day truncated, e.g. "2024-05-01".
type CalendarDay string

// DayOf returns the local calendar day of t, whatever location t carries.
func DayOf(t time.Time) CalendarDay {
	return CalendarDay(t.In(time.Local).Format(calendarDayLayout))
}

func ParseCalendarDay(raw string) (CalendarDay, error) {
	if _, err := time.Parse(calendarDayLayout, raw); err != nil {
		return "", err
	}
	return CalendarDay(raw), nil
}

func (d CalendarDay) String() string {
	return string(d)
}

// Bounds returns [start, end) of the day in loc.
func (d CalendarDay) Bounds(loc *time.Location) (time.Time, time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	start, err := time.ParseInLocation(calendarDayLayout, string(d), loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, start.AddDate(0, 0, 1), nil
}

// DayNumber counts days since 1970-01-01 for the local calendar date of t.
// DST shifts do not affect the result.
func DayNumber(t time.Time) int64 {
	year, month, day := t.In(time.Local).Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC).Unix() / secondsPerDay
}

const secondsPerDay = 24 * 60 * 60
