package utils

import "time"

// LoadLocation resolves an IANA zone name, falling back to UTC for an empty or unknown name.
func LoadLocation(name string) *time.Location {
	if name == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}

// CalendarDay returns t's calendar day, in t's own location, as midnight UTC.
// Calendar days are kept in UTC because local midnight does not exist on some DST transitions.
func CalendarDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// TruncateToDay returns the calendar day of t as seen in loc, as midnight UTC.
func TruncateToDay(t time.Time, loc *time.Location) time.Time {
	return CalendarDay(t.In(loc))
}

// ParseDate parses a YYYY-MM-DD calendar date as midnight UTC.
func ParseDate(value string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", value, time.UTC)
}

// AddDays steps a calendar day by n days.
func AddDays(day time.Time, n int) time.Time {
	day = CalendarDay(day)
	return time.Date(day.Year(), day.Month(), day.Day()+n, 0, 0, 0, 0, time.UTC)
}

// DaysBetweenInclusive counts calendar days from start to end, both included.
func DaysBetweenInclusive(start, end time.Time) int {
	s, e := CalendarDay(start), CalendarDay(end)
	if s.After(e) {
		return 0
	}
	return int(e.Sub(s).Hours()/24) + 1
}
