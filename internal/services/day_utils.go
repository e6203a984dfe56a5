package services

import "time"

const DateLayout = "2006-01-02"

func DateAtLocation(value time.Time, location *time.Location) time.Time {
	if location == nil {
		location = time.UTC
	}
	localized := value.In(location)
	year, month, day := localized.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, location)
}

// CalendarDate keeps the wall-clock date of value and pins it to midnight UTC,
// which is how dates are stored and compared.
func CalendarDate(value time.Time) time.Time {
	year, month, day := value.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func ParseCalendarDate(raw string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, raw, time.UTC)
}

func FormatCalendarDate(value time.Time) string {
	if value.IsZero() {
		return ""
	}
	return CalendarDate(value).Format(DateLayout)
}

const secondsPerDay = 24 * 60 * 60

// DaysBetween counts whole calendar days from start to end; negative when end is earlier.
// It works on Unix seconds because time.Duration saturates after about 292 years.
func DaysBetween(start time.Time, end time.Time) int {
	return int((CalendarDate(end).Unix() - CalendarDate(start).Unix()) / secondsPerDay)
}

func DayRange(value time.Time) (time.Time, time.Time) {
	start := CalendarDate(value)
	return start, start.AddDate(0, 0, 1)
}

// Today resolves the current calendar date in location.
func Today(now time.Time, location *time.Location) time.Time {
	return CalendarDate(DateAtLocation(now, location))
}
