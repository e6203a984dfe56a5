package services

import (
	"errors"
	"strings"
	"time"
)

const MaxLogRangeDays = 366

var (
	ErrRangeFromDateInvalid = errors.New("invalid from date")
	ErrRangeToDateInvalid   = errors.New("invalid to date")
	ErrRangeInvalid         = errors.New("invalid date range")
)

// ParseLogRange reads a from/to pair of calendar dates. A missing bound
// defaults to a window of defaultDays ending today.
func ParseLogRange(rawFrom string, rawTo string, today time.Time, defaultDays int) (time.Time, time.Time, error) {
	to := CalendarDate(today)
	if raw := strings.TrimSpace(rawTo); raw != "" {
		parsed, err := ParseCalendarDate(raw)
		if err != nil {
			return time.Time{}, time.Time{}, ErrRangeToDateInvalid
		}
		to = parsed
	}

	from := to.AddDate(0, 0, -(defaultDays - 1))
	if raw := strings.TrimSpace(rawFrom); raw != "" {
		parsed, err := ParseCalendarDate(raw)
		if err != nil {
			return time.Time{}, time.Time{}, ErrRangeFromDateInvalid
		}
		from = parsed
	}

	if to.Before(from) || DaysBetween(from, to) >= MaxLogRangeDays {
		return time.Time{}, time.Time{}, ErrRangeInvalid
	}
	return from, to, nil
}
