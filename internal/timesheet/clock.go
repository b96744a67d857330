package timesheet

import (
	"fmt"
	"math"
	"time"

	"github.com/xuri/excelize/v2"
)

// Clock is a time-of-day value with second precision.
type Clock struct {
	Hour   int
	Minute int
	Second int
}

// clockLayouts are the accepted textual forms, tried in order. The CLI
// passes hh:mm; cells read back from a workbook carry seconds.
var clockLayouts = []string{"15:04", "15:04:05"}

// ParseClock parses a time-of-day like "09:00" or "09:00:30".
func ParseClock(s string) (Clock, error) {
	for _, layout := range clockLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Clock{Hour: t.Hour(), Minute: t.Minute(), Second: t.Second()}, nil
		}
	}
	return Clock{}, fmt.Errorf("invalid time %q", s)
}

// Now returns the current wall-clock time truncated to minute precision.
func Now() Clock {
	t := time.Now()
	return Clock{Hour: t.Hour(), Minute: t.Minute()}
}

// Duration is the offset of the clock from midnight. excelize stores a
// time.Duration cell value as a time-formatted serial fraction, which is
// the closest xlsx analog of a bare time-of-day.
func (c Clock) Duration() time.Duration {
	return time.Duration(c.Hour)*time.Hour +
		time.Duration(c.Minute)*time.Minute +
		time.Duration(c.Second)*time.Second
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", c.Hour, c.Minute, c.Second)
}

// clockFromSerial extracts the time-of-day from an Excel serial value,
// rounding to the nearest second. Cells holding full datetimes yield their
// time component.
func clockFromSerial(serial float64) Clock {
	frac := serial - math.Floor(serial)
	secs := int(math.Round(frac*86400)) % 86400
	return Clock{Hour: secs / 3600, Minute: secs % 3600 / 60, Second: secs % 60}
}

// dayFromSerial converts an Excel serial value to the date it falls on.
func dayFromSerial(serial float64) (time.Time, error) {
	t, err := excelize.ExcelDateToTime(serial, false)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}

// ParseDay parses a date like "2024-03-01" into a date-only value.
func ParseDay(s string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid day %q", s)
	}
	return t, nil
}

// Today returns the current date at invocation time.
func Today() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
