package bazi

import (
	"fmt"
	"time"
)

// Day is a proleptic Gregorian calendar date. It is comparable and is the
// granularity at which solar-term boundaries are resolved.
type Day struct {
	Year  int
	Month time.Month
	Day   int
}

// DayOf returns the calendar date of t in t's own location.
func DayOf(t time.Time) Day {
	y, m, d := t.Date()
	return Day{Year: y, Month: m, Day: d}
}

func (d Day) toTime() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// Before reports whether d is earlier than other.
func (d Day) Before(other Day) bool {
	if d.Year != other.Year {
		return d.Year < other.Year
	}
	if d.Month != other.Month {
		return d.Month < other.Month
	}
	return d.Day < other.Day
}

// AddDays returns the date n days after d.
func (d Day) AddDays(n int) Day { return DayOf(d.toTime().AddDate(0, 0, n)) }

// DaysUntil returns the number of days from d to other; negative when other
// is earlier.
func (d Day) DaysUntil(other Day) int { return other.serial() - d.serial() }

// serial counts days since 2000-01-01.
func (d Day) serial() int {
	return floorDiv(int(d.toTime().Unix()), 86400) - epoch2000
}

// Unix day number of 2000-01-01.
const epoch2000 = 10957

// String formats d as YYYY-MM-DD.
func (d Day) String() string { return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day) }
