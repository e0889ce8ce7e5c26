package bazi

import (
	"fmt"

	"github.com/charleschoi123/bazi-destiny/timezone"
)

// Year 1984 (after Lichun) is Jia-Zi, position 0.
const yearAnchor = 1984

// 2000-01-01 is a Wu-Wu day, position 54.
const dayAnchorIndex = 54

// ZiHour selects how a birth between 23:00 and 23:59 is charted.
type ZiHour uint8

const (
	// ZiHourLate keeps the Day pillar on the calendar date and takes the
	// hour stem from the next day's stem.
	ZiHourLate ZiHour = iota
	// ZiHourNextDay advances the Day pillar itself at 23:00.
	ZiHourNextDay
)

var ziHourNames = map[ZiHour]string{
	ZiHourLate:    "late",
	ZiHourNextDay: "next-day",
}

// String returns the configuration name of the convention.
func (z ZiHour) String() string {
	if n, ok := ziHourNames[z]; ok {
		return n
	}
	return fmt.Sprintf("ZiHour(%d)", uint8(z))
}

// ParseZiHour parses "late" or "next-day".
func ParseZiHour(s string) (ZiHour, error) {
	for z, n := range ziHourNames {
		if n == s {
			return z, nil
		}
	}
	return 0, fmt.Errorf("unknown zi hour convention %q", s)
}

// Pillars holds the four pillars of a chart.
type Pillars struct {
	Year  Pillar
	Month Pillar
	Day   Pillar
	Hour  Pillar
}

// All returns the pillars in Year, Month, Day, Hour order.
func (p Pillars) All() [4]Pillar { return [4]Pillar{p.Year, p.Month, p.Day, p.Hour} }

// YearPillar returns the pillar of the sexagenary year containing day. The
// year turns at Lichun, not January 1.
func YearPillar(tt TermTable, day Day) (Pillar, error) {
	lichun, err := tt.Boundary(day.Year, Lichun)
	if err != nil {
		return Pillar{}, err
	}
	year := day.Year
	if day.Before(lichun) {
		year--
	}
	return PillarFromIndex(year - yearAnchor), nil
}

// firstMonthIndex is the position of the Yin month in a year whose stem is
// yearStem. Jia and Ji years open with Bing-Yin, Yi and Geng with Wu-Yin,
// and so on ("five tigers").
func firstMonthIndex(yearStem Stem) int { return int(yearStem)%5*12 + int(BranchYin) }

// MonthPillar returns the pillar of the solar month containing day. The
// branch comes from the solar-term interval; the stem follows the year's.
func MonthPillar(tt TermTable, day Day, year Pillar) (Pillar, error) {
	term, _, err := tt.TermAt(day)
	if err != nil {
		return Pillar{}, err
	}
	offset := mod(int(term.Branch())-int(BranchYin), int(branchCount))
	return PillarFromIndex(NextIndex(firstMonthIndex(year.Stem()), offset)), nil
}

// DayPillar returns the pillar of a calendar day. The sequence advances by
// one every day with no exceptions.
func DayPillar(day Day) Pillar {
	return PillarFromIndex(day.serial() + dayAnchorIndex)
}

// HourBranch returns the branch of the two-hour block containing hour.
// Block Zi spans 23:00-00:59.
func HourBranch(hour int) Branch { return BranchOf((hour + 1) / 2) }

// firstHourIndex is the position of the Zi hour on a day whose stem is
// dayStem. Jia and Ji days open with Jia-Zi, Yi and Geng with Bing-Zi, and
// so on ("five rats").
func firstHourIndex(dayStem Stem) int { return int(dayStem) % 5 * 12 }

// HourPillar returns the pillar of the two-hour block, given the Day pillar
// whose hour sequence the block belongs to.
func HourPillar(hourDay Pillar, hour int) Pillar {
	return PillarFromIndex(firstHourIndex(hourDay.Stem()) + int(HourBranch(hour)))
}

// Calendar derives pillars from Beijing Time.
type Calendar struct {
	terms  TermTable
	ziHour ZiHour
}

// NewCalendar returns a Calendar using the given term precision and 23:00
// convention.
func NewCalendar(p Precision, z ZiHour) Calendar {
	return Calendar{terms: NewTermTable(p), ziHour: z}
}

// Terms returns the calendar's solar-term table.
func (c Calendar) Terms() TermTable { return c.terms }

// Pillars computes the four pillars for a Beijing birth time.
func (c Calendar) Pillars(bt timezone.BeijingTime) (Pillars, error) {
	day := DayOf(bt.Time())
	hour, _ := bt.Clock()

	year, err := YearPillar(c.terms, day)
	if err != nil {
		return Pillars{}, err
	}
	month, err := MonthPillar(c.terms, day, year)
	if err != nil {
		return Pillars{}, err
	}

	dayPillar := DayPillar(day)
	hourDay := dayPillar
	if hour == 23 {
		// From 23:00 the hour sequence is the next day's.
		hourDay = PillarFromIndex(NextIndex(dayPillar.Index(), 1))
		if c.ziHour == ZiHourNextDay {
			dayPillar = hourDay
		}
	}

	return Pillars{
		Year:  year,
		Month: month,
		Day:   dayPillar,
		Hour:  HourPillar(hourDay, hour),
	}, nil
}
