package bazi

import "strings"

// Gender selects the direction of the luck cycles. Charts for an unknown
// gender carry no luck cycles.
type Gender uint8

const (
	GenderUnknown Gender = iota
	GenderMale
	GenderFemale
)

// ParseGender maps free-text labels onto a Gender. Anything unrecognized is
// GenderUnknown.
func ParseGender(s string) Gender {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "m", "male", "man":
		return GenderMale
	case "f", "female", "woman":
		return GenderFemale
	default:
		return GenderUnknown
	}
}

// String returns "male", "female" or "".
func (g Gender) String() string {
	switch g {
	case GenderMale:
		return "male"
	case GenderFemale:
		return "female"
	default:
		return ""
	}
}

// DefaultLuckCycles is the number of ten-year cycles charted by default.
const DefaultLuckCycles = 6

// LuckCycle is one ten-year luck period.
type LuckCycle struct {
	Number      int    // 1-based
	StartAge    int    // completed years at the start of the cycle
	StartMonths int    // additional months, 0, 4 or 8
	StartYear   int    // Beijing calendar year the cycle begins
	Pillar      Pillar // month pillar stepped Number times
}

// LuckCycles charts n ten-year cycles. Cycles run forward from the Month
// pillar for a Yang-year male or Yin-year female and backward otherwise.
// The first cycle starts after the day distance to the next (forward) or
// previous (backward) month boundary, counting three days as one year and
// a remaining day as four months.
func LuckCycles(tt TermTable, birth Day, p Pillars, g Gender, n int) ([]LuckCycle, bool, error) {
	if g == GenderUnknown || n <= 0 {
		return nil, false, nil
	}
	forward := p.Year.Stem().Yang() == (g == GenderMale)

	var days int
	if forward {
		b, err := tt.next(birth)
		if err != nil {
			return nil, forward, err
		}
		days = birth.DaysUntil(b)
	} else {
		b, err := tt.previous(birth)
		if err != nil {
			return nil, forward, err
		}
		days = b.DaysUntil(birth)
	}
	years, months := days/3, days%3*4

	step := 1
	if !forward {
		step = -1
	}
	cycles := make([]LuckCycle, n)
	for i := range cycles {
		age := years + 10*i
		cycles[i] = LuckCycle{
			Number:      i + 1,
			StartAge:    age,
			StartMonths: months,
			StartYear:   birth.Year + age,
			Pillar:      PillarFromIndex(NextIndex(p.Month.Index(), step*(i+1))),
		}
	}
	return cycles, forward, nil
}
