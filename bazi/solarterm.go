package bazi

import (
	"fmt"
	"time"
)

// Term is one of the twelve "jie" solar terms that open a solar month. Term
// t always falls in calendar month t+1 (Xiaohan in January, Daxue in
// December).
type Term uint8

const (
	Xiaohan   Term = iota // Minor Cold, opens the Chou month
	Lichun                // Start of Spring, opens the Yin month and the year
	Jingzhe               // Awakening of Insects
	Qingming              // Clear and Bright
	Lixia                 // Start of Summer
	Mangzhong             // Grain in Ear
	Xiaoshu               // Minor Heat
	Liqiu                 // Start of Autumn
	Bailu                 // White Dew
	Hanlu                 // Cold Dew
	Lidong                // Start of Winter
	Daxue                 // Major Snow, opens the Zi month
	termCount
)

var termNames = [termCount]string{
	"Xiaohan", "Lichun", "Jingzhe", "Qingming", "Lixia", "Mangzhong",
	"Xiaoshu", "Liqiu", "Bailu", "Hanlu", "Lidong", "Daxue",
}

// String returns the pinyin name of the term.
func (t Term) String() string {
	if t >= termCount {
		return "Term(?)"
	}
	return termNames[t]
}

// Month returns the calendar month the term falls in.
func (t Term) Month() time.Month { return time.Month(t) + 1 }

// Branch returns the branch of the solar month the term opens.
func (t Term) Branch() Branch { return BranchOf(int(t) + 1) }

// Precision selects how solar-term boundary days are looked up.
type Precision uint8

const (
	// PrecisionYearly uses a per-year table for 1901-2099. Each term is
	// placed on its civil day in Beijing; the error against the true
	// instant stays under one day and the time of day is not modelled.
	PrecisionYearly Precision = iota
	// PrecisionFixedDay places every term on the same calendar day each
	// year (Lichun on February 4). Off by a day in many years.
	PrecisionFixedDay
)

var precisionNames = map[Precision]string{
	PrecisionYearly:   "yearly",
	PrecisionFixedDay: "fixed-day",
}

// String returns the configuration name of the precision level.
func (p Precision) String() string {
	if n, ok := precisionNames[p]; ok {
		return n
	}
	return fmt.Sprintf("Precision(%d)", uint8(p))
}

// ParsePrecision parses "yearly" or "fixed-day".
func ParsePrecision(s string) (Precision, error) {
	for p, n := range precisionNames {
		if n == s {
			return p, nil
		}
	}
	return 0, fmt.Errorf("unknown solar term precision %q", s)
}

// Supported year range for each precision level.
const (
	YearlyFirstYear = 1901
	YearlyLastYear  = 2099
	FixedFirstYear  = 1
	FixedLastYear   = 9999
)

var fixedDays = [termCount]uint8{6, 4, 6, 5, 6, 6, 7, 8, 8, 8, 7, 7}

// Century constants of the day-of-month approximation
// day = floor(Y*0.2422 + C) - floor(Y/4), in ten-thousandths.
var (
	termC20 = [termCount]int{61100, 46295, 63826, 55900, 63180, 65000, 79280, 83500, 84400, 90980, 82180, 79000}
	termC21 = [termCount]int{54055, 38700, 56300, 48100, 55200, 56780, 71080, 75000, 76460, 83180, 74380, 71800}
)

// Years where the approximation is known to miss by a day.
var termCorrections = map[[2]int]int{
	{1982, int(Xiaohan)}:   +1,
	{2019, int(Xiaohan)}:   -1,
	{1911, int(Lixia)}:     +1,
	{1902, int(Mangzhong)}: +1,
	{1925, int(Xiaoshu)}:   +1,
	{2016, int(Xiaoshu)}:   +1,
	{2002, int(Liqiu)}:     +1,
	{1927, int(Bailu)}:     +1,
	{2089, int(Lidong)}:    +1,
	{1954, int(Daxue)}:     +1,
}

// yearlyDays is filled once at init and only read afterwards.
var yearlyDays [YearlyLastYear - YearlyFirstYear + 1][termCount]uint8

func init() {
	for y := YearlyFirstYear; y <= YearlyLastYear; y++ {
		for t := Term(0); t < termCount; t++ {
			yearlyDays[y-YearlyFirstYear][t] = uint8(approxTermDay(y, t))
		}
	}
}

func approxTermDay(year int, t Term) int {
	y, c := year-1900, termC20[t]
	if year >= 2000 {
		y, c = year-2000, termC21[t]
	}
	// January and February precede the leap day of their own year.
	leaps := floorDiv(y, 4)
	if t <= Lichun {
		leaps = floorDiv(y-1, 4)
	}
	return (y*2422+c)/10000 - leaps + termCorrections[[2]int{year, int(t)}]
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// TermTable answers solar-term boundary queries at one precision level.
type TermTable struct {
	precision Precision
}

// NewTermTable returns the table for p.
func NewTermTable(p Precision) TermTable { return TermTable{precision: p} }

// Precision returns the table's precision level.
func (tt TermTable) Precision() Precision { return tt.precision }

// Range returns the first and last year the table covers.
func (tt TermTable) Range() (first, last int) {
	if tt.precision == PrecisionFixedDay {
		return FixedFirstYear, FixedLastYear
	}
	return YearlyFirstYear, YearlyLastYear
}

// Covers reports whether year is inside the table.
func (tt TermTable) Covers(year int) bool {
	first, last := tt.Range()
	return year >= first && year <= last
}

// Boundary returns the Beijing calendar day on which term t begins in year.
func (tt TermTable) Boundary(year int, t Term) (Day, error) {
	if t >= termCount {
		return Day{}, fmt.Errorf("bazi: invalid term %d", t)
	}
	if !tt.Covers(year) {
		first, last := tt.Range()
		return Day{}, fmt.Errorf("%w: year %d outside %d-%d (%s)", ErrSolarTermTableGap, year, first, last, tt.precision)
	}
	d := fixedDays[t]
	if tt.precision == PrecisionYearly {
		d = yearlyDays[year-YearlyFirstYear][t]
	}
	return Day{Year: year, Month: t.Month(), Day: int(d)}, nil
}

// TermAt returns the last term that began on or before day, and the year
// that term belongs to. Days before Xiaohan fall in the previous year's Daxue.
func (tt TermTable) TermAt(day Day) (Term, int, error) {
	for t := Daxue; ; t-- {
		b, err := tt.Boundary(day.Year, t)
		if err != nil {
			return 0, 0, err
		}
		if !day.Before(b) {
			return t, day.Year, nil
		}
		if t == Xiaohan {
			break
		}
	}
	return Daxue, day.Year - 1, nil
}

// next returns the first boundary strictly after day.
func (tt TermTable) next(day Day) (Day, error) {
	t, year, err := tt.TermAt(day)
	if err != nil {
		return Day{}, err
	}
	if t == Daxue {
		return tt.Boundary(year+1, Xiaohan)
	}
	return tt.Boundary(year, t+1)
}

// previous returns the last boundary on or before day.
func (tt TermTable) previous(day Day) (Day, error) {
	t, year, err := tt.TermAt(day)
	if err != nil {
		return Day{}, err
	}
	return tt.Boundary(year, t)
}
