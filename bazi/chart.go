// Package bazi computes Four Pillars ("BaZi") birth charts.
//
// A local birth date and time is converted to Beijing Time (UTC+8) and the
// Year, Month, Day and Hour pillars of the sexagenary cycle are derived from
// it. The Year pillar turns at Lichun and the Month pillar at the twelve
// month-opening solar terms, looked up in a fixed table rather than computed
// from an ephemeris. The chart also carries the five-element distribution of
// its eight stems and branches and the dominant element.
//
// Computation is pure: the same input always yields the same chart, nothing
// is cached, and a Calculator is safe for concurrent use.
//
//	chart, err := bazi.Compute(bazi.BirthInput{
//		Date: "1990-05-15", Time: "14:30",
//		City: "Shanghai", Country: "China",
//	})
//	chart.Pillars.Year.Chinese() // "庚午"
package bazi

import (
	"fmt"
	"strings"
	"time"

	"github.com/charleschoi123/bazi-destiny/timezone"
)

// BirthInput is the raw birth data of one chart request.
type BirthInput struct {
	Name    string // label only
	Gender  string // "male"/"female" enable luck cycles
	Date    string // YYYY-MM-DD, local to the birth place
	Time    string // HH:MM (24h), local to the birth place
	City    string
	Country string

	// Zone optionally names an IANA zone that overrides the place lookup.
	Zone string
	// Resolved, when its Name is set, is used as is. Callers that geocode
	// the place themselves pass the result here.
	Resolved timezone.Zone
}

// ZoneResolver maps a birth place to a time zone. It must not fail; an
// unknown place yields a zone whose Fallback method reports true.
type ZoneResolver interface {
	Resolve(city, country, override string) timezone.Zone
}

// Chart is a computed birth chart.
type Chart struct {
	Name   string
	Gender Gender

	Beijing  timezone.BeijingTime
	Timezone timezone.Resolution

	Pillars  Pillars
	Elements ElementCounts
	Dominant Element
	TenGods  TenGods

	// Luck is empty when the gender is unknown or the neighbouring solar
	// term lies outside the table.
	Luck        []LuckCycle
	LuckForward bool

	Precision Precision
	ZiHour    ZiHour
}

// Assemble packages pillars computed for bt into a Chart, adding the element
// counts, dominant element and ten gods.
func Assemble(bt timezone.BeijingTime, res timezone.Resolution, p Pillars) Chart {
	counts := CountElements(p.Year, p.Month, p.Day, p.Hour)
	return Chart{
		Beijing:  bt,
		Timezone: res,
		Pillars:  p,
		Elements: counts,
		Dominant: counts.Dominant(),
		TenGods:  TenGodsOf(p),
	}
}

// Option configures a Calculator.
type Option func(*Calculator)

// WithPrecision selects the solar-term precision level.
func WithPrecision(p Precision) Option {
	return func(c *Calculator) { c.precision = p }
}

// WithZiHour selects the 23:00 convention.
func WithZiHour(z ZiHour) Option {
	return func(c *Calculator) { c.ziHour = z }
}

// WithResolver replaces the built-in gazetteer resolver.
func WithResolver(r ZoneResolver) Option {
	return func(c *Calculator) { c.resolver = r }
}

// WithLuckCycles sets how many luck cycles are charted; 0 disables them.
func WithLuckCycles(n int) Option {
	return func(c *Calculator) { c.luckCycles = n }
}

// Calculator computes charts. Create one with New; it is immutable and safe
// for concurrent use.
type Calculator struct {
	precision  Precision
	ziHour     ZiHour
	resolver   ZoneResolver
	luckCycles int
	cal        Calendar
}

// New returns a Calculator with yearly solar-term precision, the late-Zi
// convention, the built-in resolver and DefaultLuckCycles luck cycles.
func New(opts ...Option) *Calculator {
	c := &Calculator{
		precision:  PrecisionYearly,
		ziHour:     ZiHourLate,
		resolver:   timezone.Resolver{},
		luckCycles: DefaultLuckCycles,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.cal = NewCalendar(c.precision, c.ziHour)
	return c
}

var defaultCalc = New()

// Compute computes a chart with the default Calculator.
func Compute(in BirthInput) (Chart, error) { return defaultCalc.Compute(in) }

// Compute converts the birth time to Beijing Time and derives the chart.
// It fails with ErrInvalidDateTime or ErrSolarTermTableGap; an unresolved
// place is not an error and is reported in Chart.Timezone.Fallback.
func (c *Calculator) Compute(in BirthInput) (Chart, error) {
	local, err := ParseCivil(in.Date, in.Time)
	if err != nil {
		return Chart{}, err
	}

	zone := in.Resolved
	if zone.Name == "" {
		zone = c.resolver.Resolve(in.City, in.Country, in.Zone)
	}
	bt, res := timezone.ToBeijing(local, zone)

	p, err := c.cal.Pillars(bt)
	if err != nil {
		return Chart{}, err
	}

	chart := Assemble(bt, res, p)
	chart.Name = in.Name
	chart.Gender = ParseGender(in.Gender)
	chart.Precision = c.precision
	chart.ZiHour = c.ziHour

	luck, forward, err := LuckCycles(c.cal.Terms(), DayOf(bt.Time()), p, chart.Gender, c.luckCycles)
	if err == nil {
		chart.Luck, chart.LuckForward = luck, forward
	}
	return chart, nil
}

var (
	dateLayouts = []string{"2006-01-02"}
	timeLayouts = []string{"15:04", "15:04:05"}
)

// ParseCivil parses a YYYY-MM-DD date and HH:MM time. Seconds are accepted
// and dropped.
func ParseCivil(date, clock string) (timezone.Civil, error) {
	date, clock = strings.TrimSpace(date), strings.TrimSpace(clock)
	if date == "" || clock == "" {
		return timezone.Civil{}, fmt.Errorf("%w: date and time are required", ErrInvalidDateTime)
	}
	var d, t time.Time
	var err error
	for _, l := range dateLayouts {
		if d, err = time.Parse(l, date); err == nil {
			break
		}
	}
	if err != nil {
		return timezone.Civil{}, fmt.Errorf("%w: date %q, want YYYY-MM-DD", ErrInvalidDateTime, date)
	}
	for _, l := range timeLayouts {
		if t, err = time.Parse(l, clock); err == nil {
			break
		}
	}
	if err != nil {
		return timezone.Civil{}, fmt.Errorf("%w: time %q, want 24-hour HH:MM", ErrInvalidDateTime, clock)
	}
	if d.Year() < 1 {
		return timezone.Civil{}, fmt.Errorf("%w: year %d before 0001", ErrInvalidDateTime, d.Year())
	}
	return timezone.Civil{
		Year:   d.Year(),
		Month:  d.Month(),
		Day:    d.Day(),
		Hour:   t.Hour(),
		Minute: t.Minute(),
	}, nil
}
