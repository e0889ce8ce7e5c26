// Package timezone resolves a free-text birth place to a UTC offset and
// converts local birth times to Beijing Time (UTC+8).
//
// Resolution never fails: a place that cannot be matched resolves to UTC+0
// and the returned Resolution carries Fallback=true so callers can warn the
// user instead of presenting a silently wrong offset.
package timezone

import (
	"fmt"
	"time"

	// Bundled so zone rules do not depend on the host's zoneinfo files.
	_ "time/tzdata"
)

// beijingZone is China Standard Time. It is fixed at UTC+8; the 1986-1991
// summer-time experiment is not applied.
var beijingZone = time.FixedZone("Asia/Shanghai", 8*60*60)

// Source records how a Zone was chosen.
type Source string

const (
	SourceExplicit Source = "explicit" // caller supplied an IANA name
	SourceCity     Source = "city"     // matched a gazetteer city
	SourceCountry  Source = "country"  // country observes a single zone
	SourceGeocoded Source = "geocoded" // derived from geocoded coordinates
	SourceFallback Source = "fallback" // unresolved; UTC+0
)

// FallbackZoneName is the zone used when a place cannot be resolved.
const FallbackZoneName = "UTC"

// Zone is a resolved IANA time zone together with how it was found.
type Zone struct {
	Name   string
	Source Source
	loc    *time.Location
}

// FallbackZone returns the UTC+0 zone used for unresolved places.
func FallbackZone() Zone {
	return Zone{Name: FallbackZoneName, Source: SourceFallback, loc: time.UTC}
}

// LoadZone returns the zone with the given IANA name.
func LoadZone(name string, src Source) (Zone, error) {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return Zone{}, fmt.Errorf("load zone %q: %w", name, err)
	}
	return Zone{Name: name, Source: src, loc: loc}, nil
}

// Location returns the zone's rules. The zero Zone behaves as UTC.
func (z Zone) Location() *time.Location {
	if z.loc == nil {
		return time.UTC
	}
	return z.loc
}

// Fallback reports whether z is the unresolved-place fallback.
func (z Zone) Fallback() bool { return z.Source == SourceFallback || z.loc == nil }

// Civil is a wall-clock date and time with no zone attached.
type Civil struct {
	Year   int
	Month  time.Month
	Day    int
	Hour   int
	Minute int
}

// In attaches loc to the civil time. Wall times skipped by a DST transition
// are normalized forward by the time package; repeated wall times take the
// first occurrence.
func (c Civil) In(loc *time.Location) time.Time {
	return time.Date(c.Year, c.Month, c.Day, c.Hour, c.Minute, 0, 0, loc)
}

// BeijingTime is a calendar date and time of day in UTC+8.
type BeijingTime struct {
	t time.Time
}

// NewBeijingTime builds a BeijingTime from Beijing wall-clock fields.
func NewBeijingTime(year int, month time.Month, day, hour, minute int) BeijingTime {
	return BeijingTime{t: time.Date(year, month, day, hour, minute, 0, 0, beijingZone)}
}

// BeijingTimeOf returns the Beijing wall-clock time of the instant t.
func BeijingTimeOf(t time.Time) BeijingTime {
	return BeijingTime{t: t.In(beijingZone)}
}

// Time returns the instant in the UTC+8 location.
func (b BeijingTime) Time() time.Time { return b.t }

// Date returns the Beijing calendar date.
func (b BeijingTime) Date() (year int, month time.Month, day int) { return b.t.Date() }

// Clock returns the Beijing hour and minute.
func (b BeijingTime) Clock() (hour, minute int) {
	h, m, _ := b.t.Clock()
	return h, m
}

// AddDays returns b shifted by n calendar days.
func (b BeijingTime) AddDays(n int) BeijingTime { return BeijingTime{t: b.t.AddDate(0, 0, n)} }

// IsZero reports whether b is unset.
func (b BeijingTime) IsZero() bool { return b.t.IsZero() }

// String formats b as RFC 3339 with the +08:00 offset.
func (b BeijingTime) String() string { return b.t.Format(time.RFC3339) }

// Resolution describes the conversion of one local birth time.
type Resolution struct {
	Zone     string        // IANA name, or "UTC" for the fallback
	Source   Source        // how the zone was chosen
	Offset   time.Duration // UTC offset in effect at the local time
	Fallback bool          // true when the place was not resolved
	Local    time.Time     // the local birth time in its zone
}

// OffsetLabel formats the offset as "UTC+05:30".
func (r Resolution) OffsetLabel() string { return FormatOffset(r.Offset) }

// FormatOffset formats d as "UTC+hh:mm" or "UTC-hh:mm".
func FormatOffset(d time.Duration) string {
	sign := '+'
	if d < 0 {
		sign = '-'
		d = -d
	}
	mins := int(d / time.Minute)
	return fmt.Sprintf("UTC%c%02d:%02d", sign, mins/60, mins%60)
}

// ToBeijing converts the local civil time c in zone z to Beijing Time.
// The result equals c + (8h - offset), with date rollover normalized.
func ToBeijing(c Civil, z Zone) (BeijingTime, Resolution) {
	local := c.In(z.Location())
	_, off := local.Zone()
	res := Resolution{
		Zone:     z.Name,
		Source:   z.Source,
		Offset:   time.Duration(off) * time.Second,
		Fallback: z.Fallback(),
		Local:    local,
	}
	if res.Zone == "" {
		res.Zone = FallbackZoneName
		res.Source = SourceFallback
	}
	return BeijingTimeOf(local), res
}
