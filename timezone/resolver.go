package timezone

import "strings"

// Resolver maps a free-text city/country pair to a Zone using the built-in
// gazetteer. The zero value is ready to use and safe for concurrent use.
type Resolver struct{}

// Resolve picks the zone for a birth place. Lookup order:
//
//  1. override, when it names a loadable IANA zone;
//  2. a gazetteer city, restricted to the country when the country is known;
//  3. the country's zone, when the country observes only one;
//  4. the UTC+0 fallback.
//
// A city that exists only in another country than the one given is not
// used: "Paris, United States" does not resolve to Europe/Paris.
func (Resolver) Resolve(city, country, override string) Zone {
	if name := strings.TrimSpace(override); name != "" {
		if z, err := LoadZone(name, SourceExplicit); err == nil {
			return z
		}
	}

	code := ""
	countryGiven := strings.TrimSpace(country) != ""
	if c, ok := LookupCountry(country); ok {
		code = c.Code
	}

	if strings.TrimSpace(city) != "" && (code != "" || !countryGiven) {
		if c, ok := LookupCity(city, code); ok {
			if z, err := LoadZone(c.Zone, SourceCity); err == nil {
				return z
			}
		}
	}

	if code != "" {
		if c, _ := LookupCountry(code); c.Zone != "" {
			if z, err := LoadZone(c.Zone, SourceCountry); err == nil {
				return z
			}
		}
	}
	return FallbackZone()
}

// Known reports whether Resolve would find a zone without falling back.
func (r Resolver) Known(city, country string) bool {
	return !r.Resolve(city, country, "").Fallback()
}

// ZoneForCoordinates picks a zone for geocoded coordinates in countryCode:
// the country's single zone if it has one, otherwise the zone of the
// nearest gazetteer city in that country.
func ZoneForCoordinates(countryCode string, lat, lon float64) (Zone, bool) {
	code := strings.ToUpper(strings.TrimSpace(countryCode))
	if c, ok := LookupCountry(code); ok && c.Zone != "" {
		if z, err := LoadZone(c.Zone, SourceGeocoded); err == nil {
			return z, true
		}
	}
	if city, ok := Nearest(code, lat, lon); ok {
		if z, err := LoadZone(city.Zone, SourceGeocoded); err == nil {
			return z, true
		}
	}
	return Zone{}, false
}
