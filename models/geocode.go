// Package models defines the JSON shapes exchanged over the HTTP API and the
// records persisted in the geocode cache.
package models

import "time"

// GeocodeEntry is one cached geocoding result.
//
// Key is the normalized "city|country" pair and doubles as the idempotency
// key of the cache: the first lookup for a place is stored, every later
// lookup for the same place reads that record back.
type GeocodeEntry struct {
	Key     string `json:"key"`
	City    string `json:"city"`
	Country string `json:"country"`

	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`

	// CountryCode is the ISO 3166-1 alpha-2 code reported by the geocoder,
	// upper-cased.
	CountryCode string `json:"countryCode"`
	Display     string `json:"display"`

	// Zone is the IANA zone derived from the coordinates; empty when the
	// country is unknown to the gazetteer.
	Zone string `json:"zone"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// SamePlace reports whether e and other carry the same geocoded data,
// ignoring keys and timestamps.
func (e GeocodeEntry) SamePlace(other GeocodeEntry) bool {
	return e.Lat == other.Lat &&
		e.Lon == other.Lon &&
		e.CountryCode == other.CountryCode &&
		e.Display == other.Display &&
		e.Zone == other.Zone
}
