package bazi

import "errors"

var (
	// ErrInvalidDateTime is returned for a birth date or time that cannot be
	// parsed or lies outside the supported range. No partial chart is
	// produced.
	ErrInvalidDateTime = errors.New("invalid birth date/time")

	// ErrSolarTermTableGap is returned when the Beijing year falls outside
	// the solar-term table. Approximate boundaries are not extrapolated.
	ErrSolarTermTableGap = errors.New("solar term table does not cover year")
)
