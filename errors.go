package dca

import "errors"

var (
	// ErrEmptyConfiguration is returned when no instrument is requested.
	ErrEmptyConfiguration = errors.New("no instrument selected, select at least one asset")
	// ErrInvalidConfiguration is returned for configurations rejected before any simulation.
	ErrInvalidConfiguration = errors.New("invalid configuration")
	// ErrDataUnavailable marks an instrument without any usable price.
	ErrDataUnavailable = errors.New("data unavailable")
	// ErrNoUsableData is returned when no instrument produced any simulation point.
	ErrNoUsableData = errors.New("no data found for the selected range and instruments")
	// ErrDegenerateDivision is returned when a return is computed against a zero investment.
	ErrDegenerateDivision = errors.New("return is undefined for a zero investment")
	// ErrUnorderedSeries is returned when price points are not strictly increasing by date.
	ErrUnorderedSeries = errors.New("price points are not strictly increasing by date")
)
