package dca

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// PricePoint is one traded price observation.
//
// A price can be missing (Price.Valid is false): providers report days where
// the instrument was listed but no price was traded.
type PricePoint struct {
	Date  Date
	Price decimal.NullDecimal
}

// P returns a PricePoint with a defined price.
func P(on Date, price decimal.Decimal) PricePoint {
	return PricePoint{Date: on, Price: decimal.NewNullDecimal(price)}
}

// Missing returns a PricePoint without price.
func Missing(on Date) PricePoint {
	return PricePoint{Date: on}
}

// PriceSeries is the price history of a single instrument, strictly increasing by date.
type PriceSeries struct {
	Symbol string
	Points []PricePoint
}

// NewPriceSeries returns a PriceSeries after checking that points are strictly increasing by date.
func NewPriceSeries(symbol string, points ...PricePoint) (PriceSeries, error) {
	for i := 1; i < len(points); i++ {
		if !points[i].Date.After(points[i-1].Date) {
			return PriceSeries{}, fmt.Errorf("%s at %s: %w", symbol, points[i].Date, ErrUnorderedSeries)
		}
	}
	return PriceSeries{Symbol: symbol, Points: points}, nil
}

// SeriesFromHistory returns the PriceSeries of a price History, which is sorted by construction.
func SeriesFromHistory(symbol string, h *History[decimal.NullDecimal]) PriceSeries {
	s := PriceSeries{Symbol: symbol, Points: make([]PricePoint, 0, h.Len())}
	for on, price := range h.Values() {
		s.Points = append(s.Points, PricePoint{Date: on, Price: price})
	}
	return s
}

// Len returns the number of points in the series.
func (s PriceSeries) Len() int { return len(s.Points) }

// Resample reduces s to at most one point per calendar period: the first
// point with a defined price in each period. Periods without any defined
// price are omitted.
//
// The input is never modified, and resampling a resampled series returns the same series.
func Resample(s PriceSeries, period Period) PriceSeries {
	out := PriceSeries{Symbol: s.Symbol}
	var current Range
	for _, pt := range s.Points {
		if !pt.Price.Valid {
			continue
		}
		if len(out.Points) > 0 && current.Contains(pt.Date) {
			// this period already has its representative point.
			continue
		}
		current = period.Range(pt.Date)
		out.Points = append(out.Points, pt)
	}
	return out
}

// AlignToPeriodStart returns a copy of s where each point is labelled with
// the first day of its period instead of its trading date.
//
// s must hold at most one point per period, as returned by Resample.
func AlignToPeriodStart(s PriceSeries, period Period) PriceSeries {
	out := PriceSeries{Symbol: s.Symbol, Points: make([]PricePoint, len(s.Points))}
	for i, pt := range s.Points {
		out.Points[i] = PricePoint{Date: pt.Date.StartOf(period), Price: pt.Price}
	}
	return out
}
