package dca

import "github.com/shopspring/decimal"

// valuePrecision is the number of fractional digits kept on valuations.
//
// Shares are computed with shareDigits, so a valuation at the purchase price
// gives back the contribution up to that rounding.
const valuePrecision = 10

// shareDigits returns the number of fractional digits kept on shares bought at price.
//
// It grows with the integer digits of price so that shares × price keeps
// decimal.DivisionPrecision fractional digits, even for prices much larger
// than the contribution.
func shareDigits(price decimal.Decimal) int32 {
	return int32(decimal.DivisionPrecision + len(price.Truncate(0).String()))
}

// SimulationPoint is the state of the investment right after one periodic contribution.
type SimulationPoint struct {
	Date     Date            `json:"date"`
	Price    decimal.Decimal `json:"price"`
	Shares   decimal.Decimal `json:"shares"` // total shares owned
	Invested decimal.Decimal `json:"invested"`
	Value    decimal.Decimal `json:"value"`
}

// SimulationResult is the chronological outcome of investing in one instrument.
type SimulationResult struct {
	Instrument Instrument        `json:"instrument"`
	Points     []SimulationPoint `json:"points"`
}

// IsEmpty returns true if the simulation did not buy anything.
func (r SimulationResult) IsEmpty() bool { return len(r.Points) == 0 }

// Last returns the last simulation point, or false if the result is empty.
func (r SimulationResult) Last() (SimulationPoint, bool) {
	if len(r.Points) == 0 {
		return SimulationPoint{}, false
	}
	return r.Points[len(r.Points)-1], true
}

// Simulate invests contribution at each point of s, in chronological order.
//
// Points without a strictly positive price cannot be traded: they are
// skipped, and produce no output point. Each remaining point buys
// contribution/price shares and is valued at its own price.
//
// s is expected to be resampled already, Simulate buys once per point.
func Simulate(in Instrument, s PriceSeries, contribution decimal.Decimal) SimulationResult {
	res := SimulationResult{Instrument: in, Points: make([]SimulationPoint, 0, len(s.Points))}
	shares, invested := decimal.Zero, decimal.Zero
	for _, pt := range s.Points {
		if !pt.Price.Valid || !pt.Price.Decimal.IsPositive() {
			continue
		}
		price := pt.Price.Decimal
		shares = shares.Add(contribution.DivRound(price, shareDigits(price)))
		invested = invested.Add(contribution)
		res.Points = append(res.Points, SimulationPoint{
			Date:     pt.Date,
			Price:    price,
			Shares:   shares,
			Invested: invested,
			Value:    shares.Mul(price).Round(valuePrecision),
		})
	}
	return res
}
