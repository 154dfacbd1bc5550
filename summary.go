package dca

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Metrics is the final performance of one instrument.
type Metrics struct {
	Instrument Instrument      `json:"instrument"`
	Invested   decimal.Decimal `json:"invested"`
	Value      decimal.Decimal `json:"value"`
	// Return is only meaningful if HasReturn is true, it is undefined for a zero investment.
	Return    Percent `json:"return"`
	HasReturn bool    `json:"has_return"`
}

// Summary holds the final performance of every included instrument.
type Summary struct {
	AsOf     Date            `json:"as_of"`
	Invested decimal.Decimal `json:"invested"` // final value of the reference invested curve
	Metrics  []Metrics       `json:"metrics"`  // in caller order
}

// ReturnPercent returns (value/invested - 1) * 100.
//
// It returns ErrDegenerateDivision if invested is zero.
func ReturnPercent(value, invested decimal.Decimal) (Percent, error) {
	if invested.IsZero() {
		return 0, ErrDegenerateDivision
	}
	ratio := value.Div(invested).Sub(decimal.NewFromInt(1)).Mul(decimal.NewFromInt(100))
	return Percent(ratio.InexactFloat64()), nil
}

// Summarize computes the final performance of each column of p on its last date.
//
// All instruments are compared to the single reference invested amount.
func Summarize(p *Portfolio) (Summary, error) {
	if p == nil || p.Len() == 0 {
		return Summary{}, ErrNoUsableData
	}
	last := p.Len() - 1
	invested, ok := p.Invested.At(last)
	if !ok {
		// cannot happen with Aggregate, the axis ends on a known date.
		return Summary{}, fmt.Errorf("no invested amount on %s: %w", p.Dates[last], ErrNoUsableData)
	}

	s := Summary{AsOf: p.Dates[last], Invested: invested, Metrics: make([]Metrics, 0, len(p.Columns))}
	for _, c := range p.Columns {
		value, ok := c.At(last)
		if !ok {
			continue
		}
		m := Metrics{Instrument: c.Instrument, Invested: invested, Value: value}
		if r, err := ReturnPercent(value, invested); err == nil {
			m.Return, m.HasReturn = r, true
		}
		s.Metrics = append(s.Metrics, m)
	}
	return s, nil
}
