package dca

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Column is a series of values aligned on a Portfolio's dates.
//
// A value is invalid before the column's first observation; it is never
// zero filled nor back filled.
type Column struct {
	Instrument Instrument            `json:"instrument"`
	Values     []decimal.NullDecimal `json:"values"`
}

// At returns the value at index i on the shared axis.
func (c Column) At(i int) (decimal.Decimal, bool) {
	v := c.Values[i]
	return v.Decimal, v.Valid
}

// Last returns the value on the last date of the shared axis.
func (c Column) Last() (decimal.Decimal, bool) {
	if len(c.Values) == 0 {
		return decimal.Decimal{}, false
	}
	return c.At(len(c.Values) - 1)
}

// Portfolio is the multi-instrument outcome of a simulation aligned on a single date axis.
type Portfolio struct {
	// Dates is the union of all included instruments' dates, in chronological order.
	Dates []Date `json:"dates"`

	// Invested is the "Total Invested" reference curve.
	//
	// It is the invested curve of the first included instrument (see
	// Baseline), forward filled on Dates. All instruments share the same
	// contribution schedule so it is representative of all of them as long
	// as they share the same data coverage. When they do not, it is only an
	// approximation of what was invested in each of them.
	Invested Column `json:"invested"`

	// Columns holds one value curve per included instrument, in caller order.
	Columns []Column `json:"columns"`
}

// Baseline returns the instrument whose invested curve is used as reference.
func (p *Portfolio) Baseline() Instrument { return p.Invested.Instrument }

// Len returns the number of dates on the shared axis.
func (p *Portfolio) Len() int { return len(p.Dates) }

// Column returns the value column of an instrument by symbol.
func (p *Portfolio) Column(symbol string) (Column, bool) {
	for _, c := range p.Columns {
		if c.Instrument.Symbol == symbol {
			return c, true
		}
	}
	return Column{}, false
}

// Instruments returns the included instruments in caller order.
func (p *Portfolio) Instruments() Instruments {
	ins := make(Instruments, 0, len(p.Columns))
	for _, c := range p.Columns {
		ins = append(ins, c.Instrument)
	}
	return ins
}

// Aggregate aligns simulation results on a shared date axis.
//
// results are processed in caller order. Empty results are excluded and
// their instrument returned in skipped. If no result has any point,
// Aggregate returns ErrNoUsableData.
func Aggregate(results []SimulationResult) (p *Portfolio, skipped Instruments, err error) {
	values := make([]*History[decimal.Decimal], 0, len(results))
	var invested *History[decimal.Decimal]
	p = new(Portfolio)

	for _, res := range results {
		if res.IsEmpty() {
			skipped = append(skipped, res.Instrument)
			continue
		}
		v := new(History[decimal.Decimal])
		for _, pt := range res.Points {
			v.Append(pt.Date, pt.Value)
		}
		values = append(values, v)
		p.Columns = append(p.Columns, Column{Instrument: res.Instrument})

		if invested == nil {
			// The first non empty result is the baseline.
			invested = new(History[decimal.Decimal])
			for _, pt := range res.Points {
				invested.Append(pt.Date, pt.Invested)
			}
			p.Invested.Instrument = res.Instrument
		}
	}
	if invested == nil {
		return nil, skipped, fmt.Errorf("cannot aggregate %d instruments: %w", len(results), ErrNoUsableData)
	}

	for on := range Iterate(values...) {
		p.Dates = append(p.Dates, on)
	}
	p.Invested.Values = alignOn(p.Dates, invested)
	for i, v := range values {
		p.Columns[i].Values = alignOn(p.Dates, v)
	}
	return p, skipped, nil
}

// alignOn returns the values of h forward filled on dates.
func alignOn(dates []Date, h *History[decimal.Decimal]) []decimal.NullDecimal {
	aligned := make([]decimal.NullDecimal, len(dates))
	for i, on := range dates {
		if v, ok := h.ValueAsOf(on); ok {
			aligned[i] = decimal.NewNullDecimal(v)
		}
	}
	return aligned
}
