package renderer

import (
	"github.com/etnz/dca"
	"github.com/shopspring/decimal"
)

// Report is the display model of a dca.Report: every field is already formatted.
type Report struct {
	Contribution string
	PeriodNoun   string
	From, To     string
	AsOf         string
	Invested     string
	Baseline     string // set only when several instruments share the invested curve
	Metrics      []Metric
	Warnings     []string
	Raw          *Table
}

// Metric is the final performance of one instrument.
type Metric struct {
	Name   string
	Value  string
	Return string
}

// Table is a plain text table.
type Table struct {
	Header []string
	Rows   [][]string
}

// periodNouns are the nouns used in "every month".
var periodNouns = map[dca.Period]string{
	dca.Daily:     "day",
	dca.Weekly:    "week",
	dca.Monthly:   "month",
	dca.Quarterly: "quarter",
	dca.Yearly:    "year",
}

// NewReport formats r for display.
func NewReport(r *dca.Report) *Report {
	cfg := r.Config
	money := func(d decimal.Decimal) dca.Money { return dca.M(d, cfg.Currency) }

	v := &Report{
		Contribution: money(cfg.Contribution).Whole(),
		PeriodNoun:   periodNouns[cfg.Period],
		From:         cfg.From.String(),
		To:           cfg.To.String(),
	}
	for _, w := range r.Warnings {
		v.Warnings = append(v.Warnings, w.Error())
	}

	p := r.Portfolio
	if p == nil {
		return v
	}
	v.AsOf = r.Summary.AsOf.String()
	v.Invested = money(r.Summary.Invested).Whole()
	if len(p.Columns) > 1 {
		v.Baseline = p.Baseline().String()
	}
	for _, m := range r.Summary.Metrics {
		ret := "n/a"
		if m.HasReturn {
			ret = m.Return.SignedString()
		}
		v.Metrics = append(v.Metrics, Metric{
			Name:   m.Instrument.Label(),
			Value:  money(m.Value).Whole(),
			Return: ret,
		})
	}

	raw := &Table{Header: []string{"Date", "Total Invested"}}
	for _, c := range p.Columns {
		raw.Header = append(raw.Header, c.Instrument.Label())
	}
	cell := func(c dca.Column, i int) string {
		if d, ok := c.At(i); ok {
			return money(d).String()
		}
		return ""
	}
	for i, on := range p.Dates {
		row := []string{on.String(), cell(p.Invested, i)}
		for _, c := range p.Columns {
			row = append(row, cell(c, i))
		}
		raw.Rows = append(raw.Rows, row)
	}
	v.Raw = raw
	return v
}
