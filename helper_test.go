package dca

import (
	"fmt"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

// dec parses a decimal, or panics.
func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// nullPrice parses a price, an empty string is a missing price.
func nullPrice(s string) decimal.NullDecimal {
	if s == "" {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(dec(s))
}

// series returns a PriceSeries from "date:price" pairs, an empty price is a missing point.
func series(t *testing.T, symbol string, points ...string) PriceSeries {
	t.Helper()
	pts := make([]PricePoint, 0, len(points))
	for _, p := range points {
		on, price, _ := strings.Cut(p, ":")
		pt := Missing(MustParse(on))
		if price != "" {
			pt = P(pt.Date, dec(price))
		}
		pts = append(pts, pt)
	}
	s, err := NewPriceSeries(symbol, pts...)
	if err != nil {
		t.Fatalf("invalid test series: %v", err)
	}
	return s
}

// format returns a compact representation of a series, "date:price" separated by spaces.
func format(s PriceSeries) string {
	var b strings.Builder
	for i, pt := range s.Points {
		if i > 0 {
			b.WriteString(" ")
		}
		price := ""
		if pt.Price.Valid {
			price = pt.Price.Decimal.String()
		}
		fmt.Fprintf(&b, "%s:%s", pt.Date, price)
	}
	return b.String()
}
