package dca

import (
	"context"

	"github.com/shopspring/decimal"
)

// Provider provides historical prices.
//
// Prices returns the price series of symbol over r. An empty series is a
// valid answer for a symbol without data in that range.
type Provider interface {
	Prices(ctx context.Context, symbol string, r Range) (PriceSeries, error)
}

// BatchProvider is a Provider that can also fetch many symbols at once, as a single table.
type BatchProvider interface {
	Provider
	Table(ctx context.Context, symbols []string, r Range) (*Table, error)
}

// Table is a combined price table: one row per date, one column per symbol.
type Table struct {
	Symbols []string
	Rows    []TableRow
}

// TableRow is one row of a Table. Prices are in the same order as the Table's Symbols.
type TableRow struct {
	Date   Date
	Prices []decimal.NullDecimal
}

// Split returns one PriceSeries per symbol of the table.
//
// Rows are sorted by date, and a date appearing twice keeps its last
// row. A symbol without any defined price gets an empty series.
func (t *Table) Split() map[string]PriceSeries {
	histories := make([]History[decimal.NullDecimal], len(t.Symbols))
	for _, row := range t.Rows {
		for i := range t.Symbols {
			if i < len(row.Prices) && row.Prices[i].Valid {
				histories[i].Append(row.Date, row.Prices[i])
			}
		}
	}
	series := make(map[string]PriceSeries, len(t.Symbols))
	for i, symbol := range t.Symbols {
		series[symbol] = SeriesFromHistory(symbol, &histories[i])
	}
	return series
}

// SearchResult is an instrument found by a Searcher.
type SearchResult struct {
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
	Exchange string `json:"exchange"`
	Type     string `json:"type"`
	Currency string `json:"currency,omitempty"`
}

// Instrument returns the instrument to simulate for that result.
func (r SearchResult) Instrument() Instrument {
	return Instrument{Name: r.Name, Symbol: r.Symbol}
}

// Searcher looks up instruments by free text.
type Searcher interface {
	Search(ctx context.Context, query string) ([]SearchResult, error)
}
