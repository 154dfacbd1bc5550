// Package csvfile provides historical prices from a local CSV file.
//
// The file holds a single combined table for many symbols: the first column
// is the date, every other column holds the prices of the symbol named in
// the header. Empty, "NaN" or "null" cells are missing prices.
//
//	Date,^GSPC,SCHD
//	2020-01-02,3257.85,57.21
//	2020-01-03,3234.85,
package csvfile

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/etnz/dca"
	"github.com/shopspring/decimal"
)

// File is a CSV price file. It implements dca.BatchProvider.
type File struct {
	Path string
}

var _ dca.BatchProvider = (*File)(nil)

// Table returns the columns of symbols, in that order, for the rows within r.
//
// Symbols that are not in the file get a column without any price.
func (f *File) Table(ctx context.Context, symbols []string, r dca.Range) (*dca.Table, error) {
	file, err := os.Open(f.Path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	all, err := Read(file)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", f.Path, err)
	}
	return project(all, symbols, r), nil
}

// Prices returns the prices of a single symbol.
func (f *File) Prices(ctx context.Context, symbol string, r dca.Range) (dca.PriceSeries, error) {
	t, err := f.Table(ctx, []string{symbol}, r)
	if err != nil {
		return dca.PriceSeries{}, err
	}
	return t.Split()[symbol], nil
}

// project returns the part of t for symbols and r.
func project(t *dca.Table, symbols []string, r dca.Range) *dca.Table {
	index := make([]int, len(symbols))
	for i, symbol := range symbols {
		index[i] = slices.Index(t.Symbols, symbol)
	}
	out := &dca.Table{Symbols: slices.Clone(symbols)}
	for _, row := range t.Rows {
		if !r.Contains(row.Date) {
			continue
		}
		prices := make([]decimal.NullDecimal, len(symbols))
		for i, j := range index {
			if j >= 0 {
				prices[i] = row.Prices[j]
			}
		}
		out.Rows = append(out.Rows, dca.TableRow{Date: row.Date, Prices: prices})
	}
	return out
}

// Read reads a combined price table in CSV format.
func Read(r io.Reader) (*dca.Table, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, errors.New("empty file, a header is required")
	}
	if err != nil {
		return nil, err
	}
	if len(header) < 2 {
		return nil, fmt.Errorf("invalid header %q: want a date column and at least one symbol", header)
	}
	t := &dca.Table{Symbols: make([]string, len(header)-1)}
	for i, symbol := range header[1:] {
		t.Symbols[i] = strings.TrimSpace(symbol)
	}

	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		line, _ := cr.FieldPos(0)
		on, err := dca.ParseStrictDate(record[0])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		row := dca.TableRow{Date: on, Prices: make([]decimal.NullDecimal, len(t.Symbols))}
		for i, cell := range record[1:] {
			row.Prices[i], err = parsePrice(cell)
			if err != nil {
				return nil, fmt.Errorf("line %d, %s: %w", line, t.Symbols[i], err)
			}
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

// parsePrice parses a price cell, empty cells are missing prices.
func parsePrice(cell string) (decimal.NullDecimal, error) {
	cell = strings.TrimSpace(cell)
	switch strings.ToLower(cell) {
	case "", "nan", "null", "n/a", "-":
		return decimal.NullDecimal{}, nil
	}
	d, err := decimal.NewFromString(cell)
	if err != nil {
		return decimal.NullDecimal{}, fmt.Errorf("invalid price %q: %w", cell, err)
	}
	return decimal.NewNullDecimal(d), nil
}
