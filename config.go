package dca

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Instrument is a financial instrument to invest in.
type Instrument struct {
	Name   string `json:"name"`   // display name
	Symbol string `json:"symbol"` // provider symbol
}

// String returns "Name (SYMBOL)", or the symbol alone when the name is empty or the same.
func (in Instrument) String() string {
	if in.Name == "" || in.Name == in.Symbol {
		return in.Symbol
	}
	if strings.Contains(in.Name, "("+in.Symbol+")") {
		return in.Name
	}
	return fmt.Sprintf("%s (%s)", in.Name, in.Symbol)
}

// Label returns the display name of the instrument, defaulting to its symbol.
func (in Instrument) Label() string {
	if in.Name == "" {
		return in.Symbol
	}
	return in.Name
}

// ParseInstrument parses "Name=SYMBOL" or a plain "SYMBOL".
//
// Predefined symbols are recognized as is, even if they contain a '=' like "GC=F",
// and get their predefined name.
func ParseInstrument(s string) (Instrument, error) {
	if in, ok := Lookup(strings.TrimSpace(s)); ok {
		return in, nil
	}
	name, symbol, found := strings.Cut(s, "=")
	if !found {
		symbol, name = name, ""
	}
	name, symbol = strings.TrimSpace(name), strings.TrimSpace(symbol)
	if symbol == "" {
		return Instrument{}, fmt.Errorf("invalid instrument %q: empty symbol", s)
	}
	return Instrument{Name: name, Symbol: symbol}, nil
}

// Instruments is an ordered selection of instruments.
type Instruments []Instrument

// Unique returns the instruments with the first occurrence of each symbol.
func (ins Instruments) Unique() Instruments {
	seen := make(map[string]struct{}, len(ins))
	out := make(Instruments, 0, len(ins))
	for _, in := range ins {
		if _, ok := seen[in.Symbol]; ok {
			continue
		}
		seen[in.Symbol] = struct{}{}
		out = append(out, in)
	}
	return out
}

// Symbols returns the symbols of the instruments, in order.
func (ins Instruments) Symbols() []string {
	symbols := make([]string, len(ins))
	for i, in := range ins {
		symbols[i] = in.Symbol
	}
	return symbols
}

// Config is everything needed to run a simulation.
type Config struct {
	From, To     Date
	Contribution decimal.Decimal // invested once every Period.
	Currency     string          // currency of Contribution, only used for display.
	Period       Period
	// AlignToPeriodStart labels every purchase with its period's first day
	// instead of its actual trading day.
	AlignToPeriodStart bool
	Instruments        Instruments
	// Concurrency limits the number of concurrent provider calls. Zero or less means sequential.
	Concurrency int
}

// DefaultConfig returns the default configuration: 100 USD invested monthly since 2020-01-01 until today.
func DefaultConfig() Config {
	return Config{
		From:         NewDate(2020, 1, 1),
		To:           Today(),
		Contribution: decimal.NewFromInt(100),
		Currency:     "USD",
		Period:       Monthly,
		Instruments:  DefaultInstruments(),
		Concurrency:  4,
	}
}

// Range returns the simulated date range.
func (c Config) Range() Range { return Range{From: c.From, To: c.To} }

// Validate checks the configuration before any price lookup.
//
// It returns ErrEmptyConfiguration if there are no instruments, and
// wraps ErrInvalidConfiguration for any other problem.
func (c Config) Validate() error {
	if len(c.Instruments) == 0 {
		return ErrEmptyConfiguration
	}
	if c.Contribution.IsNegative() {
		return fmt.Errorf("%w: contribution %s must not be negative", ErrInvalidConfiguration, c.Contribution)
	}
	if c.From.IsZero() || c.To.IsZero() {
		return fmt.Errorf("%w: start and end dates are required", ErrInvalidConfiguration)
	}
	if c.To.Before(c.From) {
		return fmt.Errorf("%w: end date %s is before start date %s", ErrInvalidConfiguration, c.To, c.From)
	}
	if !c.Period.Valid() {
		return fmt.Errorf("%w: unknown period %v", ErrInvalidConfiguration, c.Period)
	}
	seen := make(map[string]struct{}, len(c.Instruments))
	for _, in := range c.Instruments {
		if in.Symbol == "" {
			return fmt.Errorf("%w: instrument %q has no symbol", ErrInvalidConfiguration, in.Name)
		}
		if _, ok := seen[in.Symbol]; ok {
			return fmt.Errorf("%w: duplicate symbol %q", ErrInvalidConfiguration, in.Symbol)
		}
		seen[in.Symbol] = struct{}{}
	}
	return nil
}
