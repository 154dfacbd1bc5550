package dca

import (
	"errors"
	"slices"
	"testing"
)

func TestParseInstrument(t *testing.T) {
	tests := []struct {
		input   string
		want    Instrument
		wantErr bool
	}{
		{"AAPL", Instrument{Name: "Apple", Symbol: "AAPL"}, false},
		{"GC=F", Instrument{Name: "Gold", Symbol: "GC=F"}, false},
		{"My Apple=AAPL", Instrument{Name: "My Apple", Symbol: "AAPL"}, false},
		{"Air Liquide = AI.PA", Instrument{Name: "Air Liquide", Symbol: "AI.PA"}, false},
		{"VWCE.DE", Instrument{Symbol: "VWCE.DE"}, false},
		{"Nothing=", Instrument{}, true},
		{"", Instrument{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseInstrument(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseInstrument(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseInstrument(%q) = %#v, want %#v", tt.input, got, tt.want)
			}
		})
	}
}

func TestInstrument_String(t *testing.T) {
	tests := []struct {
		in   Instrument
		want string
	}{
		{Instrument{Name: "Apple", Symbol: "AAPL"}, "Apple (AAPL)"},
		{Instrument{Name: "Apple (AAPL)", Symbol: "AAPL"}, "Apple (AAPL)"},
		{Instrument{Symbol: "AAPL"}, "AAPL"},
		{Instrument{Name: "SCHD", Symbol: "SCHD"}, "SCHD"},
	}
	for _, tt := range tests {
		if got := tt.in.String(); got != tt.want {
			t.Errorf("%#v.String() = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestInstruments_Unique(t *testing.T) {
	ins := Instruments{
		{"Apple", "AAPL"},
		{"Tesla", "TSLA"},
		{"Apple again", "AAPL"},
		{"SPY", "SPY"},
		{"Tesla again", "TSLA"},
	}
	want := Instruments{{"Apple", "AAPL"}, {"Tesla", "TSLA"}, {"SPY", "SPY"}}
	if got := ins.Unique(); !slices.Equal(got, want) {
		t.Errorf("Unique() = %v, want %v", got, want)
	}
	if got, want := want.Symbols(), []string{"AAPL", "TSLA", "SPY"}; !slices.Equal(got, want) {
		t.Errorf("Symbols() = %v, want %v", got, want)
	}
}

func TestCatalogue(t *testing.T) {
	if got := len(Predefined()); got != 24 {
		t.Errorf("len(Predefined()) = %d, want 24", got)
	}
	if got := Predefined().Unique(); len(got) != len(Predefined()) {
		t.Errorf("Predefined() has duplicate symbols")
	}
	want := Instruments{{"S&P 500", "^GSPC"}, {"Nasdaq", "^IXIC"}, {"SCHD", "SCHD"}}
	if got := DefaultInstruments(); !slices.Equal(got, want) {
		t.Errorf("DefaultInstruments() = %v, want %v", got, want)
	}
	// returned slices are copies.
	DefaultInstruments()[0].Name = "changed"
	if DefaultInstruments()[0].Name != "S&P 500" {
		t.Errorf("DefaultInstruments() shares its storage with the catalogue")
	}
	if _, ok := Lookup("NOPE"); ok {
		t.Errorf("Lookup(NOPE) found an instrument")
	}
}

func TestConfig_Validate(t *testing.T) {
	valid := DefaultConfig()
	tests := []struct {
		name   string
		modify func(*Config)
		want   error
	}{
		{"default", func(c *Config) {}, nil},
		{"zero contribution", func(c *Config) { c.Contribution = dec("0") }, nil},
		{"single day", func(c *Config) { c.To = c.From }, nil},
		{"no instrument", func(c *Config) { c.Instruments = nil }, ErrEmptyConfiguration},
		{"no instrument and invalid dates", func(c *Config) { c.Instruments, c.To = nil, c.From.Add(-1) }, ErrEmptyConfiguration},
		{"negative contribution", func(c *Config) { c.Contribution = dec("-100") }, ErrInvalidConfiguration},
		{"end before start", func(c *Config) { c.To = c.From.Add(-1) }, ErrInvalidConfiguration},
		{"missing start", func(c *Config) { c.From = Date{} }, ErrInvalidConfiguration},
		{"unknown period", func(c *Config) { c.Period = Period(42) }, ErrInvalidConfiguration},
		{"empty symbol", func(c *Config) { c.Instruments = Instruments{{Name: "Nothing"}} }, ErrInvalidConfiguration},
		{"duplicate symbol", func(c *Config) { c.Instruments = Instruments{{"A", "X"}, {"B", "X"}} }, ErrInvalidConfiguration},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid
			c.Instruments = slices.Clone(valid.Instruments)
			tt.modify(&c)
			if err := c.Validate(); !errors.Is(err, tt.want) {
				t.Errorf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}
