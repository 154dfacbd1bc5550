package dca

import (
	"encoding/json"
	"slices"
	"testing"
	"time"
)

// TestTime assert that the time() is cannonical and gives comparable times.
func TestTime(t *testing.T) {
	d1 := NewDate(2025, 7, 31)
	d2 := NewDate(2025, 7, 31)

	if d1.time() != d2.time() {
		// Note that usually time.Time are not comparable (there is a pointer for the timezone) this
		// tests also checks that the property remain true
		t.Errorf("invalid time() function same day gives two different time")
	}
}

func TestParseStrictDate(t *testing.T) {
	tests := []struct {
		input    string
		expected Date
		err      bool
	}{
		{"2025-01-15", NewDate(2025, time.January, 15), false},
		{"2025-7-1", NewDate(2025, time.July, 1), false},
		{" 2020-01-01 ", NewDate(2020, time.January, 1), false},
		{"2025-02-30", Date{}, true},
		{"0d", Date{}, true},
		{"-5y", Date{}, true},
		{"+2w", Date{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseStrictDate(tt.input)
			if (err != nil) != tt.err {
				t.Errorf("ParseStrictDate(%q) error = %v, wantErr %v", tt.input, err, tt.err)
				return
			}
			if !tt.err && got != tt.expected {
				t.Errorf("ParseStrictDate(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestParseDate(t *testing.T) {
	today := Today()
	currentYear := today.Year()
	currentMonth := today.Month()

	tests := []struct {
		input    string
		expected Date
		err      bool
	}{
		// Standard ISO Format
		{"2025-01-15", NewDate(2025, time.January, 15), false},
		{"2025-7-1", NewDate(2025, time.July, 1), false},
		{" 2020-01-01 ", NewDate(2020, time.January, 1), false},
		{"invalid-date", Date{}, true},
		{"2025-02-30", Date{}, true},

		// Relative Duration Format
		{"0d", today, false},
		{"-1d", today.Add(-1), false},
		{"+1d", today.Add(1), false},
		{"1d", Date{}, true},
		{"-0d", today, false},
		{"-2w", today.Add(-14), false},
		{"+1m", NewDate(currentYear, currentMonth+1, today.Day()), false},
		{"-3q", NewDate(currentYear, currentMonth-9, today.Day()), false},
		{"-5y", NewDate(currentYear-5, currentMonth, today.Day()), false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			if (err != nil) != tt.err {
				t.Errorf("ParseDate(%q) error = %v, wantErr %v", tt.input, err, tt.err)
				return
			}
			if !tt.err && got != tt.expected {
				t.Errorf("ParseDate(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestDate_JSON(t *testing.T) {
	tests := []struct {
		name     string
		json     string
		expected Date
		wantErr  bool
	}{
		{"iso", `"2024-03-05"`, NewDate(2024, time.March, 5), false},
		{"lenient", `"2024-3-5"`, NewDate(2024, time.March, 5), false},
		{"relative", `"-1d"`, Date{}, true},
		{"number", `20240305`, Date{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got Date
			err := json.Unmarshal([]byte(tt.json), &got)
			if (err != nil) != tt.wantErr {
				t.Fatalf("json.Unmarshal(%s) error = %v, wantErr %v", tt.json, err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if got != tt.expected {
				t.Errorf("json.Unmarshal(%s) = %v, want %v", tt.json, got, tt.expected)
			}
			data, err := json.Marshal(got)
			if err != nil {
				t.Fatalf("json.Marshal(%v) unexpected error: %v", got, err)
			}
			if want := `"` + tt.expected.String() + `"`; string(data) != want {
				t.Errorf("json.Marshal(%v) = %s, want %s", got, data, want)
			}
		})
	}
}

func TestDate_StartOfEndOf(t *testing.T) {
	// 2025-08-13 is a Wednesday.
	on := NewDate(2025, time.August, 13)
	tests := []struct {
		period     Period
		start, end Date
	}{
		{Daily, on, on},
		{Weekly, NewDate(2025, time.August, 11), NewDate(2025, time.August, 17)},
		{Monthly, NewDate(2025, time.August, 1), NewDate(2025, time.August, 31)},
		{Quarterly, NewDate(2025, time.July, 1), NewDate(2025, time.September, 30)},
		{Yearly, NewDate(2025, time.January, 1), NewDate(2025, time.December, 31)},
	}
	for _, tt := range tests {
		t.Run(tt.period.String(), func(t *testing.T) {
			if got := on.StartOf(tt.period); got != tt.start {
				t.Errorf("%v.StartOf(%v) = %v, want %v", on, tt.period, got, tt.start)
			}
			if got := on.EndOf(tt.period); got != tt.end {
				t.Errorf("%v.EndOf(%v) = %v, want %v", on, tt.period, got, tt.end)
			}
			if r := tt.period.Range(on); !r.Contains(on) || !r.Contains(tt.start) || !r.Contains(tt.end) {
				t.Errorf("%v.Range(%v) = %v, does not contain its bounds", tt.period, on, r)
			}
		})
	}
}

func TestDate_WeeklyOnSunday(t *testing.T) {
	sunday := NewDate(2025, time.August, 17)
	if got, want := sunday.StartOf(Weekly), NewDate(2025, time.August, 11); got != want {
		t.Errorf("%v.StartOf(Weekly) = %v, want %v", sunday, got, want)
	}
	if got := sunday.EndOf(Weekly); got != sunday {
		t.Errorf("%v.EndOf(Weekly) = %v, want %v", sunday, got, sunday)
	}
}

func TestRange_Identifier(t *testing.T) {
	tests := []struct {
		r    Range
		want string
	}{
		{Daily.Range(NewDate(2025, 8, 13)), "2025-08-13"},
		{Weekly.Range(NewDate(2025, 8, 13)), "2025-W33"},
		{Monthly.Range(NewDate(2025, 8, 13)), "2025-08"},
		{Quarterly.Range(NewDate(2025, 8, 13)), "2025-Q3"},
		{Yearly.Range(NewDate(2025, 8, 13)), "2025"},
		{NewRange(NewDate(2025, 8, 20), NewDate(2025, 8, 13)), "2025-08-13_2025-08-20"},
	}
	for _, tt := range tests {
		if got := tt.r.Identifier(); got != tt.want {
			t.Errorf("%v.Identifier() = %q, want %q", tt.r, got, tt.want)
		}
	}
}

func TestParsePeriod(t *testing.T) {
	tests := []struct {
		input   string
		want    Period
		wantErr bool
	}{
		{"daily", Daily, false},
		{"week", Weekly, false},
		{"Monthly", Monthly, false},
		{" quarter ", Quarterly, false},
		{"yearly", Yearly, false},
		{"fortnightly", Daily, true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParsePeriod(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParsePeriod(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParsePeriod(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestPeriod_Text(t *testing.T) {
	for p := Daily; p <= Yearly; p++ {
		text, err := p.MarshalText()
		if err != nil {
			t.Fatalf("%v.MarshalText() unexpected error: %v", p, err)
		}
		var got Period
		if err := got.UnmarshalText(text); err != nil {
			t.Fatalf("UnmarshalText(%q) unexpected error: %v", text, err)
		}
		if got != p {
			t.Errorf("UnmarshalText(%q) = %v, want %v", text, got, p)
		}
	}
	if Period(42).Valid() {
		t.Errorf("Period(42).Valid() = true, want false")
	}
}

func TestIterate(t *testing.T) {
	d := func(day int) Date { return NewDate(2025, time.January, day) }
	got := slices.Collect(iterate(
		[]Date{d(1), d(3), d(5)},
		nil,
		[]Date{d(2), d(3), d(6)},
	))
	want := []Date{d(1), d(2), d(3), d(5), d(6)}
	if !slices.Equal(got, want) {
		t.Errorf("iterate() = %v, want %v", got, want)
	}
}
