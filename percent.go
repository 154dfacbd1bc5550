package dca

import "fmt"

// Percent is a ratio expressed in percents: 12.5 means 12.5%.
type Percent float64

func (p Percent) Equal(q Percent) bool {
	// it has to be compared with some precision
	const precision = 0.0001
	diff := p - q
	if diff < 0 {
		diff = -diff
	}
	return diff < precision
}

func (p Percent) String() string {
	return fmt.Sprintf("%.2f%%", float64(p))
}

// SignedString returns the percent with an explicit sign and one decimal, as in "+12.3%".
func (p Percent) SignedString() string {
	return fmt.Sprintf("%+.1f%%", float64(p))
}
