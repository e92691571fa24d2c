package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// percentScale is the fixed scale for share ratios (e.g. 0.1234 = 12.34%).
const percentScale = 4

// Percentage represents a share ratio held as a value between 0 and 1.
// Immutable value type; normalized to the percent scale with half-up
// rounding at construction.
type Percentage struct {
	value decimal.Decimal
}

// NewPercentage creates a Percentage from a raw ratio (0.10 = 10%).
func NewPercentage(value decimal.Decimal) Percentage {
	return Percentage{value: value.Round(percentScale)}
}

// NewPercentageFromInt creates a Percentage from a whole percent value (10 = 10%).
func NewPercentageFromInt(value int) (Percentage, error) {
	if value < 0 || value > 100 {
		return Percentage{}, fmt.Errorf("percentage integer value must be between 0 and 100, got %d", value)
	}
	return NewPercentage(decimal.NewFromInt(int64(value)).Div(decimal.NewFromInt(100))), nil
}

// NewPercentageFromString parses a decimal ratio string into a Percentage.
func NewPercentageFromString(s string) (Percentage, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Percentage{}, err
	}
	return NewPercentage(d), nil
}

// Value returns the canonical ratio.
func (p Percentage) Value() decimal.Decimal {
	return p.value
}

// Add returns the sum of two ratios, re-rounded to the percent scale.
func (p Percentage) Add(other Percentage) Percentage {
	return NewPercentage(p.value.Add(other.value))
}

// ApplyTo multiplies a Money by this ratio and rounds the result to the
// money scale. This is the single point where a Percentage operation
// crosses into the Money scale domain.
func (p Percentage) ApplyTo(m Money) Money {
	return m.MultiplyRatio(p.value)
}

// Float64 returns the ratio as a float, for tolerance checks on sums.
func (p Percentage) Float64() float64 {
	f, _ := p.value.Float64()
	return f
}

// Equal compares the canonical (rounded) representations.
func (p Percentage) Equal(other Percentage) bool {
	return p.value.Equal(other.value)
}

// String returns the ratio in plain decimal form.
func (p Percentage) String() string {
	return p.value.StringFixed(percentScale)
}

// MarshalJSON encodes the ratio as a JSON number.
func (p Percentage) MarshalJSON() ([]byte, error) {
	return []byte(p.value.StringFixed(percentScale)), nil
}

// UnmarshalJSON decodes a JSON number into a canonical Percentage.
func (p *Percentage) UnmarshalJSON(data []byte) error {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(data); err != nil {
		return err
	}
	*p = NewPercentage(d)
	return nil
}
