package domain

import (
	"github.com/shopspring/decimal"
)

// moneyScale is the fixed scale for monetary amounts (e.g. dollars and cents).
// All Money values are normalized to this scale with half-up rounding at
// construction, so stored and compared values are always canonical.
const moneyScale = 2

// Money represents an exact monetary amount. Immutable value type.
type Money struct {
	amount decimal.Decimal
}

// NewMoney creates a Money from a raw decimal, rounding half-up to the money scale.
func NewMoney(amount decimal.Decimal) Money {
	return Money{amount: amount.Round(moneyScale)}
}

// NewMoneyFromInt creates a Money from a whole amount.
func NewMoneyFromInt(amount int64) Money {
	return NewMoney(decimal.NewFromInt(amount))
}

// NewMoneyFromString parses a decimal string into a Money.
func NewMoneyFromString(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, err
	}
	return NewMoney(d), nil
}

// ZeroMoney returns the distinguished zero amount.
func ZeroMoney() Money {
	return NewMoney(decimal.Zero)
}

// Amount returns the canonical decimal value.
func (m Money) Amount() decimal.Decimal {
	return m.amount
}

// Add returns the sum, re-rounded to the money scale.
func (m Money) Add(other Money) Money {
	return NewMoney(m.amount.Add(other.amount))
}

// Subtract returns the difference, re-rounded to the money scale.
func (m Money) Subtract(other Money) Money {
	return NewMoney(m.amount.Sub(other.amount))
}

// MultiplyRatio multiplies by a raw ratio and re-rounds to the money scale.
// There is no division; callers multiply by a ratio so the rounding policy
// stays well-defined.
func (m Money) MultiplyRatio(ratio decimal.Decimal) Money {
	return NewMoney(m.amount.Mul(ratio))
}

// GreaterThan reports whether m > other.
func (m Money) GreaterThan(other Money) bool {
	return m.amount.GreaterThan(other.amount)
}

// GreaterThanOrEqual reports whether m >= other.
func (m Money) GreaterThanOrEqual(other Money) bool {
	return m.amount.GreaterThanOrEqual(other.amount)
}

// LessThan reports whether m < other.
func (m Money) LessThan(other Money) bool {
	return m.amount.LessThan(other.amount)
}

// IsZero reports whether the amount is exactly zero.
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// IsPositiveOrZero reports whether the amount is zero or positive.
func (m Money) IsPositiveOrZero() bool {
	return m.amount.GreaterThanOrEqual(decimal.Zero)
}

// Equal compares the canonical (rounded) representations.
func (m Money) Equal(other Money) bool {
	return m.amount.Equal(other.amount)
}

// String returns the plain decimal representation (no exponent notation).
func (m Money) String() string {
	return m.amount.StringFixed(moneyScale)
}

// MarshalJSON encodes the amount as a JSON number string.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.amount.StringFixed(moneyScale)), nil
}

// UnmarshalJSON decodes a JSON number into a canonical Money.
func (m *Money) UnmarshalJSON(data []byte) error {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(data); err != nil {
		return err
	}
	*m = NewMoney(d)
	return nil
}
