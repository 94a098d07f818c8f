// Package valueobjects contains the fixed-point money type shared by
// every entity that carries a balance or a signed ledger amount.
package valueobjects

import (
	"fmt"
	"math/big"
)

// Scale is the number of fractional digits every Amount carries.
// The store's NUMERIC(24,4) columns mirror this exactly; Amount never
// lets a value escape with more precision than the column can hold.
const Scale = 4

var scaleFactor = new(big.Int).Exp(big.NewInt(10), big.NewInt(Scale), nil)

// Amount is a fixed-point decimal with 4 fractional digits. Amount
// itself does not bound the number of integer digits; the store's
// NUMERIC(24,4) columns bound what can be persisted. It is backed by
// big.Rat so arithmetic is exact; binary floating point never enters
// the picture.
type Amount struct {
	value *big.Rat
}

// Zero is the additive identity.
func Zero() Amount {
	return Amount{value: new(big.Rat)}
}

// NewAmount parses a decimal string such as "100" or "12.3400" into an
// Amount. It rejects negative strings — callers that need a signed
// ledger amount negate a positive Amount explicitly via Negate.
func NewAmount(s string) (Amount, error) {
	r, ok := new(big.Rat).SetString(s)
	if !ok {
		return Amount{}, fmt.Errorf("invalid amount: %q", s)
	}
	if r.Sign() < 0 {
		return Amount{}, fmt.Errorf("amount must not be negative: %q", s)
	}
	return Amount{value: r}, nil
}

// MustAmount is NewAmount that panics on error; used for constants.
func MustAmount(s string) Amount {
	a, err := NewAmount(s)
	if err != nil {
		panic(err)
	}
	return a
}

// fromRat wraps a big.Rat without the non-negative check, used
// internally for arithmetic results that may legitimately go negative
// before a caller validates them (e.g. the engine's balance check).
func fromRat(r *big.Rat) Amount {
	return Amount{value: r}
}

// ParseSigned parses a decimal string that may carry a sign, for
// repositories rehydrating a ledger row's signed amount column — the
// one place a negative Amount is expected to come from storage rather
// than from Negate.
func ParseSigned(s string) (Amount, error) {
	r, ok := new(big.Rat).SetString(s)
	if !ok {
		return Amount{}, fmt.Errorf("invalid amount: %q", s)
	}
	return Amount{value: r}, nil
}

// IsZero reports whether the amount is exactly zero.
func (a Amount) IsZero() bool {
	return a.value == nil || a.value.Sign() == 0
}

// IsPositive reports whether the amount is strictly greater than zero.
func (a Amount) IsPositive() bool {
	return a.value != nil && a.value.Sign() > 0
}

// IsNegative reports whether the amount is strictly less than zero.
func (a Amount) IsNegative() bool {
	return a.value != nil && a.value.Sign() < 0
}

// Add returns a + b.
func (a Amount) Add(b Amount) Amount {
	return fromRat(new(big.Rat).Add(a.rat(), b.rat()))
}

// Sub returns a - b.
func (a Amount) Sub(b Amount) Amount {
	return fromRat(new(big.Rat).Sub(a.rat(), b.rat()))
}

// Negate returns -a.
func (a Amount) Negate() Amount {
	return fromRat(new(big.Rat).Neg(a.rat()))
}

// Cmp returns -1, 0, or 1 as a is less than, equal to, or greater than b.
func (a Amount) Cmp(b Amount) int {
	return a.rat().Cmp(b.rat())
}

// GreaterThanOrEqual reports whether a >= b.
func (a Amount) GreaterThanOrEqual(b Amount) bool {
	return a.Cmp(b) >= 0
}

// LessThan reports whether a < b.
func (a Amount) LessThan(b Amount) bool {
	return a.Cmp(b) < 0
}

// Equals reports whether a == b.
func (a Amount) Equals(b Amount) bool {
	return a.Cmp(b) == 0
}

func (a Amount) rat() *big.Rat {
	if a.value == nil {
		return new(big.Rat)
	}
	return a.value
}

// String renders the amount with exactly Scale fractional digits,
// e.g. "100.0000". Safe to log or serialize — it never drifts.
func (a Amount) String() string {
	scaled := new(big.Int).Mul(a.rat().Num(), scaleFactor)
	scaled.Quo(scaled, a.rat().Denom())

	neg := scaled.Sign() < 0
	if neg {
		scaled.Neg(scaled)
	}

	digits := scaled.String()
	for len(digits) <= Scale {
		digits = "0" + digits
	}
	whole := digits[:len(digits)-Scale]
	frac := digits[len(digits)-Scale:]

	sign := ""
	if neg {
		sign = "-"
	}
	return fmt.Sprintf("%s%s.%s", sign, whole, frac)
}

// MarshalJSON renders the amount as a JSON string to avoid any
// consumer decoding it as a binary float.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(`"` + a.String() + `"`), nil
}

// UnmarshalJSON accepts either a JSON string or a bare JSON number,
// always parsing through NewAmount so precision is exact either way.
func (a *Amount) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	parsed, err := NewAmount(s)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
