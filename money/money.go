// Package money represents currency amounts as integer minor units (cents)
// so that bill arithmetic never drifts the way binary floats do.
package money

import (
	"fmt"
	"strconv"
	"strings"
)

// TaxRatePercent is the platform-wide tax rate applied to bill subtotals.
const TaxRatePercent = 15

// Cents is a currency amount in minor units. It marshals to and from JSON
// as a plain two-decimal number ("12.99") so API payloads keep the shape
// the dashboard and menu clients already speak.
type Cents int64

// Parse converts a decimal string into Cents. More than two fractional
// digits are rounded half-up at the second decimal, so "10.005" parses
// to 1001.
func Parse(s string) (Cents, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("money: empty amount")
	}
	neg := false
	switch s[0] {
	case '-':
		neg = true
		s = s[1:]
	case '+':
		s = s[1:]
	}
	if s == "" || s == "." {
		return 0, fmt.Errorf("money: invalid amount %q", s)
	}

	whole := s
	frac := ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		whole, frac = s[:i], s[i+1:]
	}
	if whole == "" {
		whole = "0"
	}
	units, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("money: invalid amount %q", s)
	}

	cents := units * 100
	if frac != "" {
		for _, r := range frac {
			if r < '0' || r > '9' {
				return 0, fmt.Errorf("money: invalid amount %q", s)
			}
		}
		if len(frac) == 1 {
			frac += "0"
		}
		hundredths, err := strconv.ParseInt(frac[:2], 10, 64)
		if err != nil {
			return 0, fmt.Errorf("money: invalid amount %q", s)
		}
		cents += hundredths
		// Half-up on the third fractional digit.
		if len(frac) > 2 && frac[2] >= '5' {
			cents++
		}
	}
	if neg {
		cents = -cents
	}
	return Cents(cents), nil
}

// Mul returns the line total for a unit price and quantity.
func (c Cents) Mul(qty int) Cents {
	return c * Cents(qty)
}

// Tax computes the tax due on a subtotal, rounding half-up at the cent.
// This is the only place a monetary value is ever rounded.
func Tax(subtotal Cents) Cents {
	raw := int64(subtotal) * TaxRatePercent
	if raw >= 0 {
		return Cents((raw + 50) / 100)
	}
	return Cents(-((-raw + 50) / 100))
}

// String renders the amount with exactly two decimals.
func (c Cents) String() string {
	v := int64(c)
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}

// MarshalJSON emits the amount as an unquoted two-decimal number.
func (c Cents) MarshalJSON() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalJSON accepts either a JSON number or a quoted decimal string.
func (c *Cents) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "null" {
		return nil
	}
	v, err := Parse(s)
	if err != nil {
		return err
	}
	*c = v
	return nil
}
