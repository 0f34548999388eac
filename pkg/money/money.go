package money

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidAmount = errors.New("invalid monetary amount")

// Cents is a monetary amount in hundredths of the platform currency.
// Balances and ledger deltas are kept as integers so arithmetic stays exact.
type Cents int64

// Parse converts a decimal string like "250.00" or "99.5" into Cents.
// At most two fractional digits are accepted.
func Parse(s string) (Cents, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}

	negative := false
	if strings.HasPrefix(s, "-") {
		negative = true
		s = s[1:]
	}

	whole, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		whole, frac = s[:i], s[i+1:]
	}
	if whole == "" && frac == "" {
		return 0, ErrInvalidAmount
	}
	if len(frac) > 2 {
		return 0, ErrInvalidAmount
	}
	// 16 whole digits keeps total*100 well inside int64
	if len(whole) > 16 {
		return 0, ErrInvalidAmount
	}

	var total int64
	for _, r := range whole {
		if r < '0' || r > '9' {
			return 0, ErrInvalidAmount
		}
		total = total*10 + int64(r-'0')
	}
	total *= 100

	scale := int64(10)
	for _, r := range frac {
		if r < '0' || r > '9' {
			return 0, ErrInvalidAmount
		}
		total += int64(r-'0') * scale
		scale /= 10
	}

	if negative {
		total = -total
	}
	return Cents(total), nil
}

// MustParse is Parse for trusted literals such as configuration defaults.
func MustParse(s string) Cents {
	c, err := Parse(s)
	if err != nil {
		panic(fmt.Sprintf("money: cannot parse %q", s))
	}
	return c
}

// String renders the amount with two decimal places, e.g. "250.00".
func (c Cents) String() string {
	v := int64(c)
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}

// IsPositive reports whether the amount is strictly greater than zero.
func (c Cents) IsPositive() bool {
	return c > 0
}

// MarshalJSON renders the amount as a decimal string, e.g. "250.00".
func (c Cents) MarshalJSON() ([]byte, error) {
	return []byte(`"` + c.String() + `"`), nil
}

// UnmarshalJSON accepts a decimal string ("250.00") or a bare JSON number.
func (c *Cents) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
