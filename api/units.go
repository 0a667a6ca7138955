package api

import (
	"bytes"
	"fmt"
	"math"
	"strconv"

	"github.com/shopspring/decimal"
)

// ArktoshiPerArk is the number of base units in one ARK.
const ArktoshiPerArk = 100000000

var (
	arkExp      = decimal.New(1, 8)
	maxArktoshi = decimal.NewFromInt(math.MaxInt64)
	minArktoshi = decimal.NewFromInt(math.MinInt64)
)

// Arktoshi is an amount in the chain's base unit. Nodes send it either as a
// JSON number or as a numeric string.
type Arktoshi int64

// ToDisplayUnit converts a base-unit amount to ARK.
func ToDisplayUnit(raw float64) float64 {
	return raw / ArktoshiPerArk
}

// ToBaseUnit converts an ARK amount to base units.
func ToBaseUnit(display float64) float64 {
	return display * ArktoshiPerArk
}

// Ark returns the amount in ARK as a float. Use Decimal for exact values.
func (a Arktoshi) Ark() float64 {
	return ToDisplayUnit(float64(a))
}

// Decimal returns the exact amount in ARK.
func (a Arktoshi) Decimal() decimal.Decimal {
	return decimal.New(int64(a), -8)
}

func (a Arktoshi) String() string {
	return strconv.FormatInt(int64(a), 10)
}

// MarshalJSON writes the amount as a JSON number.
func (a Arktoshi) MarshalJSON() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalJSON accepts 123, "123" and 1.23e2 but rejects fractional,
// non-numeric or out of int64 range content.
func (a *Arktoshi) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) >= 2 && data[0] == '"' && data[len(data)-1] == '"' {
		data = data[1 : len(data)-1]
	}

	d, err := decimal.NewFromString(string(data))
	if err != nil {
		return fmt.Errorf("invalid arktoshi amount %q: %w", string(data), err)
	}
	if !d.IsInteger() {
		return fmt.Errorf("invalid arktoshi amount %q: not an integer", string(data))
	}
	if d.Cmp(maxArktoshi) > 0 || d.Cmp(minArktoshi) < 0 {
		return fmt.Errorf("invalid arktoshi amount %q: out of range", string(data))
	}

	*a = Arktoshi(d.IntPart())
	return nil
}

// ArkToArktoshi converts an exact ARK amount to base units.
func ArkToArktoshi(ark decimal.Decimal) (Arktoshi, error) {
	if ark.IsNegative() {
		return 0, fmt.Errorf("amount must not be negative: %s", ark.String())
	}

	raw := ark.Mul(arkExp)
	if !raw.IsInteger() {
		return 0, fmt.Errorf("amount %s has more than 8 decimal places", ark.String())
	}
	if raw.Cmp(maxArktoshi) > 0 {
		return 0, fmt.Errorf("amount %s is out of range", ark.String())
	}

	return Arktoshi(raw.IntPart()), nil
}

// FormatBalance formats an amount in a human-readable format
func FormatBalance(a Arktoshi) string {
	return fmt.Sprintf("%s ARK", a.Decimal().StringFixed(8))
}
