// Package money holds the exact decimal helpers every amount in the ledger
// goes through. Amounts are shopspring decimals kept at cent precision.
package money

import (
	"strings"

	"github.com/shopspring/decimal"
	"github.com/smallbiznis/railpos/internal/errkind"
)

// Scale is the number of fractional digits stored for every amount.
const Scale = 2

var (
	ErrInvalidAmount = errkind.New("invalid_amount", errkind.ErrInvalidAmount)
	ErrInvalidParts  = errkind.New("invalid_installment_count", errkind.ErrInvalidArgument)
)

// Zero is the zero amount.
var Zero = decimal.Zero

// Round brings d to cent precision.
func Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(Scale)
}

// Parse reads a decimal string such as "150.00".
func Parse(value string) (decimal.Decimal, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return decimal.Zero, ErrInvalidAmount
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	return Round(d), nil
}

// MustParse is Parse for constants and tests.
func MustParse(value string) decimal.Decimal {
	d, err := Parse(value)
	if err != nil {
		panic(err)
	}
	return d
}

// Min returns the smaller of a and b.
func Min(a, b decimal.Decimal) decimal.Decimal {
	if a.LessThan(b) {
		return a
	}
	return b
}

// Sum adds all values.
func Sum(values ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(v)
	}
	return total
}

// Mul multiplies a unit amount by an integer quantity.
func Mul(unit decimal.Decimal, quantity int) decimal.Decimal {
	return Round(unit.Mul(decimal.NewFromInt(int64(quantity))))
}

// Split divides total into parts equal shares at cent precision. Every share
// but the last is the floored quotient; the last absorbs the remainder so the
// shares always add back up to total.
func Split(total decimal.Decimal, parts int) ([]decimal.Decimal, error) {
	if parts < 1 {
		return nil, ErrInvalidParts
	}
	if total.IsNegative() {
		return nil, ErrInvalidAmount
	}

	total = Round(total)
	share := total.Div(decimal.NewFromInt(int64(parts))).RoundFloor(Scale)

	shares := make([]decimal.Decimal, parts)
	allocated := decimal.Zero
	for i := 0; i < parts-1; i++ {
		shares[i] = share
		allocated = allocated.Add(share)
	}
	shares[parts-1] = total.Sub(allocated)
	return shares, nil
}
