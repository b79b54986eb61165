// Package money converts between decimal currency amounts and integer minor
// units (paise). All conversion routes through decimal arithmetic; raw binary
// floating point is never multiplied or divided on this path.
package money

import (
	"errors"
	"math"

	"github.com/shopspring/decimal"
)

// ErrInvalidAmount is returned when an amount is not a finite number. Upstream
// validation should make this unreachable; it is a contract violation, not a
// user error.
var ErrInvalidAmount = errors.New("money: amount is not a finite number")

var minorUnitsPerMajor = decimal.NewFromInt(100)

// ToMinorUnits converts a decimal currency amount to integer minor units,
// rounding half away from zero. The conversion is exact up to the rounding
// step: decimal.NewFromFloat recovers the shortest decimal representation of
// the input, so values like 0.1+0.2 encode to 30, not 30.000000000000004.
func ToMinorUnits(amount float64) (int64, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return 0, ErrInvalidAmount
	}

	return decimal.NewFromFloat(amount).Mul(minorUnitsPerMajor).Round(0).IntPart(), nil
}

// FromMinorUnits converts integer minor units back to a decimal amount with
// two fractional digits. The division is exact; no re-rounding happens here.
func FromMinorUnits(minorUnits int64) decimal.Decimal {
	return decimal.NewFromInt(minorUnits).Shift(-2)
}

// Display formats minor units as a fixed two-decimal string for API responses.
func Display(minorUnits int64) string {
	return FromMinorUnits(minorUnits).StringFixed(2)
}
