package parking

import (
	"time"

	"github.com/shopspring/decimal"
)

var nanosPerHour = decimal.NewFromInt(int64(time.Hour))

// CalculateFee charges rate per hour for the wall-clock time between
// admittedAt and now, rounded half away from zero to cents. A clock that
// went backwards yields a zero fee.
func CalculateFee(admittedAt, now time.Time, ratePerHour decimal.Decimal) decimal.Decimal {
	elapsed := now.Sub(admittedAt)
	if elapsed <= 0 {
		return decimal.Zero
	}

	hours := decimal.NewFromInt(int64(elapsed)).Div(nanosPerHour)
	return hours.Mul(ratePerHour).Round(2)
}
