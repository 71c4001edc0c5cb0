package services

import (
	"time"

	"github.com/shopspring/decimal"
)

// depositMonthlyRate is the fixed compound rate applied per full 30-day month.
var depositMonthlyRate = decimal.New(5, -2)

var one = decimal.NewFromInt(1)

// DepositPayout computes the total amount the pool pays out when a deposit is
// closed: principal compounded at the monthly rate for each full 30-day month
// held, with a one-month minimum, truncated to the cent. Floor, not
// round-half: the bank never pays a fraction of a cent up.
func DepositPayout(principal decimal.Decimal, openedAt, closedAt time.Time) decimal.Decimal {
	days := int64(closedAt.Sub(openedAt).Hours() / 24)
	months := days / 30
	if months < 1 {
		months = 1
	}

	multiplier := one.Add(depositMonthlyRate).Pow(decimal.NewFromInt(months))
	return principal.Mul(multiplier).RoundFloor(2)
}
