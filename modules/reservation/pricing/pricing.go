// Package pricing holds the rental fee arithmetic. All functions are pure
// and operate on fixed-point decimals: cent-accurate equality is part of
// the contract, so binary floats never appear here.
package pricing

import "github.com/shopspring/decimal"

// 15% of the book price per day of delay.
var lateFeeRate = decimal.RequireFromString("0.15")

// Base returns the base rental fee: dailyRate * rentalDays, rounded
// half-up to two decimals. rentalDays must be >= 1.
func Base(dailyRate decimal.Decimal, rentalDays int) decimal.Decimal {
	return dailyRate.Mul(decimal.NewFromInt(int64(rentalDays))).Round(2)
}

// Late returns the penalty for a late return: bookPrice * 0.15 * daysLate,
// rounded half-up to two decimals. daysLate must be >= 1; callers substitute
// zero for non-positive delays instead of calling Late.
func Late(bookPrice decimal.Decimal, daysLate int) decimal.Decimal {
	return bookPrice.Mul(lateFeeRate).Mul(decimal.NewFromInt(int64(daysLate))).Round(2)
}
