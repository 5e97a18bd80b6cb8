// Package emi holds the installment ledger engine: schedule generation,
// state sweeps, loan status derivation and the dashboard fold helpers.
// Every function is pure over its inputs; the current date is always an
// explicit parameter so callers source it once per request or batch.
package emi

import (
	"math"
	"time"
)

const (
	// PrincipalRatio is the flat principal share of every installment.
	// The schedule is a fixed 70/30 split, not a true amortization.
	PrincipalRatio = 0.7

	// OverdueCharge is the fixed surcharge applied when an installment
	// goes overdue.
	OverdueCharge = 500.0

	// AnnualInterestRate is the simple interest rate accrued daily on
	// overdue cash-sale balances.
	AnnualInterestRate = 0.175
)

// Round2 rounds a monetary amount to cents.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// DateOnly truncates a timestamp to its calendar date, anchored in UTC.
// Dates read from the store carry UTC while the server clock carries the
// local zone; anchoring both sides makes every comparison a comparison of
// calendar components.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the number of whole calendar days from one date to
// another. Negative when to precedes from.
func DaysBetween(from, to time.Time) int {
	return int(DateOnly(to).Sub(DateOnly(from)).Hours() / 24)
}
