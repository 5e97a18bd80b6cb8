package emi

import (
	"time"

	"github.com/wheelsync/motorlot/pkg/models"
)

// Generate builds the full installment schedule for a finance sale. Due
// dates advance one calendar month from the first installment date. Each
// installment carries the fixed principal/interest split, with the running
// balance clamped so it never goes negative; the final installment absorbs
// any rounding remainder, leaving the balance at exactly zero. Portions
// never go negative: when the absorbed remainder exceeds the installment
// amount, the interest portion floors at zero.
//
// Missing or non-positive inputs yield an empty schedule rather than an
// error; the caller treats that as "no schedule".
//
// Installments already past due at generation time start out Overdue with
// the surcharge applied.
func Generate(first time.Time, tenureMonths int, installmentAmount, loanAmount float64, today time.Time) []models.Installment {
	if first.IsZero() || tenureMonths <= 0 || installmentAmount <= 0 || loanAmount <= 0 {
		return nil
	}

	first = DateOnly(first)
	today = DateOnly(today)

	schedule := make([]models.Installment, tenureMonths)
	remaining := loanAmount

	for i := 0; i < tenureMonths; i++ {
		dueDate := first.AddDate(0, i, 0)

		principal := Round2(installmentAmount * PrincipalRatio)
		if principal > remaining || i == tenureMonths-1 {
			principal = remaining
		}
		interest := Round2(installmentAmount - principal)
		if interest < 0 {
			interest = 0
		}
		remaining = Round2(remaining - principal)

		state := models.InstallmentDue
		charge := 0.0
		if dueDate.Before(today) {
			state = models.InstallmentOverdue
			charge = OverdueCharge
		}

		schedule[i] = models.Installment{
			SequenceNumber:     i + 1,
			DueDate:            dueDate,
			Principal:          principal,
			Interest:           interest,
			Amount:             installmentAmount,
			RemainingPrincipal: remaining,
			State:              state,
			OverdueCharge:      charge,
		}
	}

	return schedule
}
