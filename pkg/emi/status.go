package emi

import (
	"time"

	"github.com/wheelsync/motorlot/pkg/models"
)

// Sweep flips Due installments whose due date has passed to Overdue and
// applies the surcharge, mutating the schedule in place. Paid and already
// Overdue installments are untouched, so running a sweep twice changes
// nothing. The flipped installments are returned for persistence.
func Sweep(schedule []models.Installment, today time.Time) []models.Installment {
	today = DateOnly(today)

	var changed []models.Installment
	for i := range schedule {
		inst := &schedule[i]
		if inst.State == models.InstallmentDue && DateOnly(inst.DueDate).Before(today) {
			inst.State = models.InstallmentOverdue
			inst.OverdueCharge = OverdueCharge
			changed = append(changed, *inst)
		}
	}

	return changed
}

// DeriveLoanStatus rolls installment states up into the loan status:
// Overdue beats Active beats Closed. An empty schedule is Closed.
func DeriveLoanStatus(schedule []models.Installment) string {
	anyDue := false
	for _, inst := range schedule {
		switch inst.State {
		case models.InstallmentOverdue:
			return models.LoanOverdue
		case models.InstallmentDue:
			anyDue = true
		}
	}
	if anyDue {
		return models.LoanActive
	}
	return models.LoanClosed
}

// DeriveSalesStatus is Closed only when every installment is Paid.
func DeriveSalesStatus(schedule []models.Installment) string {
	for _, inst := range schedule {
		if inst.State != models.InstallmentPaid {
			return models.SalesActive
		}
	}
	return models.SalesClosed
}

// CashSalesStatus derives the sale status of a cash sale from its balance.
func CashSalesStatus(remainingAmount float64) string {
	if remainingAmount == 0 {
		return models.SalesClosed
	}
	return models.SalesActive
}

// AccrueInterest computes simple daily interest on an overdue cash balance
// from the last accrual date up to today. Whole days only; same-day or
// future accrual dates yield zero, which is what makes the read-path
// accrual idempotent within a day.
func AccrueInterest(remainingAmount float64, lastAccrual, today time.Time) float64 {
	if remainingAmount <= 0 {
		return 0
	}
	days := DaysBetween(lastAccrual, today)
	if days <= 0 {
		return 0
	}
	dailyRate := AnnualInterestRate / 365
	return Round2(remainingAmount * dailyRate * float64(days))
}
