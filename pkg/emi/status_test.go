package emi

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wheelsync/motorlot/pkg/models"
)

func TestSweepFlipsOnlyPastDue(t *testing.T) {
	today := date(2025, time.May, 10)
	schedule := []models.Installment{
		{SequenceNumber: 1, DueDate: date(2025, time.May, 9), State: models.InstallmentDue},
		{SequenceNumber: 2, DueDate: date(2025, time.May, 10), State: models.InstallmentDue},
		{SequenceNumber: 3, DueDate: date(2025, time.May, 11), State: models.InstallmentDue},
	}

	changed := Sweep(schedule, today)
	require.Len(t, changed, 1)
	assert.Equal(t, 1, changed[0].SequenceNumber)
	assert.Equal(t, models.InstallmentOverdue, schedule[0].State)
	assert.Equal(t, OverdueCharge, schedule[0].OverdueCharge)
	assert.Equal(t, models.InstallmentDue, schedule[1].State)
	assert.Equal(t, models.InstallmentDue, schedule[2].State)

	// A second sweep over the same schedule is a no-op.
	assert.Empty(t, Sweep(schedule, today))
}

func TestSweepLeavesPaidAlone(t *testing.T) {
	today := date(2025, time.May, 10)
	schedule := []models.Installment{
		{SequenceNumber: 1, DueDate: date(2025, time.April, 1), State: models.InstallmentPaid},
		{SequenceNumber: 2, DueDate: date(2025, time.April, 1), State: models.InstallmentOverdue, OverdueCharge: OverdueCharge},
	}

	assert.Empty(t, Sweep(schedule, today))
	assert.Equal(t, models.InstallmentPaid, schedule[0].State)
}

func TestDeriveStatuses(t *testing.T) {
	paid := models.Installment{State: models.InstallmentPaid}
	due := models.Installment{State: models.InstallmentDue}
	overdue := models.Installment{State: models.InstallmentOverdue}

	tests := []struct {
		name        string
		schedule    []models.Installment
		loanStatus  string
		salesStatus string
	}{
		{"all paid", []models.Installment{paid, paid, paid}, models.LoanClosed, models.SalesClosed},
		{"one due rest paid", []models.Installment{due, paid, paid}, models.LoanActive, models.SalesActive},
		{"one overdue rest paid", []models.Installment{overdue, paid, paid}, models.LoanOverdue, models.SalesActive},
		{"overdue beats due", []models.Installment{due, overdue}, models.LoanOverdue, models.SalesActive},
		{"empty schedule", nil, models.LoanClosed, models.SalesClosed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.loanStatus, DeriveLoanStatus(tt.schedule))
			assert.Equal(t, tt.salesStatus, DeriveSalesStatus(tt.schedule))
		})
	}
}

func TestCashSalesStatus(t *testing.T) {
	assert.Equal(t, models.SalesClosed, CashSalesStatus(0))
	assert.Equal(t, models.SalesActive, CashSalesStatus(100))
}

func TestAccrueInterest(t *testing.T) {
	last := date(2025, time.June, 1)
	today := date(2025, time.June, 11)

	// 10 whole days at 17.5% / 365 on 10000.
	assert.Equal(t, 47.95, AccrueInterest(10000, last, today))

	// Same day, future marker or cleared balance accrue nothing.
	assert.Zero(t, AccrueInterest(10000, today, today))
	assert.Zero(t, AccrueInterest(10000, today.AddDate(0, 0, 5), today))
	assert.Zero(t, AccrueInterest(0, last, today))
}

func TestAccrueInterestMixedLocations(t *testing.T) {
	// Accrual markers are stored in UTC; a local-zone clock reading must
	// not shave a day off the count.
	ist := time.FixedZone("IST", 5*60*60+30*60)
	last := date(2025, time.June, 1)
	today := time.Date(2025, time.June, 11, 8, 0, 0, 0, ist)

	assert.Equal(t, 10, DaysBetween(last, today))
	assert.Equal(t, 47.95, AccrueInterest(10000, last, today))
}

func TestAccrualIdempotentWithinDay(t *testing.T) {
	last := date(2025, time.June, 1)
	today := date(2025, time.June, 11)

	remaining := 10000.0
	interest := AccrueInterest(remaining, last, today)
	remaining = Round2(remaining + interest)

	// Once the accrual marker moves to today, re-reading the same record
	// on the same day adds nothing more.
	assert.Zero(t, AccrueInterest(remaining, today, today))
}
