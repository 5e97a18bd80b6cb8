package emi

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wheelsync/motorlot/pkg/models"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestGenerateSchedule(t *testing.T) {
	first := date(2025, time.March, 10)
	today := date(2025, time.March, 1)

	schedule := Generate(first, 12, 10000, 84000, today)
	require.Len(t, schedule, 12)

	sumPrincipal := 0.0
	for i, inst := range schedule {
		assert.Equal(t, i+1, inst.SequenceNumber)
		assert.Equal(t, first.AddDate(0, i, 0), inst.DueDate)
		assert.Equal(t, models.InstallmentDue, inst.State)
		assert.Zero(t, inst.OverdueCharge)
		assert.InDelta(t, inst.Amount, inst.Principal+inst.Interest, 0.01)
		if i > 0 {
			assert.LessOrEqual(t, inst.RemainingPrincipal, schedule[i-1].RemainingPrincipal)
		}
		sumPrincipal += inst.Principal
	}

	assert.InDelta(t, 84000, sumPrincipal, 0.12)
	assert.Zero(t, schedule[len(schedule)-1].RemainingPrincipal)
}

func TestGenerateClampsPrincipalToBalance(t *testing.T) {
	first := date(2025, time.January, 5)
	today := date(2025, time.January, 1)

	// 70% of the installment exhausts the loan before the tenure runs out.
	schedule := Generate(first, 12, 10000, 50000, today)
	require.Len(t, schedule, 12)

	sumPrincipal := 0.0
	for _, inst := range schedule {
		assert.GreaterOrEqual(t, inst.RemainingPrincipal, 0.0)
		sumPrincipal += inst.Principal
	}

	assert.InDelta(t, 50000, sumPrincipal, 0.12)
	assert.Zero(t, schedule[len(schedule)-1].RemainingPrincipal)
	// Once the balance hits zero the remaining installments carry no principal.
	assert.Zero(t, schedule[9].Principal)
	assert.Equal(t, 10000.0, schedule[9].Interest)
}

func TestGenerateAbsorbingInstallmentFloorsInterest(t *testing.T) {
	first := date(2025, time.April, 1)
	today := date(2025, time.March, 1)

	// The 70% portions cover only 21000 of the loan, so the final
	// installment absorbs a 36000 remainder larger than its own amount.
	schedule := Generate(first, 3, 10000, 50000, today)
	require.Len(t, schedule, 3)

	assert.Equal(t, 7000.0, schedule[0].Principal)
	assert.Equal(t, 3000.0, schedule[0].Interest)
	assert.Equal(t, 36000.0, schedule[2].Principal)
	assert.Zero(t, schedule[2].Interest)
	assert.Zero(t, schedule[2].RemainingPrincipal)

	for _, inst := range schedule {
		assert.GreaterOrEqual(t, inst.Principal, 0.0)
		assert.GreaterOrEqual(t, inst.Interest, 0.0)
	}
}

func TestGenerateBackdatedInstallmentsStartOverdue(t *testing.T) {
	first := date(2025, time.January, 15)
	today := date(2025, time.March, 1)

	schedule := Generate(first, 6, 5000, 21000, today)
	require.Len(t, schedule, 6)

	assert.Equal(t, models.InstallmentOverdue, schedule[0].State)
	assert.Equal(t, OverdueCharge, schedule[0].OverdueCharge)
	assert.Equal(t, models.InstallmentOverdue, schedule[1].State)
	assert.Equal(t, models.InstallmentDue, schedule[2].State)
	assert.Zero(t, schedule[2].OverdueCharge)
}

func TestGenerateRejectsMissingInputs(t *testing.T) {
	today := date(2025, time.June, 1)
	first := date(2025, time.June, 10)

	assert.Nil(t, Generate(time.Time{}, 12, 10000, 84000, today))
	assert.Nil(t, Generate(first, 0, 10000, 84000, today))
	assert.Nil(t, Generate(first, 12, 0, 84000, today))
	assert.Nil(t, Generate(first, 12, 10000, 0, today))
}

func TestGenerateMonthEndDates(t *testing.T) {
	first := date(2025, time.January, 31)
	today := date(2025, time.January, 1)

	schedule := Generate(first, 3, 10000, 21000, today)
	require.Len(t, schedule, 3)

	// AddDate normalization: Jan 31 + 1 month rolls into March.
	assert.Equal(t, date(2025, time.January, 31), schedule[0].DueDate)
	assert.Equal(t, date(2025, time.March, 3), schedule[1].DueDate)
	assert.Equal(t, date(2025, time.March, 31), schedule[2].DueDate)
}
