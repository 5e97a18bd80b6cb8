package emi

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/wheelsync/motorlot/pkg/models"
)

func TestPercentChange(t *testing.T) {
	assert.Equal(t, "0%", PercentChange(0, 0))
	assert.Equal(t, "+100%", PercentChange(500, 0))
	assert.Equal(t, "-50%", PercentChange(100, 200))
	assert.Equal(t, "+50%", PercentChange(150, 100))
	assert.Equal(t, "0%", PercentChange(200, 200))
	assert.Equal(t, "-100%", PercentChange(0, 350))
	// Rounded to the nearest whole percent.
	assert.Equal(t, "+33%", PercentChange(400, 300))
}

func TestMonthBucketIgnoresYear(t *testing.T) {
	var buckets [12]float64
	MonthBucket(&buckets, date(2023, time.March, 5), 100)
	MonthBucket(&buckets, date(2024, time.March, 20), 250)
	MonthBucket(&buckets, date(2024, time.December, 1), 75)

	assert.Equal(t, 350.0, buckets[2])
	assert.Equal(t, 75.0, buckets[11])
	assert.Zero(t, buckets[0])
}

func TestDueWindow(t *testing.T) {
	today := date(2025, time.July, 10)

	assert.True(t, DueWindow(today, today, 5))
	assert.True(t, DueWindow(date(2025, time.July, 15), today, 5))
	assert.False(t, DueWindow(date(2025, time.July, 16), today, 5))
	assert.False(t, DueWindow(date(2025, time.July, 9), today, 5))
}

func TestDueWindowMixedLocations(t *testing.T) {
	// Due dates come out of the store in UTC while the clock reading is
	// in the server's zone; the window must still count calendar days.
	ist := time.FixedZone("IST", 5*60*60+30*60)
	today := time.Date(2025, time.July, 10, 9, 0, 0, 0, ist)

	assert.True(t, DueWindow(date(2025, time.July, 15), today, 5))
	assert.False(t, DueWindow(date(2025, time.July, 16), today, 5))
	assert.True(t, DueWindow(date(2025, time.July, 10), today, 5))
}

func TestOverdueBucket(t *testing.T) {
	schedule := []models.Installment{
		{State: models.InstallmentOverdue, DueDate: date(2024, time.February, 5), Amount: 1000},
		{State: models.InstallmentOverdue, DueDate: date(2024, time.January, 5), Amount: 1000},
		{State: models.InstallmentPaid, DueDate: date(2023, time.December, 5), Amount: 1000},
		{State: models.InstallmentDue, DueDate: date(2024, time.March, 5), Amount: 1000},
	}

	count, amount, earliest := OverdueBucket(schedule)
	assert.Equal(t, 2, count)
	assert.Equal(t, 2000.0, amount)
	assert.Equal(t, date(2024, time.January, 5), earliest)
}

func TestOverdueBucketEmpty(t *testing.T) {
	count, amount, _ := OverdueBucket(nil)
	assert.Zero(t, count)
	assert.Zero(t, amount)
}

func TestSameMonth(t *testing.T) {
	assert.True(t, SameMonth(date(2025, time.August, 1), date(2025, time.August, 31)))
	assert.False(t, SameMonth(date(2024, time.August, 1), date(2025, time.August, 1)))
	assert.False(t, SameMonth(date(2025, time.July, 31), date(2025, time.August, 1)))
}

func TestPreviousMonth(t *testing.T) {
	prev := PreviousMonth(date(2025, time.January, 15))
	assert.Equal(t, 2024, prev.Year())
	assert.Equal(t, time.December, prev.Month())
}
