package emi

import (
	"fmt"
	"math"
	"time"

	"github.com/wheelsync/motorlot/pkg/models"
)

// MonthNames index the Jan-Dec collection buckets.
var MonthNames = [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// PercentChange formats the month-over-month change between two values,
// rounded to the nearest whole percent. A zero previous value reports
// +100% when anything was collected at all, else 0%.
func PercentChange(current, previous float64) string {
	if previous > 0 {
		change := int(math.Round(((current - previous) / previous) * 100))
		if change == 0 {
			return "0%"
		}
		return fmt.Sprintf("%+d%%", change)
	}
	if current > 0 {
		return "+100%"
	}
	return "0%"
}

// MonthBucket adds an amount into its month-of-year bucket. Buckets are
// keyed only by month index, so amounts from different years land in the
// same bucket.
func MonthBucket(buckets *[12]float64, date time.Time, amount float64) {
	buckets[int(date.Month())-1] += amount
}

// SameMonth reports whether two dates fall in the same calendar month of
// the same year.
func SameMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}

// PreviousMonth returns a date inside the calendar month before t.
func PreviousMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location()).AddDate(0, 0, -1)
}

// DueWindow reports whether a due date falls within [today, today+days],
// both ends inclusive.
func DueWindow(due, today time.Time, days int) bool {
	d := DateOnly(due)
	t := DateOnly(today)
	return !d.Before(t) && !d.After(t.AddDate(0, 0, days))
}

// OverdueBucket aggregates the Overdue installments of one schedule into a
// collections bucket: how many, their summed amount and the earliest due
// date among them. Count zero means no bucket.
func OverdueBucket(schedule []models.Installment) (count int, amount float64, earliest time.Time) {
	for _, inst := range schedule {
		if inst.State != models.InstallmentOverdue {
			continue
		}
		if count == 0 || inst.DueDate.Before(earliest) {
			earliest = inst.DueDate
		}
		count++
		amount = Round2(amount + inst.Amount)
	}
	return count, amount, earliest
}
