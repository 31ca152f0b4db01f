package utils

import (
	"time"

	"github.com/shopspring/decimal"
)

// CalculateDueDate computes the due date for a loan started at borrowDate.
func CalculateDueDate(borrowDate time.Time, durationDays int) time.Time {
	return borrowDate.AddDate(0, 0, durationDays)
}

// IsDateOverdue checks if a due date has passed relative to now.
func IsDateOverdue(dueDate time.Time, now time.Time) bool {
	return now.After(dueDate)
}

// DaysOverdue returns the number of whole days a due date has been missed by,
// zero if the due date has not passed.
func DaysOverdue(dueDate time.Time, now time.Time) int {
	if !now.After(dueDate) {
		return 0
	}
	return int(now.Sub(dueDate).Hours() / 24)
}

// CalculateFine computes the fine owed for an overdue loan.
// Formula: whole days overdue * daily fine, rounded to 2 decimal places.
func CalculateFine(dueDate time.Time, now time.Time, dailyFine decimal.Decimal) decimal.Decimal {
	days := DaysOverdue(dueDate, now)
	if days <= 0 {
		return decimal.Zero
	}
	return dailyFine.Mul(decimal.NewFromInt(int64(days))).Round(2)
}

// DecimalFromString converts string to decimal.Decimal
func DecimalFromString(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(s)
}
