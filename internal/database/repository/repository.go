package repository

import (
	"time"

	"github.com/shopspring/decimal"
)

// dateLayout is the calendar-date storage format. Dates are dates, not
// timestamps.
const dateLayout = "2006-01-02"

func fmtDate(t time.Time) string {
	return t.Format(dateLayout)
}

func parseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, s)
}

func validatePositive(field string, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return invalidf(field, "must be greater than zero, got %s", amount)
	}
	return nil
}

func validateNonNegative(field string, amount decimal.Decimal) error {
	if amount.IsNegative() {
		return invalidf(field, "must not be negative, got %s", amount)
	}
	return nil
}

func oneOf(value string, allowed ...string) bool {
	for _, a := range allowed {
		if value == a {
			return true
		}
	}
	return false
}
