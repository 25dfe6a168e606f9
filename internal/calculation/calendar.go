// Package calculation implements the advance-tax computation pipeline:
// book profit reconciliation, regime-aware liability, the quarterly
// installment plan, Sections 234B/234C interest, and what-if scenarios.
// Everything here is a pure function of its inputs; dates arrive as
// parameters and money is shopspring decimal throughout.
package calculation

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// FinancialYear is an Indian fiscal year running 1 April through 31 March.
// StartYear is the calendar year containing the 1 April opening day, so the
// label "2025-26" parses to StartYear 2025.
type FinancialYear struct {
	StartYear int
}

var fyLabelPattern = regexp.MustCompile(`^(\d{4})-(\d{2})$`)

// ParseFinancialYear parses a label such as "2025-26". The two-digit suffix
// must be the starting year plus one.
func ParseFinancialYear(label string) (FinancialYear, error) {
	m := fyLabelPattern.FindStringSubmatch(label)
	if m == nil {
		return FinancialYear{}, fmt.Errorf("invalid financial year %q, expected format YYYY-YY", label)
	}
	start, _ := strconv.Atoi(m[1])
	suffix, _ := strconv.Atoi(m[2])
	if (start+1)%100 != suffix {
		return FinancialYear{}, fmt.Errorf("invalid financial year %q, %d must be followed by %02d", label, start, (start+1)%100)
	}
	return FinancialYear{StartYear: start}, nil
}

// Label renders the year back into its "2025-26" form.
func (fy FinancialYear) Label() string {
	return fmt.Sprintf("%04d-%02d", fy.StartYear, (fy.StartYear+1)%100)
}

// Start returns 1 April of the starting calendar year.
func (fy FinancialYear) Start() time.Time {
	return Date(fy.StartYear, time.April, 1)
}

// End returns 31 March of the following calendar year.
func (fy FinancialYear) End() time.Time {
	return Date(fy.StartYear+1, time.March, 31)
}

// AssessmentYearStart returns 1 April following the financial year, the day
// Section 234B interest begins to run.
func (fy FinancialYear) AssessmentYearStart() time.Time {
	return Date(fy.StartYear+1, time.April, 1)
}

// AssessmentYearEnd returns 31 March closing the assessment year, the last
// day a payment can be dated against the year.
func (fy FinancialYear) AssessmentYearEnd() time.Time {
	return Date(fy.StartYear+2, time.March, 31)
}

// Contains reports whether d falls inside the financial year.
func (fy FinancialYear) Contains(d time.Time) bool {
	d = Date(d.Year(), d.Month(), d.Day())
	return !d.Before(fy.Start()) && !d.After(fy.End())
}

// Date builds a calendar date: midnight UTC, no time-of-day component.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// MonthsThrough counts the calendar months touched by the span [from, to],
// the statutory convention under which any part of a month counts as a whole
// month. Returns zero when to precedes from.
func MonthsThrough(from, to time.Time) int {
	from = Date(from.Year(), from.Month(), from.Day())
	to = Date(to.Year(), to.Month(), to.Day())
	if to.Before(from) {
		return 0
	}
	return (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month()) + 1
}
