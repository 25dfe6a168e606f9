package calculation

import (
	"time"

	"github.com/shopspring/decimal"
)

// FinancialYearFor returns the fiscal year containing d: April through
// December map to the year opening that April, January through March to the
// year that opened the previous April.
func FinancialYearFor(d time.Time) FinancialYear {
	if d.Month() >= time.April {
		return FinancialYear{StartYear: d.Year()}
	}
	return FinancialYear{StartYear: d.Year() - 1}
}

// RunRateProjection extrapolates a YTD amount over the rest of the fiscal
// year at its average monthly rate. Months elapsed counts from the FY start
// through the actuals' as-of date, a partial month counting as elapsed,
// clamped to 1..12 so the division is always defined. A full year of actuals
// leaves nothing to project.
func RunRateProjection(ytdAmount decimal.Decimal, fy FinancialYear, throughDate time.Time) decimal.Decimal {
	elapsed := MonthsThrough(fy.Start(), throughDate)
	if elapsed < 1 {
		elapsed = 1
	}
	if elapsed > 12 {
		elapsed = 12
	}
	remaining := 12 - elapsed
	if remaining == 0 {
		return decimal.Zero
	}
	return ytdAmount.
		Div(decimal.NewFromInt(int64(elapsed))).
		Mul(decimal.NewFromInt(int64(remaining))).
		Round(2)
}
