package calculation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseFinancialYear(t *testing.T) {
	tests := []struct {
		label     string
		wantStart int
		wantErr   bool
	}{
		{label: "2025-26", wantStart: 2025},
		{label: "2099-00", wantStart: 2099},
		{label: "1999-00", wantStart: 1999},
		{label: "2025-27", wantErr: true}, // suffix must be start+1
		{label: "2025-2026", wantErr: true},
		{label: "25-26", wantErr: true},
		{label: "", wantErr: true},
		{label: "FY2025", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			fy, err := ParseFinancialYear(tt.label)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.wantStart, fy.StartYear)
			assert.Equal(t, tt.label, fy.Label())
		})
	}
}

func TestFinancialYearBounds(t *testing.T) {
	fy := FinancialYear{StartYear: 2025}

	assert.Equal(t, Date(2025, time.April, 1), fy.Start())
	assert.Equal(t, Date(2026, time.March, 31), fy.End())
	assert.Equal(t, Date(2026, time.April, 1), fy.AssessmentYearStart())
	assert.Equal(t, Date(2027, time.March, 31), fy.AssessmentYearEnd())

	assert.True(t, fy.Contains(Date(2025, time.April, 1)))
	assert.True(t, fy.Contains(Date(2025, time.December, 25)))
	assert.True(t, fy.Contains(Date(2026, time.March, 31)))
	assert.False(t, fy.Contains(Date(2025, time.March, 31)))
	assert.False(t, fy.Contains(Date(2026, time.April, 1)))
}

func TestMonthsThrough(t *testing.T) {
	ayStart := Date(2026, time.April, 1)

	tests := []struct {
		name string
		to   time.Time
		want int
	}{
		{name: "same day counts as one month", to: Date(2026, time.April, 1), want: 1},
		{name: "mid first month", to: Date(2026, time.April, 18), want: 1},
		{name: "last day of first month", to: Date(2026, time.April, 30), want: 1},
		{name: "first day of second month", to: Date(2026, time.May, 1), want: 2},
		{name: "partial month rounds up", to: Date(2026, time.July, 2), want: 4},
		{name: "full following year", to: Date(2027, time.March, 31), want: 12},
		{name: "before the start", to: Date(2026, time.March, 31), want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MonthsThrough(ayStart, tt.to))
		})
	}
}
