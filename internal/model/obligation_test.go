package model

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func dayP(s string) *time.Time {
	d := day(s)
	return &d
}

func TestValidPeriod(t *testing.T) {
	valid := []string{"2025-01", "2025-12", "1999-00"}
	for _, p := range valid {
		assert.True(t, ValidPeriod(p), p)
	}
	invalid := []string{"", "2025-1", "2025/01", "25-01", "2025-011", " 2025-01"}
	for _, p := range invalid {
		assert.False(t, ValidPeriod(p), p)
	}
}

func TestIsOverdue(t *testing.T) {
	ref := day("2025-03-15")

	tests := []struct {
		name string
		o    Obligation
		want bool
	}{
		{"due before ref", Obligation{Status: StatusPending, DueDate: dayP("2025-03-10")}, true},
		{"due on ref", Obligation{Status: StatusPending, DueDate: dayP("2025-03-15")}, false},
		{"due after ref", Obligation{Status: StatusPending, DueDate: dayP("2025-03-20")}, false},
		{"settled past due", Obligation{Status: StatusSettled, DueDate: dayP("2025-03-10")}, false},
		{"no due date", Obligation{Status: StatusPending}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.o.IsOverdue(ref))
		})
	}
}

func TestAccruedInterest(t *testing.T) {
	tests := []struct {
		name        string
		amount      string
		periodicity string
		status      string
		due         *time.Time
		ref         string
		want        string
	}{
		{
			name:   "monthly rate ten days late",
			amount: "1000", periodicity: PeriodicityMonthly, status: StatusPending,
			due: dayP("2025-01-10"), ref: "2025-01-20",
			want: "5.00", // 1000 x 0.0005 x 10
		},
		{
			name:   "annual rate ten days late",
			amount: "1000", periodicity: PeriodicityAnnual, status: StatusPending,
			due: dayP("2025-01-10"), ref: "2025-01-20",
			want: "3.00", // 1000 x 0.0003 x 10
		},
		{
			name:   "half up rounding",
			amount: "1110", periodicity: PeriodicityAnnual, status: StatusPending,
			due: dayP("2025-01-10"), ref: "2025-01-15",
			want: "1.67", // 1110 x 0.0003 x 5 = 1.665
		},
		{
			name:   "single day late",
			amount: "2500.50", periodicity: PeriodicityMonthly, status: StatusPending,
			due: dayP("2025-06-01"), ref: "2025-06-02",
			want: "1.25", // 2500.50 x 0.0005 = 1.25025
		},
		{
			name:   "not yet due",
			amount: "1000", periodicity: PeriodicityMonthly, status: StatusPending,
			due: dayP("2025-01-10"), ref: "2025-01-10",
			want: "0.00",
		},
		{
			name:   "settled accrues nothing",
			amount: "1000", periodicity: PeriodicityMonthly, status: StatusSettled,
			due: dayP("2025-01-10"), ref: "2025-02-10",
			want: "0.00",
		},
		{
			name:   "no due date accrues nothing",
			amount: "1000", periodicity: PeriodicityMonthly, status: StatusPending,
			due: nil, ref: "2025-02-10",
			want: "0.00",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := Obligation{
				Amount:      decimal.RequireFromString(tt.amount),
				Periodicity: tt.periodicity,
				Status:      tt.status,
				DueDate:     tt.due,
			}
			got := o.AccruedInterest(day(tt.ref))
			assert.Equal(t, tt.want, got.StringFixed(2))
		})
	}
}

func TestAccruedInterestIgnoresTimeOfDay(t *testing.T) {
	due := time.Date(2025, 1, 10, 23, 59, 0, 0, time.UTC)
	o := Obligation{
		Amount:      decimal.RequireFromString("1000"),
		Periodicity: PeriodicityMonthly,
		Status:      StatusPending,
		DueDate:     &due,
	}
	ref := time.Date(2025, 1, 20, 0, 1, 0, 0, time.UTC)
	got := o.AccruedInterest(ref)
	require.Equal(t, "5.00", got.StringFixed(2))
}

func TestDailyPenaltyRate(t *testing.T) {
	monthly := Obligation{Periodicity: PeriodicityMonthly}
	annual := Obligation{Periodicity: PeriodicityAnnual}
	other := Obligation{Periodicity: PeriodicityOther}

	assert.Equal(t, "0.0005", monthly.DailyPenaltyRate().String())
	assert.Equal(t, "0.0003", annual.DailyPenaltyRate().String())
	// Non-annual periodicities accrue at the monthly rate.
	assert.Equal(t, "0.0005", other.DailyPenaltyRate().String())
}

func TestMarkSettled(t *testing.T) {
	o := Obligation{Status: StatusPending}
	o.MarkSettled()
	assert.Equal(t, StatusSettled, o.Status)
}
