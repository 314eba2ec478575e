package model

import (
	"regexp"
	"time"

	"github.com/shopspring/decimal"
)

// Obligation status enum constants
const (
	StatusPending = "PENDING"
	StatusOverdue = "OVERDUE"
	StatusSettled = "SETTLED"
)

// periodPattern: billing period key, e.g. "2025-01".
var periodPattern = regexp.MustCompile(`^\d{4}-\d{2}$`)

// Daily penalty rates by periodicity. Monthly obligations accrue faster than
// annual ones; this asymmetry is a business rule, not an accident.
var (
	monthlyDailyRate = decimal.RequireFromString("0.0005")
	annualDailyRate  = decimal.RequireFromString("0.0003")
)

// Obligation is a fiscal duty owed by a client for a given type and billing
// period. The (client, type, period) triple is unique, enforced by the
// uk_obligation index; the service layer translates the constraint violation
// into a duplicate error.
//
// Status is authoritative state: an obligation past its due date stays
// PENDING in the store until a caller persists a status change. IsOverdue is
// the pure query used by interest and alert calculations.
type Obligation struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	ClientID    uint            `gorm:"not null;index;uniqueIndex:uk_obligation" json:"client_id"`
	Client      *Client         `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	TypeID      uint            `gorm:"not null;uniqueIndex:uk_obligation" json:"type_id"`
	Type        *ObligationType `gorm:"foreignKey:TypeID" json:"type,omitempty"`
	Period      string          `gorm:"type:char(7);not null;uniqueIndex:uk_obligation" json:"period"` // "YYYY-MM"
	Periodicity string          `gorm:"type:varchar(10);not null" json:"periodicity"`                  // MONTHLY or ANNUAL, fixed at creation
	DueDate     *time.Time      `gorm:"type:date" json:"due_date"`
	Amount      decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"amount"`
	Status      string          `gorm:"type:varchar(10);not null;default:'PENDING';index" json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ValidPeriod reports whether s matches the "YYYY-MM" period key format.
func ValidPeriod(s string) bool {
	return periodPattern.MatchString(s)
}

// DateOnly truncates t to a calendar date at UTC midnight so that day-level
// comparisons and day counts are timezone-independent.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// IsOverdue reports whether the obligation is overdue as of ref: not settled
// and strictly past its due date. It never mutates Status.
func (o *Obligation) IsOverdue(ref time.Time) bool {
	return o.Status != StatusSettled && o.DueDate != nil && DateOnly(*o.DueDate).Before(DateOnly(ref))
}

// DailyPenaltyRate returns the daily interest rate for the obligation's
// periodicity: 0.0003 for annual, 0.0005 for everything else.
func (o *Obligation) DailyPenaltyRate() decimal.Decimal {
	if o.Periodicity == PeriodicityAnnual {
		return annualDailyRate
	}
	return monthlyDailyRate
}

// AccruedInterest returns the late-payment interest as of ref, rounded
// half-up to 2 decimal places: amount × dailyRate × daysLate. Zero when the
// obligation is not overdue.
func (o *Obligation) AccruedInterest(ref time.Time) decimal.Decimal {
	if !o.IsOverdue(ref) {
		return decimal.Zero
	}
	days := int64(DateOnly(ref).Sub(DateOnly(*o.DueDate)).Hours() / 24)
	// Round is half-away-from-zero, which is half-up for non-negative amounts.
	return o.Amount.Mul(o.DailyPenaltyRate()).Mul(decimal.NewFromInt(days)).Round(2)
}

// MarkSettled flips the status to SETTLED. Persisting is the caller's job;
// the payment service does it inside the settlement transaction.
func (o *Obligation) MarkSettled() {
	o.Status = StatusSettled
}
