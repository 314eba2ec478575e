package model

// Periodicity enum constants
const (
	PeriodicityMonthly = "MONTHLY"
	PeriodicityAnnual  = "ANNUAL"
	PeriodicityOther   = "OTHER"
)

// ObligationType is immutable reference data describing a kind of fiscal
// obligation (e.g. VAT is monthly, income tax is annual). The periodicity
// decides which interest rate newly created obligations accrue at.
type ObligationType struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Code        string `gorm:"type:varchar(10);uniqueIndex;not null" json:"code"`
	Description string `gorm:"type:varchar(255);not null" json:"description"`
	Periodicity string `gorm:"type:varchar(10);not null" json:"periodicity"` // MONTHLY, ANNUAL, OTHER
}
