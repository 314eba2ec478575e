package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment records the settlement of one obligation. Created only by the
// payment service and immutable afterwards; in the intended flow each
// obligation has at most one payment, guarded by the already-settled check.
type Payment struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	ObligationID uint            `gorm:"not null;index" json:"obligation_id"`
	Obligation   *Obligation     `gorm:"foreignKey:ObligationID" json:"obligation,omitempty"`
	PaidAt       time.Time       `gorm:"type:date;not null" json:"paid_at"`
	Medium       string          `gorm:"type:varchar(50)" json:"medium"` // e.g. "Transfer", "Cash"
	Amount       decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"amount"`
	CreatedAt    time.Time       `json:"created_at"`
}
