package model

import (
	"regexp"
	"time"
)

// taxIDPattern: 11 numeric digits, the CUIT format. Uniqueness is enforced
// by the database; this only checks shape.
var taxIDPattern = regexp.MustCompile(`^\d{11}$`)

// Client represents a client of the accounting practice.
type Client struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	LegalName string    `gorm:"type:varchar(255);not null" json:"legal_name"`
	TaxID     string    `gorm:"type:char(11);uniqueIndex;not null" json:"tax_id"`
	Email     string    `gorm:"type:varchar(255)" json:"email"`
	Phone     string    `gorm:"type:varchar(50)" json:"phone"`
	Address   string    `gorm:"type:varchar(255)" json:"address"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ValidTaxID reports whether s is a well-formed 11-digit tax identifier.
func ValidTaxID(s string) bool {
	return taxIDPattern.MatchString(s)
}

// Equal compares two clients by identity key once both are persisted, and by
// tax identifier otherwise, so not-yet-saved clients can still be compared.
func (c *Client) Equal(other *Client) bool {
	if other == nil {
		return false
	}
	if c.ID > 0 && other.ID > 0 {
		return c.ID == other.ID
	}
	return c.TaxID == other.TaxID
}
