package model

import "time"

// Alert is a reminder that an obligation is overdue or about to fall due.
// At most one alert exists per (obligation, calendar day); the alert service
// checks the pair before inserting. The only mutation is the one-way
// unread → read flip.
type Alert struct {
	ID           uint        `gorm:"primaryKey" json:"id"`
	ObligationID uint        `gorm:"not null;index:idx_alert_obligation_date" json:"obligation_id"`
	Obligation   *Obligation `gorm:"foreignKey:ObligationID" json:"obligation,omitempty"`
	RaisedOn     time.Time   `gorm:"type:date;not null;index:idx_alert_obligation_date" json:"raised_on"`
	Read         bool        `gorm:"not null;default:false" json:"read"`
	CreatedAt    time.Time   `json:"created_at"`
}

// MarkRead flips the read flag. Idempotent: re-marking a read alert is a
// no-op, not an error.
func (a *Alert) MarkRead() {
	a.Read = true
}
