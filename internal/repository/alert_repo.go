package repository

import (
	"context"
	"time"

	"fiscaltrack/internal/model"

	"gorm.io/gorm"
)

type AlertRepository interface {
	Create(ctx context.Context, alert *model.Alert) error
	// ExistsFor reports whether an alert was already raised for the
	// obligation on the given calendar day (the dedup lookup).
	ExistsFor(ctx context.Context, obligationID uint, day time.Time) (bool, error)
	FindUnread(ctx context.Context) ([]model.Alert, error)
	MarkRead(ctx context.Context, id uint) error
}

type alertRepository struct {
	db *gorm.DB
}

func NewAlertRepository(db *gorm.DB) AlertRepository {
	return &alertRepository{db: db}
}

func (r *alertRepository) Create(ctx context.Context, alert *model.Alert) error {
	return GetDB(ctx, r.db).Omit("Obligation").Create(alert).Error
}

func (r *alertRepository) ExistsFor(ctx context.Context, obligationID uint, day time.Time) (bool, error) {
	var count int64
	err := GetDB(ctx, r.db).Model(&model.Alert{}).
		Where("obligation_id = ? AND raised_on = ?", obligationID, model.DateOnly(day)).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *alertRepository) FindUnread(ctx context.Context) ([]model.Alert, error) {
	var alerts []model.Alert
	err := GetDB(ctx, r.db).Preload("Obligation").
		Where("read = ?", false).Order("raised_on asc").Find(&alerts).Error
	if err != nil {
		return nil, err
	}
	return alerts, nil
}

// MarkRead updates unconditionally: marking an already-read alert is a no-op
// success, and the service validates the id before calling.
func (r *alertRepository) MarkRead(ctx context.Context, id uint) error {
	return GetDB(ctx, r.db).Model(&model.Alert{}).Where("id = ?", id).Update("read", true).Error
}
