package repository

import (
	"context"

	"fiscaltrack/internal/model"

	"gorm.io/gorm"
)

type PaymentRepository interface {
	Create(ctx context.Context, payment *model.Payment) error
	FindByObligation(ctx context.Context, obligationID uint) ([]model.Payment, error)
}

type paymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) Create(ctx context.Context, payment *model.Payment) error {
	return GetDB(ctx, r.db).Omit("Obligation").Create(payment).Error
}

func (r *paymentRepository) FindByObligation(ctx context.Context, obligationID uint) ([]model.Payment, error) {
	var payments []model.Payment
	err := GetDB(ctx, r.db).Where("obligation_id = ?", obligationID).
		Order("paid_at asc").Find(&payments).Error
	if err != nil {
		return nil, err
	}
	return payments, nil
}
