package repository

import (
	"context"

	"fiscaltrack/internal/model"

	"gorm.io/gorm"
)

type ObligationRepository interface {
	// Save inserts (assigning the identity key) or updates by primary key.
	// A violation of the unique (client, type, period) index surfaces as
	// gorm.ErrDuplicatedKey for the service layer to translate.
	Save(ctx context.Context, obligation *model.Obligation) error
	FindByID(ctx context.Context, id uint) (*model.Obligation, error)
	FindAll(ctx context.Context) ([]model.Obligation, error)
	FindByClient(ctx context.Context, clientID uint) ([]model.Obligation, error)
	Delete(ctx context.Context, id uint) error
	// Settle flips status to SETTLED only while it is not SETTLED yet and
	// reports whether a row changed. The conditional update is the guard
	// against two concurrent settlements both winning.
	Settle(ctx context.Context, id uint) (bool, error)
}

type obligationRepository struct {
	db *gorm.DB
}

func NewObligationRepository(db *gorm.DB) ObligationRepository {
	return &obligationRepository{db: db}
}

func (r *obligationRepository) Save(ctx context.Context, obligation *model.Obligation) error {
	return GetDB(ctx, r.db).Omit("Client", "Type").Save(obligation).Error
}

func (r *obligationRepository) FindByID(ctx context.Context, id uint) (*model.Obligation, error) {
	var o model.Obligation
	if err := GetDB(ctx, r.db).Preload("Client").Preload("Type").First(&o, id).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *obligationRepository) FindAll(ctx context.Context) ([]model.Obligation, error) {
	var obligations []model.Obligation
	if err := GetDB(ctx, r.db).Preload("Client").Preload("Type").Find(&obligations).Error; err != nil {
		return nil, err
	}
	return obligations, nil
}

func (r *obligationRepository) FindByClient(ctx context.Context, clientID uint) ([]model.Obligation, error) {
	var obligations []model.Obligation
	err := GetDB(ctx, r.db).Preload("Client").Preload("Type").
		Where("client_id = ?", clientID).Find(&obligations).Error
	if err != nil {
		return nil, err
	}
	return obligations, nil
}

func (r *obligationRepository) Delete(ctx context.Context, id uint) error {
	return GetDB(ctx, r.db).Delete(&model.Obligation{}, id).Error
}

func (r *obligationRepository) Settle(ctx context.Context, id uint) (bool, error) {
	res := GetDB(ctx, r.db).Model(&model.Obligation{}).
		Where("id = ? AND status <> ?", id, model.StatusSettled).
		Update("status", model.StatusSettled)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
