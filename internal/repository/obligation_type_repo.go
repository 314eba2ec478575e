package repository

import (
	"context"

	"fiscaltrack/internal/model"

	"gorm.io/gorm"
)

type ObligationTypeRepository interface {
	FindByID(ctx context.Context, id uint) (*model.ObligationType, error)
	FindAll(ctx context.Context) ([]model.ObligationType, error)
	Count(ctx context.Context) (int64, error)
	CreateBatch(ctx context.Context, types []model.ObligationType) error
}

type obligationTypeRepository struct {
	db *gorm.DB
}

func NewObligationTypeRepository(db *gorm.DB) ObligationTypeRepository {
	return &obligationTypeRepository{db: db}
}

func (r *obligationTypeRepository) FindByID(ctx context.Context, id uint) (*model.ObligationType, error) {
	var t model.ObligationType
	if err := GetDB(ctx, r.db).First(&t, id).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *obligationTypeRepository) FindAll(ctx context.Context) ([]model.ObligationType, error) {
	var types []model.ObligationType
	if err := GetDB(ctx, r.db).Order("code asc").Find(&types).Error; err != nil {
		return nil, err
	}
	return types, nil
}

func (r *obligationTypeRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := GetDB(ctx, r.db).Model(&model.ObligationType{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *obligationTypeRepository) CreateBatch(ctx context.Context, types []model.ObligationType) error {
	return GetDB(ctx, r.db).Create(&types).Error
}
