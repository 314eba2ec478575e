package repository

import (
	"context"

	"fiscaltrack/internal/model"

	"gorm.io/gorm"
)

type ClientRepository interface {
	// Save inserts when the client has no identity key yet and updates
	// otherwise; the store assigns the key on first insert.
	Save(ctx context.Context, client *model.Client) error
	FindByID(ctx context.Context, id uint) (*model.Client, error)
	FindByTaxID(ctx context.Context, taxID string) (*model.Client, error)
	FindAll(ctx context.Context) ([]model.Client, error)
	Delete(ctx context.Context, id uint) error
}

type clientRepository struct {
	db *gorm.DB
}

func NewClientRepository(db *gorm.DB) ClientRepository {
	return &clientRepository{db: db}
}

func (r *clientRepository) Save(ctx context.Context, client *model.Client) error {
	return GetDB(ctx, r.db).Save(client).Error
}

func (r *clientRepository) FindByID(ctx context.Context, id uint) (*model.Client, error) {
	var client model.Client
	if err := GetDB(ctx, r.db).First(&client, id).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *clientRepository) FindByTaxID(ctx context.Context, taxID string) (*model.Client, error) {
	var client model.Client
	if err := GetDB(ctx, r.db).First(&client, "tax_id = ?", taxID).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *clientRepository) FindAll(ctx context.Context) ([]model.Client, error) {
	var clients []model.Client
	if err := GetDB(ctx, r.db).Order("legal_name asc").Find(&clients).Error; err != nil {
		return nil, err
	}
	return clients, nil
}

func (r *clientRepository) Delete(ctx context.Context, id uint) error {
	return GetDB(ctx, r.db).Delete(&model.Client{}, id).Error
}
