package database

import (
	"context"
	"log"

	"fiscaltrack/internal/model"
	"fiscaltrack/internal/repository"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// NewConnection initializes a new connection pool using GORM.
// TranslateError turns the driver's unique-violation errors into
// gorm.ErrDuplicatedKey so the service layer can map them to domain errors.
func NewConnection(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}

	err = db.AutoMigrate(
		&model.User{},
		&model.RefreshToken{},
		&model.Client{},
		&model.ObligationType{},
		&model.Obligation{},
		&model.Payment{},
		&model.Alert{},
	)
	if err != nil {
		log.Println("WARNING: Failed to auto-migrate models:", err)
	}

	return db, nil
}

// SeedObligationTypes inserts the reference catalog when the table is empty.
func SeedObligationTypes(ctx context.Context, typeRepo repository.ObligationTypeRepository) error {
	count, err := typeRepo.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	types := []model.ObligationType{
		{Code: "IVA", Description: "Value added tax", Periodicity: model.PeriodicityMonthly},
		{Code: "GAN", Description: "Income tax", Periodicity: model.PeriodicityAnnual},
		{Code: "MON", Description: "Simplified regime", Periodicity: model.PeriodicityMonthly},
		{Code: "SIC", Description: "Social security contributions", Periodicity: model.PeriodicityMonthly},
		{Code: "IIBB", Description: "Gross receipts tax", Periodicity: model.PeriodicityMonthly},
	}
	return typeRepo.CreateBatch(ctx, types)
}
