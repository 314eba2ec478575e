package service

import (
	"context"

	"fiscaltrack/internal/apperror"
	"fiscaltrack/internal/model"
	"fiscaltrack/internal/repository"
)

type ObligationTypeService interface {
	List(ctx context.Context) ([]model.ObligationType, error)
}

type obligationTypeService struct {
	typeRepo repository.ObligationTypeRepository
}

func NewObligationTypeService(typeRepo repository.ObligationTypeRepository) ObligationTypeService {
	return &obligationTypeService{typeRepo: typeRepo}
}

func (s *obligationTypeService) List(ctx context.Context) ([]model.ObligationType, error) {
	types, err := s.typeRepo.FindAll(ctx)
	if err != nil {
		return nil, apperror.Storage("list obligation types", err)
	}
	return types, nil
}
