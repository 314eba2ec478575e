package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"fiscaltrack/internal/apperror"
	"fiscaltrack/internal/model"
	"fiscaltrack/internal/repository"

	"gorm.io/gorm"
)

// --- DTOs ---

type ClientRequest struct {
	LegalName string `json:"legal_name" binding:"required"`
	TaxID     string `json:"tax_id" binding:"required"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
}

type ClientResponse struct {
	ID        uint   `json:"id"`
	LegalName string `json:"legal_name"`
	TaxID     string `json:"tax_id"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	CreatedAt string `json:"created_at"`
}

// --- Interface ---

type ClientService interface {
	Create(ctx context.Context, req ClientRequest) (ClientResponse, error)
	Update(ctx context.Context, id uint, req ClientRequest) (ClientResponse, error)
	GetByID(ctx context.Context, id uint) (ClientResponse, error)
	GetByTaxID(ctx context.Context, taxID string) (ClientResponse, error)
	List(ctx context.Context) ([]ClientResponse, error)
	Delete(ctx context.Context, id uint) error
}

type clientService struct {
	clientRepo repository.ClientRepository
}

func NewClientService(clientRepo repository.ClientRepository) ClientService {
	return &clientService{clientRepo: clientRepo}
}

// --- Validation ---

func validateClient(req ClientRequest) error {
	if strings.TrimSpace(req.LegalName) == "" {
		return apperror.Validation("legal name is required")
	}
	if !model.ValidTaxID(req.TaxID) {
		return apperror.Validation("tax id must be 11 numeric digits")
	}
	return nil
}

// --- Implementation ---

func (s *clientService) Create(ctx context.Context, req ClientRequest) (ClientResponse, error) {
	if err := validateClient(req); err != nil {
		return ClientResponse{}, err
	}

	// Friendly duplicate check before the insert; the UNIQUE index on
	// tax_id still backstops a race.
	if _, err := s.clientRepo.FindByTaxID(ctx, req.TaxID); err == nil {
		return ClientResponse{}, apperror.Duplicate("tax id %s is already registered", req.TaxID)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return ClientResponse{}, apperror.Storage("check tax id", err)
	}

	client := model.Client{
		LegalName: req.LegalName,
		TaxID:     req.TaxID,
		Email:     req.Email,
		Phone:     req.Phone,
		Address:   req.Address,
	}
	if err := s.clientRepo.Save(ctx, &client); err != nil {
		return ClientResponse{}, duplicateOr("save client", err,
			"tax id "+req.TaxID+" is already registered")
	}
	return toClientResponse(client), nil
}

func (s *clientService) Update(ctx context.Context, id uint, req ClientRequest) (ClientResponse, error) {
	if id == 0 {
		return ClientResponse{}, apperror.Validation("client id is required for update")
	}
	if err := validateClient(req); err != nil {
		return ClientResponse{}, err
	}

	client, err := s.clientRepo.FindByID(ctx, id)
	if err != nil {
		return ClientResponse{}, notFoundOr("find client", err, "client not found")
	}

	// A tax id change must not collide with another client's.
	if existing, err := s.clientRepo.FindByTaxID(ctx, req.TaxID); err == nil {
		if existing.ID != client.ID {
			return ClientResponse{}, apperror.Duplicate("tax id %s belongs to another client", req.TaxID)
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return ClientResponse{}, apperror.Storage("check tax id", err)
	}

	client.LegalName = req.LegalName
	client.TaxID = req.TaxID
	client.Email = req.Email
	client.Phone = req.Phone
	client.Address = req.Address

	if err := s.clientRepo.Save(ctx, client); err != nil {
		return ClientResponse{}, duplicateOr("save client", err,
			"tax id "+req.TaxID+" belongs to another client")
	}
	return toClientResponse(*client), nil
}

func (s *clientService) GetByID(ctx context.Context, id uint) (ClientResponse, error) {
	client, err := s.clientRepo.FindByID(ctx, id)
	if err != nil {
		return ClientResponse{}, notFoundOr("find client", err, "client not found")
	}
	return toClientResponse(*client), nil
}

func (s *clientService) GetByTaxID(ctx context.Context, taxID string) (ClientResponse, error) {
	if !model.ValidTaxID(taxID) {
		return ClientResponse{}, apperror.Validation("tax id must be 11 numeric digits")
	}
	client, err := s.clientRepo.FindByTaxID(ctx, taxID)
	if err != nil {
		return ClientResponse{}, notFoundOr("find client by tax id", err, "client not found")
	}
	return toClientResponse(*client), nil
}

func (s *clientService) List(ctx context.Context) ([]ClientResponse, error) {
	clients, err := s.clientRepo.FindAll(ctx)
	if err != nil {
		return nil, apperror.Storage("list clients", err)
	}
	result := make([]ClientResponse, 0, len(clients))
	for _, c := range clients {
		result = append(result, toClientResponse(c))
	}
	return result, nil
}

func (s *clientService) Delete(ctx context.Context, id uint) error {
	if id == 0 {
		return apperror.Validation("client id is required for delete")
	}
	if err := s.clientRepo.Delete(ctx, id); err != nil {
		return apperror.Storage("delete client", err)
	}
	return nil
}

func toClientResponse(c model.Client) ClientResponse {
	return ClientResponse{
		ID:        c.ID,
		LegalName: c.LegalName,
		TaxID:     c.TaxID,
		Email:     c.Email,
		Phone:     c.Phone,
		Address:   c.Address,
		CreatedAt: c.CreatedAt.Format(time.RFC3339),
	}
}
