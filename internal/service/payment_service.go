package service

import (
	"context"
	"time"

	"fiscaltrack/internal/apperror"
	"fiscaltrack/internal/model"
	"fiscaltrack/internal/repository"

	"github.com/shopspring/decimal"
)

// --- DTOs ---

type RegisterPaymentRequest struct {
	ObligationID uint   `json:"obligation_id" binding:"required"`
	Date         string `json:"date"` // "YYYY-MM-DD", defaults to today
	Medium       string `json:"medium"`
	Amount       string `json:"amount" binding:"required"`
}

type PaymentResponse struct {
	ID           uint   `json:"id"`
	ObligationID uint   `json:"obligation_id"`
	PaidAt       string `json:"paid_at"`
	Medium       string `json:"medium"`
	Amount       string `json:"amount"`
}

// --- Interface ---

type PaymentService interface {
	// RegisterPayment records a payment and settles its obligation. The
	// payment insert and the status flip run in one transaction: a failed
	// settle rolls the payment back, so the store never holds a payment
	// against a still-pending obligation.
	RegisterPayment(ctx context.Context, req RegisterPaymentRequest) (PaymentResponse, error)
	ListPayments(ctx context.Context, obligationID uint) ([]PaymentResponse, error)
}

type paymentService struct {
	paymentRepo    repository.PaymentRepository
	obligationRepo repository.ObligationRepository
	txManager      repository.TransactionManager
}

func NewPaymentService(
	paymentRepo repository.PaymentRepository,
	obligationRepo repository.ObligationRepository,
	txManager repository.TransactionManager,
) PaymentService {
	return &paymentService{
		paymentRepo:    paymentRepo,
		obligationRepo: obligationRepo,
		txManager:      txManager,
	}
}

// --- Implementation ---

func (s *paymentService) RegisterPayment(ctx context.Context, req RegisterPaymentRequest) (PaymentResponse, error) {
	var payment model.Payment

	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		obligation, err := s.obligationRepo.FindByID(txCtx, req.ObligationID)
		if err != nil {
			return notFoundOr("find obligation", err, "obligation not found")
		}
		if obligation.Status == model.StatusSettled {
			return apperror.Domain("obligation is already settled")
		}

		amount, err := decimal.NewFromString(req.Amount)
		if err != nil {
			return apperror.Validation("invalid amount: %s", req.Amount)
		}
		if amount.LessThanOrEqual(decimal.Zero) {
			return apperror.Validation("payment amount must be greater than 0")
		}

		paidAt := model.DateOnly(time.Now())
		if req.Date != "" {
			parsed, err := time.Parse(dateLayout, req.Date)
			if err != nil {
				return apperror.Validation("payment date must match YYYY-MM-DD")
			}
			paidAt = model.DateOnly(parsed)
		}

		payment = model.Payment{
			ObligationID: obligation.ID,
			PaidAt:       paidAt,
			Medium:       req.Medium,
			Amount:       amount,
		}
		if err := s.paymentRepo.Create(txCtx, &payment); err != nil {
			return apperror.Storage("create payment", err)
		}

		// Conditional settle: loses against a concurrent settlement, in
		// which case the rollback also discards the payment insert.
		settled, err := s.obligationRepo.Settle(txCtx, obligation.ID)
		if err != nil {
			return apperror.Storage("settle obligation", err)
		}
		if !settled {
			return apperror.Domain("obligation is already settled")
		}
		return nil
	})
	if err != nil {
		return PaymentResponse{}, err
	}

	return toPaymentResponse(payment), nil
}

func (s *paymentService) ListPayments(ctx context.Context, obligationID uint) ([]PaymentResponse, error) {
	if _, err := s.obligationRepo.FindByID(ctx, obligationID); err != nil {
		return nil, notFoundOr("find obligation", err, "obligation not found")
	}

	payments, err := s.paymentRepo.FindByObligation(ctx, obligationID)
	if err != nil {
		return nil, apperror.Storage("list payments", err)
	}

	result := make([]PaymentResponse, 0, len(payments))
	for _, p := range payments {
		result = append(result, toPaymentResponse(p))
	}
	return result, nil
}

func toPaymentResponse(p model.Payment) PaymentResponse {
	return PaymentResponse{
		ID:           p.ID,
		ObligationID: p.ObligationID,
		PaidAt:       model.DateOnly(p.PaidAt).Format(dateLayout),
		Medium:       p.Medium,
		Amount:       p.Amount.StringFixed(2),
	}
}
