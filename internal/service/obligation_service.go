package service

import (
	"context"
	"errors"
	"time"

	"fiscaltrack/internal/apperror"
	"fiscaltrack/internal/model"
	"fiscaltrack/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

// --- DTOs ---

type ObligationRequest struct {
	ClientID uint   `json:"client_id" binding:"required"`
	TypeID   uint   `json:"type_id" binding:"required"`
	Period   string `json:"period" binding:"required"`   // "YYYY-MM"
	DueDate  string `json:"due_date" binding:"required"` // "YYYY-MM-DD"
	Amount   string `json:"amount" binding:"required"`
}

type ObligationResponse struct {
	ID          uint    `json:"id"`
	ClientID    uint    `json:"client_id"`
	ClientName  string  `json:"client_name,omitempty"`
	TypeID      uint    `json:"type_id"`
	TypeCode    string  `json:"type_code,omitempty"`
	Period      string  `json:"period"`
	Periodicity string  `json:"periodicity"`
	DueDate     *string `json:"due_date"`
	Amount      string  `json:"amount"`
	Status      string  `json:"status"`
	CreatedAt   string  `json:"created_at"`
}

type InterestResponse struct {
	ObligationID  uint   `json:"obligation_id"`
	ReferenceDate string `json:"reference_date"`
	DaysLate      int64  `json:"days_late"`
	DailyRate     string `json:"daily_rate"`
	Interest      string `json:"interest"`
}

// --- Interface ---

type ObligationService interface {
	Create(ctx context.Context, req ObligationRequest) (ObligationResponse, error)
	Update(ctx context.Context, id uint, req ObligationRequest) (ObligationResponse, error)
	GetByID(ctx context.Context, id uint) (ObligationResponse, error)
	List(ctx context.Context) ([]ObligationResponse, error)
	ListByClient(ctx context.Context, clientID uint) ([]ObligationResponse, error)
	Delete(ctx context.Context, id uint) error
	// Interest computes the late-payment interest as of referenceDate. It is
	// a pure query: the stored status never changes.
	Interest(ctx context.Context, id uint, referenceDate time.Time) (InterestResponse, error)
	// MarkSettled persists the SETTLED status. The payment service performs
	// its own conditional settle inside the settlement transaction; this is
	// the standalone variant of the operation.
	MarkSettled(ctx context.Context, id uint) error
	// ListSortedByDueDate returns all obligations ordered by due date
	// ascending, those without a due date last.
	ListSortedByDueDate(ctx context.Context) ([]ObligationResponse, error)
	// SearchPeriod finds an obligation for the given period key via sort +
	// binary search over the full collection.
	SearchPeriod(ctx context.Context, period string) (ObligationResponse, error)
}

type obligationService struct {
	obligationRepo repository.ObligationRepository
	clientRepo     repository.ClientRepository
	typeRepo       repository.ObligationTypeRepository
}

func NewObligationService(
	obligationRepo repository.ObligationRepository,
	clientRepo repository.ClientRepository,
	typeRepo repository.ObligationTypeRepository,
) ObligationService {
	return &obligationService{
		obligationRepo: obligationRepo,
		clientRepo:     clientRepo,
		typeRepo:       typeRepo,
	}
}

// --- Validation ---

// validate checks the creation preconditions and, when they hold, returns
// the referenced type so the caller can pick the periodicity variant.
// Reports the first violated precondition.
func (s *obligationService) validate(ctx context.Context, req ObligationRequest) (*model.ObligationType, time.Time, decimal.Decimal, error) {
	var zero time.Time

	if req.ClientID == 0 {
		return nil, zero, decimal.Zero, apperror.Validation("a persisted client is required")
	}
	if req.TypeID == 0 {
		return nil, zero, decimal.Zero, apperror.Validation("a persisted obligation type is required")
	}
	if !model.ValidPeriod(req.Period) {
		return nil, zero, decimal.Zero, apperror.Validation("period must match YYYY-MM")
	}
	if req.DueDate == "" {
		return nil, zero, decimal.Zero, apperror.Validation("due date is required")
	}
	dueDate, err := time.Parse(dateLayout, req.DueDate)
	if err != nil {
		return nil, zero, decimal.Zero, apperror.Validation("due date must match YYYY-MM-DD")
	}
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return nil, zero, decimal.Zero, apperror.Validation("invalid amount: %s", req.Amount)
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, zero, decimal.Zero, apperror.Validation("amount must be greater than 0")
	}

	if _, err := s.clientRepo.FindByID(ctx, req.ClientID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, zero, decimal.Zero, apperror.Validation("client %d does not exist", req.ClientID)
		}
		return nil, zero, decimal.Zero, apperror.Storage("find client", err)
	}
	obligationType, err := s.typeRepo.FindByID(ctx, req.TypeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, zero, decimal.Zero, apperror.Validation("obligation type %d does not exist", req.TypeID)
		}
		return nil, zero, decimal.Zero, apperror.Storage("find obligation type", err)
	}

	return obligationType, model.DateOnly(dueDate), amount, nil
}

// periodicityFor picks the interest variant: annual types accrue at the
// annual rate, everything else at the monthly rate.
func periodicityFor(t *model.ObligationType) string {
	if t.Periodicity == model.PeriodicityAnnual {
		return model.PeriodicityAnnual
	}
	return model.PeriodicityMonthly
}

// --- Implementation ---

func (s *obligationService) Create(ctx context.Context, req ObligationRequest) (ObligationResponse, error) {
	obligationType, dueDate, amount, err := s.validate(ctx, req)
	if err != nil {
		return ObligationResponse{}, err
	}

	obligation := model.Obligation{
		ClientID:    req.ClientID,
		TypeID:      req.TypeID,
		Period:      req.Period,
		Periodicity: periodicityFor(obligationType),
		DueDate:     &dueDate,
		Amount:      amount,
		Status:      model.StatusPending,
	}

	if err := s.obligationRepo.Save(ctx, &obligation); err != nil {
		return ObligationResponse{}, duplicateOr("save obligation", err,
			"an obligation for this client, type and period already exists")
	}

	return s.GetByID(ctx, obligation.ID)
}

func (s *obligationService) Update(ctx context.Context, id uint, req ObligationRequest) (ObligationResponse, error) {
	if id == 0 {
		return ObligationResponse{}, apperror.Validation("obligation id is required for update")
	}
	existing, err := s.obligationRepo.FindByID(ctx, id)
	if err != nil {
		return ObligationResponse{}, notFoundOr("find obligation", err, "obligation not found")
	}

	obligationType, dueDate, amount, err := s.validate(ctx, req)
	if err != nil {
		return ObligationResponse{}, err
	}

	existing.ClientID = req.ClientID
	existing.TypeID = req.TypeID
	existing.Period = req.Period
	existing.Periodicity = periodicityFor(obligationType)
	existing.DueDate = &dueDate
	existing.Amount = amount
	existing.Client = nil
	existing.Type = nil

	if err := s.obligationRepo.Save(ctx, existing); err != nil {
		return ObligationResponse{}, duplicateOr("save obligation", err,
			"an obligation for this client, type and period already exists")
	}

	return s.GetByID(ctx, id)
}

func (s *obligationService) GetByID(ctx context.Context, id uint) (ObligationResponse, error) {
	obligation, err := s.obligationRepo.FindByID(ctx, id)
	if err != nil {
		return ObligationResponse{}, notFoundOr("find obligation", err, "obligation not found")
	}
	return toObligationResponse(*obligation), nil
}

func (s *obligationService) List(ctx context.Context) ([]ObligationResponse, error) {
	obligations, err := s.obligationRepo.FindAll(ctx)
	if err != nil {
		return nil, apperror.Storage("list obligations", err)
	}
	return toObligationResponses(obligations), nil
}

func (s *obligationService) ListByClient(ctx context.Context, clientID uint) ([]ObligationResponse, error) {
	obligations, err := s.obligationRepo.FindByClient(ctx, clientID)
	if err != nil {
		return nil, apperror.Storage("list obligations by client", err)
	}
	return toObligationResponses(obligations), nil
}

func (s *obligationService) Delete(ctx context.Context, id uint) error {
	if id == 0 {
		return apperror.Validation("obligation id is required for delete")
	}
	if err := s.obligationRepo.Delete(ctx, id); err != nil {
		return apperror.Storage("delete obligation", err)
	}
	return nil
}

func (s *obligationService) Interest(ctx context.Context, id uint, referenceDate time.Time) (InterestResponse, error) {
	obligation, err := s.obligationRepo.FindByID(ctx, id)
	if err != nil {
		return InterestResponse{}, notFoundOr("find obligation", err, "obligation not found")
	}

	ref := model.DateOnly(referenceDate)
	resp := InterestResponse{
		ObligationID:  obligation.ID,
		ReferenceDate: ref.Format(dateLayout),
		DailyRate:     obligation.DailyPenaltyRate().String(),
		Interest:      obligation.AccruedInterest(ref).StringFixed(2),
	}
	if obligation.IsOverdue(ref) {
		resp.DaysLate = int64(ref.Sub(model.DateOnly(*obligation.DueDate)).Hours() / 24)
	}
	return resp, nil
}

func (s *obligationService) MarkSettled(ctx context.Context, id uint) error {
	obligation, err := s.obligationRepo.FindByID(ctx, id)
	if err != nil {
		return notFoundOr("find obligation", err, "obligation not found")
	}
	obligation.MarkSettled()
	obligation.Client = nil
	obligation.Type = nil
	if err := s.obligationRepo.Save(ctx, obligation); err != nil {
		return apperror.Storage("settle obligation", err)
	}
	return nil
}

func (s *obligationService) ListSortedByDueDate(ctx context.Context) ([]ObligationResponse, error) {
	obligations, err := s.obligationRepo.FindAll(ctx)
	if err != nil {
		return nil, apperror.Storage("list obligations", err)
	}
	SortByDueDate(obligations)
	return toObligationResponses(obligations), nil
}

func (s *obligationService) SearchPeriod(ctx context.Context, period string) (ObligationResponse, error) {
	if !model.ValidPeriod(period) {
		return ObligationResponse{}, apperror.Validation("period must match YYYY-MM")
	}
	obligations, err := s.obligationRepo.FindAll(ctx)
	if err != nil {
		return ObligationResponse{}, apperror.Storage("list obligations", err)
	}
	idx := SortByPeriodAndSearch(obligations, period)
	if idx < 0 {
		return ObligationResponse{}, apperror.NotFound("no obligation for period %s", period)
	}
	return toObligationResponse(obligations[idx]), nil
}

// --- Mapping ---

func toObligationResponse(o model.Obligation) ObligationResponse {
	resp := ObligationResponse{
		ID:          o.ID,
		ClientID:    o.ClientID,
		TypeID:      o.TypeID,
		Period:      o.Period,
		Periodicity: o.Periodicity,
		Amount:      o.Amount.StringFixed(2),
		Status:      o.Status,
		CreatedAt:   o.CreatedAt.Format(time.RFC3339),
	}
	if o.DueDate != nil {
		d := model.DateOnly(*o.DueDate).Format(dateLayout)
		resp.DueDate = &d
	}
	if o.Client != nil {
		resp.ClientName = o.Client.LegalName
	}
	if o.Type != nil {
		resp.TypeCode = o.Type.Code
	}
	return resp
}

func toObligationResponses(obligations []model.Obligation) []ObligationResponse {
	result := make([]ObligationResponse, 0, len(obligations))
	for _, o := range obligations {
		result = append(result, toObligationResponse(o))
	}
	return result
}
