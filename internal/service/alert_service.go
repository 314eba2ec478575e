package service

import (
	"context"
	"time"

	"fiscaltrack/internal/apperror"
	"fiscaltrack/internal/model"
	"fiscaltrack/internal/repository"
)

// --- DTOs ---

type AlertResponse struct {
	ID           uint   `json:"id"`
	ObligationID uint   `json:"obligation_id"`
	ClientName   string `json:"client_name,omitempty"`
	Period       string `json:"period,omitempty"`
	DueDate      string `json:"due_date,omitempty"`
	RaisedOn     string `json:"raised_on"`
	Read         bool   `json:"read"`
}

// AlertBroadcaster pushes newly raised alerts to connected UI clients.
// Satisfied by the websocket hub; nil disables push.
type AlertBroadcaster interface {
	BroadcastJSON(v interface{})
}

// --- Interface ---

type AlertService interface {
	// GeneratePending scans all obligations and raises one unread alert per
	// not-yet-alerted obligation that is overdue or falls due within
	// warningDays of referenceDate. The returned slice preserves scan order
	// (FIFO); at most one alert exists per obligation and calendar day.
	GeneratePending(ctx context.Context, referenceDate time.Time, warningDays int) ([]AlertResponse, error)
	ListPending(ctx context.Context) ([]AlertResponse, error)
	MarkRead(ctx context.Context, id uint) error
}

type alertService struct {
	alertRepo      repository.AlertRepository
	obligationRepo repository.ObligationRepository
	broadcaster    AlertBroadcaster
}

func NewAlertService(
	alertRepo repository.AlertRepository,
	obligationRepo repository.ObligationRepository,
	broadcaster AlertBroadcaster,
) AlertService {
	return &alertService{
		alertRepo:      alertRepo,
		obligationRepo: obligationRepo,
		broadcaster:    broadcaster,
	}
}

// --- Implementation ---

func (s *alertService) GeneratePending(ctx context.Context, referenceDate time.Time, warningDays int) ([]AlertResponse, error) {
	if warningDays < 0 {
		warningDays = 0
	}
	ref := model.DateOnly(referenceDate)
	horizon := ref.AddDate(0, 0, warningDays)

	obligations, err := s.obligationRepo.FindAll(ctx)
	if err != nil {
		return nil, apperror.Storage("list obligations", err)
	}

	queue := make([]AlertResponse, 0)
	for i := range obligations {
		o := &obligations[i]
		if o.Status == model.StatusSettled || o.DueDate == nil {
			continue
		}
		due := model.DateOnly(*o.DueDate)

		overdue := due.Before(ref)
		upcoming := !overdue && !due.After(horizon) // boundary inclusive
		if !overdue && !upcoming {
			continue
		}

		exists, err := s.alertRepo.ExistsFor(ctx, o.ID, ref)
		if err != nil {
			return nil, apperror.Storage("check alert", err)
		}
		if exists {
			continue
		}

		alert := model.Alert{ObligationID: o.ID, RaisedOn: ref, Read: false}
		if err := s.alertRepo.Create(ctx, &alert); err != nil {
			return nil, apperror.Storage("create alert", err)
		}
		alert.Obligation = o

		resp := toAlertResponse(alert)
		queue = append(queue, resp)
		if s.broadcaster != nil {
			s.broadcaster.BroadcastJSON(resp)
		}
	}
	return queue, nil
}

func (s *alertService) ListPending(ctx context.Context) ([]AlertResponse, error) {
	alerts, err := s.alertRepo.FindUnread(ctx)
	if err != nil {
		return nil, apperror.Storage("list alerts", err)
	}
	result := make([]AlertResponse, 0, len(alerts))
	for _, a := range alerts {
		result = append(result, toAlertResponse(a))
	}
	return result, nil
}

func (s *alertService) MarkRead(ctx context.Context, id uint) error {
	if id == 0 {
		return apperror.Validation("alert id must be positive")
	}
	// Marking an already-read alert succeeds as a no-op.
	if err := s.alertRepo.MarkRead(ctx, id); err != nil {
		return apperror.Storage("mark alert read", err)
	}
	return nil
}

func toAlertResponse(a model.Alert) AlertResponse {
	resp := AlertResponse{
		ID:           a.ID,
		ObligationID: a.ObligationID,
		RaisedOn:     model.DateOnly(a.RaisedOn).Format(dateLayout),
		Read:         a.Read,
	}
	if a.Obligation != nil {
		resp.Period = a.Obligation.Period
		if a.Obligation.DueDate != nil {
			resp.DueDate = model.DateOnly(*a.Obligation.DueDate).Format(dateLayout)
		}
		if a.Obligation.Client != nil {
			resp.ClientName = a.Obligation.Client.LegalName
		}
	}
	return resp
}
