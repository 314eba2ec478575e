package service

import (
	"context"
	"testing"

	"fiscaltrack/internal/apperror"
	"fiscaltrack/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPaymentFixture() (PaymentService, *memObligationRepo, *memPaymentRepo) {
	obligations := newMemObligationRepo()
	payments := newMemPaymentRepo()
	svc := NewPaymentService(payments, obligations, memTxManager{})
	return svc, obligations, payments
}

func seedObligation(t *testing.T, repo *memObligationRepo, status string) *model.Obligation {
	t.Helper()
	o := &model.Obligation{
		ClientID:    1,
		TypeID:      1,
		Period:      "2025-01",
		Periodicity: model.PeriodicityMonthly,
		DueDate:     dateP("2025-01-20"),
		Amount:      decimal.RequireFromString("1500.00"),
		Status:      status,
	}
	require.NoError(t, repo.Save(context.Background(), o))
	return o
}

func TestRegisterPaymentSettlesObligation(t *testing.T) {
	svc, obligations, payments := newPaymentFixture()
	ctx := context.Background()
	o := seedObligation(t, obligations, model.StatusPending)

	resp, err := svc.RegisterPayment(ctx, RegisterPaymentRequest{
		ObligationID: o.ID,
		Date:         "2025-01-25",
		Medium:       "Transfer",
		Amount:       "1500.00",
	})
	require.NoError(t, err)

	assert.NotZero(t, resp.ID)
	assert.Equal(t, o.ID, resp.ObligationID)
	assert.Equal(t, "2025-01-25", resp.PaidAt)
	assert.Equal(t, "Transfer", resp.Medium)
	assert.Equal(t, "1500.00", resp.Amount)

	stored, err := obligations.FindByID(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusSettled, stored.Status)

	list, err := payments.FindByObligation(ctx, o.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestRegisterPaymentAlreadySettled(t *testing.T) {
	svc, obligations, payments := newPaymentFixture()
	ctx := context.Background()
	o := seedObligation(t, obligations, model.StatusPending)

	_, err := svc.RegisterPayment(ctx, RegisterPaymentRequest{
		ObligationID: o.ID, Date: "2025-01-25", Amount: "1500.00",
	})
	require.NoError(t, err)

	// A second payment against the same obligation is rejected and leaves
	// no trace in the payment store.
	_, err = svc.RegisterPayment(ctx, RegisterPaymentRequest{
		ObligationID: o.ID, Date: "2025-01-26", Amount: "1500.00",
	})
	require.Error(t, err)
	assert.True(t, apperror.IsDomain(err), "want domain error, got %v", err)

	list, err := payments.FindByObligation(ctx, o.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestRegisterPaymentValidation(t *testing.T) {
	svc, obligations, _ := newPaymentFixture()
	ctx := context.Background()
	o := seedObligation(t, obligations, model.StatusPending)

	tests := []struct {
		name string
		req  RegisterPaymentRequest
	}{
		{"zero amount", RegisterPaymentRequest{ObligationID: o.ID, Amount: "0"}},
		{"negative amount", RegisterPaymentRequest{ObligationID: o.ID, Amount: "-10"}},
		{"malformed amount", RegisterPaymentRequest{ObligationID: o.ID, Amount: "ten"}},
		{"malformed date", RegisterPaymentRequest{ObligationID: o.ID, Amount: "10", Date: "25/01/2025"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.RegisterPayment(ctx, tt.req)
			require.Error(t, err)
			assert.True(t, apperror.IsValidation(err), "want validation error, got %v", err)
		})
	}
}

func TestRegisterPaymentMissingObligation(t *testing.T) {
	svc, _, payments := newPaymentFixture()

	_, err := svc.RegisterPayment(context.Background(), RegisterPaymentRequest{
		ObligationID: 42, Amount: "10",
	})
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err), "want not found, got %v", err)
	assert.Empty(t, payments.payments)
}

func TestListPayments(t *testing.T) {
	svc, obligations, payments := newPaymentFixture()
	ctx := context.Background()
	o := seedObligation(t, obligations, model.StatusPending)

	require.NoError(t, payments.Create(ctx, &model.Payment{
		ObligationID: o.ID, PaidAt: date("2025-01-25"),
		Medium: "Cash", Amount: decimal.RequireFromString("700"),
	}))
	require.NoError(t, payments.Create(ctx, &model.Payment{
		ObligationID: o.ID, PaidAt: date("2025-01-26"),
		Medium: "Transfer", Amount: decimal.RequireFromString("800"),
	}))

	list, err := svc.ListPayments(ctx, o.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "700.00", list[0].Amount)
	assert.Equal(t, "800.00", list[1].Amount)

	_, err = svc.ListPayments(ctx, 42)
	assert.True(t, apperror.IsNotFound(err))
}
