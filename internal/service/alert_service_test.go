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

func newAlertFixture() (AlertService, *memObligationRepo, *memAlertRepo, *captureBroadcaster) {
	obligations := newMemObligationRepo()
	alerts := newMemAlertRepo()
	broadcaster := &captureBroadcaster{}
	svc := NewAlertService(alerts, obligations, broadcaster)
	return svc, obligations, alerts, broadcaster
}

func addObligation(t *testing.T, repo *memObligationRepo, period, due, status string) uint {
	t.Helper()
	o := &model.Obligation{
		ClientID:    1,
		TypeID:      1,
		Period:      period,
		Periodicity: model.PeriodicityMonthly,
		Amount:      decimal.RequireFromString("100"),
		Status:      status,
	}
	if due != "" {
		o.DueDate = dateP(due)
	}
	require.NoError(t, repo.Save(context.Background(), o))
	return o.ID
}

func TestGeneratePendingClassification(t *testing.T) {
	svc, obligations, _, _ := newAlertFixture()
	ctx := context.Background()
	ref := date("2025-03-10")

	overdueID := addObligation(t, obligations, "2025-01", "2025-03-05", model.StatusPending)
	dueTodayID := addObligation(t, obligations, "2025-02", "2025-03-10", model.StatusPending)
	boundaryID := addObligation(t, obligations, "2025-03", "2025-03-17", model.StatusPending) // ref + 7, inclusive
	addObligation(t, obligations, "2025-04", "2025-03-18", model.StatusPending)               // one past the horizon
	addObligation(t, obligations, "2025-05", "2025-03-05", model.StatusSettled)               // settled, skipped
	addObligation(t, obligations, "2025-06", "", model.StatusPending)                         // no due date, skipped

	raised, err := svc.GeneratePending(ctx, ref, 7)
	require.NoError(t, err)

	ids := make([]uint, 0, len(raised))
	for _, a := range raised {
		assert.False(t, a.Read)
		assert.Equal(t, "2025-03-10", a.RaisedOn)
		ids = append(ids, a.ObligationID)
	}
	// Scan order follows the store's listing order, so assert membership only.
	assert.ElementsMatch(t, []uint{overdueID, dueTodayID, boundaryID}, ids)
}

func TestGeneratePendingDeduplicates(t *testing.T) {
	svc, obligations, alerts, _ := newAlertFixture()
	ctx := context.Background()
	ref := date("2025-03-10")

	addObligation(t, obligations, "2025-01", "2025-03-05", model.StatusPending)

	first, err := svc.GeneratePending(ctx, ref, 7)
	require.NoError(t, err)
	require.Len(t, first, 1)

	// A second run on the same day raises nothing new.
	second, err := svc.GeneratePending(ctx, ref, 7)
	require.NoError(t, err)
	assert.Empty(t, second)
	assert.Len(t, alerts.alerts, 1)

	// A later day is a fresh alert for the still-overdue obligation.
	third, err := svc.GeneratePending(ctx, date("2025-03-11"), 7)
	require.NoError(t, err)
	assert.Len(t, third, 1)
	assert.Len(t, alerts.alerts, 2)
}

func TestGeneratePendingClampsWarningDays(t *testing.T) {
	svc, obligations, _, _ := newAlertFixture()
	ctx := context.Background()
	ref := date("2025-03-10")

	addObligation(t, obligations, "2025-01", "2025-03-10", model.StatusPending) // due today
	addObligation(t, obligations, "2025-02", "2025-03-11", model.StatusPending) // due tomorrow

	// Negative warning window behaves like zero: only today qualifies.
	raised, err := svc.GeneratePending(ctx, ref, -5)
	require.NoError(t, err)
	require.Len(t, raised, 1)
	assert.Equal(t, "2025-01", raised[0].Period)
}

func TestGeneratePendingBroadcasts(t *testing.T) {
	svc, obligations, _, broadcaster := newAlertFixture()
	ctx := context.Background()

	addObligation(t, obligations, "2025-01", "2025-03-05", model.StatusPending)

	raised, err := svc.GeneratePending(ctx, date("2025-03-10"), 7)
	require.NoError(t, err)
	require.Len(t, raised, 1)

	require.Len(t, broadcaster.sent, 1)
	pushed, ok := broadcaster.sent[0].(AlertResponse)
	require.True(t, ok)
	assert.Equal(t, raised[0].ID, pushed.ID)
}

func TestGeneratePendingNilBroadcaster(t *testing.T) {
	obligations := newMemObligationRepo()
	svc := NewAlertService(newMemAlertRepo(), obligations, nil)

	addObligation(t, obligations, "2025-01", "2025-03-05", model.StatusPending)

	raised, err := svc.GeneratePending(context.Background(), date("2025-03-10"), 7)
	require.NoError(t, err)
	assert.Len(t, raised, 1)
}

func TestListPending(t *testing.T) {
	svc, obligations, alerts, _ := newAlertFixture()
	ctx := context.Background()

	addObligation(t, obligations, "2025-01", "2025-03-05", model.StatusPending)
	raised, err := svc.GeneratePending(ctx, date("2025-03-10"), 7)
	require.NoError(t, err)
	require.Len(t, raised, 1)

	pending, err := svc.ListPending(ctx)
	require.NoError(t, err)
	assert.Len(t, pending, 1)

	require.NoError(t, alerts.MarkRead(ctx, raised[0].ID))

	pending, err = svc.ListPending(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestMarkRead(t *testing.T) {
	svc, obligations, alerts, _ := newAlertFixture()
	ctx := context.Background()

	addObligation(t, obligations, "2025-01", "2025-03-05", model.StatusPending)
	raised, err := svc.GeneratePending(ctx, date("2025-03-10"), 7)
	require.NoError(t, err)
	require.Len(t, raised, 1)

	require.NoError(t, svc.MarkRead(ctx, raised[0].ID))
	assert.True(t, alerts.alerts[0].Read)

	// Marking again is an idempotent no-op.
	require.NoError(t, svc.MarkRead(ctx, raised[0].ID))

	err = svc.MarkRead(ctx, 0)
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))
}
