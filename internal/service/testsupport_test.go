package service

import (
	"context"
	"time"

	"fiscaltrack/internal/model"

	"gorm.io/gorm"
)

// In-memory repository fakes backing the service tests. They mimic the gorm
// contract the services rely on: gorm.ErrRecordNotFound for missing rows and
// gorm.ErrDuplicatedKey for uniqueness violations.

type memClientRepo struct {
	clients []model.Client
	nextID  uint
}

func newMemClientRepo() *memClientRepo {
	return &memClientRepo{nextID: 1}
}

func (r *memClientRepo) Save(_ context.Context, client *model.Client) error {
	for i := range r.clients {
		if client.TaxID == r.clients[i].TaxID && client.ID != r.clients[i].ID {
			return gorm.ErrDuplicatedKey
		}
	}
	if client.ID == 0 {
		client.ID = r.nextID
		r.nextID++
		r.clients = append(r.clients, *client)
		return nil
	}
	for i := range r.clients {
		if r.clients[i].ID == client.ID {
			r.clients[i] = *client
			return nil
		}
	}
	r.clients = append(r.clients, *client)
	return nil
}

func (r *memClientRepo) FindByID(_ context.Context, id uint) (*model.Client, error) {
	for i := range r.clients {
		if r.clients[i].ID == id {
			c := r.clients[i]
			return &c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memClientRepo) FindByTaxID(_ context.Context, taxID string) (*model.Client, error) {
	for i := range r.clients {
		if r.clients[i].TaxID == taxID {
			c := r.clients[i]
			return &c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memClientRepo) FindAll(_ context.Context) ([]model.Client, error) {
	out := make([]model.Client, len(r.clients))
	copy(out, r.clients)
	return out, nil
}

func (r *memClientRepo) Delete(_ context.Context, id uint) error {
	for i := range r.clients {
		if r.clients[i].ID == id {
			r.clients = append(r.clients[:i], r.clients[i+1:]...)
			return nil
		}
	}
	return nil
}

type memTypeRepo struct {
	types []model.ObligationType
}

func (r *memTypeRepo) FindByID(_ context.Context, id uint) (*model.ObligationType, error) {
	for i := range r.types {
		if r.types[i].ID == id {
			t := r.types[i]
			return &t, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memTypeRepo) FindAll(_ context.Context) ([]model.ObligationType, error) {
	out := make([]model.ObligationType, len(r.types))
	copy(out, r.types)
	return out, nil
}

func (r *memTypeRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.types)), nil
}

func (r *memTypeRepo) CreateBatch(_ context.Context, types []model.ObligationType) error {
	r.types = append(r.types, types...)
	return nil
}

type memObligationRepo struct {
	obligations []model.Obligation
	nextID      uint
}

func newMemObligationRepo() *memObligationRepo {
	return &memObligationRepo{nextID: 1}
}

func (r *memObligationRepo) Save(_ context.Context, o *model.Obligation) error {
	for i := range r.obligations {
		e := &r.obligations[i]
		if e.ID != o.ID && e.ClientID == o.ClientID && e.TypeID == o.TypeID && e.Period == o.Period {
			return gorm.ErrDuplicatedKey
		}
	}
	if o.ID == 0 {
		o.ID = r.nextID
		r.nextID++
		r.obligations = append(r.obligations, *o)
		return nil
	}
	for i := range r.obligations {
		if r.obligations[i].ID == o.ID {
			r.obligations[i] = *o
			return nil
		}
	}
	r.obligations = append(r.obligations, *o)
	return nil
}

func (r *memObligationRepo) FindByID(_ context.Context, id uint) (*model.Obligation, error) {
	for i := range r.obligations {
		if r.obligations[i].ID == id {
			o := r.obligations[i]
			return &o, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memObligationRepo) FindAll(_ context.Context) ([]model.Obligation, error) {
	out := make([]model.Obligation, len(r.obligations))
	copy(out, r.obligations)
	return out, nil
}

func (r *memObligationRepo) FindByClient(_ context.Context, clientID uint) ([]model.Obligation, error) {
	var out []model.Obligation
	for i := range r.obligations {
		if r.obligations[i].ClientID == clientID {
			out = append(out, r.obligations[i])
		}
	}
	return out, nil
}

func (r *memObligationRepo) Delete(_ context.Context, id uint) error {
	for i := range r.obligations {
		if r.obligations[i].ID == id {
			r.obligations = append(r.obligations[:i], r.obligations[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *memObligationRepo) Settle(_ context.Context, id uint) (bool, error) {
	for i := range r.obligations {
		if r.obligations[i].ID == id {
			if r.obligations[i].Status == model.StatusSettled {
				return false, nil
			}
			r.obligations[i].Status = model.StatusSettled
			return true, nil
		}
	}
	return false, nil
}

type memPaymentRepo struct {
	payments []model.Payment
	nextID   uint
}

func newMemPaymentRepo() *memPaymentRepo {
	return &memPaymentRepo{nextID: 1}
}

func (r *memPaymentRepo) Create(_ context.Context, p *model.Payment) error {
	p.ID = r.nextID
	r.nextID++
	r.payments = append(r.payments, *p)
	return nil
}

func (r *memPaymentRepo) FindByObligation(_ context.Context, obligationID uint) ([]model.Payment, error) {
	var out []model.Payment
	for i := range r.payments {
		if r.payments[i].ObligationID == obligationID {
			out = append(out, r.payments[i])
		}
	}
	return out, nil
}

type memAlertRepo struct {
	alerts []model.Alert
	nextID uint
}

func newMemAlertRepo() *memAlertRepo {
	return &memAlertRepo{nextID: 1}
}

func (r *memAlertRepo) Create(_ context.Context, a *model.Alert) error {
	a.ID = r.nextID
	r.nextID++
	stored := *a
	stored.Obligation = nil
	r.alerts = append(r.alerts, stored)
	return nil
}

func (r *memAlertRepo) ExistsFor(_ context.Context, obligationID uint, day time.Time) (bool, error) {
	for i := range r.alerts {
		if r.alerts[i].ObligationID == obligationID && r.alerts[i].RaisedOn.Equal(model.DateOnly(day)) {
			return true, nil
		}
	}
	return false, nil
}

func (r *memAlertRepo) FindUnread(_ context.Context) ([]model.Alert, error) {
	var out []model.Alert
	for i := range r.alerts {
		if !r.alerts[i].Read {
			out = append(out, r.alerts[i])
		}
	}
	return out, nil
}

func (r *memAlertRepo) MarkRead(_ context.Context, id uint) error {
	for i := range r.alerts {
		if r.alerts[i].ID == id {
			r.alerts[i].Read = true
		}
	}
	return nil
}

// memTxManager runs the function directly; the fakes apply writes eagerly,
// which is enough because the settlement flow checks state before writing.
type memTxManager struct{}

func (memTxManager) RunInTx(ctx context.Context, fn func(txCtx context.Context) error) error {
	return fn(ctx)
}

// captureBroadcaster records everything pushed through it.
type captureBroadcaster struct {
	sent []interface{}
}

func (b *captureBroadcaster) BroadcastJSON(v interface{}) {
	b.sent = append(b.sent, v)
}

// --- Shared fixtures ---

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return model.DateOnly(t)
}

func dateP(s string) *time.Time {
	d := date(s)
	return &d
}

var fixtureTypes = []model.ObligationType{
	{ID: 1, Code: "IVA", Description: "Value added tax", Periodicity: model.PeriodicityMonthly},
	{ID: 2, Code: "GAN", Description: "Income tax", Periodicity: model.PeriodicityAnnual},
}

// newObligationFixture wires an obligation service over fresh fakes with one
// client and the two fixture types preloaded.
func newObligationFixture() (ObligationService, *memObligationRepo, *memClientRepo) {
	clients := newMemClientRepo()
	_ = clients.Save(context.Background(), &model.Client{LegalName: "Acme SA", TaxID: "20304050607"})
	types := &memTypeRepo{types: fixtureTypes}
	obligations := newMemObligationRepo()
	return NewObligationService(obligations, clients, types), obligations, clients
}
