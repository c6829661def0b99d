package confirm_payment

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
	paymentRepo "github.com/m04kA/SMC-FieldBookingService/internal/infra/storage/payment"
	bookingSvc "github.com/m04kA/SMC-FieldBookingService/internal/service/booking"
)

type fakePaymentRepo struct {
	payments map[uuid.UUID]*domain.Payment
}

func (r *fakePaymentRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Payment, error) {
	p, ok := r.payments[id]
	if !ok {
		return nil, paymentRepo.ErrPaymentNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *fakePaymentRepo) UpdateStatus(_ context.Context, id uuid.UUID, from, to domain.PaymentStatus, externalRef *string) error {
	p, ok := r.payments[id]
	if !ok {
		return paymentRepo.ErrPaymentNotFound
	}
	if p.Status != from {
		return paymentRepo.ErrInvalidState
	}
	p.Status = to
	if externalRef != nil {
		p.ExternalRef = externalRef
	}
	return nil
}

type fakeBooking struct {
	slots map[int64]*domain.Slot
}

func (b *fakeBooking) GetSlot(_ context.Context, slotID int64) (*domain.Slot, error) {
	s, ok := b.slots[slotID]
	if !ok {
		return nil, bookingSvc.ErrSlotNotFound
	}
	return s, nil
}

func (b *fakeBooking) Confirm(_ context.Context, slotID int64) error {
	s, ok := b.slots[slotID]
	if !ok {
		return bookingSvc.ErrSlotNotFound
	}
	if s.State != domain.SlotReserved {
		return bookingSvc.ErrInvalidTransition
	}
	s.State = domain.SlotBooked
	return nil
}

type fakePublisher struct {
	events []domain.Event
}

func (p *fakePublisher) Publish(_ context.Context, event domain.Event) error {
	p.events = append(p.events, event)
	return nil
}

type fakeNotifier struct {
	sent []string
}

func (n *fakeNotifier) SendText(_ context.Context, _ int64, text string) error {
	n.sent = append(n.sent, text)
	return nil
}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixture struct {
	uc        *UseCase
	payments  *fakePaymentRepo
	booking   *fakeBooking
	publisher *fakePublisher
	notifier  *fakeNotifier
	paymentID uuid.UUID
}

func newFixture() *fixture {
	paymentID := uuid.New()
	uid := int64(1)
	f := &fixture{
		payments: &fakePaymentRepo{payments: map[uuid.UUID]*domain.Payment{
			paymentID: {ID: paymentID, SlotID: 10, UserID: uid, Amount: 8000, Status: domain.PaymentPending},
		}},
		booking: &fakeBooking{slots: map[int64]*domain.Slot{
			10: {ID: 10, Date: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), Window: "18:00-19:30", State: domain.SlotReserved, Active: true, BookedBy: &uid},
		}},
		publisher: &fakePublisher{},
		notifier:  &fakeNotifier{},
		paymentID: paymentID,
	}
	f.uc = NewUseCase(f.payments, f.booking, f.publisher, f.notifier, fakeTxManager{}, nil, nopLogger{})
	return f
}

func TestExecute_ConfirmsPaymentAndBooksSlot(t *testing.T) {
	f := newFixture()
	ref := "provider-tx-123"

	resp, err := f.uc.Execute(context.Background(), &Request{PaymentID: f.paymentID, ExternalRef: &ref})
	require.NoError(t, err)

	assert.Equal(t, domain.PaymentVerified, resp.Status)
	assert.Equal(t, int64(10), resp.SlotID)

	stored := f.payments.payments[f.paymentID]
	assert.Equal(t, domain.PaymentVerified, stored.Status)
	require.NotNil(t, stored.ExternalRef)
	assert.Equal(t, ref, *stored.ExternalRef)

	assert.Equal(t, domain.SlotBooked, f.booking.slots[10].State)

	require.Len(t, f.publisher.events, 2)
	assert.Equal(t, domain.EventPaymentVerified, f.publisher.events[0].Type)
	assert.Equal(t, domain.EventSlotBooked, f.publisher.events[1].Type)

	assert.Len(t, f.notifier.sent, 1)
}

func TestExecute_SecondWebhookIsRejected(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Execute(context.Background(), &Request{PaymentID: f.paymentID})
	require.NoError(t, err)

	_, err = f.uc.Execute(context.Background(), &Request{PaymentID: f.paymentID})
	assert.ErrorIs(t, err, ErrInvalidState)

	// слот остался booked, событий больше не публиковалось
	assert.Equal(t, domain.SlotBooked, f.booking.slots[10].State)
	assert.Len(t, f.publisher.events, 2)
}

func TestExecute_PaymentNotFound(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Execute(context.Background(), &Request{PaymentID: uuid.New()})
	assert.ErrorIs(t, err, ErrPaymentNotFound)
	assert.Empty(t, f.publisher.events)
}

func TestExecute_SlotNotReserved(t *testing.T) {
	f := newFixture()
	f.booking.slots[10].State = domain.SlotAvailable
	f.booking.slots[10].BookedBy = nil

	_, err := f.uc.Execute(context.Background(), &Request{PaymentID: f.paymentID})
	assert.ErrorIs(t, err, ErrSlotNotReserved)
}
