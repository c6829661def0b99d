package reject_payment

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

func (r *fakePaymentRepo) UpdateStatus(_ context.Context, id uuid.UUID, from, to domain.PaymentStatus, _ *string) error {
	p, ok := r.payments[id]
	if !ok {
		return paymentRepo.ErrPaymentNotFound
	}
	if p.Status != from {
		return paymentRepo.ErrInvalidState
	}
	p.Status = to
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

func (b *fakeBooking) Release(_ context.Context, slotID int64) error {
	s, ok := b.slots[slotID]
	if !ok {
		return bookingSvc.ErrSlotNotFound
	}
	s.State = domain.SlotAvailable
	s.BookedBy = nil
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

func TestExecute_RejectsPaymentAndReleasesSlot(t *testing.T) {
	paymentID := uuid.New()
	uid := int64(1)
	payments := &fakePaymentRepo{payments: map[uuid.UUID]*domain.Payment{
		paymentID: {ID: paymentID, SlotID: 10, UserID: uid, Amount: 8000, Status: domain.PaymentPending},
	}}
	booking := &fakeBooking{slots: map[int64]*domain.Slot{
		10: {ID: 10, Date: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), Window: "18:00-19:30", State: domain.SlotReserved, Active: true, BookedBy: &uid},
	}}
	publisher := &fakePublisher{}
	notifier := &fakeNotifier{}
	uc := NewUseCase(payments, booking, publisher, notifier, fakeTxManager{}, nil, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{PaymentID: paymentID, Reason: "declined"})
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentRejected, resp.Status)

	assert.Equal(t, domain.PaymentRejected, payments.payments[paymentID].Status)

	slot := booking.slots[10]
	assert.Equal(t, domain.SlotAvailable, slot.State)
	assert.Nil(t, slot.BookedBy)

	require.Len(t, publisher.events, 1)
	assert.Equal(t, domain.EventBookingReleased, publisher.events[0].Type)
	assert.Equal(t, "declined", publisher.events[0].Reason)

	assert.Len(t, notifier.sent, 1)
}

func TestExecute_AlreadyVerified(t *testing.T) {
	paymentID := uuid.New()
	payments := &fakePaymentRepo{payments: map[uuid.UUID]*domain.Payment{
		paymentID: {ID: paymentID, SlotID: 10, UserID: 1, Status: domain.PaymentVerified},
	}}
	booking := &fakeBooking{slots: map[int64]*domain.Slot{
		10: {ID: 10, State: domain.SlotBooked, Active: true},
	}}
	uc := NewUseCase(payments, booking, &fakePublisher{}, &fakeNotifier{}, fakeTxManager{}, nil, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{PaymentID: paymentID})
	assert.ErrorIs(t, err, ErrInvalidState)
	// подтверждённая бронь не снимается отклонением
	assert.Equal(t, domain.SlotBooked, booking.slots[10].State)
}

func TestExecute_PaymentNotFound(t *testing.T) {
	uc := NewUseCase(
		&fakePaymentRepo{payments: map[uuid.UUID]*domain.Payment{}},
		&fakeBooking{slots: map[int64]*domain.Slot{}},
		&fakePublisher{}, &fakeNotifier{}, fakeTxManager{}, nil, nopLogger{},
	)

	_, err := uc.Execute(context.Background(), &Request{PaymentID: uuid.New()})
	assert.ErrorIs(t, err, ErrPaymentNotFound)
}
