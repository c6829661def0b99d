package refund_payment

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
	paymentRepo "github.com/m04kA/SMC-FieldBookingService/internal/infra/storage/payment"
	userRepo "github.com/m04kA/SMC-FieldBookingService/internal/infra/storage/user"
	bookingSvc "github.com/m04kA/SMC-FieldBookingService/internal/service/booking"
)

type fakeUserRepo struct {
	users map[int64]*domain.User
}

func (r *fakeUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, userRepo.ErrUserNotFound
	}
	return u, nil
}

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

func (r *fakePaymentRepo) Create(_ context.Context, p *domain.Payment) (*domain.Payment, error) {
	cp := *p
	cp.CreatedAt = time.Now()
	r.payments[p.ID] = &cp
	return &cp, nil
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
	sentTo []int64
}

func (n *fakeNotifier) SendText(_ context.Context, userID int64, _ string) error {
	n.sentTo = append(n.sentTo, userID)
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

const (
	operatorID int64 = 100
	bookerID   int64 = 1
)

func newFixture() *fixture {
	paymentID := uuid.New()
	uid := bookerID
	f := &fixture{
		payments: &fakePaymentRepo{payments: map[uuid.UUID]*domain.Payment{
			paymentID: {ID: paymentID, SlotID: 10, UserID: bookerID, Amount: 8000, Status: domain.PaymentVerified},
		}},
		booking: &fakeBooking{slots: map[int64]*domain.Slot{
			10: {ID: 10, Date: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), Window: "18:00-19:30", State: domain.SlotBooked, Active: true, BookedBy: &uid},
		}},
		publisher: &fakePublisher{},
		notifier:  &fakeNotifier{},
		paymentID: paymentID,
	}
	users := &fakeUserRepo{users: map[int64]*domain.User{
		operatorID: {ID: operatorID, Role: domain.RoleOperator, Active: true},
		bookerID:   {ID: bookerID, Role: domain.RoleUser, Active: true},
	}}
	f.uc = NewUseCase(users, f.payments, f.booking, f.publisher, f.notifier, fakeTxManager{}, nil, nopLogger{})
	return f
}

func TestExecute_RefundsAndReleasesSlot(t *testing.T) {
	f := newFixture()

	resp, err := f.uc.Execute(context.Background(), &Request{PaymentID: f.paymentID, OperatorID: operatorID})
	require.NoError(t, err)

	assert.Equal(t, domain.PaymentRefunded, resp.Status)
	assert.Equal(t, int64(-8000), resp.RefundAmount)

	// исходный платёж переведён, сторнирующая запись добавлена
	assert.Equal(t, domain.PaymentRefunded, f.payments.payments[f.paymentID].Status)
	refund, ok := f.payments.payments[resp.RefundID]
	require.True(t, ok)
	assert.True(t, refund.IsRefundEntry())
	assert.Equal(t, f.paymentID, *refund.RefundOf)
	assert.Equal(t, int64(-8000), refund.Amount)

	// слот сразу вернулся в свободный пул
	slot := f.booking.slots[10]
	assert.Equal(t, domain.SlotAvailable, slot.State)
	assert.Nil(t, slot.BookedBy)

	require.Len(t, f.publisher.events, 1)
	assert.Equal(t, domain.EventBookingReleased, f.publisher.events[0].Type)
	assert.Equal(t, "refund", f.publisher.events[0].Reason)

	// уведомляется владелец брони, а не оператор
	require.Len(t, f.notifier.sentTo, 1)
	assert.Equal(t, bookerID, f.notifier.sentTo[0])
}

func TestExecute_NotOperator(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Execute(context.Background(), &Request{PaymentID: f.paymentID, OperatorID: bookerID})
	assert.ErrorIs(t, err, ErrNotOperator)
	assert.Equal(t, domain.PaymentVerified, f.payments.payments[f.paymentID].Status)
}

func TestExecute_OperatorNotFound(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Execute(context.Background(), &Request{PaymentID: f.paymentID, OperatorID: 999})
	assert.ErrorIs(t, err, ErrOperatorNotFound)
}

func TestExecute_PendingPaymentNotRefundable(t *testing.T) {
	f := newFixture()
	f.payments.payments[f.paymentID].Status = domain.PaymentPending

	_, err := f.uc.Execute(context.Background(), &Request{PaymentID: f.paymentID, OperatorID: operatorID})
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestExecute_SecondRefundRejected(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Execute(context.Background(), &Request{PaymentID: f.paymentID, OperatorID: operatorID})
	require.NoError(t, err)

	_, err = f.uc.Execute(context.Background(), &Request{PaymentID: f.paymentID, OperatorID: operatorID})
	assert.ErrorIs(t, err, ErrInvalidState)
}
