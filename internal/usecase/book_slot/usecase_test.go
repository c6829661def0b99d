package book_slot

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
	userRepo "github.com/m04kA/SMC-FieldBookingService/internal/infra/storage/user"
	bookingSvc "github.com/m04kA/SMC-FieldBookingService/internal/service/booking"
	"github.com/m04kA/SMC-FieldBookingService/pkg/ptr"
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

type fakeBooking struct {
	slots      map[int64]*domain.Slot
	reserveErr error
}

func (b *fakeBooking) GetSlot(_ context.Context, slotID int64) (*domain.Slot, error) {
	s, ok := b.slots[slotID]
	if !ok {
		return nil, bookingSvc.ErrSlotNotFound
	}
	return s, nil
}

func (b *fakeBooking) Reserve(_ context.Context, slotID, userID int64) error {
	if b.reserveErr != nil {
		return b.reserveErr
	}
	s, ok := b.slots[slotID]
	if !ok {
		return bookingSvc.ErrSlotNotFound
	}
	if !s.Active {
		return bookingSvc.ErrSlotUnavailable
	}
	if s.State != domain.SlotAvailable {
		return bookingSvc.ErrSlotConflict
	}
	s.State = domain.SlotReserved
	s.BookedBy = &userID
	return nil
}

type fakeCatalog struct {
	rates map[domain.UserCategory]int64
}

func (c *fakeCatalog) RateFor(_ context.Context, category domain.UserCategory) (int64, error) {
	return c.rates[category], nil
}

type fakePaymentRepo struct {
	created []*domain.Payment
}

func (r *fakePaymentRepo) Create(_ context.Context, p *domain.Payment) (*domain.Payment, error) {
	cp := *p
	cp.CreatedAt = time.Now()
	r.created = append(r.created, &cp)
	return &cp, nil
}

type fakeInvoices struct {
	opened int
	err    error
}

func (i *fakeInvoices) OpenInvoice(_ context.Context, _ int64, _ string, _ *domain.Slot, _ int64) error {
	i.opened++
	return i.err
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
	uc       *UseCase
	users    *fakeUserRepo
	booking  *fakeBooking
	payments *fakePaymentRepo
	invoices *fakeInvoices
}

func newFixture() *fixture {
	f := &fixture{
		users: &fakeUserRepo{users: map[int64]*domain.User{
			1: {ID: 1, Category: domain.CategoryStudent, Verification: domain.VerificationVerified, Active: true},
			2: {ID: 2, Category: domain.CategoryStudent, Verification: domain.VerificationPending, Active: true},
			3: {ID: 3, Category: domain.CategoryGeneral, Verification: domain.VerificationVerified, Active: false},
		}},
		booking: &fakeBooking{slots: map[int64]*domain.Slot{
			10: {ID: 10, Date: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), Window: "18:00-19:30", Cost: 12000, State: domain.SlotAvailable, Active: true},
		}},
		payments: &fakePaymentRepo{},
		invoices: &fakeInvoices{},
	}
	catalog := &fakeCatalog{rates: map[domain.UserCategory]int64{
		domain.CategoryStudent: 8000,
		domain.CategoryGeneral: 12000,
	}}
	f.uc = NewUseCase(f.users, f.booking, catalog, f.payments, f.invoices, fakeTxManager{}, nil, nopLogger{})
	return f
}

func TestExecute_VerifiedUserPaysCategoryRate(t *testing.T) {
	f := newFixture()

	resp, err := f.uc.Execute(context.Background(), &Request{UserID: 1, SlotID: 10})
	require.NoError(t, err)

	assert.Equal(t, int64(8000), resp.Amount)
	assert.Equal(t, domain.PaymentPending, resp.Status)
	assert.Equal(t, int64(10), resp.SlotID)

	require.Len(t, f.payments.created, 1)
	assert.Equal(t, int64(8000), f.payments.created[0].Amount)
	assert.Equal(t, 1, f.invoices.opened)

	slot := f.booking.slots[10]
	assert.Equal(t, domain.SlotReserved, slot.State)
	require.NotNil(t, slot.BookedBy)
	assert.Equal(t, int64(1), *slot.BookedBy)
}

func TestExecute_UnverifiedUserPaysListedCost(t *testing.T) {
	f := newFixture()

	resp, err := f.uc.Execute(context.Background(), &Request{UserID: 2, SlotID: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(12000), resp.Amount)
}

func TestExecute_UserNotFound(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Execute(context.Background(), &Request{UserID: 99, SlotID: 10})
	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.Empty(t, f.payments.created)
}

func TestExecute_InactiveUser(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Execute(context.Background(), &Request{UserID: 3, SlotID: 10})
	assert.ErrorIs(t, err, ErrUserInactive)
}

func TestExecute_SlotNotFound(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Execute(context.Background(), &Request{UserID: 1, SlotID: 404})
	assert.ErrorIs(t, err, ErrSlotNotFound)
}

func TestExecute_SlotConflict(t *testing.T) {
	f := newFixture()
	f.booking.slots[10].State = domain.SlotReserved
	f.booking.slots[10].BookedBy = ptr.Ptr(int64(2))

	_, err := f.uc.Execute(context.Background(), &Request{UserID: 1, SlotID: 10})
	assert.ErrorIs(t, err, ErrSlotConflict)
	assert.Empty(t, f.payments.created, "no payment must be opened for a lost reservation")
	assert.Zero(t, f.invoices.opened)
}

func TestExecute_InactiveSlot(t *testing.T) {
	f := newFixture()
	f.booking.slots[10].Active = false

	_, err := f.uc.Execute(context.Background(), &Request{UserID: 1, SlotID: 10})
	assert.ErrorIs(t, err, ErrSlotUnavailable)
}

func TestExecute_InvoiceFailureDoesNotFailBooking(t *testing.T) {
	f := newFixture()
	f.invoices.err = assert.AnError

	resp, err := f.uc.Execute(context.Background(), &Request{UserID: 1, SlotID: 10})
	require.NoError(t, err)
	assert.NotNil(t, resp)
	require.Len(t, f.payments.created, 1)
}
