package admin

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
	userRepo "github.com/m04kA/SMC-FieldBookingService/internal/infra/storage/user"
)

type fakeUserRepo struct {
	users []*domain.User
}

func (r *fakeUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, userRepo.ErrUserNotFound
}

func (r *fakeUserRepo) List(_ context.Context, limit, offset uint64) ([]*domain.User, error) {
	if offset >= uint64(len(r.users)) {
		return nil, nil
	}
	end := offset + limit
	if end > uint64(len(r.users)) {
		end = uint64(len(r.users))
	}
	return r.users[offset:end], nil
}

type fakeSlotRepo struct {
	slots []*domain.Slot
}

func (r *fakeSlotRepo) List(_ context.Context, rng domain.DateRange) ([]*domain.Slot, error) {
	var out []*domain.Slot
	for _, s := range r.slots {
		if !s.Date.Before(rng.From) && !s.Date.After(rng.To) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeSlotRepo) ListBookedBy(_ context.Context, userID int64, limit, offset uint64) ([]*domain.Slot, error) {
	var booked []*domain.Slot
	for _, s := range r.slots {
		if s.BookedBy != nil && *s.BookedBy == userID {
			booked = append(booked, s)
		}
	}
	if offset >= uint64(len(booked)) {
		return nil, nil
	}
	end := offset + limit
	if end > uint64(len(booked)) {
		end = uint64(len(booked))
	}
	return booked[offset:end], nil
}

type fakePaymentRepo struct {
	payments []*domain.Payment
}

func (r *fakePaymentRepo) ListByUser(_ context.Context, userID int64, limit, offset uint64) ([]*domain.Payment, error) {
	var out []*domain.Payment
	for _, p := range r.payments {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	if offset >= uint64(len(out)) {
		return nil, nil
	}
	end := offset + limit
	if end > uint64(len(out)) {
		end = uint64(len(out))
	}
	return out[offset:end], nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func manyUsers(n int) []*domain.User {
	users := make([]*domain.User, 0, n)
	for i := 0; i < n; i++ {
		users = append(users, &domain.User{ID: int64(i + 1)})
	}
	return users
}

func TestListUsers_Pagination(t *testing.T) {
	svc := NewService(&fakeUserRepo{users: manyUsers(25)}, &fakeSlotRepo{}, &fakePaymentRepo{}, nopLogger{})
	ctx := context.Background()

	page1, err := svc.ListUsers(ctx, 1, 10)
	require.NoError(t, err)
	require.Len(t, page1, 10)
	assert.Equal(t, int64(1), page1[0].ID)

	page3, err := svc.ListUsers(ctx, 3, 10)
	require.NoError(t, err)
	require.Len(t, page3, 5)
	assert.Equal(t, int64(21), page3[0].ID)

	empty, err := svc.ListUsers(ctx, 4, 10)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestListUsers_ClampsPageSize(t *testing.T) {
	svc := NewService(&fakeUserRepo{users: manyUsers(150)}, &fakeSlotRepo{}, &fakePaymentRepo{}, nopLogger{})

	// запрошенные 1000 ограничиваются до MaxPageSize
	users, err := svc.ListUsers(context.Background(), 1, 1000)
	require.NoError(t, err)
	assert.Len(t, users, domain.MaxPageSize)

	// нулевая страница и размер берут дефолты
	users, err = svc.ListUsers(context.Background(), 0, 0)
	require.NoError(t, err)
	assert.Len(t, users, domain.DefaultPageSize)
}

func TestGetUser(t *testing.T) {
	svc := NewService(&fakeUserRepo{users: manyUsers(1)}, &fakeSlotRepo{}, &fakePaymentRepo{}, nopLogger{})

	u, err := svc.GetUser(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), u.ID)

	_, err = svc.GetUser(context.Background(), 99)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestListBookingsForUser(t *testing.T) {
	date := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	uid := int64(7)
	slots := []*domain.Slot{
		{ID: 1, Date: date, BookedBy: &uid},
		{ID: 2, Date: date},
		{ID: 3, Date: date, BookedBy: &uid},
	}
	svc := NewService(&fakeUserRepo{}, &fakeSlotRepo{slots: slots}, &fakePaymentRepo{}, nopLogger{})

	booked, err := svc.ListBookingsForUser(context.Background(), uid, 1, 10)
	require.NoError(t, err)
	assert.Len(t, booked, 2)
}

func TestListSlots_InvalidRange(t *testing.T) {
	svc := NewService(&fakeUserRepo{}, &fakeSlotRepo{}, &fakePaymentRepo{}, nopLogger{})

	from := time.Date(2026, 9, 5, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	_, err := svc.ListSlots(context.Background(), domain.DateRange{From: from, To: to})
	assert.ErrorIs(t, err, ErrInvalidRange)
}
