package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
	rateRepo "github.com/m04kA/SMC-FieldBookingService/internal/infra/storage/rate"
)

// fakeSlotRepo in-memory репозиторий с уникальностью по (date, window)
type fakeSlotRepo struct {
	slots  map[domain.SlotKey]*domain.Slot
	nextID int64
}

func newFakeSlotRepo() *fakeSlotRepo {
	return &fakeSlotRepo{slots: make(map[domain.SlotKey]*domain.Slot), nextID: 1}
}

func (r *fakeSlotRepo) CreateBatch(_ context.Context, slots []*domain.Slot) (int, error) {
	for _, s := range slots {
		s.ID = r.nextID
		r.nextID++
		r.slots[s.Key()] = s
	}
	return len(slots), nil
}

func (r *fakeSlotRepo) ListKeys(_ context.Context, rng domain.DateRange) (map[domain.SlotKey]struct{}, error) {
	keys := make(map[domain.SlotKey]struct{})
	for key, s := range r.slots {
		if !s.Date.Before(rng.From) && !s.Date.After(rng.To) {
			keys[key] = struct{}{}
		}
	}
	return keys, nil
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

type fakeRateRepo struct {
	rates map[domain.UserCategory]int64
}

func newFakeRateRepo() *fakeRateRepo {
	return &fakeRateRepo{rates: map[domain.UserCategory]int64{
		domain.CategoryEmployee: 10000,
		domain.CategoryStudent:  8000,
		domain.CategoryGeneral:  12000,
	}}
}

func (r *fakeRateRepo) GetByCategory(_ context.Context, c domain.UserCategory) (*domain.CategoryRate, error) {
	cost, ok := r.rates[c]
	if !ok {
		return nil, rateRepo.ErrRateNotFound
	}
	return &domain.CategoryRate{Category: c, SessionCost: cost}, nil
}

func (r *fakeRateRepo) List(_ context.Context) ([]*domain.CategoryRate, error) {
	var out []*domain.CategoryRate
	for c, cost := range r.rates {
		out = append(out, &domain.CategoryRate{Category: c, SessionCost: cost})
	}
	return out, nil
}

func (r *fakeRateRepo) UpdateCost(_ context.Context, c domain.UserCategory, cost int64) error {
	if _, ok := r.rates[c]; !ok {
		return rateRepo.ErrRateNotFound
	}
	r.rates[c] = cost
	return nil
}

// fakeTxManager выполняет функцию без настоящей транзакции
type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newService(slots *fakeSlotRepo) *Service {
	return NewService(slots, newFakeRateRepo(), fakeTxManager{}, nopLogger{})
}

func day(d int) time.Time {
	return time.Date(2026, 9, d, 0, 0, 0, 0, time.UTC)
}

var testWindows = []domain.TimeWindow{"16:00-17:30", "18:00-19:30"}

func TestGenerateSlots_ThreeDaysTwoWindows(t *testing.T) {
	repo := newFakeSlotRepo()
	svc := newService(repo)

	created, err := svc.GenerateSlots(context.Background(), day(1), day(3), testWindows, 500)
	require.NoError(t, err)
	assert.Equal(t, 6, created)

	slots, err := svc.ListSlots(context.Background(), domain.DateRange{From: day(1), To: day(3)})
	require.NoError(t, err)
	require.Len(t, slots, 6)
	for _, s := range slots {
		assert.Equal(t, domain.SlotAvailable, s.State)
		assert.True(t, s.Active)
		assert.Equal(t, int64(500), s.Cost)
	}
}

func TestGenerateSlots_Idempotent(t *testing.T) {
	repo := newFakeSlotRepo()
	svc := newService(repo)

	created, err := svc.GenerateSlots(context.Background(), day(1), day(3), testWindows, 500)
	require.NoError(t, err)
	assert.Equal(t, 6, created)

	// повторный вызов с тем же диапазоном
	created, err = svc.GenerateSlots(context.Background(), day(1), day(3), testWindows, 500)
	require.NoError(t, err)
	assert.Equal(t, 0, created)

	// пересекающийся диапазон доливает только недостающие дни
	created, err = svc.GenerateSlots(context.Background(), day(2), day(5), testWindows, 500)
	require.NoError(t, err)
	assert.Equal(t, 4, created)

	slots, err := svc.ListSlots(context.Background(), domain.DateRange{From: day(1), To: day(5)})
	require.NoError(t, err)
	assert.Len(t, slots, 10)
}

func TestGenerateSlots_DefaultsToGeneralRate(t *testing.T) {
	repo := newFakeSlotRepo()
	svc := newService(repo)

	created, err := svc.GenerateSlots(context.Background(), day(1), day(1), testWindows, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, created)

	slots, err := svc.ListSlots(context.Background(), domain.DateRange{From: day(1), To: day(1)})
	require.NoError(t, err)
	for _, s := range slots {
		assert.Equal(t, int64(12000), s.Cost)
	}
}

func TestGenerateSlots_InvalidInput(t *testing.T) {
	svc := newService(newFakeSlotRepo())

	_, err := svc.GenerateSlots(context.Background(), day(5), day(1), testWindows, 500)
	assert.ErrorIs(t, err, ErrInvalidRange)

	_, err = svc.GenerateSlots(context.Background(), day(1), day(2), []domain.TimeWindow{"bad"}, 500)
	assert.ErrorIs(t, err, ErrInvalidWindow)
}

func TestChangeCategoryRate(t *testing.T) {
	rates := newFakeRateRepo()
	svc := NewService(newFakeSlotRepo(), rates, fakeTxManager{}, nopLogger{})

	require.NoError(t, svc.ChangeCategoryRate(context.Background(), domain.CategoryStudent, 9000))

	cost, err := svc.RateFor(context.Background(), domain.CategoryStudent)
	require.NoError(t, err)
	assert.Equal(t, int64(9000), cost)

	assert.ErrorIs(t, svc.ChangeCategoryRate(context.Background(), domain.CategoryStudent, 0), ErrInvalidCost)
	assert.ErrorIs(t, svc.ChangeCategoryRate(context.Background(), "alumni", 100), ErrRateNotFound)
}
