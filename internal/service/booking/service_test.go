package booking

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
	slotRepo "github.com/m04kA/SMC-FieldBookingService/internal/infra/storage/slot"
	"github.com/m04kA/SMC-FieldBookingService/pkg/ptr"
)

// fakeSlotRepo in-memory репозиторий с CAS семантикой боевого Reserve
type fakeSlotRepo struct {
	mu    sync.Mutex
	slots map[int64]*domain.Slot
}

func newFakeSlotRepo(slots ...*domain.Slot) *fakeSlotRepo {
	r := &fakeSlotRepo{slots: make(map[int64]*domain.Slot)}
	for _, s := range slots {
		r.slots[s.ID] = s
	}
	return r
}

func (r *fakeSlotRepo) GetByID(_ context.Context, id int64) (*domain.Slot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.slots[id]
	if !ok {
		return nil, slotRepo.ErrSlotNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *fakeSlotRepo) Reserve(_ context.Context, slotID, userID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.slots[slotID]
	if !ok {
		return slotRepo.ErrSlotNotFound
	}
	if !s.Active {
		return slotRepo.ErrSlotInactive
	}
	if s.State != domain.SlotAvailable {
		return slotRepo.ErrSlotConflict
	}
	s.State = domain.SlotReserved
	s.BookedBy = &userID
	return nil
}

func (r *fakeSlotRepo) Confirm(_ context.Context, slotID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.slots[slotID]
	if !ok {
		return slotRepo.ErrSlotNotFound
	}
	if s.State != domain.SlotReserved {
		return slotRepo.ErrInvalidTransition
	}
	s.State = domain.SlotBooked
	return nil
}

func (r *fakeSlotRepo) Release(_ context.Context, slotID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.slots[slotID]
	if !ok {
		return slotRepo.ErrSlotNotFound
	}
	s.State = domain.SlotAvailable
	s.BookedBy = nil
	return nil
}

func (r *fakeSlotRepo) SetActive(_ context.Context, slotID int64, active bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.slots[slotID]
	if !ok {
		return slotRepo.ErrSlotNotFound
	}
	if s.BookedBy != nil {
		return slotRepo.ErrSlotBooked
	}
	s.Active = active
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func availableSlot(id int64) *domain.Slot {
	return &domain.Slot{
		ID:     id,
		Date:   time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		Window: "18:00-19:30",
		Cost:   12000,
		State:  domain.SlotAvailable,
		Active: true,
	}
}

func TestReserve_Success(t *testing.T) {
	repo := newFakeSlotRepo(availableSlot(1))
	svc := NewService(repo, nopLogger{})

	require.NoError(t, svc.Reserve(context.Background(), 1, 100))

	s, err := repo.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, domain.SlotReserved, s.State)
	require.NotNil(t, s.BookedBy)
	assert.Equal(t, int64(100), *s.BookedBy)
}

func TestReserve_SlotNotFound(t *testing.T) {
	svc := NewService(newFakeSlotRepo(), nopLogger{})
	assert.ErrorIs(t, svc.Reserve(context.Background(), 99, 100), ErrSlotNotFound)
}

func TestReserve_InactiveSlot(t *testing.T) {
	slot := availableSlot(1)
	slot.Active = false
	svc := NewService(newFakeSlotRepo(slot), nopLogger{})

	assert.ErrorIs(t, svc.Reserve(context.Background(), 1, 100), ErrSlotUnavailable)
}

func TestReserve_ConcurrentCallers_ExactlyOneWins(t *testing.T) {
	repo := newFakeSlotRepo(availableSlot(1))
	svc := NewService(repo, nopLogger{})

	const callers = 10
	results := make(chan error, callers)

	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(userID int64) {
			defer wg.Done()
			results <- svc.Reserve(context.Background(), 1, userID)
		}(int64(i + 1))
	}
	wg.Wait()
	close(results)

	var won, lost int
	for err := range results {
		switch {
		case err == nil:
			won++
		default:
			assert.ErrorIs(t, err, ErrSlotConflict)
			lost++
		}
	}

	assert.Equal(t, 1, won)
	assert.Equal(t, callers-1, lost)
}

func TestConfirm_RequiresReservedState(t *testing.T) {
	repo := newFakeSlotRepo(availableSlot(1))
	svc := NewService(repo, nopLogger{})

	// available -> booked напрямую запрещен
	assert.ErrorIs(t, svc.Confirm(context.Background(), 1), ErrInvalidTransition)

	require.NoError(t, svc.Reserve(context.Background(), 1, 100))
	require.NoError(t, svc.Confirm(context.Background(), 1))

	s, err := repo.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, domain.SlotBooked, s.State)

	// повторный Confirm - устаревшая картина
	assert.ErrorIs(t, svc.Confirm(context.Background(), 1), ErrInvalidTransition)
}

func TestRelease_ClearsBookingReference(t *testing.T) {
	repo := newFakeSlotRepo(availableSlot(1))
	svc := NewService(repo, nopLogger{})

	require.NoError(t, svc.Reserve(context.Background(), 1, 100))
	require.NoError(t, svc.Confirm(context.Background(), 1))
	require.NoError(t, svc.Release(context.Background(), 1))

	s, err := repo.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, domain.SlotAvailable, s.State)
	assert.Nil(t, s.BookedBy)
}

func TestRelease_NoopWhenAlreadyAvailable(t *testing.T) {
	repo := newFakeSlotRepo(availableSlot(1))
	svc := NewService(repo, nopLogger{})

	assert.NoError(t, svc.Release(context.Background(), 1))
}

func TestSetActive_RejectsBookedSlot(t *testing.T) {
	slot := availableSlot(1)
	slot.State = domain.SlotBooked
	slot.BookedBy = ptr.Ptr(int64(100))
	svc := NewService(newFakeSlotRepo(slot), nopLogger{})

	err := svc.SetActive(context.Background(), 1, false)
	assert.ErrorIs(t, err, ErrCannotToggleBookedSlot)
}

func TestSetActive_TogglesFreeSlot(t *testing.T) {
	repo := newFakeSlotRepo(availableSlot(1))
	svc := NewService(repo, nopLogger{})

	require.NoError(t, svc.SetActive(context.Background(), 1, false))

	s, err := repo.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.False(t, s.Active)

	// отключенный слот нельзя резервировать
	assert.ErrorIs(t, svc.Reserve(context.Background(), 1, 100), ErrSlotUnavailable)
}
