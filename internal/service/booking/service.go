package booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
	slotRepo "github.com/m04kA/SMC-FieldBookingService/internal/infra/storage/slot"
)

// Service машина состояний бронирования слота.
//
// Владеет переходами available -> reserved -> booked -> available и
// флагом админской активности. Единственная точка контенции - Reserve:
// репозиторий выполняет его как compare-and-swap, поэтому из N
// конкурентных попыток на один слот успешна максимум одна.
type Service struct {
	slots  SlotRepository
	logger Logger
}

// NewService создает новый экземпляр сервиса бронирования
func NewService(slots SlotRepository, logger Logger) *Service {
	return &Service{
		slots:  slots,
		logger: logger,
	}
}

// Reserve резервирует слот за пользователем (платёж ещё в ожидании)
func (s *Service) Reserve(ctx context.Context, slotID, userID int64) error {
	err := s.slots.Reserve(ctx, slotID, userID)
	if err == nil {
		s.logger.Info("Reserve: slot=%d reserved by user=%d", slotID, userID)
		return nil
	}

	switch {
	case errors.Is(err, slotRepo.ErrSlotNotFound):
		s.logger.Warn("Reserve: slot=%d not found", slotID)
		return ErrSlotNotFound
	case errors.Is(err, slotRepo.ErrSlotInactive):
		s.logger.Warn("Reserve: slot=%d is inactive", slotID)
		return ErrSlotUnavailable
	case errors.Is(err, slotRepo.ErrSlotConflict):
		s.logger.Warn("Reserve: slot=%d lost race, user=%d", slotID, userID)
		return ErrSlotConflict
	default:
		s.logger.Error("Reserve: repository error for slot=%d: %v", slotID, err)
		return fmt.Errorf("%w: Reserve - repository error: %v", ErrInternal, err)
	}
}

// Confirm переводит слот reserved -> booked. Валиден только после
// подтверждения связанного платежа.
func (s *Service) Confirm(ctx context.Context, slotID int64) error {
	err := s.slots.Confirm(ctx, slotID)
	if err == nil {
		s.logger.Info("Confirm: slot=%d booked", slotID)
		return nil
	}

	switch {
	case errors.Is(err, slotRepo.ErrSlotNotFound):
		s.logger.Warn("Confirm: slot=%d not found", slotID)
		return ErrSlotNotFound
	case errors.Is(err, slotRepo.ErrInvalidTransition):
		s.logger.Warn("Confirm: slot=%d is not reserved", slotID)
		return ErrInvalidTransition
	default:
		s.logger.Error("Confirm: repository error for slot=%d: %v", slotID, err)
		return fmt.Errorf("%w: Confirm - repository error: %v", ErrInternal, err)
	}
}

// Release снимает бронь и возвращает слот в available.
// Для уже свободного слота - no-op.
func (s *Service) Release(ctx context.Context, slotID int64) error {
	err := s.slots.Release(ctx, slotID)
	if err == nil {
		s.logger.Info("Release: slot=%d released", slotID)
		return nil
	}

	if errors.Is(err, slotRepo.ErrSlotNotFound) {
		s.logger.Warn("Release: slot=%d not found", slotID)
		return ErrSlotNotFound
	}

	s.logger.Error("Release: repository error for slot=%d: %v", slotID, err)
	return fmt.Errorf("%w: Release - repository error: %v", ErrInternal, err)
}

// SetActive переключает админскую активность слота.
// Слот с бронью переключить нельзя: бронь снимается только возвратом.
func (s *Service) SetActive(ctx context.Context, slotID int64, active bool) error {
	err := s.slots.SetActive(ctx, slotID, active)
	if err == nil {
		s.logger.Info("SetActive: slot=%d active=%t", slotID, active)
		return nil
	}

	switch {
	case errors.Is(err, slotRepo.ErrSlotNotFound):
		s.logger.Warn("SetActive: slot=%d not found", slotID)
		return ErrSlotNotFound
	case errors.Is(err, slotRepo.ErrSlotBooked):
		s.logger.Warn("SetActive: slot=%d has an active booking", slotID)
		return ErrCannotToggleBookedSlot
	default:
		s.logger.Error("SetActive: repository error for slot=%d: %v", slotID, err)
		return fmt.Errorf("%w: SetActive - repository error: %v", ErrInternal, err)
	}
}

// GetSlot возвращает слот по ID
func (s *Service) GetSlot(ctx context.Context, slotID int64) (*domain.Slot, error) {
	slot, err := s.slots.GetByID(ctx, slotID)
	if err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			return nil, ErrSlotNotFound
		}
		s.logger.Error("GetSlot: repository error for slot=%d: %v", slotID, err)
		return nil, fmt.Errorf("%w: GetSlot - repository error: %v", ErrInternal, err)
	}
	return slot, nil
}
