package admin

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
	userRepo "github.com/m04kA/SMC-FieldBookingService/internal/infra/storage/user"
)

// Service операторские листинги: пользователи, слоты, брони и платежи.
//
// Пагинация всегда ограничена сверху: клиент не может запросить
// произвольно большую страницу.
type Service struct {
	users    UserRepository
	slots    SlotRepository
	payments PaymentRepository
	logger   Logger
}

// NewService создает новый экземпляр административного сервиса
func NewService(
	users UserRepository,
	slots SlotRepository,
	payments PaymentRepository,
	logger Logger,
) *Service {
	return &Service{
		users:    users,
		slots:    slots,
		payments: payments,
		logger:   logger,
	}
}

// ListUsers возвращает страницу пользователей
func (s *Service) ListUsers(ctx context.Context, page, pageSize int) ([]*domain.User, error) {
	limit, offset := clampPage(page, pageSize)

	users, err := s.users.List(ctx, limit, offset)
	if err != nil {
		s.logger.Error("ListUsers: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListUsers - repository error: %v", ErrInternal, err)
	}
	return users, nil
}

// GetUser возвращает пользователя по ID
func (s *Service) GetUser(ctx context.Context, userID int64) (*domain.User, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("GetUser: repository error for user %d: %v", userID, err)
		return nil, fmt.Errorf("%w: GetUser - repository error: %v", ErrInternal, err)
	}
	return u, nil
}

// ListSlots возвращает слоты диапазона вне зависимости от их состояния
func (s *Service) ListSlots(ctx context.Context, rng domain.DateRange) ([]*domain.Slot, error) {
	if err := rng.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRange, err)
	}

	slots, err := s.slots.List(ctx, rng)
	if err != nil {
		s.logger.Error("ListSlots: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListSlots - repository error: %v", ErrInternal, err)
	}
	return slots, nil
}

// ListBookingsForUser возвращает страницу слотов, забронированных пользователем
func (s *Service) ListBookingsForUser(ctx context.Context, userID int64, page, pageSize int) ([]*domain.Slot, error) {
	limit, offset := clampPage(page, pageSize)

	slots, err := s.slots.ListBookedBy(ctx, userID, limit, offset)
	if err != nil {
		s.logger.Error("ListBookingsForUser: repository error for user %d: %v", userID, err)
		return nil, fmt.Errorf("%w: ListBookingsForUser - repository error: %v", ErrInternal, err)
	}
	return slots, nil
}

// ListPaymentsForUser возвращает страницу платежей пользователя,
// включая записи возвратов с отрицательной суммой
func (s *Service) ListPaymentsForUser(ctx context.Context, userID int64, page, pageSize int) ([]*domain.Payment, error) {
	limit, offset := clampPage(page, pageSize)

	payments, err := s.payments.ListByUser(ctx, userID, limit, offset)
	if err != nil {
		s.logger.Error("ListPaymentsForUser: repository error for user %d: %v", userID, err)
		return nil, fmt.Errorf("%w: ListPaymentsForUser - repository error: %v", ErrInternal, err)
	}
	return payments, nil
}

// clampPage переводит (page, pageSize) в (limit, offset) с границами
func clampPage(page, pageSize int) (limit, offset uint64) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = domain.DefaultPageSize
	}
	if pageSize > domain.MaxPageSize {
		pageSize = domain.MaxPageSize
	}
	return uint64(pageSize), uint64((page - 1) * pageSize)
}
