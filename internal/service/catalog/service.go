package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
	rateRepo "github.com/m04kA/SMC-FieldBookingService/internal/infra/storage/rate"
)

// Service каталог слотов: генерация, листинг и тарифы категорий
type Service struct {
	slots     SlotRepository
	rates     RateRepository
	txManager TransactionManager
	logger    Logger
}

// NewService создает новый экземпляр сервиса каталога
func NewService(
	slots SlotRepository,
	rates RateRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		slots:     slots,
		rates:     rates,
		txManager: txManager,
		logger:    logger,
	}
}

// GenerateSlots создает слот для каждой пары (дата, окно) диапазона,
// пропуская уже существующие.
//
// Идемпотентна: повторный вызов с тем же или пересекающимся диапазоном
// не создает дубликатов. Выполняется в одной сериализуемой транзакции -
// генерация либо фиксируется целиком, либо откатывается.
//
// baseCost <= 0 означает "взять текущий тариф категории GENERAL"
// (гостевая цена слота).
func (s *Service) GenerateSlots(
	ctx context.Context,
	from, to time.Time,
	windows []domain.TimeWindow,
	baseCost int64,
) (int, error) {
	rng := domain.DateRange{From: truncateToDay(from), To: truncateToDay(to)}
	if err := rng.Validate(); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidRange, err)
	}

	if len(windows) == 0 {
		windows = domain.DefaultTimeWindows
	}
	for _, w := range windows {
		if err := w.Validate(); err != nil {
			return 0, fmt.Errorf("%w: %v", ErrInvalidWindow, err)
		}
	}

	var created int

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		cost := baseCost
		if cost <= 0 {
			rate, err := s.rates.GetByCategory(txCtx, domain.CategoryGeneral)
			if err != nil {
				s.logger.Error("GenerateSlots: failed to get base rate: %v", err)
				return fmt.Errorf("%w: failed to get base rate: %v", ErrInternal, err)
			}
			cost = rate.SessionCost
		}

		existing, err := s.slots.ListKeys(txCtx, rng)
		if err != nil {
			s.logger.Error("GenerateSlots: failed to list existing slots: %v", err)
			return fmt.Errorf("%w: failed to list existing slots: %v", ErrInternal, err)
		}

		var missing []*domain.Slot
		for date := rng.From; !date.After(rng.To); date = date.AddDate(0, 0, 1) {
			for _, w := range windows {
				key := domain.SlotKey{Date: date.Format(domain.DateFormat), Window: w}
				if _, ok := existing[key]; ok {
					continue
				}
				missing = append(missing, &domain.Slot{
					Date:   date,
					Window: w,
					Cost:   cost,
					State:  domain.SlotAvailable,
					Active: true,
				})
			}
		}

		created, err = s.slots.CreateBatch(txCtx, missing)
		if err != nil {
			s.logger.Error("GenerateSlots: failed to create slots: %v", err)
			return fmt.Errorf("%w: failed to create slots: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.logger.Info("GenerateSlots: created %d slots for %s..%s",
		created, rng.From.Format(domain.DateFormat), rng.To.Format(domain.DateFormat))

	return created, nil
}

// ListSlots возвращает слоты диапазона, по дате и началу окна
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

// RateFor возвращает цену сеанса для категории
func (s *Service) RateFor(ctx context.Context, category domain.UserCategory) (int64, error) {
	rate, err := s.rates.GetByCategory(ctx, category)
	if err != nil {
		if errors.Is(err, rateRepo.ErrRateNotFound) {
			return 0, ErrRateNotFound
		}
		s.logger.Error("RateFor: repository error for category=%s: %v", category, err)
		return 0, fmt.Errorf("%w: RateFor - repository error: %v", ErrInternal, err)
	}
	return rate.SessionCost, nil
}

// ListRates возвращает все тарифы категорий
func (s *Service) ListRates(ctx context.Context) ([]*domain.CategoryRate, error) {
	rates, err := s.rates.List(ctx)
	if err != nil {
		s.logger.Error("ListRates: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListRates - repository error: %v", ErrInternal, err)
	}
	return rates, nil
}

// ChangeCategoryRate меняет цену сеанса категории.
// Операторская операция, состоянием броней не ограничена: действует
// только на будущие платежи.
func (s *Service) ChangeCategoryRate(ctx context.Context, category domain.UserCategory, newCost int64) error {
	if newCost <= 0 {
		return ErrInvalidCost
	}

	if err := s.rates.UpdateCost(ctx, category, newCost); err != nil {
		if errors.Is(err, rateRepo.ErrRateNotFound) {
			return ErrRateNotFound
		}
		s.logger.Error("ChangeCategoryRate: repository error for category=%s: %v", category, err)
		return fmt.Errorf("%w: ChangeCategoryRate - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ChangeCategoryRate: category=%s new cost=%d", category, newCost)
	return nil
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
