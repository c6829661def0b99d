package catalog

import (
	"context"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
)

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	CreateBatch(ctx context.Context, slots []*domain.Slot) (int, error)
	ListKeys(ctx context.Context, rng domain.DateRange) (map[domain.SlotKey]struct{}, error)
	List(ctx context.Context, rng domain.DateRange) ([]*domain.Slot, error)
}

// RateRepository интерфейс репозитория тарифов категорий
type RateRepository interface {
	GetByCategory(ctx context.Context, category domain.UserCategory) (*domain.CategoryRate, error)
	List(ctx context.Context) ([]*domain.CategoryRate, error)
	UpdateCost(ctx context.Context, category domain.UserCategory, cost int64) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
