package onboarding

import (
	"context"
	"time"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
)

// SessionRepository интерфейс репозитория сессий онбординга
type SessionRepository interface {
	Upsert(ctx context.Context, s *domain.OnboardingSession) error
	GetByUserID(ctx context.Context, userID int64) (*domain.OnboardingSession, error)
	Delete(ctx context.Context, userID int64) error
	DeleteAbandoned(ctx context.Context, olderThan time.Time) (int64, error)
}

// UserRepository интерфейс репозитория пользователей
type UserRepository interface {
	Create(ctx context.Context, u *domain.User) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
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
