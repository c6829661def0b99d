package onboarding_input

import (
	"context"
	"time"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
	onboardingSvc "github.com/m04kA/SMC-FieldBookingService/internal/service/onboarding"
)

type OnboardingService interface {
	Start(ctx context.Context, userID int64, firstMessageID *int64) (*domain.OnboardingSession, error)
	Advance(ctx context.Context, userID int64, input string) (*onboardingSvc.Result, error)
}

// DialogCleaner планирует отложенное удаление сообщений диалога
type DialogCleaner interface {
	ScheduleDelete(chatID int64, messageID int, delay time.Duration) (cancel func())
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
