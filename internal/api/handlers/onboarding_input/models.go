package onboarding_input

import (
	"strings"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
	onboardingSvc "github.com/m04kA/SMC-FieldBookingService/internal/service/onboarding"
	"github.com/m04kA/SMC-FieldBookingService/pkg/actioncodec"
)

// StartRequest HTTP request model начала онбординга
type StartRequest struct {
	FirstMessageID *int64 `json:"firstMessageId,omitempty"`
}

// InputRequest HTTP request model для ввода текущего шага.
// Text - либо свободный текст, либо закодированный action-токен кнопки
// (шаг выбора категории). LastMessageID нужен только на последнем шаге,
// чтобы убрать служебный диалог регистрации.
type InputRequest struct {
	Text          string `json:"text"`
	LastMessageID *int64 `json:"lastMessageId,omitempty"`
}

// SessionResponse HTTP модель состояния сессии
type SessionResponse struct {
	Step      string `json:"step"`
	Completed bool   `json:"completed"`
}

// normalizeInput разворачивает action-токен кнопки в значение шага.
// Свободный текст возвращается как есть.
func normalizeInput(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if !strings.Contains(trimmed, ":") {
		return trimmed
	}

	action, err := actioncodec.Decode(trimmed)
	if err != nil {
		return trimmed
	}
	if action.Tag == actioncodec.TagAccountType && action.Payload.Category != "" {
		return action.Payload.Category
	}
	return trimmed
}

// FromSession конвертирует сессию в HTTP response
func FromSession(s *domain.OnboardingSession) *SessionResponse {
	return &SessionResponse{Step: string(s.Step)}
}

// FromResult конвертирует итог шага в HTTP response
func FromResult(res *onboardingSvc.Result) *SessionResponse {
	if res.Completed {
		return &SessionResponse{Step: string(res.Session.Step), Completed: true}
	}
	return FromSession(res.Session)
}
