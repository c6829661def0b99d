package domain

import "time"

// OnboardingStep represents the current step of the registration flow
type OnboardingStep string

const (
	StepCategory OnboardingStep = "category"
	StepToken    OnboardingStep = "token"
	StepName     OnboardingStep = "name"
	StepSurname  OnboardingStep = "surname"
	StepCard     OnboardingStep = "card"
	StepContact  OnboardingStep = "contact"
)

// OnboardingSession holds the partially-filled profile of a registering user.
//
// Сессия хранится в той же БД, что и пользователи: процесс может
// перезапуститься, не теряя начатые регистрации.
type OnboardingSession struct {
	UserID            int64
	Step              OnboardingStep
	Category          *UserCategory
	VerificationToken *string
	Name              *string
	Surname           *string
	CardRef           *string
	FirstMessageID    *int64 // для очистки диалога после завершения

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsAbandoned returns true if the session is older than the abandonment window
func (s *OnboardingSession) IsAbandoned(now time.Time) bool {
	return now.Sub(s.UpdatedAt) > OnboardingAbandonAfter
}
