package onboarding

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
	sessionRepo "github.com/m04kA/SMC-FieldBookingService/internal/infra/storage/onboarding"
	userRepo "github.com/m04kA/SMC-FieldBookingService/internal/infra/storage/user"
)

// Result итог обработки шага онбординга
type Result struct {
	Session   *domain.OnboardingSession
	Completed bool
	// User заполнен только при Completed=true
	User *domain.User
}

// Service пошаговая регистрация пользователей.
//
// Сессии живут в БД, поэтому перезапуск процесса не теряет начатые
// регистрации. Шаги идут строго вперед: некорректный ввод оставляет
// сессию на месте и возвращает ErrValidationFailed.
type Service struct {
	sessions  SessionRepository
	users     UserRepository
	txManager TransactionManager
	logger    Logger
}

// NewService создает новый экземпляр сервиса онбординга
func NewService(
	sessions SessionRepository,
	users UserRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		sessions:  sessions,
		users:     users,
		txManager: txManager,
		logger:    logger,
	}
}

// Start начинает (или перезапускает) онбординг пользователя.
// Для уже зарегистрированного пользователя возвращает ErrAlreadyRegistered.
func (s *Service) Start(ctx context.Context, userID int64, firstMessageID *int64) (*domain.OnboardingSession, error) {
	if _, err := s.users.GetByID(ctx, userID); err == nil {
		return nil, ErrAlreadyRegistered
	} else if !errors.Is(err, userRepo.ErrUserNotFound) {
		s.logger.Error("Start: failed to check user %d: %v", userID, err)
		return nil, fmt.Errorf("%w: Start - failed to check user: %v", ErrInternal, err)
	}

	session := &domain.OnboardingSession{
		UserID:         userID,
		Step:           domain.StepCategory,
		FirstMessageID: firstMessageID,
	}
	if err := s.sessions.Upsert(ctx, session); err != nil {
		s.logger.Error("Start: failed to upsert session for user %d: %v", userID, err)
		return nil, fmt.Errorf("%w: Start - failed to upsert session: %v", ErrInternal, err)
	}

	s.logger.Info("Start: onboarding session opened for user %d", userID)
	return session, nil
}

// Session возвращает текущую сессию пользователя
func (s *Service) Session(ctx context.Context, userID int64) (*domain.OnboardingSession, error) {
	session, err := s.sessions.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, sessionRepo.ErrSessionNotFound) {
			return nil, ErrSessionNotFound
		}
		s.logger.Error("Session: repository error for user %d: %v", userID, err)
		return nil, fmt.Errorf("%w: Session - repository error: %v", ErrInternal, err)
	}
	return session, nil
}

// Advance обрабатывает ввод текущего шага и двигает сессию вперед.
//
// Некорректный ввод возвращает ErrValidationFailed, шаг не меняется.
// Последний шаг (контакт) финализирует профиль: пользователь создается
// активным, GENERAL сразу verified, остальные pending до проверки
// оператором; сессия удаляется в той же транзакции.
func (s *Service) Advance(ctx context.Context, userID int64, input string) (*Result, error) {
	session, err := s.Session(ctx, userID)
	if err != nil {
		return nil, err
	}

	switch session.Step {
	case domain.StepCategory:
		category, ok := domain.ParseUserCategory(input)
		if !ok {
			return nil, fmt.Errorf("%w: unknown category %q", ErrValidationFailed, input)
		}
		session.Category = &category
		if category.RequiresVerification() {
			session.Step = domain.StepToken
		} else {
			session.Step = domain.StepName
		}

	case domain.StepToken:
		token, err := parseToken(input)
		if err != nil {
			return nil, err
		}
		session.VerificationToken = &token
		session.Step = domain.StepName

	case domain.StepName:
		name, err := sanitizeName(input)
		if err != nil {
			return nil, err
		}
		session.Name = &name
		session.Step = domain.StepSurname

	case domain.StepSurname:
		surname, err := sanitizeName(input)
		if err != nil {
			return nil, err
		}
		session.Surname = &surname
		session.Step = domain.StepCard

	case domain.StepCard:
		card, err := parseCardRef(input)
		if err != nil {
			return nil, err
		}
		session.CardRef = &card
		session.Step = domain.StepContact

	case domain.StepContact:
		return s.finalize(ctx, session, input)

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnexpectedStep, session.Step)
	}

	if err := s.sessions.Upsert(ctx, session); err != nil {
		s.logger.Error("Advance: failed to upsert session for user %d: %v", userID, err)
		return nil, fmt.Errorf("%w: Advance - failed to upsert session: %v", ErrInternal, err)
	}

	return &Result{Session: session}, nil
}

// finalize создает пользователя и удаляет сессию одной транзакцией
func (s *Service) finalize(ctx context.Context, session *domain.OnboardingSession, phoneInput string) (*Result, error) {
	phone, err := parsePhone(phoneInput)
	if err != nil {
		return nil, err
	}

	if session.Category == nil || session.Name == nil || session.Surname == nil || session.CardRef == nil {
		s.logger.Error("finalize: incomplete session for user %d at contact step", session.UserID)
		return nil, fmt.Errorf("%w: incomplete session at contact step", ErrUnexpectedStep)
	}

	verification := domain.VerificationPending
	if !session.Category.RequiresVerification() {
		verification = domain.VerificationVerified
	}

	newUser := &domain.User{
		ID:                session.UserID,
		Name:              *session.Name,
		Surname:           *session.Surname,
		Phone:             &phone,
		Category:          *session.Category,
		Verification:      verification,
		Role:              domain.RoleUser,
		CardRef:           session.CardRef,
		VerificationToken: session.VerificationToken,
		Active:            true,
	}

	var created *domain.User
	err = s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		created, err = s.users.Create(txCtx, newUser)
		if err != nil {
			if errors.Is(err, userRepo.ErrUserExists) {
				return ErrAlreadyRegistered
			}
			return fmt.Errorf("%w: finalize - failed to create user: %v", ErrInternal, err)
		}
		if err := s.sessions.Delete(txCtx, session.UserID); err != nil {
			return fmt.Errorf("%w: finalize - failed to delete session: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		if !errors.Is(err, ErrAlreadyRegistered) {
			s.logger.Error("finalize: failed for user %d: %v", session.UserID, err)
		}
		return nil, err
	}

	s.logger.Info("finalize: user %d registered, category=%s verification=%s",
		created.ID, created.Category, created.Verification)

	return &Result{Session: session, Completed: true, User: created}, nil
}

// CleanupAbandoned удаляет сессии, брошенные дольше окна брошенности
func (s *Service) CleanupAbandoned(ctx context.Context, now time.Time) (int64, error) {
	deleted, err := s.sessions.DeleteAbandoned(ctx, now.Add(-domain.OnboardingAbandonAfter))
	if err != nil {
		s.logger.Error("CleanupAbandoned: repository error: %v", err)
		return 0, fmt.Errorf("%w: CleanupAbandoned - repository error: %v", ErrInternal, err)
	}
	if deleted > 0 {
		s.logger.Info("CleanupAbandoned: removed %d abandoned sessions", deleted)
	}
	return deleted, nil
}
