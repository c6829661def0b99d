package onboarding_input

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-FieldBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-FieldBookingService/internal/api/middleware"
	onboardingSvc "github.com/m04kA/SMC-FieldBookingService/internal/service/onboarding"
	"github.com/m04kA/SMC-FieldBookingService/pkg/metrics"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgAlreadyRegistered  = "пользователь уже зарегистрирован"
	msgNoSession          = "онбординг не начат"
	msgValidationFailed   = "некорректный ввод, повторите"
)

// Задержка перед удалением служебных сообщений диалога
const dialogCleanupDelay = 5 * time.Second

type Handler struct {
	onboarding OnboardingService
	cleaner    DialogCleaner
	metrics    *metrics.Metrics
	logger     Logger
}

// NewHandler создает handler онбординга. cleaner может быть nil -
// тогда диалог после завершения не чистится.
func NewHandler(onboarding OnboardingService, cleaner DialogCleaner, collector *metrics.Metrics, logger Logger) *Handler {
	return &Handler{
		onboarding: onboarding,
		cleaner:    cleaner,
		metrics:    collector,
		logger:     logger,
	}
}

// HandleStart POST /api/v1/onboarding/start
func (h *Handler) HandleStart(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, "требуется заголовок X-User-ID")
		return
	}

	var req StartRequest
	if r.ContentLength > 0 {
		if err := handlers.DecodeJSON(r, &req); err != nil {
			h.logger.Warn("POST /onboarding/start - Invalid request body: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)
			return
		}
	}

	session, err := h.onboarding.Start(r.Context(), userID, req.FirstMessageID)
	if err != nil {
		if errors.Is(err, onboardingSvc.ErrAlreadyRegistered) {
			h.logger.Warn("POST /onboarding/start - Already registered: user_id=%d", userID)
			handlers.RespondConflict(w, msgAlreadyRegistered)
			return
		}
		h.logger.Error("POST /onboarding/start - Failed to start: user_id=%d, error=%v", userID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, FromSession(session))
}

// HandleInput POST /api/v1/onboarding/input
func (h *Handler) HandleInput(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, "требуется заголовок X-User-ID")
		return
	}

	var req InputRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /onboarding/input - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.onboarding.Advance(r.Context(), userID, normalizeInput(req.Text))
	if err != nil {
		switch {
		case errors.Is(err, onboardingSvc.ErrSessionNotFound):
			h.logger.Warn("POST /onboarding/input - No session: user_id=%d", userID)
			handlers.RespondNotFound(w, msgNoSession)

		case errors.Is(err, onboardingSvc.ErrValidationFailed):
			h.logger.Warn("POST /onboarding/input - Validation failed: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgValidationFailed)

		case errors.Is(err, onboardingSvc.ErrAlreadyRegistered):
			h.logger.Warn("POST /onboarding/input - Already registered: user_id=%d", userID)
			handlers.RespondConflict(w, msgAlreadyRegistered)

		default:
			h.logger.Error("POST /onboarding/input - Failed to advance: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	if result.Completed {
		if h.metrics != nil {
			h.metrics.UsersOnboarded.Inc()
		}
		h.scheduleDialogCleanup(userID, result, req.LastMessageID)
	}

	handlers.RespondJSON(w, http.StatusOK, FromResult(result))
}

// scheduleDialogCleanup откладывает удаление сообщений диалога
// регистрации от первого до последнего
func (h *Handler) scheduleDialogCleanup(userID int64, result *onboardingSvc.Result, lastMessageID *int64) {
	if h.cleaner == nil || result.Session.FirstMessageID == nil || lastMessageID == nil {
		return
	}

	first, last := *result.Session.FirstMessageID, *lastMessageID
	if last < first {
		return
	}

	for msgID := first; msgID <= last; msgID++ {
		h.cleaner.ScheduleDelete(userID, int(msgID), dialogCleanupDelay)
	}
	h.logger.Info("POST /onboarding/input - Dialog cleanup scheduled: user_id=%d, messages=%d..%d",
		userID, first, last)
}
