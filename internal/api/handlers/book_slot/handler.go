package book_slot

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-FieldBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-FieldBookingService/internal/api/middleware"
	bookSlot "github.com/m04kA/SMC-FieldBookingService/internal/usecase/book_slot"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgUserNotFound       = "пользователь не зарегистрирован"
	msgUserInactive       = "пользователь деактивирован"
	msgSlotNotFound       = "слот не найден"
	msgSlotUnavailable    = "слот недоступен для бронирования"
	msgSlotConflict       = "слот уже забронирован"
)

type Handler struct {
	useCase BookSlotUseCase
	logger  Logger
}

func NewHandler(useCase BookSlotUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, "требуется заголовок X-User-ID")
		return
	}

	var req BookSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if req.SlotID <= 0 {
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &bookSlot.Request{
		UserID: userID,
		SlotID: req.SlotID,
	})
	if err != nil {
		switch {
		case errors.Is(err, bookSlot.ErrUserNotFound):
			h.logger.Warn("POST /bookings - User not found: user_id=%d", userID)
			handlers.RespondNotFound(w, msgUserNotFound)

		case errors.Is(err, bookSlot.ErrUserInactive):
			h.logger.Warn("POST /bookings - User inactive: user_id=%d", userID)
			handlers.RespondForbidden(w, msgUserInactive)

		case errors.Is(err, bookSlot.ErrSlotNotFound):
			h.logger.Warn("POST /bookings - Slot not found: slot_id=%d", req.SlotID)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, bookSlot.ErrSlotUnavailable):
			h.logger.Warn("POST /bookings - Slot unavailable: slot_id=%d", req.SlotID)
			handlers.RespondConflict(w, msgSlotUnavailable)

		case errors.Is(err, bookSlot.ErrSlotConflict):
			h.logger.Warn("POST /bookings - Slot conflict: slot_id=%d, user_id=%d", req.SlotID, userID)
			handlers.RespondConflict(w, msgSlotConflict)

		default:
			h.logger.Error("POST /bookings - Failed to book slot: slot_id=%d, user_id=%d, error=%v",
				req.SlotID, userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
