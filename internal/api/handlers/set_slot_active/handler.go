package set_slot_active

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-FieldBookingService/internal/api/handlers"
	bookingSvc "github.com/m04kA/SMC-FieldBookingService/internal/service/booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidSlotID      = "некорректный идентификатор слота"
	msgSlotNotFound       = "слот не найден"
	msgSlotBooked         = "нельзя переключить слот с активной бронью"
)

type Handler struct {
	booking BookingService
	logger  Logger
}

func NewHandler(booking BookingService, logger Logger) *Handler {
	return &Handler{
		booking: booking,
		logger:  logger,
	}
}

// SetSlotActiveRequest HTTP request model
type SetSlotActiveRequest struct {
	Active bool `json:"active"`
}

// Handle PATCH /api/v1/admin/slots/{slotId}/active
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	slotID, err := strconv.ParseInt(mux.Vars(r)["slotId"], 10, 64)
	if err != nil || slotID <= 0 {
		handlers.RespondBadRequest(w, msgInvalidSlotID)
		return
	}

	var req SetSlotActiveRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /admin/slots/{slotId}/active - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := h.booking.SetActive(r.Context(), slotID, req.Active); err != nil {
		switch {
		case errors.Is(err, bookingSvc.ErrSlotNotFound):
			h.logger.Warn("PATCH /admin/slots/{slotId}/active - Slot not found: slot_id=%d", slotID)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, bookingSvc.ErrCannotToggleBookedSlot):
			h.logger.Warn("PATCH /admin/slots/{slotId}/active - Slot has booking: slot_id=%d", slotID)
			handlers.RespondConflict(w, msgSlotBooked)

		default:
			h.logger.Error("PATCH /admin/slots/{slotId}/active - Failed to toggle slot: slot_id=%d, error=%v",
				slotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
