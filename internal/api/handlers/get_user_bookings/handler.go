package get_user_bookings

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-FieldBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-FieldBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
)

const (
	msgInvalidUserID = "некорректный идентификатор пользователя"
	msgForbidden     = "можно смотреть только свои бронирования"
)

type Handler struct {
	bookings BookingLister
	logger   Logger
}

func NewHandler(bookings BookingLister, logger Logger) *Handler {
	return &Handler{
		bookings: bookings,
		logger:   logger,
	}
}

// BookingResponse HTTP модель брони пользователя
type BookingResponse struct {
	SlotID int64  `json:"slotId"`
	Date   string `json:"date"`
	Window string `json:"window"`
	State  string `json:"state"`
	Cost   int64  `json:"cost"`
}

// BookingsResponse HTTP модель списка броней
type BookingsResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Handle GET /api/v1/users/{userId}/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, "требуется заголовок X-User-ID")
		return
	}

	userID, err := strconv.ParseInt(mux.Vars(r)["userId"], 10, 64)
	if err != nil || userID <= 0 {
		handlers.RespondBadRequest(w, msgInvalidUserID)
		return
	}
	if userID != callerID {
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	query := r.URL.Query()
	page, _ := strconv.Atoi(query.Get("page"))
	pageSize, _ := strconv.Atoi(query.Get("pageSize"))

	slots, err := h.bookings.ListBookingsForUser(r.Context(), userID, page, pageSize)
	if err != nil {
		h.logger.Error("GET /users/{userId}/bookings - Failed to list bookings: user_id=%d, error=%v", userID, err)
		handlers.RespondInternalError(w)
		return
	}

	resp := &BookingsResponse{Bookings: make([]BookingResponse, 0, len(slots))}
	for _, s := range slots {
		resp.Bookings = append(resp.Bookings, BookingResponse{
			SlotID: s.ID,
			Date:   s.Date.Format(domain.DateFormat),
			Window: s.Window.String(),
			State:  string(s.State),
			Cost:   s.Cost,
		})
	}

	handlers.RespondJSON(w, http.StatusOK, resp)
}
