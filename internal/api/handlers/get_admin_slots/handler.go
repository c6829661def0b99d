package get_admin_slots

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-FieldBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
	adminSvc "github.com/m04kA/SMC-FieldBookingService/internal/service/admin"
)

const (
	msgInvalidDate  = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidRange = "некорректный диапазон дат"
)

type Handler struct {
	admin  AdminService
	logger Logger
}

func NewHandler(admin AdminService, logger Logger) *Handler {
	return &Handler{
		admin:  admin,
		logger: logger,
	}
}

// SlotResponse HTTP модель слота для операторских листингов, видны
// состояние, активность и владелец брони
type SlotResponse struct {
	ID       int64  `json:"id"`
	Date     string `json:"date"`
	Window   string `json:"window"`
	Cost     int64  `json:"cost"`
	State    string `json:"state"`
	Active   bool   `json:"active"`
	BookedBy *int64 `json:"bookedBy,omitempty"`
}

// SlotsResponse HTTP модель списка слотов
type SlotsResponse struct {
	Slots []SlotResponse `json:"slots"`
}

// Handle GET /api/v1/admin/slots?from=YYYY-MM-DD&to=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	rng := domain.DateRange{
		From: now,
		To:   now.AddDate(0, 0, domain.DefaultHorizonDays),
	}

	query := r.URL.Query()
	var err error
	if raw := query.Get("from"); raw != "" {
		if rng.From, err = time.Parse(domain.DateFormat, raw); err != nil {
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
	}
	if raw := query.Get("to"); raw != "" {
		if rng.To, err = time.Parse(domain.DateFormat, raw); err != nil {
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
	}

	slots, err := h.admin.ListSlots(r.Context(), rng)
	if err != nil {
		if errors.Is(err, adminSvc.ErrInvalidRange) {
			handlers.RespondBadRequest(w, msgInvalidRange)
			return
		}
		h.logger.Error("GET /admin/slots - Failed to list slots: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	resp := &SlotsResponse{Slots: make([]SlotResponse, 0, len(slots))}
	for _, s := range slots {
		resp.Slots = append(resp.Slots, SlotResponse{
			ID:       s.ID,
			Date:     s.Date.Format(domain.DateFormat),
			Window:   s.Window.String(),
			Cost:     s.Cost,
			State:    string(s.State),
			Active:   s.Active,
			BookedBy: s.BookedBy,
		})
	}

	handlers.RespondJSON(w, http.StatusOK, resp)
}
