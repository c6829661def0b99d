package get_user_payments

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-FieldBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-FieldBookingService/internal/api/middleware"
)

const (
	msgInvalidUserID = "некорректный идентификатор пользователя"
	msgForbidden     = "можно смотреть только свои платежи"
)

type Handler struct {
	payments PaymentLister
	logger   Logger
}

func NewHandler(payments PaymentLister, logger Logger) *Handler {
	return &Handler{
		payments: payments,
		logger:   logger,
	}
}

// PaymentResponse HTTP модель платежа; сторнирующие записи возвратов
// идут с отрицательной суммой и ссылкой на исходный платёж
type PaymentResponse struct {
	ID        string  `json:"id"`
	SlotID    int64   `json:"slotId"`
	Amount    int64   `json:"amount"`
	Status    string  `json:"status"`
	RefundOf  *string `json:"refundOf,omitempty"`
	CreatedAt string  `json:"createdAt"`
}

// PaymentsResponse HTTP модель списка платежей
type PaymentsResponse struct {
	Payments []PaymentResponse `json:"payments"`
}

// Handle GET /api/v1/users/{userId}/payments
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

	payments, err := h.payments.ListPaymentsForUser(r.Context(), userID, page, pageSize)
	if err != nil {
		h.logger.Error("GET /users/{userId}/payments - Failed to list payments: user_id=%d, error=%v", userID, err)
		handlers.RespondInternalError(w)
		return
	}

	resp := &PaymentsResponse{Payments: make([]PaymentResponse, 0, len(payments))}
	for _, p := range payments {
		item := PaymentResponse{
			ID:        p.ID.String(),
			SlotID:    p.SlotID,
			Amount:    p.Amount,
			Status:    string(p.Status),
			CreatedAt: p.CreatedAt.Format(time.RFC3339),
		}
		if p.RefundOf != nil {
			ref := p.RefundOf.String()
			item.RefundOf = &ref
		}
		resp.Payments = append(resp.Payments, item)
	}

	handlers.RespondJSON(w, http.StatusOK, resp)
}
