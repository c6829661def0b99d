package refund_payment

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-FieldBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-FieldBookingService/internal/api/middleware"
	refundPayment "github.com/m04kA/SMC-FieldBookingService/internal/usecase/refund_payment"
)

const (
	msgInvalidPaymentID = "некорректный идентификатор платежа"
	msgPaymentNotFound  = "платёж не найден"
	msgInvalidState     = "возврат возможен только для подтверждённого платежа"
	msgNotOperator      = "доступ только для операторов"
)

type Handler struct {
	useCase RefundPaymentUseCase
	logger  Logger
}

func NewHandler(useCase RefundPaymentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// RefundResponse HTTP response model
type RefundResponse struct {
	PaymentID    string `json:"paymentId"`
	RefundID     string `json:"refundId"`
	SlotID       int64  `json:"slotId"`
	RefundAmount int64  `json:"refundAmount"`
	Status       string `json:"status"`
}

// Handle POST /api/v1/admin/payments/{paymentId}/refund
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	operatorID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, "требуется заголовок X-User-ID")
		return
	}

	paymentID, err := uuid.Parse(mux.Vars(r)["paymentId"])
	if err != nil {
		h.logger.Warn("POST /admin/payments/{paymentId}/refund - Invalid payment id: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPaymentID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &refundPayment.Request{
		PaymentID:  paymentID,
		OperatorID: operatorID,
	})
	if err != nil {
		switch {
		case errors.Is(err, refundPayment.ErrOperatorNotFound), errors.Is(err, refundPayment.ErrNotOperator):
			h.logger.Warn("POST /admin/payments/{paymentId}/refund - Access denied: operator_id=%d", operatorID)
			handlers.RespondForbidden(w, msgNotOperator)

		case errors.Is(err, refundPayment.ErrPaymentNotFound):
			h.logger.Warn("POST /admin/payments/{paymentId}/refund - Payment not found: payment_id=%s", paymentID)
			handlers.RespondNotFound(w, msgPaymentNotFound)

		case errors.Is(err, refundPayment.ErrInvalidState):
			h.logger.Warn("POST /admin/payments/{paymentId}/refund - Payment not verified: payment_id=%s", paymentID)
			handlers.RespondConflict(w, msgInvalidState)

		default:
			h.logger.Error("POST /admin/payments/{paymentId}/refund - Failed to refund: payment_id=%s, error=%v",
				paymentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, &RefundResponse{
		PaymentID:    result.PaymentID.String(),
		RefundID:     result.RefundID.String(),
		SlotID:       result.SlotID,
		RefundAmount: result.RefundAmount,
		Status:       string(result.Status),
	})
}
