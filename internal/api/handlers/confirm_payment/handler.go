package confirm_payment

import (
	"crypto/subtle"
	"errors"
	"net/http"

	"github.com/m04kA/SMC-FieldBookingService/internal/api/handlers"
	confirmPayment "github.com/m04kA/SMC-FieldBookingService/internal/usecase/confirm_payment"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidPaymentID   = "некорректный идентификатор платежа"
	msgPaymentNotFound    = "платёж не найден"
	msgInvalidState       = "платёж не в ожидании подтверждения"
	msgSlotNotReserved    = "слот платежа уже освобождён"
)

type Handler struct {
	useCase       ConfirmPaymentUseCase
	providerToken string
	logger        Logger
}

// NewHandler создает handler вебхука провайдера.
// providerToken сверяется с заголовком X-Provider-Token.
func NewHandler(useCase ConfirmPaymentUseCase, providerToken string, logger Logger) *Handler {
	return &Handler{
		useCase:       useCase,
		providerToken: providerToken,
		logger:        logger,
	}
}

// Handle POST /api/v1/payments/confirm
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	if !h.authorized(r) {
		h.logger.Warn("POST /payments/confirm - Invalid provider token")
		handlers.RespondUnauthorized(w, "некорректный токен провайдера")
		return
	}

	var req ConfirmPaymentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /payments/confirm - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /payments/confirm - Invalid payment id %q: %v", req.PaymentID, err)
		handlers.RespondBadRequest(w, msgInvalidPaymentID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, confirmPayment.ErrPaymentNotFound):
			h.logger.Warn("POST /payments/confirm - Payment not found: payment_id=%s", req.PaymentID)
			handlers.RespondNotFound(w, msgPaymentNotFound)

		case errors.Is(err, confirmPayment.ErrInvalidState):
			h.logger.Warn("POST /payments/confirm - Payment not pending: payment_id=%s", req.PaymentID)
			handlers.RespondConflict(w, msgInvalidState)

		case errors.Is(err, confirmPayment.ErrSlotNotReserved):
			h.logger.Warn("POST /payments/confirm - Slot not reserved: payment_id=%s", req.PaymentID)
			handlers.RespondConflict(w, msgSlotNotReserved)

		default:
			h.logger.Error("POST /payments/confirm - Failed to confirm payment: payment_id=%s, error=%v",
				req.PaymentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}

func (h *Handler) authorized(r *http.Request) bool {
	token := r.Header.Get("X-Provider-Token")
	return subtle.ConstantTimeCompare([]byte(token), []byte(h.providerToken)) == 1
}
