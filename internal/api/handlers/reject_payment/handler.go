package reject_payment

import (
	"crypto/subtle"
	"errors"
	"net/http"

	"github.com/m04kA/SMC-FieldBookingService/internal/api/handlers"
	rejectPayment "github.com/m04kA/SMC-FieldBookingService/internal/usecase/reject_payment"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidPaymentID   = "некорректный идентификатор платежа"
	msgPaymentNotFound    = "платёж не найден"
	msgInvalidState       = "платёж не в ожидании подтверждения"
)

type Handler struct {
	useCase       RejectPaymentUseCase
	providerToken string
	logger        Logger
}

// NewHandler создает handler вебхука отказа провайдера
func NewHandler(useCase RejectPaymentUseCase, providerToken string, logger Logger) *Handler {
	return &Handler{
		useCase:       useCase,
		providerToken: providerToken,
		logger:        logger,
	}
}

// Handle POST /api/v1/payments/reject
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	token := r.Header.Get("X-Provider-Token")
	if subtle.ConstantTimeCompare([]byte(token), []byte(h.providerToken)) != 1 {
		h.logger.Warn("POST /payments/reject - Invalid provider token")
		handlers.RespondUnauthorized(w, "некорректный токен провайдера")
		return
	}

	var req RejectPaymentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /payments/reject - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /payments/reject - Invalid payment id %q: %v", req.PaymentID, err)
		handlers.RespondBadRequest(w, msgInvalidPaymentID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, rejectPayment.ErrPaymentNotFound):
			h.logger.Warn("POST /payments/reject - Payment not found: payment_id=%s", req.PaymentID)
			handlers.RespondNotFound(w, msgPaymentNotFound)

		case errors.Is(err, rejectPayment.ErrInvalidState):
			h.logger.Warn("POST /payments/reject - Payment not pending: payment_id=%s", req.PaymentID)
			handlers.RespondConflict(w, msgInvalidState)

		default:
			h.logger.Error("POST /payments/reject - Failed to reject payment: payment_id=%s, error=%v",
				req.PaymentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
