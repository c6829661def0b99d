package confirm_payment

import (
	"github.com/google/uuid"

	confirmPayment "github.com/m04kA/SMC-FieldBookingService/internal/usecase/confirm_payment"
)

// ConfirmPaymentRequest HTTP request model (вебхук провайдера)
type ConfirmPaymentRequest struct {
	PaymentID   string  `json:"paymentId"`
	ExternalRef *string `json:"externalRef,omitempty"`
}

// ConfirmPaymentResponse HTTP response model
type ConfirmPaymentResponse struct {
	PaymentID string `json:"paymentId"`
	SlotID    int64  `json:"slotId"`
	Amount    int64  `json:"amount"`
	Status    string `json:"status"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *ConfirmPaymentRequest) ToUseCaseRequest() (*confirmPayment.Request, error) {
	paymentID, err := uuid.Parse(r.PaymentID)
	if err != nil {
		return nil, err
	}
	return &confirmPayment.Request{
		PaymentID:   paymentID,
		ExternalRef: r.ExternalRef,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *confirmPayment.Response) *ConfirmPaymentResponse {
	return &ConfirmPaymentResponse{
		PaymentID: resp.PaymentID.String(),
		SlotID:    resp.SlotID,
		Amount:    resp.Amount,
		Status:    string(resp.Status),
	}
}
