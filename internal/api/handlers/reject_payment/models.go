package reject_payment

import (
	"github.com/google/uuid"

	rejectPayment "github.com/m04kA/SMC-FieldBookingService/internal/usecase/reject_payment"
)

// RejectPaymentRequest HTTP request model (вебхук провайдера)
type RejectPaymentRequest struct {
	PaymentID string `json:"paymentId"`
	Reason    string `json:"reason,omitempty"`
}

// RejectPaymentResponse HTTP response model
type RejectPaymentResponse struct {
	PaymentID string `json:"paymentId"`
	SlotID    int64  `json:"slotId"`
	Status    string `json:"status"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *RejectPaymentRequest) ToUseCaseRequest() (*rejectPayment.Request, error) {
	paymentID, err := uuid.Parse(r.PaymentID)
	if err != nil {
		return nil, err
	}
	return &rejectPayment.Request{
		PaymentID: paymentID,
		Reason:    r.Reason,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *rejectPayment.Response) *RejectPaymentResponse {
	return &RejectPaymentResponse{
		PaymentID: resp.PaymentID.String(),
		SlotID:    resp.SlotID,
		Status:    string(resp.Status),
	}
}
