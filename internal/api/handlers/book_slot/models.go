package book_slot

import (
	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
	bookSlot "github.com/m04kA/SMC-FieldBookingService/internal/usecase/book_slot"
)

// BookSlotRequest HTTP request model
type BookSlotRequest struct {
	SlotID int64 `json:"slotId"`
}

// BookSlotResponse HTTP response model
type BookSlotResponse struct {
	PaymentID string `json:"paymentId"`
	SlotID    int64  `json:"slotId"`
	Date      string `json:"date"`
	Window    string `json:"window"`
	Amount    int64  `json:"amount"`
	Status    string `json:"status"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *bookSlot.Response) *BookSlotResponse {
	return &BookSlotResponse{
		PaymentID: resp.PaymentID.String(),
		SlotID:    resp.SlotID,
		Date:      resp.Date.Format(domain.DateFormat),
		Window:    resp.Window.String(),
		Amount:    resp.Amount,
		Status:    string(resp.Status),
	}
}
