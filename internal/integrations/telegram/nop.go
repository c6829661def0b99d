package telegram

import (
	"context"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
)

// Notifier отправляет текстовые уведомления пользователям
type Notifier interface {
	SendText(ctx context.Context, userID int64, text string) error
}

// InvoiceOpener выставляет счёт на оплату брони
type InvoiceOpener interface {
	OpenInvoice(ctx context.Context, userID int64, paymentID string, slot *domain.Slot, amount int64) error
}

// NopClient заглушка для окружений без telegram: уведомления и
// инвойсы молча пропускаются
type NopClient struct{}

func (NopClient) SendText(_ context.Context, _ int64, _ string) error {
	return nil
}

func (NopClient) OpenInvoice(_ context.Context, _ int64, _ string, _ *domain.Slot, _ int64) error {
	return nil
}
