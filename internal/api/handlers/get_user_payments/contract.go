package get_user_payments

import (
	"context"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
)

type PaymentLister interface {
	ListPaymentsForUser(ctx context.Context, userID int64, page, pageSize int) ([]*domain.Payment, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
