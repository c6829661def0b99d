package reject_payment

import (
	"context"

	rejectPayment "github.com/m04kA/SMC-FieldBookingService/internal/usecase/reject_payment"
)

type RejectPaymentUseCase interface {
	Execute(ctx context.Context, req *rejectPayment.Request) (*rejectPayment.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
