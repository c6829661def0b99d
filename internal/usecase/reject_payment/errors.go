package reject_payment

import "errors"

var (
	// ErrPaymentNotFound возвращается, когда платёж не найден
	ErrPaymentNotFound = errors.New("reject_payment: payment not found")

	// ErrInvalidState возвращается, когда платёж не в статусе pending
	ErrInvalidState = errors.New("reject_payment: payment is not pending")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("reject_payment: internal error")
)
