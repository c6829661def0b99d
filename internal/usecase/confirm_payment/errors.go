package confirm_payment

import "errors"

var (
	// ErrPaymentNotFound возвращается, когда платёж не найден
	ErrPaymentNotFound = errors.New("confirm_payment: payment not found")

	// ErrInvalidState возвращается, когда платёж не в статусе pending:
	// повторный вебхук провайдера или гонка с отклонением
	ErrInvalidState = errors.New("confirm_payment: payment is not pending")

	// ErrSlotNotReserved возвращается, когда слот платежа вышел из reserved:
	// подтверждение отменяется целиком
	ErrSlotNotReserved = errors.New("confirm_payment: slot is no longer reserved")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("confirm_payment: internal error")
)
