package refund_payment

import "errors"

var (
	// ErrOperatorNotFound возвращается, когда инициатор не зарегистрирован
	ErrOperatorNotFound = errors.New("refund_payment: operator not found")

	// ErrNotOperator возвращается, когда инициатор не имеет роли оператора
	ErrNotOperator = errors.New("refund_payment: caller is not an operator")

	// ErrPaymentNotFound возвращается, когда платёж не найден
	ErrPaymentNotFound = errors.New("refund_payment: payment not found")

	// ErrInvalidState возвращается, когда платёж не в статусе verified:
	// возвращать можно только подтверждённые платежи
	ErrInvalidState = errors.New("refund_payment: payment is not verified")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("refund_payment: internal error")
)
