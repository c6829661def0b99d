package telegram

import "errors"

var (
	// ErrSendFailed возвращается, когда telegram не принял сообщение
	ErrSendFailed = errors.New("telegram: failed to send message")

	// ErrInvoiceFailed возвращается, когда telegram не принял инвойс
	ErrInvoiceFailed = errors.New("telegram: failed to send invoice")
)
