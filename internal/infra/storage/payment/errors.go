package payment

import "errors"

var (
	// ErrPaymentNotFound возвращается, когда платёж не найден
	ErrPaymentNotFound = errors.New("payment.repository: payment not found")

	// ErrInvalidState возвращается, когда guarded-переход статуса не прошёл:
	// платёж существует, но находится не в ожидаемом статусе
	ErrInvalidState = errors.New("payment.repository: payment is not in the expected state")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("payment.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("payment.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("payment.repository: failed to scan row")
)
