package onboarding

import "errors"

var (
	// ErrSessionNotFound возвращается, когда сессия онбординга не найдена
	ErrSessionNotFound = errors.New("onboarding.repository: session not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("onboarding.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("onboarding.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("onboarding.repository: failed to scan row")
)
