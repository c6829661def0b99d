package onboarding

import "errors"

var (
	// ErrSessionNotFound возвращается, когда у пользователя нет активной сессии
	ErrSessionNotFound = errors.New("onboarding: session not found")

	// ErrAlreadyRegistered возвращается при попытке начать онбординг
	// уже зарегистрированным пользователем
	ErrAlreadyRegistered = errors.New("onboarding: user already registered")

	// ErrValidationFailed возвращается при некорректном вводе текущего шага;
	// шаг при этом не меняется
	ErrValidationFailed = errors.New("onboarding: validation failed")

	// ErrUnexpectedStep возвращается, когда сессия в несогласованном состоянии
	ErrUnexpectedStep = errors.New("onboarding: unexpected step")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("onboarding: internal error")
)
