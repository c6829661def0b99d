package catalog

import "errors"

var (
	// ErrInvalidRange возвращается при некорректном диапазоне дат
	ErrInvalidRange = errors.New("catalog: invalid date range")

	// ErrInvalidWindow возвращается при некорректном временном окне
	ErrInvalidWindow = errors.New("catalog: invalid time window")

	// ErrInvalidCost возвращается при неположительной цене
	ErrInvalidCost = errors.New("catalog: cost must be positive")

	// ErrRateNotFound возвращается, когда для категории нет тарифа
	ErrRateNotFound = errors.New("catalog: category rate not found")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("catalog: internal error")
)
