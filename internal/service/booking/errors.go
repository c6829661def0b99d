package booking

import "errors"

var (
	// ErrSlotNotFound возвращается, когда слот не найден
	ErrSlotNotFound = errors.New("slot not found")

	// ErrSlotUnavailable возвращается, когда слот отключен администратором
	// и не принимает резервирования
	ErrSlotUnavailable = errors.New("slot is not available for booking")

	// ErrSlotConflict возвращается, когда резервирование проиграло гонку
	// конкурентному бронированию того же слота
	ErrSlotConflict = errors.New("slot was taken by a concurrent booking")

	// ErrInvalidTransition возвращается при недопустимом переходе состояния:
	// вызывающий смотрит на устаревшую картину и должен обновить её
	ErrInvalidTransition = errors.New("invalid slot state transition")

	// ErrCannotToggleBookedSlot возвращается при попытке (де)активировать
	// слот с привязанной бронью
	ErrCannotToggleBookedSlot = errors.New("cannot toggle a slot with an active booking")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("booking service: internal error")
)
