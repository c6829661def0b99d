package book_slot

import "errors"

var (
	// ErrUserNotFound возвращается, когда пользователь не зарегистрирован
	ErrUserNotFound = errors.New("book_slot: user not found")

	// ErrUserInactive возвращается, когда пользователь деактивирован
	ErrUserInactive = errors.New("book_slot: user is inactive")

	// ErrSlotNotFound возвращается, когда слот не найден
	ErrSlotNotFound = errors.New("book_slot: slot not found")

	// ErrSlotUnavailable возвращается, когда слот отключен администратором
	ErrSlotUnavailable = errors.New("book_slot: slot is not available")

	// ErrSlotConflict возвращается, когда слот забрал конкурентный запрос
	ErrSlotConflict = errors.New("book_slot: slot was taken by a concurrent booking")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("book_slot: internal error")
)
