package slot

import "errors"

var (
	// ErrSlotNotFound возвращается, когда слот не найден
	ErrSlotNotFound = errors.New("slot.repository: slot not found")

	// ErrSlotConflict возвращается, когда резервирование проиграло гонку:
	// слот уже reserved или booked
	ErrSlotConflict = errors.New("slot.repository: slot already taken")

	// ErrSlotInactive возвращается при попытке резервировать отключенный слот
	ErrSlotInactive = errors.New("slot.repository: slot is inactive")

	// ErrSlotBooked возвращается при попытке переключить активность слота с бронью
	ErrSlotBooked = errors.New("slot.repository: slot has an active booking")

	// ErrInvalidTransition возвращается при недопустимом переходе состояния слота
	ErrInvalidTransition = errors.New("slot.repository: invalid slot state transition")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("slot.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("slot.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("slot.repository: failed to scan row")
)
