package booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking.repository: booking not found")

	// ErrStatusConflict возвращается, когда guarded update не затронул ни одной строки:
	// текущий статус бронирования не позволяет запрошенный переход
	ErrStatusConflict = errors.New("booking.repository: booking status does not allow this transition")

	// ErrSlotTaken возвращается при нарушении exclusion constraint на пересечение интервалов
	ErrSlotTaken = errors.New("booking.repository: slot is already taken")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("booking.repository: failed to scan row")
)
