package create_booking

import "errors"

var (
	// ErrResourceNotFound возвращается, когда ресурс не найден
	ErrResourceNotFound = errors.New("create_booking: resource not found")

	// ErrResourceInactive возвращается, когда ресурс деактивирован
	ErrResourceInactive = errors.New("create_booking: resource is inactive")

	// ErrStudioClosed возвращается, когда студия не принимает бронирования
	// (деактивирована или не опубликована)
	ErrStudioClosed = errors.New("create_booking: studio is not accepting bookings")

	// ErrResourceClosed возвращается, когда ресурс закрыт в указанную дату
	ErrResourceClosed = errors.New("create_booking: resource is closed on this date")

	// ErrOutsideWorkingHours возвращается, когда запрошенное время выходит за рабочее окно дня
	ErrOutsideWorkingHours = errors.New("create_booking: requested time is outside working hours")

	// ErrInvalidDate возвращается при некорректной дате бронирования
	ErrInvalidDate = errors.New("create_booking: invalid booking date")

	// ErrInvalidTimeRange возвращается при некорректном временном диапазоне
	// (конец не позже начала, длительность меньше слота или не кратна слоту)
	ErrInvalidTimeRange = errors.New("create_booking: invalid time range")

	// ErrSlotNotAvailable возвращается, когда запрошенное время пересекается с активным бронированием
	ErrSlotNotAvailable = errors.New("create_booking: slot is not available")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
