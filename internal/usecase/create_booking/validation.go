package create_booking

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-StudioBookingService/internal/domain"
	"github.com/m04kA/SMC-StudioBookingService/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.ResourceID <= 0 {
		return fmt.Errorf("%w: resourceID must be positive", ErrInvalidInput)
	}

	// Проверяем, что дата не является нулевой
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	if req.EndTime.IsZero() {
		return fmt.Errorf("%w: endTime is required", ErrInvalidInput)
	}
	if err := req.EndTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid endTime format: %v", ErrInvalidInput, err)
	}

	return nil
}

// validateTimeRange проверяет временной диапазон и возвращает длительность в минутах
// Длительность не меньше одного слота и кратна длительности слота
func validateTimeRange(start, end types.TimeString) (int, error) {
	if !start.IsBefore(end) {
		return 0, fmt.Errorf("%w: end time must be after start time", ErrInvalidTimeRange)
	}

	duration, err := start.MinutesUntil(end)
	if err != nil {
		return 0, fmt.Errorf("%w: failed to calculate duration: %v", ErrInternal, err)
	}

	if duration < domain.MinBookingDurationMinutes {
		return 0, fmt.Errorf("%w: duration must be at least %d minutes", ErrInvalidTimeRange, domain.MinBookingDurationMinutes)
	}
	if duration%domain.SlotDurationMinutes != 0 {
		return 0, fmt.Errorf("%w: duration must be a multiple of %d minutes", ErrInvalidTimeRange, domain.SlotDurationMinutes)
	}

	return duration, nil
}

// validateDate проверяет, что дата бронирования не в прошлом
func validateDate(bookingDate time.Time, now time.Time) error {
	if isDateInPast(bookingDate, now) {
		return ErrInvalidDate
	}
	return nil
}

// validateWithinWindow проверяет, что диапазон лежит внутри рабочего окна дня
func validateWithinWindow(start, end, open, close types.TimeString) error {
	if start.IsBefore(open) || end.IsAfter(close) {
		return ErrOutsideWorkingHours
	}
	return nil
}

// hasOverlap проверяет пересечение запрошенного диапазона с активными бронированиями
// Пересечение полуоткрытых интервалов: граничащие диапазоны не пересекаются
func hasOverlap(start, end types.TimeString, bookings []*domain.Booking) bool {
	for _, booking := range bookings {
		// Пропускаем бронирования, освобождающие слот
		if !booking.BlocksSlot() {
			continue
		}
		if booking.StartTime.IsBefore(end) && booking.EndTime.IsAfter(start) {
			return true
		}
	}
	return false
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	// Обнуляем время, чтобы сравнивать только даты
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
