package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-StudioBookingService/internal/domain"
	"github.com/m04kA/SMC-StudioBookingService/pkg/types"
)

// dayWindow рабочее окно дня после наложения исключения на недельное расписание
type dayWindow struct {
	isOpen       bool
	openTime     types.TimeString
	closeTime    types.TimeString
	pricePerHour float64
}

// resolveDayWindow накладывает исключение на запись недельного расписания
// Исключение может закрыть день, сузить окно или переопределить цену за час
func resolveDayWindow(tmpl *domain.AvailabilityTemplate, exc *domain.AvailabilityException, basePricePerHour float64) dayWindow {
	window := dayWindow{pricePerHour: basePricePerHour}

	if tmpl == nil || !tmpl.IsAvailable {
		return window
	}

	window.isOpen = true
	window.openTime = tmpl.OpenTime
	window.closeTime = tmpl.CloseTime

	if exc == nil {
		return window
	}

	if !exc.IsAvailable {
		window.isOpen = false
		return window
	}

	if exc.HasWindow() {
		window.openTime = *exc.StartTime
		window.closeTime = *exc.EndTime
	}
	if exc.OverridePrice != nil {
		window.pricePerHour = *exc.OverridePrice
	}

	return window
}

// generateSlots разбивает рабочее окно на получасовые слоты
// Неполный хвостовой слот отбрасывается
func generateSlots(window dayWindow) ([]Slot, error) {
	if !window.isOpen {
		return []Slot{}, nil
	}

	slotPrice := window.pricePerHour / 2

	slots := make([]Slot, 0)
	currentStart := window.openTime

	for currentStart.IsBefore(window.closeTime) {
		slotEnd, err := currentStart.AddMinutes(domain.SlotDurationMinutes)
		if err != nil {
			return nil, err
		}
		// Слот не должен выходить за время закрытия
		if slotEnd.IsAfter(window.closeTime) {
			break
		}

		slots = append(slots, Slot{
			StartTime:   currentStart,
			EndTime:     slotEnd,
			Price:       slotPrice,
			IsAvailable: true,
		})

		currentStart = slotEnd
	}

	return slots, nil
}

// markOccupiedSlots помечает занятыми слоты, пересекающиеся с активными бронированиями
//
// Пересечение полуоткрытых интервалов: бронирование занимает слот, только если
// начало бронирования СТРОГО раньше конца слота И конец бронирования СТРОГО
// позже начала слота. Граничащие интервалы пересечением не считаются:
// - Слот 11:30-12:00, бронирование 11:00-11:30 → слот свободен
// - Слот 11:30-12:00, бронирование 11:20-11:40 → слот занят
func markOccupiedSlots(slots []Slot, bookings []*domain.Booking) {
	for i := range slots {
		for _, booking := range bookings {
			if !booking.BlocksSlot() {
				continue
			}
			if booking.StartTime.IsBefore(slots[i].EndTime) && booking.EndTime.IsAfter(slots[i].StartTime) {
				slots[i].IsAvailable = false
				break
			}
		}
	}
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	// Обнуляем время, чтобы сравнивать только даты
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
