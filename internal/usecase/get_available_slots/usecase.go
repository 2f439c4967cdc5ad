package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-StudioBookingService/internal/domain"
	availabilityRepo "github.com/m04kA/SMC-StudioBookingService/internal/infra/storage/availability"
	resourceRepo "github.com/m04kA/SMC-StudioBookingService/internal/infra/storage/resource"
)

// UseCase use case для расчёта доступных слотов ресурса на дату
type UseCase struct {
	bookingRepo      BookingRepository
	availabilityRepo AvailabilityRepository
	resourceRepo     ResourceRepository
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	availabilityRepo AvailabilityRepository,
	resourceRepo ResourceRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:      bookingRepo,
		availabilityRepo: availabilityRepo,
		resourceRepo:     resourceRepo,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// Execute выполняет use case расчёта слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: resource=%d, date=%s",
		req.ResourceID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Валидация даты
	now := uc.timeProvider.Now()
	if err := validateDate(req.Date, now); err != nil {
		uc.logger.Warn("GetAvailableSlots: date validation failed: %v", err)
		return nil, err
	}

	// 3. Получаем ресурс
	resource, err := uc.resourceRepo.GetByID(ctx, req.ResourceID)
	if err != nil {
		if errors.Is(err, resourceRepo.ErrResourceNotFound) {
			uc.logger.Warn("GetAvailableSlots: resource id=%d not found", req.ResourceID)
			return nil, ErrResourceNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get resource id=%d: %v", req.ResourceID, err)
		return nil, fmt.Errorf("%w: failed to get resource: %v", ErrInternal, err)
	}

	if !resource.IsActive {
		uc.logger.Warn("GetAvailableSlots: resource id=%d is inactive", req.ResourceID)
		return nil, ErrResourceInactive
	}

	// 4. Получаем запись недельного расписания на день недели
	// 0 = воскресенье, как в time.Weekday
	tmpl, err := uc.getTemplate(ctx, req.ResourceID, int(req.Date.Weekday()))
	if err != nil {
		return nil, err
	}

	// 5. Получаем исключение на дату, если есть
	exc, err := uc.getException(ctx, req.ResourceID, req.Date)
	if err != nil {
		return nil, err
	}

	// 6. Определяем рабочее окно дня и разбиваем его на получасовые слоты
	window := resolveDayWindow(tmpl, exc, resource.BasePricePerHour)
	slots, err := generateSlots(window)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to generate slots: %v", err)
		return nil, fmt.Errorf("%w: failed to generate slots: %v", ErrInternal, err)
	}

	// 7. Помечаем занятые слоты по активным бронированиям
	if len(slots) > 0 {
		bookings, err := uc.bookingRepo.GetByResourceAndDate(ctx, req.ResourceID, req.Date, true)
		if err != nil {
			uc.logger.Error("GetAvailableSlots: failed to get bookings: %v", err)
			return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}
		markOccupiedSlots(slots, bookings)
	}

	uc.logger.Info("GetAvailableSlots: generated %d slots for resource=%d, date=%s",
		len(slots), req.ResourceID, req.Date.Format(domain.DateFormat))

	return &Response{
		Date:       req.Date,
		ResourceID: req.ResourceID,
		Currency:   domain.DefaultCurrency,
		Slots:      slots,
	}, nil
}

// getTemplate получает запись расписания, отсутствие записи - не ошибка (день закрыт)
func (uc *UseCase) getTemplate(ctx context.Context, resourceID int64, dayOfWeek int) (*domain.AvailabilityTemplate, error) {
	tmpl, err := uc.availabilityRepo.GetTemplateForWeekday(ctx, resourceID, dayOfWeek)
	if err != nil {
		if errors.Is(err, availabilityRepo.ErrTemplateNotFound) {
			return nil, nil
		}
		uc.logger.Error("GetAvailableSlots: failed to get template for resource=%d: %v", resourceID, err)
		return nil, fmt.Errorf("%w: failed to get template: %v", ErrInternal, err)
	}
	return tmpl, nil
}

// getException получает исключение на дату, отсутствие исключения - не ошибка
func (uc *UseCase) getException(ctx context.Context, resourceID int64, date time.Time) (*domain.AvailabilityException, error) {
	exc, err := uc.availabilityRepo.GetExceptionForDate(ctx, resourceID, date)
	if err != nil {
		if errors.Is(err, availabilityRepo.ErrExceptionNotFound) {
			return nil, nil
		}
		uc.logger.Error("GetAvailableSlots: failed to get exception for resource=%d: %v", resourceID, err)
		return nil, fmt.Errorf("%w: failed to get exception: %v", ErrInternal, err)
	}
	return exc, nil
}
