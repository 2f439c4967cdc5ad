package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-StudioBookingService/internal/domain"
	availabilityRepo "github.com/m04kA/SMC-StudioBookingService/internal/infra/storage/availability"
	bookingRepo "github.com/m04kA/SMC-StudioBookingService/internal/infra/storage/booking"
	resourceRepo "github.com/m04kA/SMC-StudioBookingService/internal/infra/storage/resource"
	studioRepo "github.com/m04kA/SMC-StudioBookingService/internal/infra/storage/studio"
	"github.com/m04kA/SMC-StudioBookingService/pkg/ptr"
	"github.com/m04kA/SMC-StudioBookingService/pkg/types"
)

// UseCase use case для создания заявки на бронирование
type UseCase struct {
	bookingRepo      BookingRepository
	availabilityRepo AvailabilityRepository
	resourceRepo     ResourceRepository
	studioRepo       StudioRepository
	eventRepo        EventRepository
	txManager        TransactionManager
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	availabilityRepo AvailabilityRepository,
	resourceRepo ResourceRepository,
	studioRepo StudioRepository,
	eventRepo EventRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:      bookingRepo,
		availabilityRepo: availabilityRepo,
		resourceRepo:     resourceRepo,
		studioRepo:       studioRepo,
		eventRepo:        eventRepo,
		txManager:        txManager,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// Execute выполняет use case создания бронирования
// Использует сериализуемую транзакцию для предотвращения гонки данных:
// пересечение перепроверяется под блокировкой FOR UPDATE перед вставкой
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: user=%d, resource=%d, date=%s, time=%s-%s",
		req.UserID, req.ResourceID, req.Date.Format(domain.DateFormat), req.StartTime, req.EndTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Валидация временного диапазона
	duration, err := validateTimeRange(req.StartTime, req.EndTime)
	if err != nil {
		uc.logger.Warn("CreateBooking: time range validation failed: %v", err)
		return nil, err
	}

	// 3. Валидация даты
	now := uc.timeProvider.Now()
	if err := validateDate(req.Date, now); err != nil {
		uc.logger.Warn("CreateBooking: date validation failed: %v", err)
		return nil, err
	}

	// 4. Получаем ресурс
	resource, err := uc.resourceRepo.GetByID(ctx, req.ResourceID)
	if err != nil {
		if errors.Is(err, resourceRepo.ErrResourceNotFound) {
			uc.logger.Warn("CreateBooking: resource id=%d not found", req.ResourceID)
			return nil, ErrResourceNotFound
		}
		uc.logger.Error("CreateBooking: failed to get resource id=%d: %v", req.ResourceID, err)
		return nil, fmt.Errorf("%w: failed to get resource: %v", ErrInternal, err)
	}

	if !resource.IsActive {
		uc.logger.Warn("CreateBooking: resource id=%d is inactive", req.ResourceID)
		return nil, ErrResourceInactive
	}

	// 5. Студия должна принимать бронирования
	studio, err := uc.studioRepo.GetByID(ctx, resource.StudioID)
	if err != nil {
		if errors.Is(err, studioRepo.ErrStudioNotFound) {
			uc.logger.Warn("CreateBooking: studio id=%d not found", resource.StudioID)
			return nil, ErrStudioClosed
		}
		uc.logger.Error("CreateBooking: failed to get studio id=%d: %v", resource.StudioID, err)
		return nil, fmt.Errorf("%w: failed to get studio: %v", ErrInternal, err)
	}

	if !studio.AcceptsBookings() {
		uc.logger.Warn("CreateBooking: studio id=%d is not accepting bookings", studio.ID)
		return nil, ErrStudioClosed
	}

	// Переменная для хранения результата
	var result *domain.Booking

	// 6. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 6.1. Определяем рабочее окно дня: недельное расписание + исключение
		open, close, pricePerHour, err := uc.resolveWindow(txCtx, req, resource.BasePricePerHour)
		if err != nil {
			return err
		}

		// 6.2. Диапазон должен лежать внутри рабочего окна
		if err := validateWithinWindow(req.StartTime, req.EndTime, open, close); err != nil {
			uc.logger.Warn("CreateBooking: time %s-%s is outside window %s-%s",
				req.StartTime, req.EndTime, open, close)
			return err
		}

		// 6.3. Получаем активные бронирования на дату с блокировкой (FOR UPDATE)
		bookings, err := uc.bookingRepo.GetByResourceAndDate(txCtx, req.ResourceID, req.Date, true)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}

		// 6.4. Проверяем пересечение с активными бронированиями
		if hasOverlap(req.StartTime, req.EndTime, bookings) {
			uc.logger.Warn("CreateBooking: slot %s-%s is taken for resource=%d on %s",
				req.StartTime, req.EndTime, req.ResourceID, req.Date.Format(domain.DateFormat))
			return ErrSlotNotAvailable
		}

		// 6.5. Создаем заявку на бронирование
		// Стоимость равна сумме цен получасовых слотов диапазона
		booking := &domain.Booking{
			UserID:          req.UserID,
			ResourceID:      req.ResourceID,
			StudioID:        studio.ID,
			BookingDate:     req.Date,
			StartTime:       req.StartTime,
			EndTime:         req.EndTime,
			DurationMinutes: duration,
			Status:          domain.StatusPendingApproval,
			TotalAmount:     pricePerHour * float64(duration) / 60,
			Currency:        domain.DefaultCurrency,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			// Exclusion constraint в БД - последний рубеж против гонки
			if errors.Is(err, bookingRepo.ErrSlotTaken) {
				uc.logger.Warn("CreateBooking: slot taken (exclusion constraint) for resource=%d", req.ResourceID)
				return ErrSlotNotAvailable
			}
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		// 6.6. Пишем запись аудита в той же транзакции
		event := &domain.EventLog{
			UserID:      ptr.Ptr(created.UserID),
			BookingID:   ptr.Ptr(created.ID),
			StudioID:    ptr.Ptr(created.StudioID),
			EventType:   domain.EventBookingCreated,
			Description: ptr.Ptr(fmt.Sprintf("booking requested for %s %s-%s", created.BookingDate.Format(domain.DateFormat), created.StartTime, created.EndTime)),
		}
		if err := uc.eventRepo.Append(txCtx, event); err != nil {
			uc.logger.Error("CreateBooking: failed to append audit event: %v", err)
			return fmt.Errorf("%w: failed to append audit event: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d, total=%.2f %s",
		result.ID, result.TotalAmount, result.Currency)

	return &Response{
		ID:              result.ID,
		UserID:          result.UserID,
		ResourceID:      result.ResourceID,
		StudioID:        result.StudioID,
		BookingDate:     result.BookingDate,
		StartTime:       result.StartTime,
		EndTime:         result.EndTime,
		DurationMinutes: result.DurationMinutes,
		Status:          string(result.Status),
		TotalAmount:     result.TotalAmount,
		Currency:        result.Currency,
		CreatedAt:       result.CreatedAt,
		UpdatedAt:       result.UpdatedAt,
	}, nil
}

// resolveWindow определяет рабочее окно дня и цену за час
// Исключение на дату перекрывает недельное расписание: может закрыть день,
// сузить окно или переопределить цену
func (uc *UseCase) resolveWindow(ctx context.Context, req *Request, basePricePerHour float64) (open, close types.TimeString, pricePerHour float64, err error) {
	pricePerHour = basePricePerHour

	tmpl, err := uc.availabilityRepo.GetTemplateForWeekday(ctx, req.ResourceID, int(req.Date.Weekday()))
	if err != nil {
		if errors.Is(err, availabilityRepo.ErrTemplateNotFound) {
			uc.logger.Warn("CreateBooking: no schedule for resource=%d on weekday=%d", req.ResourceID, int(req.Date.Weekday()))
			return "", "", 0, ErrResourceClosed
		}
		uc.logger.Error("CreateBooking: failed to get template: %v", err)
		return "", "", 0, fmt.Errorf("%w: failed to get template: %v", ErrInternal, err)
	}

	if !tmpl.IsAvailable {
		return "", "", 0, ErrResourceClosed
	}

	open, close = tmpl.OpenTime, tmpl.CloseTime

	exc, err := uc.availabilityRepo.GetExceptionForDate(ctx, req.ResourceID, req.Date)
	if err != nil {
		if errors.Is(err, availabilityRepo.ErrExceptionNotFound) {
			return open, close, pricePerHour, nil
		}
		uc.logger.Error("CreateBooking: failed to get exception: %v", err)
		return "", "", 0, fmt.Errorf("%w: failed to get exception: %v", ErrInternal, err)
	}

	if !exc.IsAvailable {
		uc.logger.Info("CreateBooking: resource=%d is closed on %s by exception", req.ResourceID, req.Date.Format(domain.DateFormat))
		return "", "", 0, ErrResourceClosed
	}

	if exc.HasWindow() {
		open, close = *exc.StartTime, *exc.EndTime
	}
	if exc.OverridePrice != nil {
		pricePerHour = *exc.OverridePrice
	}

	return open, close, pricePerHour, nil
}
