package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-StudioBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-StudioBookingService/internal/infra/storage/booking"
	studioRepo "github.com/m04kA/SMC-StudioBookingService/internal/infra/storage/studio"
	"github.com/m04kA/SMC-StudioBookingService/internal/integrations/paymentservice"
	"github.com/m04kA/SMC-StudioBookingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-StudioBookingService/pkg/ptr"
)

// Service сервис жизненного цикла бронирований
type Service struct {
	bookingRepo   BookingRepository
	studioRepo    StudioRepository
	eventRepo     EventRepository
	paymentClient PaymentServiceClient
	txManager     TransactionManager
	logger        Logger

	now func() time.Time
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	studioRepo StudioRepository,
	eventRepo EventRepository,
	paymentClient PaymentServiceClient,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:   bookingRepo,
		studioRepo:    studioRepo,
		eventRepo:     eventRepo,
		paymentClient: paymentClient,
		txManager:     txManager,
		logger:        logger,
		now:           time.Now,
	}
}

// GetByID получает бронирование по ID
// Доступно клиенту-владельцу бронирования, владельцу студии и администратору
func (s *Service) GetByID(ctx context.Context, id int64, actor domain.Actor) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, actor.UserID)

	booking, err := s.getBooking(ctx, id, "GetByID")
	if err != nil {
		return nil, err
	}

	if err := s.checkBookingReadAccess(ctx, booking, actor); err != nil {
		s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", actor.UserID, id)
		return nil, err
	}

	s.logger.Info("GetByID: successfully fetched booking id=%d", id)
	return models.FromDomainBooking(booking), nil
}

// GetUserBookings получает историю бронирований пользователя (новые первыми)
// Опционально фильтрует по статусу
func (s *Service) GetUserBookings(ctx context.Context, req *models.GetUserBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetUserBookings: fetching bookings for user=%d, status=%v", req.UserID, req.Status)

	// Конвертируем статус из строки в domain.BookingStatus
	var domainStatus *domain.BookingStatus
	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetUserBookings: invalid status=%s for user=%d", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	bookings, err := s.bookingRepo.GetByUserID(ctx, req.UserID, domainStatus)
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserBookings: successfully fetched %d bookings for user=%d", len(bookings), req.UserID)
	return models.FromDomainBookingList(bookings), nil
}

// GetStudioBookings получает бронирования по студиям владельца
// Владелец видит все свои студии, администратор - любую студию по studioId
// Заявки pending_approval сортируются старые-первыми (очередь на рассмотрение)
func (s *Service) GetStudioBookings(ctx context.Context, req *models.GetStudioBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetStudioBookings: fetching bookings for user=%d, studio=%v", req.Actor.UserID, req.StudioID)

	studioIDs, err := s.resolveStudioScope(ctx, req)
	if err != nil {
		return nil, err
	}
	if len(studioIDs) == 0 {
		s.logger.Info("GetStudioBookings: user=%d owns no studios", req.Actor.UserID)
		return models.FromDomainBookingList(nil), nil
	}

	filter := domain.StudioBookingsFilter{
		StudioIDs: studioIDs,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	}

	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetStudioBookings: invalid status=%s for user=%d", *req.Status, req.Actor.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		filter.Status = &status
	}

	bookings, err := s.bookingRepo.GetByStudios(ctx, filter)
	if err != nil {
		s.logger.Error("GetStudioBookings: repository error for user=%d: %v", req.Actor.UserID, err)
		return nil, fmt.Errorf("%w: GetStudioBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetStudioBookings: successfully fetched %d bookings for user=%d", len(bookings), req.Actor.UserID)
	return models.FromDomainBookingList(bookings), nil
}

// Approve переводит заявку pending_approval -> approved
// Доступно владельцу студии и администратору
func (s *Service) Approve(ctx context.Context, id int64, actor domain.Actor) (*models.BookingResponse, error) {
	s.logger.Info("Approve: approving booking id=%d by user=%d", id, actor.UserID)

	var approved *domain.Booking

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		booking, err := s.getBooking(ctx, id, "Approve")
		if err != nil {
			return err
		}

		if err := s.checkStudioManagerAccess(ctx, booking.StudioID, actor); err != nil {
			s.logger.Warn("Approve: access denied for user=%d to booking id=%d", actor.UserID, id)
			return err
		}

		// Guarded update: при гонке двух переходов побеждает ровно один
		if err := s.bookingRepo.Approve(ctx, id, actor.UserID); err != nil {
			return s.mapTransitionError("Approve", id, err)
		}

		if err := s.appendEvent(ctx, domain.EventBookingApproved, booking, actor,
			fmt.Sprintf("booking approved by user %d", actor.UserID)); err != nil {
			return err
		}

		approved, err = s.getBooking(ctx, id, "Approve")
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Approve: successfully approved booking id=%d", id)
	return models.FromDomainBooking(approved), nil
}

// Reject переводит заявку pending_approval -> rejected с указанием причины
// Доступно владельцу студии и администратору
func (s *Service) Reject(ctx context.Context, id int64, req *models.RejectBookingRequest) (*models.BookingResponse, error) {
	s.logger.Info("Reject: rejecting booking id=%d by user=%d", id, req.Actor.UserID)

	if err := validateReason(req.Reason); err != nil {
		s.logger.Warn("Reject: invalid reason for booking id=%d: %v", id, err)
		return nil, err
	}

	var rejected *domain.Booking

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		booking, err := s.getBooking(ctx, id, "Reject")
		if err != nil {
			return err
		}

		if err := s.checkStudioManagerAccess(ctx, booking.StudioID, req.Actor); err != nil {
			s.logger.Warn("Reject: access denied for user=%d to booking id=%d", req.Actor.UserID, id)
			return err
		}

		if err := s.bookingRepo.Reject(ctx, id, req.Reason); err != nil {
			return s.mapTransitionError("Reject", id, err)
		}

		if err := s.appendEvent(ctx, domain.EventBookingRejected, booking, req.Actor, req.Reason); err != nil {
			return err
		}

		rejected, err = s.getBooking(ctx, id, "Reject")
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Reject: successfully rejected booking id=%d", id)
	return models.FromDomainBooking(rejected), nil
}

// Cancel отменяет бронирование с расчетом возврата
// Доступно клиенту-владельцу бронирования и администратору
// Возврат: 80% при отмене более чем за 24 часа до начала, иначе 0%
func (s *Service) Cancel(ctx context.Context, id int64, req *models.CancelBookingRequest) (*models.CancelResult, error) {
	s.logger.Info("Cancel: cancelling booking id=%d by user=%d", id, req.Actor.UserID)

	if err := validateReason(req.Reason); err != nil {
		s.logger.Warn("Cancel: invalid reason for booking id=%d: %v", id, err)
		return nil, err
	}

	var result *models.CancelResult
	var cancelled *domain.Booking

	err := s.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		booking, err := s.getBooking(ctx, id, "Cancel")
		if err != nil {
			return err
		}

		// Отменить может только клиент-владелец бронирования или администратор
		if booking.UserID != req.Actor.UserID && !req.Actor.IsAdmin() {
			s.logger.Warn("Cancel: access denied for user=%d to booking id=%d", req.Actor.UserID, id)
			return ErrAccessDenied
		}

		if !booking.CanBeCancelled() {
			s.logger.Warn("Cancel: booking id=%d cannot be cancelled, status=%s", id, booking.Status)
			return ErrCannotCancel
		}

		refundPct, refundAmount, err := s.calculateRefund(booking)
		if err != nil {
			s.logger.Error("Cancel: failed to calculate refund for booking id=%d: %v", id, err)
			return fmt.Errorf("%w: Cancel - calculate refund: %v", ErrInternal, err)
		}

		if err := s.bookingRepo.Cancel(ctx, id, req.Reason, refundPct, refundAmount); err != nil {
			if errors.Is(err, bookingRepo.ErrStatusConflict) {
				return ErrCannotCancel
			}
			return s.mapTransitionError("Cancel", id, err)
		}

		if err := s.appendEvent(ctx, domain.EventBookingCancelled, booking, req.Actor,
			fmt.Sprintf("booking cancelled, refund %.0f%%: %s", refundPct, req.Reason)); err != nil {
			return err
		}

		cancelled = booking
		result = &models.CancelResult{
			BookingID:        id,
			Status:           string(domain.StatusCancelled),
			RefundPercentage: refundPct,
			RefundAmount:     refundAmount,
			Currency:         booking.Currency,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Возврат запрашиваем после фиксации транзакции: недоступность платежного
	// сервиса не откатывает отмену, хвост дообрабатывается по журналу событий
	if result.RefundAmount > 0 {
		s.requestRefund(ctx, cancelled, result, req.Reason)
	}

	s.logger.Info("Cancel: successfully cancelled booking id=%d, refund=%.2f %s",
		id, result.RefundAmount, result.Currency)
	return result, nil
}

// Confirm переводит бронирование approved -> confirmed (оплата получена)
// Доступно клиенту-владельцу бронирования, владельцу студии и администратору
func (s *Service) Confirm(ctx context.Context, id int64, actor domain.Actor) (*models.BookingResponse, error) {
	s.logger.Info("Confirm: confirming booking id=%d by user=%d", id, actor.UserID)

	return s.transition(ctx, id, "Confirm", func(ctx context.Context, booking *domain.Booking) error {
		if err := s.checkBookingReadAccess(ctx, booking, actor); err != nil {
			s.logger.Warn("Confirm: access denied for user=%d to booking id=%d", actor.UserID, id)
			return err
		}
		return s.bookingRepo.Confirm(ctx, id)
	})
}

// CheckIn переводит бронирование confirmed -> checked_in (клиент пришел в студию)
// Доступно владельцу студии и администратору
func (s *Service) CheckIn(ctx context.Context, id int64, actor domain.Actor) (*models.BookingResponse, error) {
	s.logger.Info("CheckIn: checking in booking id=%d by user=%d", id, actor.UserID)

	return s.transition(ctx, id, "CheckIn", func(ctx context.Context, booking *domain.Booking) error {
		if err := s.checkStudioManagerAccess(ctx, booking.StudioID, actor); err != nil {
			s.logger.Warn("CheckIn: access denied for user=%d to booking id=%d", actor.UserID, id)
			return err
		}
		return s.bookingRepo.CheckIn(ctx, id)
	})
}

// Complete переводит бронирование confirmed|checked_in -> completed
// Доступно владельцу студии и администратору
func (s *Service) Complete(ctx context.Context, id int64, actor domain.Actor) (*models.BookingResponse, error) {
	s.logger.Info("Complete: completing booking id=%d by user=%d", id, actor.UserID)

	var completed *models.BookingResponse

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		booking, err := s.getBooking(ctx, id, "Complete")
		if err != nil {
			return err
		}

		if err := s.checkStudioManagerAccess(ctx, booking.StudioID, actor); err != nil {
			s.logger.Warn("Complete: access denied for user=%d to booking id=%d", actor.UserID, id)
			return err
		}

		if err := s.bookingRepo.Complete(ctx, id); err != nil {
			return s.mapTransitionError("Complete", id, err)
		}

		if err := s.appendEvent(ctx, domain.EventBookingCompleted, booking, actor,
			"booking completed"); err != nil {
			return err
		}

		updated, err := s.getBooking(ctx, id, "Complete")
		if err != nil {
			return err
		}
		completed = models.FromDomainBooking(updated)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Complete: successfully completed booking id=%d", id)
	return completed, nil
}

// Вспомогательные методы

// transition выполняет переход статуса без дополнительных полей в транзакции
func (s *Service) transition(ctx context.Context, id int64, op string, do func(ctx context.Context, booking *domain.Booking) error) (*models.BookingResponse, error) {
	var updated *domain.Booking

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		booking, err := s.getBooking(ctx, id, op)
		if err != nil {
			return err
		}

		if err := do(ctx, booking); err != nil {
			return s.mapTransitionError(op, id, err)
		}

		updated, err = s.getBooking(ctx, id, op)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("%s: successfully updated booking id=%d to status=%s", op, id, updated.Status)
	return models.FromDomainBooking(updated), nil
}

// calculateRefund рассчитывает процент и сумму возврата по времени до начала
func (s *Service) calculateRefund(booking *domain.Booking) (pct float64, amount float64, err error) {
	startsAt, err := booking.StartsAt()
	if err != nil {
		return 0, 0, err
	}

	hoursUntilStart := startsAt.Sub(s.now()).Hours()
	if hoursUntilStart >= domain.RefundCutoffHours {
		pct = domain.RefundPercentBeforeCutoff
	} else {
		pct = domain.RefundPercentAfterCutoff
	}

	amount = booking.TotalAmount * pct / 100
	return pct, amount, nil
}

// requestRefund запрашивает возврат средств, не влияя на результат отмены
func (s *Service) requestRefund(ctx context.Context, booking *domain.Booking, result *models.CancelResult, reason string) {
	_, err := s.paymentClient.RequestRefundWithGracefulDegradation(ctx, paymentservice.RefundRequest{
		BookingID: booking.ID,
		UserID:    booking.UserID,
		Amount:    result.RefundAmount,
		Currency:  result.Currency,
		Reason:    reason,
	})
	if err != nil {
		// Отмена уже зафиксирована, возврат дообрабатывается вручную
		s.logger.Error("requestRefund: refund request failed for booking id=%d: %v", booking.ID, err)
	}
}

// getBooking получает бронирование, маппит ошибки репозитория на ошибки сервиса
func (s *Service) getBooking(ctx context.Context, id int64, op string) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%d not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return booking, nil
}

// mapTransitionError маппит ошибки guarded update на ошибки сервиса
func (s *Service) mapTransitionError(op string, id int64, err error) error {
	if errors.Is(err, bookingRepo.ErrBookingNotFound) {
		s.logger.Warn("%s: booking id=%d not found during transition", op, id)
		return ErrBookingNotFound
	}
	if errors.Is(err, bookingRepo.ErrStatusConflict) {
		s.logger.Warn("%s: invalid transition for booking id=%d", op, id)
		return ErrInvalidTransition
	}
	if errors.Is(err, ErrAccessDenied) || errors.Is(err, ErrStudioNotFound) {
		return err
	}
	s.logger.Error("%s: repository error for booking id=%d: %v", op, id, err)
	return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
}

// appendEvent пишет запись аудита в рамках текущей транзакции
func (s *Service) appendEvent(ctx context.Context, eventType domain.EventType, booking *domain.Booking, actor domain.Actor, description string) error {
	event := &domain.EventLog{
		UserID:      ptr.Ptr(actor.UserID),
		BookingID:   ptr.Ptr(booking.ID),
		StudioID:    ptr.Ptr(booking.StudioID),
		EventType:   eventType,
		Description: ptr.Ptr(description),
	}

	if err := s.eventRepo.Append(ctx, event); err != nil {
		s.logger.Error("appendEvent: failed to append %s for booking id=%d: %v", eventType, booking.ID, err)
		return fmt.Errorf("%w: append event: %v", ErrInternal, err)
	}
	return nil
}

// checkBookingReadAccess проверяет доступ к бронированию на чтение
// Разрешено клиенту-владельцу, администратору и владельцу студии
func (s *Service) checkBookingReadAccess(ctx context.Context, booking *domain.Booking, actor domain.Actor) error {
	if booking.UserID == actor.UserID || actor.IsAdmin() {
		return nil
	}
	return s.checkStudioManagerAccess(ctx, booking.StudioID, actor)
}

// checkStudioManagerAccess проверяет, что пользователь управляет студией
// (владелец студии или администратор)
func (s *Service) checkStudioManagerAccess(ctx context.Context, studioID int64, actor domain.Actor) error {
	if actor.IsAdmin() {
		return nil
	}

	studio, err := s.studioRepo.GetByID(ctx, studioID)
	if err != nil {
		if errors.Is(err, studioRepo.ErrStudioNotFound) {
			s.logger.Warn("checkStudioManagerAccess: studio id=%d not found", studioID)
			return ErrStudioNotFound
		}
		s.logger.Error("checkStudioManagerAccess: failed to get studio id=%d: %v", studioID, err)
		return fmt.Errorf("%w: checkStudioManagerAccess - failed to get studio: %v", ErrInternal, err)
	}

	if studio.OwnerID != actor.UserID {
		s.logger.Warn("checkStudioManagerAccess: user=%d is not the owner of studio=%d", actor.UserID, studioID)
		return ErrAccessDenied
	}

	return nil
}

// resolveStudioScope определяет список студий для выборки бронирований
func (s *Service) resolveStudioScope(ctx context.Context, req *models.GetStudioBookingsRequest) ([]int64, error) {
	if req.Actor.IsAdmin() {
		// Администратору нужна конкретная студия
		if req.StudioID == nil {
			s.logger.Warn("resolveStudioScope: admin user=%d did not specify studio", req.Actor.UserID)
			return nil, fmt.Errorf("%w: studioId is required", ErrInvalidInput)
		}
		return []int64{*req.StudioID}, nil
	}

	ownedIDs, err := s.studioRepo.GetOwnedStudioIDs(ctx, req.Actor.UserID)
	if err != nil {
		s.logger.Error("resolveStudioScope: failed to get studios for user=%d: %v", req.Actor.UserID, err)
		return nil, fmt.Errorf("%w: resolveStudioScope - failed to get studios: %v", ErrInternal, err)
	}

	if req.StudioID == nil {
		return ownedIDs, nil
	}

	// Запрошена конкретная студия - она должна принадлежать владельцу
	for _, id := range ownedIDs {
		if id == *req.StudioID {
			return []int64{id}, nil
		}
	}

	s.logger.Warn("resolveStudioScope: user=%d does not own studio=%d", req.Actor.UserID, *req.StudioID)
	return nil, ErrAccessDenied
}

// validateReason проверяет длину причины отмены/отклонения
func validateReason(reason string) error {
	if len(reason) < domain.MinReasonLength {
		return ErrReasonTooShort
	}
	if len(reason) > domain.MaxReasonLength {
		return fmt.Errorf("%w: reason is too long", ErrInvalidInput)
	}
	return nil
}
