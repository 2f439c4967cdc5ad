package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-StudioBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-StudioBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-StudioBookingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidTimeFormat   = "некорректный формат даты или времени"
	msgResourceNotFound    = "ресурс не найден"
	msgResourceInactive    = "ресурс недоступен для бронирования"
	msgStudioClosed        = "студия не принимает бронирования"
	msgResourceClosed      = "ресурс не работает в выбранный день"
	msgOutsideWorkingHours = "запрошенное время выходит за рамки рабочих часов"
	msgInvalidDate         = "нельзя забронировать дату в прошлом"
	msgInvalidTimeRange    = "некорректный временной интервал"
	msgSlotNotAvailable    = "выбранное время уже занято"
	msgInvalidInput        = "некорректные параметры запроса"
)

type Handler struct {
	useCase UseCase
	logger  Logger
}

func NewHandler(useCase UseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	ucReq, err := req.ToUseCaseRequest(actor.UserID)
	if err != nil {
		h.logger.Warn("POST /bookings - Invalid date or time format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTimeFormat)
		return
	}

	result, err := h.useCase.Execute(r.Context(), ucReq)
	if err != nil {
		switch {
		case errors.Is(err, create_booking.ErrResourceNotFound):
			h.logger.Warn("POST /bookings - Resource not found: resource_id=%d", req.ResourceID)
			handlers.RespondNotFound(w, msgResourceNotFound)

		case errors.Is(err, create_booking.ErrResourceInactive):
			h.logger.Warn("POST /bookings - Resource inactive: resource_id=%d", req.ResourceID)
			handlers.RespondConflict(w, msgResourceInactive)

		case errors.Is(err, create_booking.ErrStudioClosed):
			h.logger.Warn("POST /bookings - Studio closed: resource_id=%d", req.ResourceID)
			handlers.RespondConflict(w, msgStudioClosed)

		case errors.Is(err, create_booking.ErrResourceClosed):
			h.logger.Warn("POST /bookings - Resource closed on date: resource_id=%d, date=%s", req.ResourceID, req.Date)
			handlers.RespondConflict(w, msgResourceClosed)

		case errors.Is(err, create_booking.ErrOutsideWorkingHours):
			h.logger.Warn("POST /bookings - Outside working hours: resource_id=%d, start=%s, end=%s", req.ResourceID, req.StartTime, req.EndTime)
			handlers.RespondConflict(w, msgOutsideWorkingHours)

		case errors.Is(err, create_booking.ErrInvalidDate):
			h.logger.Warn("POST /bookings - Invalid date: date=%s", req.Date)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, create_booking.ErrInvalidTimeRange):
			h.logger.Warn("POST /bookings - Invalid time range: start=%s, end=%s", req.StartTime, req.EndTime)
			handlers.RespondBadRequest(w, msgInvalidTimeRange)

		case errors.Is(err, create_booking.ErrSlotNotAvailable):
			h.logger.Warn("POST /bookings - Slot not available: resource_id=%d, date=%s, start=%s", req.ResourceID, req.Date, req.StartTime)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, create_booking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: user_id=%d, error=%v", actor.UserID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, user_id=%d", result.ID, actor.UserID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
