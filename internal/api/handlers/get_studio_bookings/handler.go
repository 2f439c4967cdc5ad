package get_studio_bookings

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/m04kA/SMC-StudioBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-StudioBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-StudioBookingService/internal/domain"
	"github.com/m04kA/SMC-StudioBookingService/internal/service/bookings"
	"github.com/m04kA/SMC-StudioBookingService/internal/service/bookings/models"
)

const (
	msgInvalidStudioID = "некорректный ID студии"
	msgInvalidDate     = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidFilter   = "некорректные параметры фильтра"
	msgAccessDenied    = "нет доступа к бронированиям студии"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/owner/bookings?studioId=&status=&startDate=&endDate=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())

	req := &models.GetStudioBookingsRequest{
		Actor: actor,
	}

	query := r.URL.Query()

	if studioParam := query.Get("studioId"); studioParam != "" {
		studioID, err := strconv.ParseInt(studioParam, 10, 64)
		if err != nil {
			h.logger.Warn("GET /owner/bookings - Invalid studio ID: %s", studioParam)
			handlers.RespondBadRequest(w, msgInvalidStudioID)
			return
		}
		req.StudioID = &studioID
	}

	if status := query.Get("status"); status != "" {
		req.Status = &status
	}

	if startParam := query.Get("startDate"); startParam != "" {
		startDate, err := time.Parse(domain.DateFormat, startParam)
		if err != nil {
			h.logger.Warn("GET /owner/bookings - Invalid start date: %s", startParam)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		req.StartDate = &startDate
	}

	if endParam := query.Get("endDate"); endParam != "" {
		endDate, err := time.Parse(domain.DateFormat, endParam)
		if err != nil {
			h.logger.Warn("GET /owner/bookings - Invalid end date: %s", endParam)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		req.EndDate = &endDate
	}

	result, err := h.service.GetStudioBookings(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /owner/bookings - Invalid filter: user_id=%d, error=%v", actor.UserID, err)
			handlers.RespondBadRequest(w, msgInvalidFilter)

		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("GET /owner/bookings - Access denied: user_id=%d", actor.UserID)
			handlers.RespondForbidden(w, msgAccessDenied)

		default:
			h.logger.Error("GET /owner/bookings - Failed to get bookings: user_id=%d, error=%v", actor.UserID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /owner/bookings - Bookings retrieved: user_id=%d, count=%d", actor.UserID, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result)
}
