package upsert_schedule

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-StudioBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-StudioBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-StudioBookingService/internal/service/schedule"
	"github.com/m04kA/SMC-StudioBookingService/internal/service/schedule/models"
)

const (
	msgInvalidResourceID  = "некорректный ID ресурса"
	msgInvalidDayOfWeek   = "некорректный день недели, ожидается 0-6"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgResourceNotFound   = "ресурс не найден"
	msgAccessDenied       = "нет прав на изменение расписания"
	msgInvalidTimeRange   = "время открытия должно быть раньше времени закрытия"
	msgInvalidInput       = "некорректные параметры расписания"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/resources/{resourceId}/schedule/{dayOfWeek}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())

	vars := mux.Vars(r)
	resourceID, err := strconv.ParseInt(vars["resourceId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /resources/{resourceId}/schedule/{dayOfWeek} - Invalid resource ID: %s", vars["resourceId"])
		handlers.RespondBadRequest(w, msgInvalidResourceID)
		return
	}

	dayOfWeek, err := strconv.Atoi(vars["dayOfWeek"])
	if err != nil {
		h.logger.Warn("PUT /resources/{resourceId}/schedule/{dayOfWeek} - Invalid day of week: %s", vars["dayOfWeek"])
		handlers.RespondBadRequest(w, msgInvalidDayOfWeek)
		return
	}

	var req UpsertScheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /resources/{resourceId}/schedule/{dayOfWeek} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.UpsertTemplate(r.Context(), &models.UpsertTemplateRequest{
		Actor:       actor,
		ResourceID:  resourceID,
		DayOfWeek:   dayOfWeek,
		OpenTime:    req.OpenTime,
		CloseTime:   req.CloseTime,
		IsAvailable: req.IsAvailable,
	})
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrResourceNotFound):
			h.logger.Warn("PUT /resources/{resourceId}/schedule/{dayOfWeek} - Resource not found: resource_id=%d", resourceID)
			handlers.RespondNotFound(w, msgResourceNotFound)

		case errors.Is(err, schedule.ErrAccessDenied):
			h.logger.Warn("PUT /resources/{resourceId}/schedule/{dayOfWeek} - Access denied: resource_id=%d, user_id=%d", resourceID, actor.UserID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, schedule.ErrInvalidTimeRange):
			h.logger.Warn("PUT /resources/{resourceId}/schedule/{dayOfWeek} - Invalid time range: open=%s, close=%s", req.OpenTime, req.CloseTime)
			handlers.RespondBadRequest(w, msgInvalidTimeRange)

		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("PUT /resources/{resourceId}/schedule/{dayOfWeek} - Invalid input: resource_id=%d, error=%v", resourceID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PUT /resources/{resourceId}/schedule/{dayOfWeek} - Failed to upsert template: resource_id=%d, error=%v", resourceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /resources/{resourceId}/schedule/{dayOfWeek} - Template upserted: resource_id=%d, day=%d", resourceID, dayOfWeek)
	handlers.RespondJSON(w, http.StatusOK, result)
}
