package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-StudioBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-StudioBookingService/internal/domain"
	"github.com/m04kA/SMC-StudioBookingService/internal/usecase/get_available_slots"
)

const (
	msgInvalidResourceID = "некорректный ID ресурса"
	msgMissingDate       = "параметр date обязателен"
	msgInvalidDateFormat = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgResourceNotFound  = "ресурс не найден"
	msgResourceInactive  = "ресурс недоступен"
	msgInvalidDate       = "нельзя запросить слоты на дату в прошлом"
	msgInvalidInput      = "некорректные параметры запроса"
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

// Handle GET /api/v1/resources/{resourceId}/slots?date=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	resourceID, err := strconv.ParseInt(vars["resourceId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /resources/{resourceId}/slots - Invalid resource ID: %s", vars["resourceId"])
		handlers.RespondBadRequest(w, msgInvalidResourceID)
		return
	}

	dateParam := r.URL.Query().Get("date")
	if dateParam == "" {
		h.logger.Warn("GET /resources/{resourceId}/slots - Missing date parameter: resource_id=%d", resourceID)
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	date, err := time.Parse(domain.DateFormat, dateParam)
	if err != nil {
		h.logger.Warn("GET /resources/{resourceId}/slots - Invalid date format: date=%s", dateParam)
		handlers.RespondBadRequest(w, msgInvalidDateFormat)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &get_available_slots.Request{
		ResourceID: resourceID,
		Date:       date,
	})
	if err != nil {
		switch {
		case errors.Is(err, get_available_slots.ErrResourceNotFound):
			h.logger.Warn("GET /resources/{resourceId}/slots - Resource not found: resource_id=%d", resourceID)
			handlers.RespondNotFound(w, msgResourceNotFound)

		case errors.Is(err, get_available_slots.ErrResourceInactive):
			h.logger.Warn("GET /resources/{resourceId}/slots - Resource inactive: resource_id=%d", resourceID)
			handlers.RespondConflict(w, msgResourceInactive)

		case errors.Is(err, get_available_slots.ErrInvalidDate):
			h.logger.Warn("GET /resources/{resourceId}/slots - Date in the past: date=%s", dateParam)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, get_available_slots.ErrInvalidInput):
			h.logger.Warn("GET /resources/{resourceId}/slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("GET /resources/{resourceId}/slots - Failed to get slots: resource_id=%d, error=%v", resourceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /resources/{resourceId}/slots - Slots retrieved: resource_id=%d, date=%s, count=%d", resourceID, dateParam, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
