package update_resource

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-StudioBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-StudioBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-StudioBookingService/internal/service/catalog"
	"github.com/m04kA/SMC-StudioBookingService/internal/service/catalog/models"
)

const (
	msgInvalidResourceID  = "некорректный ID ресурса"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgResourceNotFound   = "ресурс не найден"
	msgAccessDenied       = "нет прав на изменение ресурса"
	msgInvalidInput       = "некорректные данные ресурса"
)

type Handler struct {
	service CatalogService
	logger  Logger
}

func NewHandler(service CatalogService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/resources/{resourceId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())

	vars := mux.Vars(r)
	resourceID, err := strconv.ParseInt(vars["resourceId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /resources/{resourceId} - Invalid resource ID: %s", vars["resourceId"])
		handlers.RespondBadRequest(w, msgInvalidResourceID)
		return
	}

	var req UpdateResourceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /resources/{resourceId} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.UpdateResource(r.Context(), resourceID, &models.UpdateResourceRequest{
		Actor:            actor,
		Name:             req.Name,
		ResourceType:     req.ResourceType,
		Description:      req.Description,
		BasePricePerHour: req.BasePricePerHour,
		MaxOccupancy:     req.MaxOccupancy,
		IsActive:         req.IsActive,
	})
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrResourceNotFound), errors.Is(err, catalog.ErrStudioNotFound):
			h.logger.Warn("PATCH /resources/{resourceId} - Resource not found: resource_id=%d", resourceID)
			handlers.RespondNotFound(w, msgResourceNotFound)

		case errors.Is(err, catalog.ErrAccessDenied):
			h.logger.Warn("PATCH /resources/{resourceId} - Access denied: resource_id=%d, user_id=%d", resourceID, actor.UserID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, catalog.ErrInvalidInput):
			h.logger.Warn("PATCH /resources/{resourceId} - Invalid input: resource_id=%d, error=%v", resourceID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PATCH /resources/{resourceId} - Failed to update resource: resource_id=%d, error=%v", resourceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /resources/{resourceId} - Resource updated: resource_id=%d, user_id=%d", resourceID, actor.UserID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
