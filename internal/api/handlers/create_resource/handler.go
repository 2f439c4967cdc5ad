package create_resource

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
	msgInvalidStudioID    = "некорректный ID студии"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgStudioNotFound     = "студия не найдена"
	msgAccessDenied       = "нет прав на добавление ресурсов в студию"
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

// Handle POST /api/v1/studios/{studioId}/resources
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())

	vars := mux.Vars(r)
	studioID, err := strconv.ParseInt(vars["studioId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /studios/{studioId}/resources - Invalid studio ID: %s", vars["studioId"])
		handlers.RespondBadRequest(w, msgInvalidStudioID)
		return
	}

	var req CreateResourceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /studios/{studioId}/resources - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.CreateResource(r.Context(), &models.CreateResourceRequest{
		Actor:            actor,
		StudioID:         studioID,
		Name:             req.Name,
		ResourceType:     req.ResourceType,
		Description:      req.Description,
		BasePricePerHour: req.BasePricePerHour,
		MaxOccupancy:     req.MaxOccupancy,
	})
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrStudioNotFound):
			h.logger.Warn("POST /studios/{studioId}/resources - Studio not found: studio_id=%d", studioID)
			handlers.RespondNotFound(w, msgStudioNotFound)

		case errors.Is(err, catalog.ErrAccessDenied):
			h.logger.Warn("POST /studios/{studioId}/resources - Access denied: studio_id=%d, user_id=%d", studioID, actor.UserID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, catalog.ErrInvalidInput):
			h.logger.Warn("POST /studios/{studioId}/resources - Invalid input: studio_id=%d, error=%v", studioID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /studios/{studioId}/resources - Failed to create resource: studio_id=%d, error=%v", studioID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /studios/{studioId}/resources - Resource created: resource_id=%d, studio_id=%d", result.ID, studioID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
