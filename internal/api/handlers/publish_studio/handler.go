package publish_studio

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-StudioBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-StudioBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-StudioBookingService/internal/service/catalog"
)

const (
	msgInvalidStudioID    = "некорректный ID студии"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgStudioNotFound     = "студия не найдена"
	msgAccessDenied       = "нет прав на публикацию студии"
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

// Handle PATCH /api/v1/studios/{studioId}/publish
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())

	vars := mux.Vars(r)
	studioID, err := strconv.ParseInt(vars["studioId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /studios/{studioId}/publish - Invalid studio ID: %s", vars["studioId"])
		handlers.RespondBadRequest(w, msgInvalidStudioID)
		return
	}

	var req PublishStudioRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /studios/{studioId}/publish - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := h.service.SetStudioPublished(r.Context(), studioID, req.IsPublished, actor); err != nil {
		switch {
		case errors.Is(err, catalog.ErrStudioNotFound):
			h.logger.Warn("PATCH /studios/{studioId}/publish - Studio not found: studio_id=%d", studioID)
			handlers.RespondNotFound(w, msgStudioNotFound)

		case errors.Is(err, catalog.ErrAccessDenied):
			h.logger.Warn("PATCH /studios/{studioId}/publish - Access denied: studio_id=%d, user_id=%d", studioID, actor.UserID)
			handlers.RespondForbidden(w, msgAccessDenied)

		default:
			h.logger.Error("PATCH /studios/{studioId}/publish - Failed to publish studio: studio_id=%d, error=%v", studioID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /studios/{studioId}/publish - Publication state changed: studio_id=%d, published=%t", studioID, req.IsPublished)
	handlers.RespondJSON(w, http.StatusOK, &PublishStudioResponse{
		StudioID:    studioID,
		IsPublished: req.IsPublished,
	})
}
