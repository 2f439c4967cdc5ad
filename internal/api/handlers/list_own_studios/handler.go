package list_own_studios

import (
	"net/http"

	"github.com/m04kA/SMC-StudioBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-StudioBookingService/internal/api/middleware"
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

// Handle GET /api/v1/owner/studios
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())

	result, err := h.service.ListOwnStudios(r.Context(), actor)
	if err != nil {
		h.logger.Error("GET /owner/studios - Failed to list studios: user_id=%d, error=%v", actor.UserID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /owner/studios - Studios listed: user_id=%d, count=%d", actor.UserID, len(result.Studios))
	handlers.RespondJSON(w, http.StatusOK, result)
}
