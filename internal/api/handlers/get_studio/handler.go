package get_studio

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
	msgInvalidStudioID = "некорректный ID студии"
	msgStudioNotFound  = "студия не найдена"
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

// Handle GET /api/v1/studios/{studioId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorFromContext(r.Context())

	vars := mux.Vars(r)
	studioID, err := strconv.ParseInt(vars["studioId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /studios/{studioId} - Invalid studio ID: %s", vars["studioId"])
		handlers.RespondBadRequest(w, msgInvalidStudioID)
		return
	}

	result, err := h.service.GetStudio(r.Context(), studioID, actor)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrStudioNotFound):
			h.logger.Warn("GET /studios/{studioId} - Studio not found: studio_id=%d", studioID)
			handlers.RespondNotFound(w, msgStudioNotFound)

		default:
			h.logger.Error("GET /studios/{studioId} - Failed to get studio: studio_id=%d, error=%v", studioID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /studios/{studioId} - Studio retrieved: studio_id=%d", studioID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
