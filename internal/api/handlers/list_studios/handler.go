package list_studios

import (
	"net/http"

	"github.com/m04kA/SMC-StudioBookingService/internal/api/handlers"
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

// Handle GET /api/v1/studios?city=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var city *string
	if cityParam := r.URL.Query().Get("city"); cityParam != "" {
		city = &cityParam
	}

	result, err := h.service.ListPublishedStudios(r.Context(), city)
	if err != nil {
		h.logger.Error("GET /studios - Failed to list studios: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /studios - Studios listed: count=%d", len(result.Studios))
	handlers.RespondJSON(w, http.StatusOK, result)
}
