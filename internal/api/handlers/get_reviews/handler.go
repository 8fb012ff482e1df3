package get_reviews

import (
	"errors"
	"net/http"

	"github.com/parkease/parkease-backend/internal/api/handlers"
	reviewsService "github.com/parkease/parkease-backend/internal/service/reviews"
)

const (
	msgInvalidLotID = "некорректный идентификатор парковки"
	msgLotNotFound  = "парковка не найдена"
)

type Handler struct {
	service ReviewService
	logger  Logger
}

func NewHandler(service ReviewService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/lots/{lotId}/reviews
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	lotID, err := handlers.PathInt64(r, "lotId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidLotID)
		return
	}

	result, err := h.service.GetByLot(r.Context(), lotID)
	if err != nil {
		switch {
		case errors.Is(err, reviewsService.ErrLotNotFound):
			h.logger.Warn("GET /lots/%d/reviews - Lot not found", lotID)
			handlers.RespondNotFound(w, msgLotNotFound)

		default:
			h.logger.Error("GET /lots/%d/reviews - Failed: %v", lotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
