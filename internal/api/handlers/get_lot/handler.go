package get_lot

import (
	"errors"
	"net/http"

	"github.com/parkease/parkease-backend/internal/api/handlers"
	lotsService "github.com/parkease/parkease-backend/internal/service/lots"
)

const (
	msgInvalidLotID = "некорректный идентификатор парковки"
	msgLotNotFound  = "парковка не найдена"
)

type Handler struct {
	service LotService
	logger  Logger
}

func NewHandler(service LotService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/lots/{lotId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	lotID, err := handlers.PathInt64(r, "lotId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidLotID)
		return
	}

	result, err := h.service.Get(r.Context(), lotID)
	if err != nil {
		switch {
		case errors.Is(err, lotsService.ErrLotNotFound):
			h.logger.Warn("GET /lots/%d - Lot not found", lotID)
			handlers.RespondNotFound(w, msgLotNotFound)

		default:
			h.logger.Error("GET /lots/%d - Failed: %v", lotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
