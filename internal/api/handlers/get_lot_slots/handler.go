package get_lot_slots

import (
	"errors"
	"net/http"

	"github.com/parkease/parkease-backend/internal/api/handlers"
	slotsService "github.com/parkease/parkease-backend/internal/service/slots"
)

const (
	msgInvalidLotID = "некорректный идентификатор парковки"
	msgLotNotFound  = "парковка не найдена"
)

type Handler struct {
	service SlotService
	logger  Logger
}

func NewHandler(service SlotService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/lots/{lotId}/slots
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	lotID, err := handlers.PathInt64(r, "lotId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidLotID)
		return
	}

	result, err := h.service.ListByLot(r.Context(), lotID)
	if err != nil {
		switch {
		case errors.Is(err, slotsService.ErrLotNotFound):
			h.logger.Warn("GET /lots/%d/slots - Lot not found", lotID)
			handlers.RespondNotFound(w, msgLotNotFound)

		default:
			h.logger.Error("GET /lots/%d/slots - Failed: %v", lotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
