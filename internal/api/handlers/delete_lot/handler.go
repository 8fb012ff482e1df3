package delete_lot

import (
	"errors"
	"net/http"

	"github.com/parkease/parkease-backend/internal/api/handlers"
	"github.com/parkease/parkease-backend/internal/api/middleware"
	lotsService "github.com/parkease/parkease-backend/internal/service/lots"
)

const (
	msgUnauthorized = "требуется аутентификация"
	msgInvalidLotID = "некорректный идентификатор парковки"
	msgLotNotFound  = "парковка не найдена"
	msgAccessDenied = "нет доступа к парковке"
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

// Handle DELETE /api/v1/lots/{lotId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	lotID, err := handlers.PathInt64(r, "lotId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidLotID)
		return
	}

	if err := h.service.Delete(r.Context(), lotID, principal); err != nil {
		switch {
		case errors.Is(err, lotsService.ErrLotNotFound):
			h.logger.Warn("DELETE /lots/%d - Lot not found", lotID)
			handlers.RespondNotFound(w, msgLotNotFound)

		case errors.Is(err, lotsService.ErrAccessDenied):
			h.logger.Warn("DELETE /lots/%d - Access denied: user_id=%d", lotID, principal.ID)
			handlers.RespondForbidden(w, msgAccessDenied)

		default:
			h.logger.Error("DELETE /lots/%d - Failed: user_id=%d, error=%v", lotID, principal.ID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /lots/%d - Lot deleted: user_id=%d", lotID, principal.ID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
