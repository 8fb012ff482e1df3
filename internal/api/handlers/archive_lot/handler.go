package archive_lot

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
	msgAccessDenied = "доступно только администраторам"
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

// Handle PATCH /api/v1/lots/{lotId}/archive
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

	if err := h.service.ArchiveLot(r.Context(), lotID, principal); err != nil {
		switch {
		case errors.Is(err, lotsService.ErrLotNotFound):
			h.logger.Warn("PATCH /lots/%d/archive - Lot not found", lotID)
			handlers.RespondNotFound(w, msgLotNotFound)

		case errors.Is(err, lotsService.ErrAccessDenied):
			h.logger.Warn("PATCH /lots/%d/archive - Access denied: user_id=%d", lotID, principal.ID)
			handlers.RespondForbidden(w, msgAccessDenied)

		default:
			h.logger.Error("PATCH /lots/%d/archive - Failed: user_id=%d, error=%v", lotID, principal.ID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /lots/%d/archive - Archived by admin=%d", lotID, principal.ID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
