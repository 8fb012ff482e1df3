package update_lot

import (
	"errors"
	"net/http"

	"github.com/parkease/parkease-backend/internal/api/handlers"
	"github.com/parkease/parkease-backend/internal/api/middleware"
	lotsService "github.com/parkease/parkease-backend/internal/service/lots"
	"github.com/parkease/parkease-backend/internal/service/lots/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgUnauthorized       = "требуется аутентификация"
	msgInvalidLotID       = "некорректный идентификатор парковки"
	msgLotNotFound        = "парковка не найдена"
	msgAccessDenied       = "нет доступа к парковке"
	msgInvalidInput       = "некорректные данные парковки"
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

// Handle PUT /api/v1/lots/{lotId}
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

	var req models.UpdateLotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /lots/%d - Invalid request body: %v", lotID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Update(r.Context(), lotID, &req, principal)
	if err != nil {
		switch {
		case errors.Is(err, lotsService.ErrLotNotFound):
			h.logger.Warn("PUT /lots/%d - Lot not found", lotID)
			handlers.RespondNotFound(w, msgLotNotFound)

		case errors.Is(err, lotsService.ErrAccessDenied):
			h.logger.Warn("PUT /lots/%d - Access denied: user_id=%d", lotID, principal.ID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, lotsService.ErrInvalidInput):
			h.logger.Warn("PUT /lots/%d - Invalid input: %v", lotID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PUT /lots/%d - Failed: user_id=%d, error=%v", lotID, principal.ID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /lots/%d - Lot updated: user_id=%d", lotID, principal.ID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
