package create_lot

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
	msgAccessDenied       = "недостаточно прав для создания парковки"
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

// Handle POST /api/v1/lots
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req models.CreateLotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /lots - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Create(r.Context(), &req, principal)
	if err != nil {
		switch {
		case errors.Is(err, lotsService.ErrAccessDenied):
			h.logger.Warn("POST /lots - Access denied: user_id=%d", principal.ID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, lotsService.ErrInvalidInput):
			h.logger.Warn("POST /lots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /lots - Failed: user_id=%d, error=%v", principal.ID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /lots - Lot created: lot_id=%d, owner_id=%d", result.ID, principal.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
