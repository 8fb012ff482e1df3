package create_review

import (
	"errors"
	"net/http"

	"github.com/parkease/parkease-backend/internal/api/handlers"
	"github.com/parkease/parkease-backend/internal/api/middleware"
	reviewsService "github.com/parkease/parkease-backend/internal/service/reviews"
	"github.com/parkease/parkease-backend/internal/service/reviews/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgUnauthorized       = "требуется аутентификация"
	msgInvalidLotID       = "некорректный идентификатор парковки"
	msgLotNotFound        = "парковка не найдена"
	msgInvalidRating      = "оценка должна быть от 1 до 5"
	msgEmptyComment       = "комментарий не может быть пустым"
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

// Handle POST /api/v1/lots/{lotId}/reviews
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

	var req models.CreateReviewRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /lots/%d/reviews - Invalid request body: %v", lotID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Create(r.Context(), lotID, &req, principal)
	if err != nil {
		switch {
		case errors.Is(err, reviewsService.ErrLotNotFound):
			h.logger.Warn("POST /lots/%d/reviews - Lot not found", lotID)
			handlers.RespondNotFound(w, msgLotNotFound)

		case errors.Is(err, reviewsService.ErrInvalidRating):
			h.logger.Warn("POST /lots/%d/reviews - Invalid rating: %d", lotID, req.Rating)
			handlers.RespondBadRequest(w, msgInvalidRating)

		case errors.Is(err, reviewsService.ErrInvalidInput):
			h.logger.Warn("POST /lots/%d/reviews - Invalid input", lotID)
			handlers.RespondBadRequest(w, msgEmptyComment)

		default:
			h.logger.Error("POST /lots/%d/reviews - Failed: user_id=%d, error=%v", lotID, principal.ID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /lots/%d/reviews - Review created: review_id=%d, user_id=%d", lotID, result.ID, principal.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
