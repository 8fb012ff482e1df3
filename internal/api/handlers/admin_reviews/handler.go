package admin_reviews

import (
	"net/http"

	"github.com/parkease/parkease-backend/internal/api/handlers"
	"github.com/parkease/parkease-backend/internal/api/middleware"
)

const (
	msgUnauthorized = "требуется аутентификация"
	msgAdminOnly    = "доступно только администраторам"
)

type Handler struct {
	service AdminService
	logger  Logger
}

func NewHandler(service AdminService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/admin/reviews
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}
	if !principal.IsAdmin() {
		h.logger.Warn("GET /admin/reviews - Access denied: user_id=%d, role=%s", principal.ID, principal.Role)
		handlers.RespondForbidden(w, msgAdminOnly)
		return
	}

	result, err := h.service.RecentReviews(r.Context())
	if err != nil {
		h.logger.Error("GET /admin/reviews - Failed: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
