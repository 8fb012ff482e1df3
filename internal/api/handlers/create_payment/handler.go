package create_payment

import (
	"errors"
	"net/http"

	"github.com/parkease/parkease-backend/internal/api/handlers"
	"github.com/parkease/parkease-backend/internal/api/middleware"
	paymentsService "github.com/parkease/parkease-backend/internal/service/payments"
)

const (
	msgUnauthorized     = "требуется аутентификация"
	msgInvalidBookingID = "некорректный идентификатор бронирования"
	msgBookingNotFound  = "бронирование не найдено"
	msgAccessDenied     = "доступ запрещён"
	msgAlreadyPaid      = "бронирование уже оплачено"
)

type Handler struct {
	service PaymentService
	logger  Logger
}

func NewHandler(service PaymentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/{bookingId}/payments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	bookingID, err := handlers.PathInt64(r, "bookingId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	result, err := h.service.Pay(r.Context(), bookingID, principal)
	if err != nil {
		switch {
		case errors.Is(err, paymentsService.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/%d/payments - Booking not found", bookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, paymentsService.ErrAccessDenied):
			h.logger.Warn("POST /bookings/%d/payments - Access denied: user_id=%d", bookingID, principal.ID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, paymentsService.ErrAlreadyPaid):
			h.logger.Warn("POST /bookings/%d/payments - Already paid", bookingID)
			handlers.RespondConflict(w, msgAlreadyPaid)

		default:
			h.logger.Error("POST /bookings/%d/payments - Failed: user_id=%d, error=%v", bookingID, principal.ID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/%d/payments - Payment created: payment_id=%d, amount=%.2f", bookingID, result.ID, result.Amount)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
